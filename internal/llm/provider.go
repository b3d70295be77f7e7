// Package llm generates the optional research-notes overview. It is fed
// computed dataset statistics only and never participates in extraction,
// selection, or validation.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielsohn/chronica/internal/model"
)

// Provider is an LLM backend able to write a short dataset overview
type Provider interface {
	// Name returns the provider name for logging and attribution
	Name() string

	// Overview generates the overview text for the given statistics
	Overview(ctx context.Context, req OverviewRequest) (string, error)
}

// OverviewRequest carries the only facts the model may restate
type OverviewRequest struct {
	Translation   string
	EventCount    int
	EvidenceCount int
	EdgeCount     int
	TrackIDs      []string
	LaneCounts    map[string]int // events per lane tag
	LaneOrder     []string       // deterministic iteration order for LaneCounts
	MaxTokens     int
}

// New builds the configured provider; a blank provider name disables LLM use
func New(cfg model.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai", "ollama":
		return newOpenAICompatible(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}

// BuildPrompt constructs the strict statistics-only prompt
func BuildPrompt(req OverviewRequest) string {
	var b strings.Builder

	b.WriteString("당신은 성경 타임라인 연구 데이터셋의 개요를 작성합니다.\n\n")
	b.WriteString("규칙:\n")
	b.WriteString("1. 아래 통계에 없는 수치나 사실을 만들어내지 마십시오.\n")
	b.WriteString("2. 역사적·신학적 판단을 내리지 마십시오. 데이터셋 구성만 설명하십시오.\n")
	b.WriteString("3. 한국어 3-4문장으로 작성하십시오.\n\n")

	b.WriteString("통계:\n")
	fmt.Fprintf(&b, "- 번역: %s\n", req.Translation)
	fmt.Fprintf(&b, "- 사건 수: %d\n", req.EventCount)
	fmt.Fprintf(&b, "- 근거 구절 수: %d\n", req.EvidenceCount)
	fmt.Fprintf(&b, "- 연대 간선 수: %d\n", req.EdgeCount)
	fmt.Fprintf(&b, "- 트랙: %s\n", strings.Join(req.TrackIDs, ", "))

	if len(req.LaneOrder) > 0 {
		b.WriteString("- 레인별 사건 수:\n")
		for _, lane := range req.LaneOrder {
			fmt.Fprintf(&b, "  - %s: %d\n", lane, req.LaneCounts[lane])
		}
	}

	b.WriteString("\n데이터셋 구성을 요약하십시오.")
	return b.String()
}
