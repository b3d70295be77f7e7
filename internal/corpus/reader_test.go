package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielsohn/chronica/internal/model"
	"golang.org/x/text/encoding/korean"
)

var testBookNames = []string{
	// old testament
	"창세기", "출애굽기", "레위기", "민수기", "신명기",
	"여호수아", "사사기", "룻기", "사무엘상", "사무엘하",
	"열왕기상", "열왕기하", "역대상", "역대하", "에스라",
	"느헤미야", "에스더", "욥기", "시편", "잠언",
	"전도서", "아가", "이사야", "예레미야", "예레미야애가",
	"에스겔", "다니엘", "호세아", "요엘", "아모스",
	"오바댜", "요나", "미가", "나훔", "하박국",
	"스바냐", "학개", "스가랴", "말라기",
	// new testament
	"마태복음", "마가복음", "누가복음", "요한복음", "사도행전",
	"로마서", "고린도전서", "고린도후서", "갈라디아서", "에베소서",
	"빌립보서", "골로새서", "데살로니가전서", "데살로니가후서", "디모데전서",
	"디모데후서", "디도서", "빌레몬서", "히브리서", "야고보서",
	"베드로전서", "베드로후서", "요한일서", "요한이서", "요한삼서",
	"유다서", "요한계시록",
}

// writeBookFile writes one cp949-encoded book file in the corpus layout
func writeBookFile(t *testing.T, dir, fileName string, lines []string) {
	t.Helper()
	encoded, err := korean.EUCKR.NewEncoder().String(strings.Join(lines, "\r\n"))
	if err != nil {
		t.Fatalf("Expected cp949 encoding to succeed, got %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(encoded), 0644); err != nil {
		t.Fatal(err)
	}
}

// writeTestCorpus lays out all 66 book files; extra verse lines can be
// provided per book name.
func writeTestCorpus(t *testing.T, dir string, extra map[string][]string) {
	t.Helper()
	for i, name := range testBookNames {
		mark, order := 1, i+1
		if i >= 39 {
			mark, order = 2, i-38
		}
		lines := []string{
			name,
			fmt.Sprintf("가%d:%d 기본 본문입니다", 1, 1),
		}
		lines = append(lines, extra[name]...)
		writeBookFile(t, dir, fmt.Sprintf("%d-%02d%s.txt", mark, order, name), lines)
	}
}

func TestLoad_IncompleteCorpus(t *testing.T) {
	dir := t.TempDir()
	writeBookFile(t, dir, "1-01창세기.txt", []string{"가1:1 태초에"})

	_, err := NewReader(nil).Load(dir)
	if !errors.Is(err, ErrCorpusIncomplete) {
		t.Errorf("Expected ErrCorpusIncomplete, got %v", err)
	}
}

func TestLoad_FullCorpus(t *testing.T) {
	dir := t.TempDir()
	writeTestCorpus(t, dir, map[string][]string{
		"창세기": {
			"가1:3 하나님이 이르시되 빛이 있으라 하시니 빛이 있었고",
			"가1:2 땅이 혼돈하고 공허하며",
			"가2:1 천지와 만물이 다 이루어지니라",
		},
	})

	corpus, err := NewReader(nil).Load(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(corpus.Books) != ExpectedBooks {
		t.Fatalf("Expected %d books, got %d", ExpectedBooks, len(corpus.Books))
	}

	genesis := corpus.Books[0]
	if genesis.Name != "창세기" || genesis.CanonicalOrder != 1 || genesis.Testament != model.TestamentOld {
		t.Errorf("Expected Genesis first in canonical order, got %+v", genesis)
	}

	matthew := corpus.Books[39]
	if matthew.Name != "마태복음" || matthew.CanonicalOrder != 40 || matthew.Testament != model.TestamentNew {
		t.Errorf("Expected Matthew at canonical order 40, got %+v", matthew)
	}

	// verses sorted by (chapter, verse) regardless of file order
	if len(genesis.Verses) != 4 {
		t.Fatalf("Expected 4 Genesis verses, got %d", len(genesis.Verses))
	}
	for i := 1; i < len(genesis.Verses); i++ {
		prev, cur := genesis.Verses[i-1], genesis.Verses[i]
		if cur.Chapter < prev.Chapter || (cur.Chapter == prev.Chapter && cur.Verse < prev.Verse) {
			t.Errorf("Expected sorted verses, got %d:%d after %d:%d",
				cur.Chapter, cur.Verse, prev.Chapter, prev.Verse)
		}
	}

	v := genesis.Verses[1]
	if v.Chapter != 1 || v.Verse != 2 || v.Text != "땅이 혼돈하고 공허하며" {
		t.Errorf("Expected parsed 1:2, got %+v", v)
	}
	if v.Reference() != "창세기 1:2" {
		t.Errorf("Expected reference '창세기 1:2', got %s", v.Reference())
	}
	if v.BookAbbr != "가" {
		t.Errorf("Expected abbreviation from the verse line, got %s", v.BookAbbr)
	}
}

func TestLoad_SkipsNonVerseLines(t *testing.T) {
	dir := t.TempDir()
	writeTestCorpus(t, dir, map[string][]string{
		"창세기": {"", "   ", "장 제목만 있는 줄"},
	})

	corpus, err := NewReader(nil).Load(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := len(corpus.Books[0].Verses); got != 1 {
		t.Errorf("Expected only the verse line parsed, got %d", got)
	}
}

func TestLoad_RejectsInvalidEncoding(t *testing.T) {
	dir := t.TempDir()
	writeTestCorpus(t, dir, nil)
	if err := os.WriteFile(filepath.Join(dir, "1-01창세기.txt"), []byte{0xFF, 0xFF, 0xFF}, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewReader(nil).Load(dir); err == nil {
		t.Error("Expected error for invalid cp949 bytes")
	}
}

func TestLoad_IgnoresUnrecognizedFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestCorpus(t, dir, nil)
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not a book"), 0644); err != nil {
		t.Fatal(err)
	}

	corpus, err := NewReader(nil).Load(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(corpus.Books) != ExpectedBooks {
		t.Errorf("Expected %d books, got %d", ExpectedBooks, len(corpus.Books))
	}
}
