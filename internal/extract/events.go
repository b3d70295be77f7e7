package extract

import (
	"sort"

	"github.com/danielsohn/chronica/internal/model"
)

// NarrativeBooks is the fixed allow-list of books with connected prose.
// Law, wisdom and most prophetic books stay in the corpus as verses but are
// excluded from event extraction.
var NarrativeBooks = map[string]bool{
	"창세기": true, "출애굽기": true, "민수기": true, "신명기": true,
	"여호수아": true, "사사기": true, "룻기": true,
	"사무엘상": true, "사무엘하": true, "열왕기상": true, "열왕기하": true,
	"역대상": true, "역대하": true, "에스라": true, "느헤미야": true,
	"에스더": true, "다니엘": true, "요나": true,
	"마태복음": true, "마가복음": true, "누가복음": true, "요한복음": true,
	"사도행전": true,
}

// GospelBooks form the parallel book group for cross-account matching
var GospelBooks = map[string]bool{
	"마태복음": true, "마가복음": true, "누가복음": true, "요한복음": true,
}

// BuildCandidates groups each narrative book's verses into heading-delimited
// spans. Every span becomes one candidate event running from its heading
// verse to the verse before the next heading (or book end). The result is
// sorted by (canonical order, start chapter, start verse).
func BuildCandidates(corpus *model.Corpus) []model.CandidateEvent {
	var candidates []model.CandidateEvent

	for _, book := range corpus.Books {
		if !NarrativeBooks[book.Name] {
			continue
		}
		candidates = append(candidates, bookCandidates(book)...)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.CanonicalOrder != b.CanonicalOrder {
			return a.CanonicalOrder < b.CanonicalOrder
		}
		if a.StartChapter != b.StartChapter {
			return a.StartChapter < b.StartChapter
		}
		return a.StartVerse < b.StartVerse
	})

	return candidates
}

type headingPos struct {
	index int
	title string
	body  string
}

func bookCandidates(book model.Book) []model.CandidateEvent {
	var headings []headingPos
	for idx, verse := range book.Verses {
		title, body, ok := ParseHeading(verse.Text)
		if !ok {
			continue
		}
		headings = append(headings, headingPos{index: idx, title: title, body: body})
	}
	if len(headings) == 0 {
		return nil
	}

	var out []model.CandidateEvent
	for i, h := range headings {
		end := len(book.Verses) - 1
		if i+1 < len(headings) {
			end = headings[i+1].index - 1
		}
		span := book.Verses[h.index : end+1]
		if len(span) == 0 {
			continue
		}

		first, last := span[0], span[len(span)-1]
		firstText := h.body
		if firstText == "" {
			firstText = StripHeadings(first.Text)
		}

		out = append(out, model.CandidateEvent{
			Testament:      first.Testament,
			CanonicalOrder: first.CanonicalOrder,
			BookName:       book.Name,
			Title:          h.title,
			FirstText:      firstText,
			StartRef:       first.Reference(),
			StartChapter:   first.Chapter,
			StartVerse:     first.Verse,
			EndRef:         last.Reference(),
			Verses:         span,
		})
	}

	return out
}

// Summarize truncates text to limit runes, appending an ellipsis when cut
func Summarize(text string, limit int) string {
	text = normalizeText(text)
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
