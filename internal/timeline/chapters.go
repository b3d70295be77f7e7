package timeline

import (
	"fmt"

	"github.com/danielsohn/chronica/internal/dataset"
	"github.com/danielsohn/chronica/internal/extract"
	"github.com/danielsohn/chronica/internal/model"
)

// Lane book families for whole-corpus chapter placement. Unlike the
// extraction classifier this map covers all 66 books, since every chapter
// lands on the timeline.
var (
	exodusBooks = map[string]bool{
		"출애굽기": true, "레위기": true, "민수기": true, "신명기": true,
	}
	judgesBooks         = map[string]bool{"사사기": true, "룻기": true}
	unitedMonarchyBooks = map[string]bool{"사무엘상": true, "사무엘하": true}
	monarchyExileBooks  = map[string]bool{
		"열왕기상": true, "열왕기하": true, "역대상": true, "역대하": true,
	}
	wisdomBooks = map[string]bool{
		"욥기": true, "시편": true, "잠언": true, "전도서": true, "아가": true,
	}
	prophetBooks = map[string]bool{
		"이사야": true, "예레미야": true, "예레미야애가": true, "에스겔": true,
		"다니엘": true, "호세아": true, "요엘": true, "아모스": true,
		"오바댜": true, "요나": true, "미가": true, "나훔": true,
		"하박국": true, "스바냐": true, "학개": true, "스가랴": true, "말라기": true,
	}
	exileReturnBooks = map[string]bool{
		"에스라": true, "느헤미야": true, "에스더": true,
	}
)

func laneFor(book string, chapter int) string {
	switch {
	case book == "창세기":
		if chapter <= 11 {
			return "primeval_history"
		}
		return "patriarchal_era"
	case exodusBooks[book]:
		return "exodus_wilderness"
	case book == "여호수아":
		return "conquest_settlement"
	case judgesBooks[book]:
		return "judges_period"
	case unitedMonarchyBooks[book]:
		return "united_monarchy"
	case monarchyExileBooks[book]:
		return "monarchy_exile"
	case wisdomBooks[book]:
		return "wisdom_poetry"
	case prophetBooks[book]:
		return "prophetic_books"
	case exileReturnBooks[book]:
		return "exile_return"
	case extract.GospelBooks[book]:
		return "life_of_jesus"
	default:
		return "early_church"
	}
}

// FromCorpus builds the all-verses payload: one timeline entry per chapter
// of every book, chained into a single default track. Used when no curated
// event selection exists yet.
func FromCorpus(corpus *model.Corpus, translation string, summaryLimit int) *model.ChapterTimeline {
	var chapters []model.ChapterEvent
	versesByChapter := make(map[string][]model.ChapterVerse)
	var edges []model.ChapterEdge

	seq := 0
	prevID := ""
	totalVerses := 0
	usedLanes := make(map[string]bool)

	flush := func(book string, chapter int, verses []model.ChapterVerse) {
		if len(verses) == 0 {
			return
		}
		seq++
		id := fmt.Sprintf("CHP%04d", seq)
		lane := laneFor(book, chapter)
		usedLanes[lane] = true

		chapters = append(chapters, model.ChapterEvent{
			ChapterID:     id,
			LaneTag:       lane,
			SequenceIndex: seq,
			Book:          book,
			Chapter:       chapter,
			EventTitle:    fmt.Sprintf("%s %d장", book, chapter),
			EventSummary:  extract.Summarize(verses[0].VerseText, summaryLimit),
			VerseCount:    len(verses),
			Certainty:     model.CertaintyHigh,
		})
		versesByChapter[id] = verses

		if prevID != "" {
			edges = append(edges, model.ChapterEdge{
				FromChapterID: prevID,
				ToChapterID:   id,
				RelationType:  model.RelationBefore,
			})
		}
		prevID = id
	}

	for _, book := range corpus.Books {
		currentChapter := 0
		var current []model.ChapterVerse

		for _, verse := range book.Verses {
			text := extract.StripHeadings(verse.Text)
			if text == "" {
				text = verse.Text
			}

			if currentChapter == 0 {
				currentChapter = verse.Chapter
			} else if verse.Chapter != currentChapter {
				flush(book.Name, currentChapter, current)
				currentChapter = verse.Chapter
				current = nil
			}

			current = append(current, model.ChapterVerse{
				VerseNo:   verse.Verse,
				Reference: verse.Reference(),
				VerseText: text,
			})
			totalVerses++
		}
		if currentChapter != 0 {
			flush(book.Name, currentChapter, current)
		}
	}

	return &model.ChapterTimeline{
		Meta: model.Meta{
			Translation:   translation,
			Mode:          model.ModeAllVerses,
			Granularity:   "chapter",
			TotalChapters: len(chapters),
			TotalVerses:   totalVerses,
		},
		Lanes:           model.ActiveLanes(usedLanes),
		Chapters:        chapters,
		VersesByChapter: versesByChapter,
		EdgesByTrack:    map[string][]model.ChapterEdge{dataset.TrackMain: edges},
	}
}
