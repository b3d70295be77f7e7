package timeline

import (
	"testing"

	"github.com/danielsohn/chronica/internal/dataset"
	"github.com/danielsohn/chronica/internal/model"
)

func chapterCorpus() *model.Corpus {
	genesis := model.Book{
		Testament: model.TestamentOld, CanonicalOrder: 1, Name: "창세기",
		Verses: []model.Verse{
			{Testament: model.TestamentOld, CanonicalOrder: 1, BookName: "창세기", Chapter: 1, Verse: 1,
				Text: "<천지 창조> 태초에 하나님이 천지를 창조하시니라"},
			{Testament: model.TestamentOld, CanonicalOrder: 1, BookName: "창세기", Chapter: 1, Verse: 2,
				Text: "땅이 혼돈하고 공허하며"},
			{Testament: model.TestamentOld, CanonicalOrder: 1, BookName: "창세기", Chapter: 2, Verse: 1,
				Text: "천지와 만물이 다 이루어지니라"},
		},
	}
	psalms := model.Book{
		Testament: model.TestamentOld, CanonicalOrder: 19, Name: "시편",
		Verses: []model.Verse{
			{Testament: model.TestamentOld, CanonicalOrder: 19, BookName: "시편", Chapter: 23, Verse: 1,
				Text: "여호와는 나의 목자시니"},
		},
	}
	return &model.Corpus{Books: []model.Book{genesis, psalms}}
}

func TestFromCorpus_ChapterGranularity(t *testing.T) {
	tl := FromCorpus(chapterCorpus(), "개역개정", 120)

	if tl.Meta.Mode != model.ModeAllVerses || tl.Meta.Granularity != "chapter" {
		t.Errorf("Expected all_verses/chapter meta, got %s/%s", tl.Meta.Mode, tl.Meta.Granularity)
	}
	if tl.Meta.TotalChapters != 3 || tl.Meta.TotalVerses != 4 {
		t.Errorf("Expected 3 chapters and 4 verses, got %d and %d",
			tl.Meta.TotalChapters, tl.Meta.TotalVerses)
	}

	if len(tl.Chapters) != 3 {
		t.Fatalf("Expected 3 chapters, got %d", len(tl.Chapters))
	}
	first := tl.Chapters[0]
	if first.ChapterID != "CHP0001" || first.SequenceIndex != 1 {
		t.Errorf("Expected CHP0001 first, got %+v", first)
	}
	if first.EventTitle != "창세기 1장" {
		t.Errorf("Expected chapter title, got %s", first.EventTitle)
	}
	if first.LaneTag != "primeval_history" {
		t.Errorf("Expected primeval lane for Genesis 1, got %s", first.LaneTag)
	}
	if first.VerseCount != 2 {
		t.Errorf("Expected 2 verses in Genesis 1, got %d", first.VerseCount)
	}
	// heading markers never leak into summaries
	if first.EventSummary != "태초에 하나님이 천지를 창조하시니라" {
		t.Errorf("Expected stripped summary, got %q", first.EventSummary)
	}

	if tl.Chapters[2].LaneTag != "wisdom_poetry" {
		t.Errorf("Expected wisdom lane for 시편, got %s", tl.Chapters[2].LaneTag)
	}
}

func TestFromCorpus_ChainsChaptersOnMainTrack(t *testing.T) {
	tl := FromCorpus(chapterCorpus(), "개역개정", 120)

	edges := tl.EdgesByTrack[dataset.TrackMain]
	if len(edges) != 2 {
		t.Fatalf("Expected 2 edges chaining 3 chapters, got %d", len(edges))
	}
	if edges[0].FromChapterID != "CHP0001" || edges[0].ToChapterID != "CHP0002" {
		t.Errorf("Expected CHP0001->CHP0002, got %s->%s", edges[0].FromChapterID, edges[0].ToChapterID)
	}
	// the chain crosses book boundaries
	if edges[1].FromChapterID != "CHP0002" || edges[1].ToChapterID != "CHP0003" {
		t.Errorf("Expected CHP0002->CHP0003, got %s->%s", edges[1].FromChapterID, edges[1].ToChapterID)
	}
	for _, e := range edges {
		if e.RelationType != model.RelationBefore {
			t.Errorf("Expected before relation, got %s", e.RelationType)
		}
	}
}

func TestFromCorpus_VersesKeyedByChapter(t *testing.T) {
	tl := FromCorpus(chapterCorpus(), "개역개정", 120)

	verses := tl.VersesByChapter["CHP0001"]
	if len(verses) != 2 {
		t.Fatalf("Expected 2 verses under CHP0001, got %d", len(verses))
	}
	if verses[0].Reference != "창세기 1:1" || verses[0].VerseNo != 1 {
		t.Errorf("Expected 창세기 1:1 first, got %+v", verses[0])
	}
	if verses[0].VerseText != "태초에 하나님이 천지를 창조하시니라" {
		t.Errorf("Expected heading-stripped verse text, got %q", verses[0].VerseText)
	}
}

func TestLaneFor_WebVariant(t *testing.T) {
	cases := []struct {
		book    string
		chapter int
		want    string
	}{
		{"레위기", 1, "exodus_wilderness"},
		{"욥기", 1, "wisdom_poetry"},
		{"요나", 1, "prophetic_books"},
		{"다니엘", 1, "prophetic_books"},
		{"에스더", 1, "exile_return"},
		{"로마서", 1, "early_church"},
	}
	for _, tc := range cases {
		if got := laneFor(tc.book, tc.chapter); got != tc.want {
			t.Errorf("laneFor(%s, %d) = %s, want %s", tc.book, tc.chapter, got, tc.want)
		}
	}
}
