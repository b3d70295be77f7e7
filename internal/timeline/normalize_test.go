package timeline

import (
	"errors"
	"testing"

	"github.com/danielsohn/chronica/internal/dataset"
	"github.com/danielsohn/chronica/internal/model"
	"github.com/danielsohn/chronica/internal/validate"
)

func writeResearchFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	events := []dataset.EventRow{
		{EventID: "EVT0002", Testament: "NT", Book: "마태복음", EventTitle: "예수의 탄생",
			EventSummary: "요약", LaneTag: "life_of_jesus", SequenceIndex: 2,
			TrackID: dataset.TrackMain, CertaintyLevel: "뭔가 이상한 값"},
		{EventID: "EVT0001", Testament: "OT", Book: "창세기", EventTitle: "천지 창조",
			EventSummary: "요약", LaneTag: "primeval_history", SequenceIndex: 1,
			TrackID: dataset.TrackMain, CertaintyLevel: "high"},
	}
	evidence := []dataset.EvidenceRow{
		{EvidenceID: "EVD0000001", EventID: "EVT0001", Tier: "direct",
			Reference: "창세기 1:1", VerseText: "태초에 하나님이", Translation: "개역개정"},
		{EvidenceID: "EVD0000002", EventID: "EVT0002", Tier: "direct",
			Reference: "마태복음 1:18", VerseText: "나심은 이러하니라", Translation: "개역개정"},
		{EvidenceID: "EVD0000003", EventID: "EVT0002", Tier: "parallel",
			Reference: "누가복음 2:1", VerseText: "그 때에", Translation: "개역개정",
			IsParallel: true, Note: "parallel_from:EVT0001;score=0.50"},
	}
	edges := []dataset.EdgeRow{
		{EdgeID: "EDG000001", FromEventID: "EVT0001", ToEventID: "EVT0002",
			RelationType: "after", BasisReference: "창세기 1:1", TrackID: dataset.TrackMain},
	}

	if err := dataset.WriteEvents(dir, events); err != nil {
		t.Fatal(err)
	}
	if err := dataset.WriteEvidence(dir, evidence); err != nil {
		t.Fatal(err)
	}
	if err := dataset.WriteEdges(dir, edges); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestFromResearch(t *testing.T) {
	dir := writeResearchFixture(t)

	tl, err := FromResearch(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if tl.Meta.Mode != model.ModeResearch {
		t.Errorf("Expected research mode, got %s", tl.Meta.Mode)
	}
	if tl.Meta.Translation != "개역개정" {
		t.Errorf("Expected translation from evidence, got %s", tl.Meta.Translation)
	}
	if tl.Meta.TotalEvents != 2 || tl.Meta.TotalEvidence != 3 {
		t.Errorf("Expected 2 events and 3 evidence rows, got %d and %d",
			tl.Meta.TotalEvents, tl.Meta.TotalEvidence)
	}

	// events resorted by sequence even though the CSV listed them out of order
	if tl.Events[0].EventID != "EVT0001" || tl.Events[1].EventID != "EVT0002" {
		t.Errorf("Expected sequence order, got %s then %s",
			tl.Events[0].EventID, tl.Events[1].EventID)
	}

	// the invalid certainty label degrades to medium instead of failing
	if tl.Events[1].Certainty != model.CertaintyMedium {
		t.Errorf("Expected medium for unknown certainty, got %s", tl.Events[1].Certainty)
	}

	if len(tl.Lanes) != 2 {
		t.Fatalf("Expected 2 active lanes, got %d", len(tl.Lanes))
	}
	if tl.Lanes[0].ID != "primeval_history" || tl.Lanes[1].ID != "life_of_jesus" {
		t.Errorf("Expected catalog-ordered lanes, got %s then %s", tl.Lanes[0].ID, tl.Lanes[1].ID)
	}

	bucket := tl.EvidenceByEvent["EVT0002"]
	if len(bucket.Direct) != 1 || len(bucket.Parallel) != 1 {
		t.Fatalf("Expected 1 direct and 1 parallel ref, got %d and %d",
			len(bucket.Direct), len(bucket.Parallel))
	}
	if bucket.Direct[0].Note != "" {
		t.Errorf("Expected no note on direct refs, got %q", bucket.Direct[0].Note)
	}
	if bucket.Parallel[0].Note != "parallel_from:EVT0001;score=0.50" {
		t.Errorf("Expected provenance note kept, got %q", bucket.Parallel[0].Note)
	}

	// the legacy relation label is forced to the only modeled relation
	mainEdges := tl.EdgesByTrack[dataset.TrackMain]
	if len(mainEdges) != 1 || mainEdges[0].RelationType != model.RelationBefore {
		t.Errorf("Expected relation forced to before, got %+v", mainEdges)
	}
}

func TestFromResearch_EmptyBucketsPresent(t *testing.T) {
	dir := writeResearchFixture(t)

	tl, err := FromResearch(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	bucket, ok := tl.EvidenceByEvent["EVT0001"]
	if !ok {
		t.Fatal("Expected a bucket for every event")
	}
	if bucket.Parallel == nil {
		t.Error("Expected empty parallel slice, not nil, for JSON shape stability")
	}
}

func TestFromResearch_MissingDirectFails(t *testing.T) {
	dir := writeResearchFixture(t)

	evidence, err := dataset.ReadEvidence(dir)
	if err != nil {
		t.Fatal(err)
	}
	var trimmed []dataset.EvidenceRow
	for _, row := range evidence {
		if row.EvidenceID == "EVD0000002" {
			continue // EVT0002 keeps only its parallel row
		}
		trimmed = append(trimmed, row)
	}
	if err := dataset.WriteEvidence(dir, trimmed); err != nil {
		t.Fatal(err)
	}

	_, err = FromResearch(dir)
	if !errors.Is(err, validate.ErrMissingDirect) {
		t.Errorf("Expected ErrMissingDirect, got %v", err)
	}
}

func TestFromResearch_HandEditedCycleFails(t *testing.T) {
	dir := writeResearchFixture(t)

	edges, err := dataset.ReadEdges(dir)
	if err != nil {
		t.Fatal(err)
	}
	edges = append(edges, dataset.EdgeRow{
		EdgeID: "EDG000002", FromEventID: "EVT0002", ToEventID: "EVT0001",
		RelationType: "before", TrackID: dataset.TrackMain,
	})
	if err := dataset.WriteEdges(dir, edges); err != nil {
		t.Fatal(err)
	}

	if _, err := FromResearch(dir); err == nil {
		t.Error("Expected cycle introduced by hand-editing to fail the build")
	}
}
