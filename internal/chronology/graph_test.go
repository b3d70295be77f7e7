package chronology

import (
	"errors"
	"testing"

	"github.com/danielsohn/chronica/internal/dataset"
)

func TestBuild_MainChain(t *testing.T) {
	nodes := []Node{
		{EventID: "EVT0001", LaneTag: "primeval_history", StartRef: "창세기 1:1"},
		{EventID: "EVT0002", LaneTag: "patriarchal_era", StartRef: "창세기 12:1"},
		{EventID: "EVT0003", LaneTag: "life_of_jesus", StartRef: "마태복음 1:18"},
	}

	edges, tracks := Build(nodes)

	// 2 main edges, no aux chains (one gospel node is not a chain)
	if len(edges) != 2 {
		t.Fatalf("Expected 2 edges, got %d", len(edges))
	}
	if edges[0].EdgeID != "EDG000001" || edges[1].EdgeID != "EDG000002" {
		t.Errorf("Expected sequential edge ids, got %s and %s", edges[0].EdgeID, edges[1].EdgeID)
	}
	if edges[0].FromEventID != "EVT0001" || edges[0].ToEventID != "EVT0002" {
		t.Errorf("Expected EVT0001->EVT0002, got %s->%s", edges[0].FromEventID, edges[0].ToEventID)
	}
	if edges[0].BasisReference != "창세기 1:1" {
		t.Errorf("Expected basis from source start ref, got %s", edges[0].BasisReference)
	}
	if edges[0].RelationType != "before" {
		t.Errorf("Expected relation 'before', got %s", edges[0].RelationType)
	}

	if len(tracks) != 4 {
		t.Fatalf("Expected 4 tracks, got %d", len(tracks))
	}
	for _, track := range tracks {
		if track.DefaultForRender != (track.TrackID == dataset.TrackMain) {
			t.Errorf("Expected only %s as render default, got %s=%v",
				dataset.TrackMain, track.TrackID, track.DefaultForRender)
		}
	}
	if len(tracks[0].IncludedEventIDs) != 3 {
		t.Errorf("Expected all events on the main track, got %d", len(tracks[0].IncludedEventIDs))
	}
}

func TestBuild_AuxiliaryChains(t *testing.T) {
	nodes := []Node{
		{EventID: "EVT0001", LaneTag: "exodus_wilderness", StartRef: "출애굽기 12:1"},
		{EventID: "EVT0002", LaneTag: "conquest_settlement", StartRef: "여호수아 6:1"},
		{EventID: "EVT0003", LaneTag: "life_of_jesus", StartRef: "마가복음 1:9"},
		{EventID: "EVT0004", LaneTag: "early_church", StartRef: "사도행전 2:1"},
	}

	edges, _ := Build(nodes)

	byTrack := make(map[string]int)
	for _, e := range edges {
		byTrack[e.TrackID]++
	}

	if byTrack[dataset.TrackMain] != 3 {
		t.Errorf("Expected 3 main edges, got %d", byTrack[dataset.TrackMain])
	}
	// exodus family chained twice, once per interpretation track
	if byTrack[dataset.TrackExodusEarly] != 1 || byTrack[dataset.TrackExodusLate] != 1 {
		t.Errorf("Expected 1 edge on each exodus track, got %d and %d",
			byTrack[dataset.TrackExodusEarly], byTrack[dataset.TrackExodusLate])
	}
	if byTrack[dataset.TrackGospelHarmony] != 1 {
		t.Errorf("Expected 1 gospel harmony edge, got %d", byTrack[dataset.TrackGospelHarmony])
	}

	for _, e := range edges {
		if e.TrackID != dataset.TrackMain && e.BasisReference != "성경 본문 흐름" {
			t.Errorf("Expected flow basis on aux edge %s, got %s", e.EdgeID, e.BasisReference)
		}
	}
}

func TestCheckDAG_AcyclicChain(t *testing.T) {
	nodes := []string{"a", "b", "c"}
	edges := [][2]string{{"a", "b"}, {"b", "c"}}

	if err := CheckDAG(nodes, edges); err != nil {
		t.Errorf("Expected no error for a chain, got %v", err)
	}
}

func TestCheckDAG_DetectsCycle(t *testing.T) {
	nodes := []string{"a", "b", "c"}
	edges := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}

	err := CheckDAG(nodes, edges)
	if !errors.Is(err, ErrCycleDetected) {
		t.Errorf("Expected ErrCycleDetected, got %v", err)
	}
}

func TestCheckDAG_IgnoresForeignEdges(t *testing.T) {
	nodes := []string{"a", "b"}
	edges := [][2]string{{"a", "b"}, {"b", "x"}, {"x", "a"}}

	if err := CheckDAG(nodes, edges); err != nil {
		t.Errorf("Expected edges outside the node set to be ignored, got %v", err)
	}
}

func TestValidateEdgeRows_PerTrack(t *testing.T) {
	ok := []dataset.EdgeRow{
		{EdgeID: "EDG000001", FromEventID: "EVT0001", ToEventID: "EVT0002", TrackID: dataset.TrackMain},
		{EdgeID: "EDG000002", FromEventID: "EVT0002", ToEventID: "EVT0003", TrackID: dataset.TrackMain},
	}
	if err := ValidateEdgeRows(ok); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	cyclic := append(ok, dataset.EdgeRow{
		EdgeID: "EDG000003", FromEventID: "EVT0003", ToEventID: "EVT0001", TrackID: dataset.TrackMain,
	})
	err := ValidateEdgeRows(cyclic)
	if !errors.Is(err, ErrCycleDetected) {
		t.Errorf("Expected ErrCycleDetected, got %v", err)
	}
}

func TestValidateEdgeRows_CycleIsolatedToTrack(t *testing.T) {
	edges := []dataset.EdgeRow{
		{EdgeID: "EDG000001", FromEventID: "EVT0001", ToEventID: "EVT0002", TrackID: dataset.TrackMain},
		// the same pair reversed on another track is fine on its own
		{EdgeID: "EDG000002", FromEventID: "EVT0002", ToEventID: "EVT0001", TrackID: dataset.TrackGospelHarmony},
	}
	if err := ValidateEdgeRows(edges); err != nil {
		t.Errorf("Expected tracks validated independently, got %v", err)
	}
}
