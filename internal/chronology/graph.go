// Package chronology builds and validates the directed chronology tracks:
// one default linear track over the whole selection plus named auxiliary
// tracks over interpretively-grouped subsets.
package chronology

import (
	"errors"
	"fmt"

	"github.com/danielsohn/chronica/internal/dataset"
)

// ErrCycleDetected is returned when a track's edges do not form a DAG
var ErrCycleDetected = errors.New("cycle detected")

// basisFlow is the basis reference stamped on auxiliary-track edges, which
// follow text order rather than a single anchoring verse
const basisFlow = "성경 본문 흐름"

// Node is one selected event as seen by the graph builder
type Node struct {
	EventID  string
	LaneTag  string
	StartRef string
}

// exodus-family and gospel-family lane sets define the aux track node sets
var (
	exodusLanes = map[string]bool{
		"exodus_wilderness":   true,
		"conquest_settlement": true,
		"judges_period":       true,
	}
	gospelLanes = map[string]bool{
		"life_of_jesus": true,
		"early_church":  true,
	}
)

// Build chains all nodes into track_main and the lane-family subsets into
// the auxiliary tracks, each as a linear chain. Edge ids continue one global
// sequence so re-runs over identical inputs reproduce identical ids.
func Build(nodes []Node) ([]dataset.EdgeRow, []dataset.TrackRow) {
	var edges []dataset.EdgeRow
	seq := 1

	allIDs := make([]string, 0, len(nodes))
	var exodusIDs, gospelIDs []string
	for _, n := range nodes {
		allIDs = append(allIDs, n.EventID)
		if exodusLanes[n.LaneTag] {
			exodusIDs = append(exodusIDs, n.EventID)
		}
		if gospelLanes[n.LaneTag] {
			gospelIDs = append(gospelIDs, n.EventID)
		}
	}

	for i := 0; i+1 < len(nodes); i++ {
		edges = append(edges, dataset.EdgeRow{
			EdgeID:         dataset.FormatEdgeID(seq),
			FromEventID:    nodes[i].EventID,
			ToEventID:      nodes[i+1].EventID,
			RelationType:   "before",
			BasisReference: nodes[i].StartRef,
			TrackID:        dataset.TrackMain,
		})
		seq++
	}

	chain := func(trackID string, ids []string) {
		for i := 0; i+1 < len(ids); i++ {
			edges = append(edges, dataset.EdgeRow{
				EdgeID:         dataset.FormatEdgeID(seq),
				FromEventID:    ids[i],
				ToEventID:      ids[i+1],
				RelationType:   "before",
				BasisReference: basisFlow,
				TrackID:        trackID,
			})
			seq++
		}
	}
	chain(dataset.TrackExodusEarly, exodusIDs)
	chain(dataset.TrackExodusLate, exodusIDs)
	chain(dataset.TrackGospelHarmony, gospelIDs)

	tracks := []dataset.TrackRow{
		{
			TrackID:          dataset.TrackMain,
			Topic:            "기본 상대연대 축",
			Description:      "정경 순서+본문 사건 흐름을 기준으로 한 기본 렌더링 트랙",
			DefaultForRender: true,
			IncludedEventIDs: allIDs,
		},
		{
			TrackID:          dataset.TrackExodusEarly,
			Topic:            "출애굽-정복 해석 A",
			Description:      "출애굽-정복 구간을 상대연대 중심으로 빠르게 연결하는 보조 트랙",
			IncludedEventIDs: exodusIDs,
		},
		{
			TrackID:          dataset.TrackExodusLate,
			Topic:            "출애굽-정복 해석 B",
			Description:      "출애굽-정복 구간의 대안 해석 표기를 위한 병행 트랙",
			IncludedEventIDs: exodusIDs,
		},
		{
			TrackID:          dataset.TrackGospelHarmony,
			Topic:            "복음서 병행 정렬",
			Description:      "마태·마가·누가·요한 사건 제목 유사성을 이용한 병행 근거 트랙",
			IncludedEventIDs: gospelIDs,
		},
	}

	return edges, tracks
}

// CheckDAG runs Kahn's algorithm over the induced graph: edges referencing
// nodes outside the set are ignored, and a cycle exists iff the traversal
// visits fewer nodes than the set holds.
func CheckDAG(nodeIDs []string, edges [][2]string) error {
	inSet := make(map[string]bool, len(nodeIDs))
	var unique []string
	for _, id := range nodeIDs {
		if !inSet[id] {
			inSet[id] = true
			unique = append(unique, id)
		}
	}

	indegree := make(map[string]int, len(unique))
	outgoing := make(map[string][]string, len(unique))
	for _, e := range edges {
		src, dst := e[0], e[1]
		if !inSet[src] || !inSet[dst] {
			continue
		}
		outgoing[src] = append(outgoing[src], dst)
		indegree[dst]++
	}

	var queue []string
	for _, id := range unique {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		cur := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		visited++
		for _, next := range outgoing[cur] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if visited < len(unique) {
		return fmt.Errorf("%w: visited %d of %d nodes", ErrCycleDetected, visited, len(unique))
	}
	return nil
}

// ValidateEdgeRows groups edges by track and checks each induced graph,
// taking the node set of a track as the endpoints of its own edges.
func ValidateEdgeRows(edges []dataset.EdgeRow) error {
	nodesByTrack := make(map[string][]string)
	edgesByTrack := make(map[string][][2]string)
	var trackOrder []string
	seenNode := make(map[string]map[string]bool)

	for _, e := range edges {
		if _, ok := edgesByTrack[e.TrackID]; !ok {
			trackOrder = append(trackOrder, e.TrackID)
			seenNode[e.TrackID] = make(map[string]bool)
		}
		edgesByTrack[e.TrackID] = append(edgesByTrack[e.TrackID], [2]string{e.FromEventID, e.ToEventID})
		for _, id := range []string{e.FromEventID, e.ToEventID} {
			if !seenNode[e.TrackID][id] {
				seenNode[e.TrackID][id] = true
				nodesByTrack[e.TrackID] = append(nodesByTrack[e.TrackID], id)
			}
		}
	}

	for _, trackID := range trackOrder {
		if err := CheckDAG(nodesByTrack[trackID], edgesByTrack[trackID]); err != nil {
			return fmt.Errorf("track %s: %w", trackID, err)
		}
	}
	return nil
}
