// Package timeline normalizes either a curated research snapshot or the raw
// corpus into the single validated JSON payload the web viewer consumes.
package timeline

import (
	"fmt"
	"sort"

	"github.com/danielsohn/chronica/internal/chronology"
	"github.com/danielsohn/chronica/internal/dataset"
	"github.com/danielsohn/chronica/internal/model"
	"github.com/danielsohn/chronica/internal/validate"
)

// FromResearch builds the research-mode payload from a curated CSV snapshot.
// The snapshot may have been hand-edited since extraction, so every
// invariant is re-checked here before anything is written.
func FromResearch(dir string) (*model.Timeline, error) {
	eventRows, err := dataset.ReadEvents(dir)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	evidenceRows, err := dataset.ReadEvidence(dir)
	if err != nil {
		return nil, fmt.Errorf("load evidence: %w", err)
	}
	edgeRows, err := dataset.ReadEdges(dir)
	if err != nil {
		return nil, fmt.Errorf("load edges: %w", err)
	}

	ids, err := validate.EventIDs(eventRows)
	if err != nil {
		return nil, err
	}
	if err := validate.Evidence(evidenceRows, ids, ""); err != nil {
		return nil, err
	}
	if err := validate.DirectCoverage(evidenceRows, ids); err != nil {
		return nil, err
	}
	if err := validate.Edges(edgeRows, ids); err != nil {
		return nil, err
	}
	if err := chronology.ValidateEdgeRows(edgeRows); err != nil {
		return nil, err
	}

	events := make([]model.TimelineEvent, 0, len(eventRows))
	usedLanes := make(map[string]bool)
	for _, row := range eventRows {
		usedLanes[row.LaneTag] = true
		events = append(events, model.TimelineEvent{
			EventID:       row.EventID,
			LaneTag:       row.LaneTag,
			SequenceIndex: row.SequenceIndex,
			Book:          row.Book,
			EventTitle:    row.EventTitle,
			EventSummary:  row.EventSummary,
			Certainty:     model.NormalizeCertainty(row.CertaintyLevel),
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].SequenceIndex < events[j].SequenceIndex
	})

	evidenceByEvent := make(map[string]model.EvidenceBucket, len(events))
	for id := range ids {
		evidenceByEvent[id] = model.EvidenceBucket{
			Direct:   []model.EvidenceRef{},
			Parallel: []model.EvidenceRef{},
		}
	}
	translation := ""
	totalEvidence := 0
	for _, row := range evidenceRows {
		translation = row.Translation
		bucket := evidenceByEvent[row.EventID]
		if row.Tier == string(model.TierParallel) {
			bucket.Parallel = append(bucket.Parallel, model.EvidenceRef{
				Reference: row.Reference,
				VerseText: row.VerseText,
				Note:      row.Note,
			})
		} else {
			bucket.Direct = append(bucket.Direct, model.EvidenceRef{
				Reference: row.Reference,
				VerseText: row.VerseText,
			})
		}
		evidenceByEvent[row.EventID] = bucket
		totalEvidence++
	}

	edgesByTrack := make(map[string][]model.TimelineEdge)
	for _, row := range edgeRows {
		relation := row.RelationType
		if relation != model.RelationBefore {
			relation = model.RelationBefore
		}
		edgesByTrack[row.TrackID] = append(edgesByTrack[row.TrackID], model.TimelineEdge{
			FromEventID:  row.FromEventID,
			ToEventID:    row.ToEventID,
			RelationType: relation,
		})
	}

	return &model.Timeline{
		Meta: model.Meta{
			Translation:   translation,
			Mode:          model.ModeResearch,
			TotalEvents:   len(events),
			TotalEvidence: totalEvidence,
		},
		Lanes:           model.ActiveLanes(usedLanes),
		Events:          events,
		EvidenceByEvent: evidenceByEvent,
		EdgesByTrack:    edgesByTrack,
	}, nil
}
