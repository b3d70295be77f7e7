// Package validate enforces the dataset invariants shared by the extraction
// pipeline and the timeline normalizer. Every violation is fatal and raised
// before any output file is written; the only soft condition in the whole
// build (unknown certainty levels) is handled in the model, not here.
package validate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/danielsohn/chronica/internal/dataset"
	"github.com/danielsohn/chronica/internal/model"
)

var (
	ErrDuplicateEvent    = errors.New("duplicate event_id")
	ErrUnknownEvent      = errors.New("reference to unknown event_id")
	ErrMissingDirect     = errors.New("event has no direct evidence")
	ErrMixedTranslations = errors.New("translation label is not unique")
	ErrMissingField      = errors.New("required field missing")
	ErrEmptyVerseText    = errors.New("evidence verse text missing")
)

// EventIDs checks event rows for duplicate ids and required fields and
// returns the id set used by the referential checks.
func EventIDs(events []dataset.EventRow) (map[string]bool, error) {
	ids := make(map[string]bool, len(events))
	for _, ev := range events {
		if ids[ev.EventID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEvent, ev.EventID)
		}
		ids[ev.EventID] = true
		if ev.LaneTag == "" || ev.SequenceIndex == 0 {
			return nil, fmt.Errorf("%w: event %s needs lane_tag and sequence_index", ErrMissingField, ev.EventID)
		}
	}
	return ids, nil
}

// Evidence checks that every evidence row references a known event, carries
// verse text, and that exactly one translation label appears across the
// whole snapshot. When expect is non-empty the single label must match it.
func Evidence(evidence []dataset.EvidenceRow, eventIDs map[string]bool, expect string) error {
	translations := make(map[string]bool)
	for _, row := range evidence {
		if !eventIDs[row.EventID] {
			return fmt.Errorf("%w: evidence %s -> %s", ErrUnknownEvent, row.EvidenceID, row.EventID)
		}
		if row.VerseText == "" {
			return fmt.Errorf("%w: %s", ErrEmptyVerseText, row.EvidenceID)
		}
		translations[row.Translation] = true
	}

	if len(evidence) > 0 && len(translations) != 1 {
		var labels []string
		for t := range translations {
			labels = append(labels, t)
		}
		sort.Strings(labels)
		return fmt.Errorf("%w: %v", ErrMixedTranslations, labels)
	}
	if expect != "" {
		for t := range translations {
			if t != expect {
				return fmt.Errorf("%w: got %q, want %q", ErrMixedTranslations, t, expect)
			}
		}
	}
	return nil
}

// DirectCoverage checks that every event keeps at least one direct-tier row
func DirectCoverage(evidence []dataset.EvidenceRow, eventIDs map[string]bool) error {
	covered := make(map[string]bool, len(eventIDs))
	for _, row := range evidence {
		if row.Tier == string(model.TierDirect) {
			covered[row.EventID] = true
		}
	}

	var missing []string
	for id := range eventIDs {
		if !covered[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		if len(missing) > 5 {
			missing = missing[:5]
		}
		return fmt.Errorf("%w: %v", ErrMissingDirect, missing)
	}
	return nil
}

// Edges checks that both endpoints of every edge are known events
func Edges(edges []dataset.EdgeRow, eventIDs map[string]bool) error {
	for _, e := range edges {
		if !eventIDs[e.FromEventID] || !eventIDs[e.ToEventID] {
			return fmt.Errorf("%w: edge %s %s->%s", ErrUnknownEvent, e.EdgeID, e.FromEventID, e.ToEventID)
		}
	}
	return nil
}

// Dataset runs the full invariant suite over a freshly extracted dataset
func Dataset(events []dataset.EventRow, evidence []dataset.EvidenceRow, edges []dataset.EdgeRow, translation string) error {
	ids, err := EventIDs(events)
	if err != nil {
		return err
	}
	if err := Evidence(evidence, ids, translation); err != nil {
		return err
	}
	if err := DirectCoverage(evidence, ids); err != nil {
		return err
	}
	return Edges(edges, ids)
}
