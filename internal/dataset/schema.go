// Package dataset defines the curated research snapshot: four CSV tables
// that an editor can hand-modify between builds and feed back into the
// timeline normalizer.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Table file names inside a research directory
const (
	EventsFile   = "events.csv"
	EvidenceFile = "evidence_verses.csv"
	EdgesFile    = "chronology_edges.csv"
	TracksFile   = "interpretation_tracks.csv"
)

// Well-known track ids produced by extraction
const (
	TrackMain          = "track_main"
	TrackExodusEarly   = "track_exodus_early"
	TrackExodusLate    = "track_exodus_late"
	TrackGospelHarmony = "track_gospel_harmony"
)

// EventRow is one curated event
type EventRow struct {
	EventID        string
	Testament      string
	Book           string
	EventTitle     string
	EventSummary   string
	LaneTag        string
	SequenceIndex  int
	TrackID        string
	CertaintyLevel string
}

// EvidenceRow is one verse citation attached to an event
type EvidenceRow struct {
	EvidenceID  string
	EventID     string
	Tier        string
	Reference   string
	VerseText   string
	Translation string
	IsParallel  bool
	Note        string
}

// EdgeRow is one directed chronology edge within a track
type EdgeRow struct {
	EdgeID         string
	FromEventID    string
	ToEventID      string
	RelationType   string
	BasisReference string
	TrackID        string
}

// TrackRow names one chronological hypothesis over a subset of events
type TrackRow struct {
	TrackID          string
	Topic            string
	Description      string
	DefaultForRender bool
	IncludedEventIDs []string // stored pipe-delimited
}

// Stable id formats; sequence-assigned, so identical inputs yield identical ids
func FormatEventID(seq int) string    { return fmt.Sprintf("EVT%04d", seq) }
func FormatEvidenceID(seq int) string { return fmt.Sprintf("EVD%07d", seq) }
func FormatEdgeID(seq int) string     { return fmt.Sprintf("EDG%06d", seq) }

// EvidenceSeq parses the numeric part of an evidence id, used by the
// enrichment pass to continue the id sequence
func EvidenceSeq(id string) (int, error) {
	if len(id) < 4 || !strings.HasPrefix(id, "EVD") {
		return 0, fmt.Errorf("malformed evidence_id: %q", id)
	}
	return strconv.Atoi(id[3:])
}
