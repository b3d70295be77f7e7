package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// utf8BOM keeps the CSVs readable in spreadsheet tools that assume cp949
// for plain files; readers must also tolerate it.
const utf8BOM = "\ufeff"

var (
	eventHeader = []string{
		"event_id", "testament", "book", "event_title", "event_summary",
		"lane_tag", "sequence_index", "track_id", "certainty_level",
	}
	evidenceHeader = []string{
		"evidence_id", "event_id", "evidence_tier", "reference",
		"verse_text_kr", "translation", "is_parallel", "note",
	}
	edgeHeader = []string{
		"edge_id", "from_event_id", "to_event_id", "relation_type",
		"basis_reference", "track_id",
	}
	trackHeader = []string{
		"track_id", "topic", "description", "default_for_render",
		"included_event_ids",
	}
)

// record is a header-indexed CSV row, mirroring how the tables are edited
// by name rather than by column position
type record map[string]string

func readTable(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", filepath.Base(path), err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var rows []record
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		row := make(record, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = strings.TrimSpace(fields[i])
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func writeTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(utf8BOM); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadEvents loads events.csv from a research directory
func ReadEvents(dir string) ([]EventRow, error) {
	records, err := readTable(filepath.Join(dir, EventsFile))
	if err != nil {
		return nil, err
	}

	rows := make([]EventRow, 0, len(records))
	for _, rec := range records {
		seq, err := strconv.Atoi(rec["sequence_index"])
		if err != nil {
			return nil, fmt.Errorf("event %s: bad sequence_index %q", rec["event_id"], rec["sequence_index"])
		}
		rows = append(rows, EventRow{
			EventID:        rec["event_id"],
			Testament:      rec["testament"],
			Book:           rec["book"],
			EventTitle:     rec["event_title"],
			EventSummary:   rec["event_summary"],
			LaneTag:        rec["lane_tag"],
			SequenceIndex:  seq,
			TrackID:        rec["track_id"],
			CertaintyLevel: rec["certainty_level"],
		})
	}
	return rows, nil
}

// WriteEvents writes events.csv into a research directory
func WriteEvents(dir string, rows []EventRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.EventID, r.Testament, r.Book, r.EventTitle, r.EventSummary,
			r.LaneTag, strconv.Itoa(r.SequenceIndex), r.TrackID, r.CertaintyLevel,
		})
	}
	return writeTable(filepath.Join(dir, EventsFile), eventHeader, out)
}

// ReadEvidence loads evidence_verses.csv from a research directory
func ReadEvidence(dir string) ([]EvidenceRow, error) {
	records, err := readTable(filepath.Join(dir, EvidenceFile))
	if err != nil {
		return nil, err
	}

	rows := make([]EvidenceRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, EvidenceRow{
			EvidenceID:  rec["evidence_id"],
			EventID:     rec["event_id"],
			Tier:        strings.ToLower(rec["evidence_tier"]),
			Reference:   rec["reference"],
			VerseText:   rec["verse_text_kr"],
			Translation: rec["translation"],
			IsParallel:  rec["is_parallel"] == "true",
			Note:        rec["note"],
		})
	}
	return rows, nil
}

// WriteEvidence writes evidence_verses.csv into a research directory
func WriteEvidence(dir string, rows []EvidenceRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.EvidenceID, r.EventID, r.Tier, r.Reference,
			r.VerseText, r.Translation, strconv.FormatBool(r.IsParallel), r.Note,
		})
	}
	return writeTable(filepath.Join(dir, EvidenceFile), evidenceHeader, out)
}

// ReadEdges loads chronology_edges.csv from a research directory
func ReadEdges(dir string) ([]EdgeRow, error) {
	records, err := readTable(filepath.Join(dir, EdgesFile))
	if err != nil {
		return nil, err
	}

	rows := make([]EdgeRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, EdgeRow{
			EdgeID:         rec["edge_id"],
			FromEventID:    rec["from_event_id"],
			ToEventID:      rec["to_event_id"],
			RelationType:   rec["relation_type"],
			BasisReference: rec["basis_reference"],
			TrackID:        rec["track_id"],
		})
	}
	return rows, nil
}

// WriteEdges writes chronology_edges.csv into a research directory
func WriteEdges(dir string, rows []EdgeRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.EdgeID, r.FromEventID, r.ToEventID, r.RelationType,
			r.BasisReference, r.TrackID,
		})
	}
	return writeTable(filepath.Join(dir, EdgesFile), edgeHeader, out)
}

// ReadTracks loads interpretation_tracks.csv from a research directory
func ReadTracks(dir string) ([]TrackRow, error) {
	records, err := readTable(filepath.Join(dir, TracksFile))
	if err != nil {
		return nil, err
	}

	rows := make([]TrackRow, 0, len(records))
	for _, rec := range records {
		var ids []string
		if rec["included_event_ids"] != "" {
			ids = strings.Split(rec["included_event_ids"], "|")
		}
		rows = append(rows, TrackRow{
			TrackID:          rec["track_id"],
			Topic:            rec["topic"],
			Description:      rec["description"],
			DefaultForRender: rec["default_for_render"] == "true",
			IncludedEventIDs: ids,
		})
	}
	return rows, nil
}

// WriteTracks writes interpretation_tracks.csv into a research directory
func WriteTracks(dir string, rows []TrackRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.TrackID, r.Topic, r.Description,
			strconv.FormatBool(r.DefaultForRender),
			strings.Join(r.IncludedEventIDs, "|"),
		})
	}
	return writeTable(filepath.Join(dir, TracksFile), trackHeader, out)
}
