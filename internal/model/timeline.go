package model

// Meta describes a timeline payload. Research builds fill the event counters,
// all-verses builds fill the chapter counters.
type Meta struct {
	Translation   string `json:"translation"`
	Mode          string `json:"mode"`
	Granularity   string `json:"granularity,omitempty"`
	TotalEvents   int    `json:"totalEvents,omitempty"`
	TotalEvidence int    `json:"totalEvidence,omitempty"`
	TotalChapters int    `json:"totalChapters,omitempty"`
	TotalVerses   int    `json:"totalVerses,omitempty"`
}

// Build modes as written into Meta.Mode
const (
	ModeResearch  = "research"
	ModeAllVerses = "all_verses"
)

// TimelineEvent is one curated event as rendered into the research payload
type TimelineEvent struct {
	EventID       string    `json:"event_id"`
	LaneTag       string    `json:"lane_tag"`
	SequenceIndex int       `json:"sequence_index"`
	Book          string    `json:"book"`
	EventTitle    string    `json:"event_title"`
	EventSummary  string    `json:"event_summary"`
	Certainty     Certainty `json:"certainty_level"`
}

// EvidenceRef is a single verse citation inside an evidence bucket
type EvidenceRef struct {
	Reference string `json:"reference"`
	VerseText string `json:"verse_text_kr"`
	Note      string `json:"note,omitempty"` // parallel provenance, e.g. parallel_from:EVT0001
}

// EvidenceBucket groups an event's citations by tier
type EvidenceBucket struct {
	Direct   []EvidenceRef `json:"direct"`
	Parallel []EvidenceRef `json:"parallel"`
}

// TimelineEdge is one chronology edge as rendered into the research payload
type TimelineEdge struct {
	FromEventID  string `json:"from_event_id"`
	ToEventID    string `json:"to_event_id"`
	RelationType string `json:"relation_type"`
}

// Timeline is the research-mode payload consumed by the web viewer
type Timeline struct {
	Meta            Meta                      `json:"meta"`
	Lanes           []Lane                    `json:"lanes"`
	Events          []TimelineEvent           `json:"events"`
	EvidenceByEvent map[string]EvidenceBucket `json:"evidenceByEvent"`
	EdgesByTrack    map[string][]TimelineEdge `json:"edgesByTrack"`
}

// ChapterEvent is one whole-corpus chapter entry (all-verses mode)
type ChapterEvent struct {
	ChapterID     string    `json:"chapter_id"`
	LaneTag       string    `json:"lane_tag"`
	SequenceIndex int       `json:"sequence_index"`
	Book          string    `json:"book"`
	Chapter       int       `json:"chapter"`
	EventTitle    string    `json:"event_title"`
	EventSummary  string    `json:"event_summary"`
	VerseCount    int       `json:"verse_count"`
	Certainty     Certainty `json:"certainty_level"`
}

// ChapterVerse is one verse as listed under its chapter
type ChapterVerse struct {
	VerseNo   int    `json:"verse_no"`
	Reference string `json:"reference"`
	VerseText string `json:"verse_text_kr"`
}

// ChapterEdge chains consecutive chapters on the default track
type ChapterEdge struct {
	FromChapterID string `json:"from_chapter_id"`
	ToChapterID   string `json:"to_chapter_id"`
	RelationType  string `json:"relation_type"`
}

// ChapterTimeline is the all-verses payload: every chapter of every book,
// trading narrative granularity for full-corpus coverage.
type ChapterTimeline struct {
	Meta            Meta                      `json:"meta"`
	Lanes           []Lane                    `json:"lanes"`
	Chapters        []ChapterEvent            `json:"chapters"`
	VersesByChapter map[string][]ChapterVerse `json:"versesByChapter"`
	EdgesByTrack    map[string][]ChapterEdge  `json:"edgesByTrack"`
}

// RelationBefore is the only chronology relation currently modeled
const RelationBefore = "before"
