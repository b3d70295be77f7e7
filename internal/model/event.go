package model

// CandidateEvent is a contiguous heading-delimited verse span within one book.
// Candidates exist only between extraction and quota selection; the selected
// subset becomes the event rows of the research dataset.
type CandidateEvent struct {
	Testament      Testament
	CanonicalOrder int
	BookName       string
	Title          string // innermost heading text
	FirstText      string // heading body, or heading-stripped first verse
	StartRef       string
	StartChapter   int
	StartVerse     int
	EndRef         string
	Verses         []Verse // the full span
}

// Key identifies a candidate within its book for dedupe during selection
func (c CandidateEvent) Key() string {
	return c.BookName + "|" + c.StartRef
}

// Certainty classifies how firmly an event can be placed on the timeline
type Certainty string

const (
	CertaintyHigh     Certainty = "high"
	CertaintyMedium   Certainty = "medium"
	CertaintyLow      Certainty = "low"
	CertaintyDisputed Certainty = "disputed"
)

// NormalizeCertainty maps unknown or invalid values to medium rather than
// failing; this is the single soft-recoverable condition in the build.
func NormalizeCertainty(s string) Certainty {
	switch Certainty(s) {
	case CertaintyHigh, CertaintyMedium, CertaintyLow, CertaintyDisputed:
		return Certainty(s)
	default:
		return CertaintyMedium
	}
}

// EvidenceTier classifies evidence rows
type EvidenceTier string

const (
	TierDirect   EvidenceTier = "direct"   // primary textual basis of the event
	TierParallel EvidenceTier = "parallel" // cross-referenced retelling from another book
)
