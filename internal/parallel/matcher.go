// Package parallel links events across the gospel parallel-book group: an
// exact heading-key pass used during extraction and a fuzzy Jaccard pass
// that idempotently enriches an existing evidence snapshot.
package parallel

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/danielsohn/chronica/internal/dataset"
	"github.com/danielsohn/chronica/internal/extract"
	"github.com/danielsohn/chronica/internal/model"
)

// Selected pairs an assigned event id with its source candidate span
type Selected struct {
	EventID   string
	Candidate model.CandidateEvent
}

// ExactPass finds gospel events whose normalized heading keys are strictly
// equal across at least two books and cross-copies each member's full verse
// span onto the others as parallel evidence. Returns the new rows and the
// next free evidence sequence number.
func ExactPass(events []Selected, nextSeq int, translation string) ([]dataset.EvidenceRow, int) {
	groups := make(map[string][]Selected)
	var keyOrder []string
	for _, ev := range events {
		if !extract.GospelBooks[ev.Candidate.BookName] {
			continue
		}
		key := extract.HeadingKey(ev.Candidate.Title)
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			keyOrder = append(keyOrder, key)
		}
		groups[key] = append(groups[key], ev)
	}

	var rows []dataset.EvidenceRow
	for _, key := range keyOrder {
		members := groups[key]
		books := make(map[string]bool)
		for _, m := range members {
			books[m.Candidate.BookName] = true
		}
		if len(books) < 2 {
			continue
		}

		for _, target := range members {
			for _, source := range members {
				if source.EventID == target.EventID {
					continue
				}
				for idx, verse := range source.Candidate.Verses {
					text := verse.Text
					if idx == 0 {
						text = extract.StripHeadings(text)
					}
					rows = append(rows, dataset.EvidenceRow{
						EvidenceID:  dataset.FormatEvidenceID(nextSeq),
						EventID:     target.EventID,
						Tier:        string(model.TierParallel),
						Reference:   verse.Reference(),
						VerseText:   text,
						Translation: translation,
						IsParallel:  true,
						Note:        "parallel_from:" + source.EventID,
					})
					nextSeq++
				}
			}
		}
	}

	return rows, nextSeq
}

// Matcher scores heading-title similarity for the fuzzy enrichment pass
type Matcher struct {
	cfg       model.ParallelConfig
	stopwords map[string]bool
}

// NewMatcher creates a matcher from configuration
func NewMatcher(cfg model.ParallelConfig) *Matcher {
	stop := make(map[string]bool, len(cfg.Stopwords))
	for _, w := range cfg.Stopwords {
		stop[w] = true
	}
	return &Matcher{cfg: cfg, stopwords: stop}
}

var tokenRE = regexp.MustCompile(`[^가-힣A-Za-z0-9 ]+`)

// Tokens normalizes a title to its comparable token set: punctuation
// stripped, short tokens dropped, stop-words removed
func (m *Matcher) Tokens(title string) map[string]bool {
	cleaned := tokenRE.ReplaceAllString(title, " ")
	set := make(map[string]bool)
	for _, tok := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(tok) < m.cfg.MinTokenLen {
			continue
		}
		if m.stopwords[tok] {
			continue
		}
		set[tok] = true
	}
	return set
}

// Score is the Jaccard index of two titles' token sets; 0 if either is empty
func (m *Matcher) Score(a, b string) float64 {
	ta, tb := m.Tokens(a), m.Tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter := 0
	for tok := range ta {
		if tb[tok] {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Enrich appends fuzzy parallel evidence to the snapshot: for every gospel
// event it keeps the best-scoring counterpart per other gospel book above
// the threshold, caps matches per target, and copies a bounded number of the
// source's direct rows. Pairs already present (same event_id and note) are
// skipped, so a re-run over unchanged input adds nothing.
func (m *Matcher) Enrich(events []dataset.EventRow, evidence []dataset.EvidenceRow) ([]dataset.EvidenceRow, int, error) {
	var gospel []dataset.EventRow
	for _, ev := range events {
		if extract.GospelBooks[ev.Book] {
			gospel = append(gospel, ev)
		}
	}

	directByEvent := make(map[string][]dataset.EvidenceRow)
	maxSeq := 0
	for _, row := range evidence {
		seq, err := dataset.EvidenceSeq(row.EvidenceID)
		if err != nil {
			return nil, 0, err
		}
		if seq > maxSeq {
			maxSeq = seq
		}
		if row.Tier == string(model.TierDirect) {
			directByEvent[row.EventID] = append(directByEvent[row.EventID], row)
		}
	}

	type pairKey struct{ eventID, note string }
	existing := make(map[pairKey]bool)
	for _, row := range evidence {
		if row.Tier == string(model.TierParallel) && row.Note != "" {
			existing[pairKey{row.EventID, row.Note}] = true
		}
	}

	type match struct {
		score  float64
		source dataset.EventRow
	}

	var additions []dataset.EvidenceRow
	for _, target := range gospel {
		bestByBook := make(map[string]match)
		var bookOrder []string
		for _, source := range gospel {
			if source.EventID == target.EventID || source.Book == target.Book {
				continue
			}
			s := m.Score(target.EventTitle, source.EventTitle)
			if s < m.cfg.Threshold {
				continue
			}
			prev, ok := bestByBook[source.Book]
			if !ok {
				bookOrder = append(bookOrder, source.Book)
			}
			if !ok || s > prev.score {
				bestByBook[source.Book] = match{score: s, source: source}
			}
		}

		matches := make([]match, 0, len(bestByBook))
		for _, book := range bookOrder {
			matches = append(matches, bestByBook[book])
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].score > matches[j].score
		})
		if len(matches) > m.cfg.MaxMatches {
			matches = matches[:m.cfg.MaxMatches]
		}

		for _, mt := range matches {
			note := fmt.Sprintf("parallel_from:%s;score=%.2f", mt.source.EventID, mt.score)
			if existing[pairKey{target.EventID, note}] {
				continue
			}
			src := directByEvent[mt.source.EventID]
			if len(src) > m.cfg.MaxVersesPerMatch {
				src = src[:m.cfg.MaxVersesPerMatch]
			}
			for _, row := range src {
				maxSeq++
				additions = append(additions, dataset.EvidenceRow{
					EvidenceID:  dataset.FormatEvidenceID(maxSeq),
					EventID:     target.EventID,
					Tier:        string(model.TierParallel),
					Reference:   row.Reference,
					VerseText:   row.VerseText,
					Translation: row.Translation,
					IsParallel:  true,
					Note:        note,
				})
			}
		}
	}

	combined := append(append([]dataset.EvidenceRow(nil), evidence...), additions...)
	sort.SliceStable(combined, func(i, j int) bool {
		a, _ := dataset.EvidenceSeq(combined[i].EvidenceID)
		b, _ := dataset.EvidenceSeq(combined[j].EvidenceID)
		return a < b
	})

	return combined, len(additions), nil
}
