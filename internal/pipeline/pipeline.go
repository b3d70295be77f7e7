// Package pipeline orchestrates the batch flows: extraction of the research
// dataset, fuzzy parallel enrichment, and timeline JSON builds. Each flow is
// a synchronous single pass; validation always runs before the first output
// file is written.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/danielsohn/chronica/internal/cache"
	"github.com/danielsohn/chronica/internal/chronology"
	"github.com/danielsohn/chronica/internal/corpus"
	"github.com/danielsohn/chronica/internal/dataset"
	"github.com/danielsohn/chronica/internal/extract"
	"github.com/danielsohn/chronica/internal/llm"
	"github.com/danielsohn/chronica/internal/model"
	"github.com/danielsohn/chronica/internal/parallel"
	"github.com/danielsohn/chronica/internal/report"
	"github.com/danielsohn/chronica/internal/timeline"
	"github.com/danielsohn/chronica/internal/validate"
)

// Pipeline wires the stages together for one build run
type Pipeline struct {
	cfg      *model.Config
	reader   *corpus.Reader
	matcher  *parallel.Matcher
	overview llm.Provider // nil unless an LLM provider is configured
}

// New creates a pipeline from configuration
func New(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:      cfg,
		reader:   corpus.NewReader(cache.FromConfig(cfg.Cache)),
		matcher:  parallel.NewMatcher(cfg.Parallel),
		overview: provider,
	}, nil
}

// ExtractResult summarizes a finished extraction
type ExtractResult struct {
	Events   int
	Evidence int
	Edges    int
}

// Extract runs the full event-extraction flow and writes the research
// dataset (four CSV tables plus markdown reports) into outputDir.
func (p *Pipeline) Extract(ctx context.Context, sourceDir, outputDir string) (*ExtractResult, error) {
	crp, err := p.reader.Load(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	candidates := extract.BuildCandidates(crp)
	selected := extract.SelectEvents(candidates, crp.CanonicalOrders(), p.cfg.Extraction.TargetEvents)

	translation := p.cfg.Extraction.Translation
	events := make([]dataset.EventRow, 0, len(selected))
	picks := make([]parallel.Selected, 0, len(selected))
	nodes := make([]chronology.Node, 0, len(selected))

	for i, cand := range selected {
		seq := i + 1
		id := dataset.FormatEventID(seq)
		lane := extract.LaneTag(cand.BookName, cand.StartChapter)

		summarySource := cand.FirstText
		if summarySource == "" {
			summarySource = cand.Title
		}

		events = append(events, dataset.EventRow{
			EventID:        id,
			Testament:      string(cand.Testament),
			Book:           cand.BookName,
			EventTitle:     cand.Title,
			EventSummary:   extract.Summarize(summarySource, p.cfg.Extraction.SummaryLimit),
			LaneTag:        lane,
			SequenceIndex:  seq,
			TrackID:        dataset.TrackMain,
			CertaintyLevel: string(extract.CertaintyFor(cand.Title)),
		})
		picks = append(picks, parallel.Selected{EventID: id, Candidate: cand})
		nodes = append(nodes, chronology.Node{EventID: id, LaneTag: lane, StartRef: cand.StartRef})
	}

	var evidence []dataset.EvidenceRow
	evidenceSeq := 1
	for _, pick := range picks {
		for idx, verse := range pick.Candidate.Verses {
			text := verse.Text
			if idx == 0 {
				text = extract.StripHeadings(text)
			}
			evidence = append(evidence, dataset.EvidenceRow{
				EvidenceID:  dataset.FormatEvidenceID(evidenceSeq),
				EventID:     pick.EventID,
				Tier:        string(model.TierDirect),
				Reference:   verse.Reference(),
				VerseText:   text,
				Translation: translation,
			})
			evidenceSeq++
		}
	}

	parallelRows, _ := parallel.ExactPass(picks, evidenceSeq, translation)
	evidence = append(evidence, parallelRows...)

	edges, tracks := chronology.Build(nodes)

	if err := validate.Dataset(events, evidence, edges, translation); err != nil {
		return nil, err
	}
	if err := chronology.ValidateEdgeRows(edges); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := dataset.WriteEvents(outputDir, events); err != nil {
		return nil, err
	}
	if err := dataset.WriteEvidence(outputDir, evidence); err != nil {
		return nil, err
	}
	if err := dataset.WriteEdges(outputDir, edges); err != nil {
		return nil, err
	}
	if err := dataset.WriteTracks(outputDir, tracks); err != nil {
		return nil, err
	}

	stats := report.Stats{
		SourceDir:      sourceDir,
		Translation:    translation,
		NarrativeBooks: len(extract.NarrativeBooks),
		EventCount:     len(events),
		EvidenceCount:  len(evidence),
		EdgeCount:      len(edges),
	}
	for _, t := range tracks {
		stats.TrackIDs = append(stats.TrackIDs, t.TrackID)
	}
	p.generateOverview(ctx, &stats, events)

	if err := report.Write(outputDir, stats); err != nil {
		return nil, err
	}

	return &ExtractResult{Events: len(events), Evidence: len(evidence), Edges: len(edges)}, nil
}

// generateOverview asks the configured LLM for a notes overview. Failures
// only warn: the dataset is already complete and validated at this point.
func (p *Pipeline) generateOverview(ctx context.Context, stats *report.Stats, events []dataset.EventRow) {
	if p.overview == nil {
		return
	}

	laneCounts := make(map[string]int)
	var laneOrder []string
	for _, ev := range events {
		if _, ok := laneCounts[ev.LaneTag]; !ok {
			laneOrder = append(laneOrder, ev.LaneTag)
		}
		laneCounts[ev.LaneTag]++
	}

	text, err := p.overview.Overview(ctx, llm.OverviewRequest{
		Translation:   stats.Translation,
		EventCount:    stats.EventCount,
		EvidenceCount: stats.EvidenceCount,
		EdgeCount:     stats.EdgeCount,
		TrackIDs:      stats.TrackIDs,
		LaneCounts:    laneCounts,
		LaneOrder:     laneOrder,
		MaxTokens:     p.cfg.LLM.MaxTokens,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: overview generation failed: %v\n", err)
		return
	}

	stats.Overview = text
	stats.OverviewModel = p.cfg.LLM.Model
}

// Enrich runs the fuzzy parallel matcher over an existing research
// directory and rewrites evidence_verses.csv when new rows were found.
// Re-running over unchanged input is a no-op.
func (p *Pipeline) Enrich(researchDir string) (int, error) {
	events, err := dataset.ReadEvents(researchDir)
	if err != nil {
		return 0, fmt.Errorf("load events: %w", err)
	}
	evidence, err := dataset.ReadEvidence(researchDir)
	if err != nil {
		return 0, fmt.Errorf("load evidence: %w", err)
	}

	combined, added, err := p.matcher.Enrich(events, evidence)
	if err != nil {
		return 0, err
	}
	if added == 0 {
		return 0, nil
	}

	if err := dataset.WriteEvidence(researchDir, combined); err != nil {
		return 0, err
	}
	return added, nil
}

// BuildResearch normalizes a curated snapshot into the timeline JSON
func (p *Pipeline) BuildResearch(researchDir, outputPath string) (*model.Timeline, error) {
	tl, err := timeline.FromResearch(researchDir)
	if err != nil {
		return nil, err
	}
	if err := timeline.WriteJSON(outputPath, tl, p.cfg.Output.Pretty); err != nil {
		return nil, err
	}
	return tl, nil
}

// BuildAllVerses builds the whole-corpus chapter timeline JSON
func (p *Pipeline) BuildAllVerses(sourceDir, outputPath string) (*model.ChapterTimeline, error) {
	crp, err := p.reader.Load(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	tl := timeline.FromCorpus(crp, p.cfg.Extraction.Translation, p.cfg.Output.ChapterSummaryLimit)
	if err := timeline.WriteJSON(outputPath, tl, p.cfg.Output.Pretty); err != nil {
		return nil, err
	}
	return tl, nil
}
