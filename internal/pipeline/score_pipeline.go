package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"aave-credit-scorer/internal/reporting"
	"aave-credit-scorer/internal/storage"
)

// Output file names written by the pipeline.
const (
	ScoresCSVFile    = "wallet_scores.csv"
	HistogramPNGFile = "score_distribution.png"
	ReportMDFile     = "SCORE_REPORT.md"
)

// ScorePipeline generates the scoring deliverables from stored scores.
type ScorePipeline struct {
	reportGen *reporting.Generator
	outputDir string
	clock     func() time.Time
}

// NewScorePipeline creates a new pipeline.
func NewScorePipeline(
	txStore storage.TransactionStore,
	scoreStore storage.ScoreStore,
	outputDir string,
) *ScorePipeline {
	return &ScorePipeline{
		reportGen: reporting.NewGenerator(txStore, scoreStore),
		outputDir: outputDir,
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (p *ScorePipeline) WithClock(clock func() time.Time) *ScorePipeline {
	p.clock = clock
	p.reportGen = p.reportGen.WithClock(clock)
	return p
}

// Run executes the pipeline and writes output files:
// - wallet_scores.csv
// - score_distribution.png
// - SCORE_REPORT.md
func (p *ScorePipeline) Run(ctx context.Context) error {
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	report, err := p.reportGen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	csv := reporting.RenderScoresCSV(report.Rows)
	csvPath := filepath.Join(p.outputDir, ScoresCSVFile)
	if err := os.WriteFile(csvPath, []byte(csv), 0644); err != nil {
		return fmt.Errorf("write %s: %w", ScoresCSVFile, err)
	}

	pngPath := filepath.Join(p.outputDir, HistogramPNGFile)
	if err := reporting.SaveHistogramPNG(report.Histogram, pngPath); err != nil {
		return fmt.Errorf("write %s: %w", HistogramPNGFile, err)
	}

	md := reporting.RenderMarkdown(report)
	mdPath := filepath.Join(p.outputDir, ReportMDFile)
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write %s: %w", ReportMDFile, err)
	}

	return nil
}
