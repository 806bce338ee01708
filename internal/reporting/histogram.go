package reporting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"aave-credit-scorer/internal/domain"
)

// Ten equal-width bins spanning the credit score range.
const (
	NumHistogramBins  = 10
	histogramBinWidth = (domain.CreditScoreMax - domain.CreditScoreMin) / NumHistogramBins
)

// HistogramBins buckets credit scores into the ten bins. The closed upper
// bound 1000 falls into the last bin rather than an eleventh.
func HistogramBins(rows []ScoreRow) [NumHistogramBins]int {
	var bins [NumHistogramBins]int
	for _, row := range rows {
		idx := row.CreditScore / histogramBinWidth
		if idx < 0 {
			idx = 0
		}
		if idx >= NumHistogramBins {
			idx = NumHistogramBins - 1
		}
		bins[idx]++
	}
	return bins
}

// BinLabel returns the human-readable range label for bin i, e.g. "200-300".
func BinLabel(i int) string {
	return fmt.Sprintf("%d-%d", i*histogramBinWidth, (i+1)*histogramBinWidth)
}

// SaveHistogramPNG renders the score distribution chart to path.
func SaveHistogramPNG(bins [NumHistogramBins]int, path string) error {
	p := plot.New()
	p.Title.Text = "Wallet Score Distribution"
	p.X.Label.Text = "Credit Score Range"
	p.Y.Label.Text = "Number of Wallets"

	values := make(plotter.Values, NumHistogramBins)
	labels := make([]string, NumHistogramBins)
	for i, count := range bins {
		values[i] = float64(count)
		labels[i] = BinLabel(i)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("build histogram bars: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save histogram: %w", err)
	}
	return nil
}
