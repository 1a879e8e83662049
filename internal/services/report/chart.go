package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/finlens/incomelens/internal/models"
)

// renderValueChart renders a PNG bar chart of current value per working
// symbol, bars colored by gain/loss sign. Returns raw PNG bytes.
func renderValueChart(working []models.PortfolioRecord) ([]byte, error) {
	if len(working) < 2 {
		return nil, fmt.Errorf("need at least 2 working records, got %d", len(working))
	}

	gain := drawing.ColorFromHex("27ae60")  // green-ish
	loss := drawing.ColorFromHex("c0392b")  // red-ish
	flat := drawing.ColorFromHex("7f8c8d")  // gray

	bars := make([]chart.Value, 0, len(working))
	for _, rec := range working {
		color := flat
		switch {
		case rec.GainLoss > 0:
			color = gain
		case rec.GainLoss < 0:
			color = loss
		}
		bars = append(bars, chart.Value{
			Label: rec.Symbol,
			Value: rec.CurrentValue,
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
			},
		})
	}

	width := 24*len(bars) + 120
	if width < 900 {
		width = 900
	}

	graph := chart.BarChart{
		Title:      "Current Value by Symbol (USD)",
		Width:      width,
		Height:     420,
		BarWidth:   16,
		BarSpacing: 8,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.Style{
			TextRotationDegrees: 90,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
