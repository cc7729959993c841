package performance

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/folioapp/folio/internal/models"
)

// RenderPerformanceChart renders a PNG line chart comparing the portfolio
// NAV index against the normalized benchmark. Both series are indexed to 100
// so the chart reads as relative growth. Returns raw PNG bytes.
func (s *Service) RenderPerformanceChart(result *models.PerformanceResult) ([]byte, error) {
	if result == nil || len(result.Portfolio) < 2 {
		n := 0
		if result != nil {
			n = len(result.Portfolio)
		}
		return nil, fmt.Errorf("need at least 2 data points, got %d", n)
	}

	xValues := make([]time.Time, len(result.Portfolio))
	navY := make([]float64, len(result.Portfolio))
	for i, r := range result.Portfolio {
		t, err := time.Parse(models.DateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("bad record date %q: %w", r.Date, err)
		}
		xValues[i] = t
		navY[i] = r.NAV
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name: "Portfolio NAV",
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
				StrokeWidth: 2.5,
			},
			XValues: xValues,
			YValues: navY,
		},
	}

	if len(result.Benchmark) == len(result.Portfolio) {
		benchY := make([]float64, len(result.Benchmark))
		for i, b := range result.Benchmark {
			benchY[i] = b.NormalizedValue
		}
		series = append(series, chart.TimeSeries{
			Name: "Benchmark",
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: xValues,
			YValues: benchY,
		})
	}

	graph := chart.Chart{
		Title:  "Portfolio Performance",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
