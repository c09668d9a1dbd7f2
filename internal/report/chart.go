// Package report renders probe results into images, kept as evidence
// of how a host behaved during a run.
package report

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RTTChart renders the per-reply RTT series of one ping run as a PNG.
// At least two samples are required; a flat-lined or fully lost run has
// nothing to chart.
func RTTChart(w io.Writer, host string, rtts []float64) error {
	if len(rtts) < 2 {
		return fmt.Errorf("need at least 2 RTT samples to chart, got %d", len(rtts))
	}

	xs := make([]float64, len(rtts))
	for i := range rtts {
		xs[i] = float64(i + 1)
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Ping RTT - %s", host),
		TitleStyle: chart.Style{
			FontSize: 14,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Sequence",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
		},
		YAxis: chart.YAxis{
			Name: "RTT (ms)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: host,
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					StrokeWidth: 2,
				},
				XValues: xs,
				YValues: rtts,
			},
		},
	}

	return graph.Render(chart.PNG, w)
}
