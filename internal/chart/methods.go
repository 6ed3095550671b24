package chart

import (
	"context"
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Shrey1306/noma/internal/dataset"
	apperrors "github.com/Shrey1306/noma/internal/platform/errors"
)

// MethodsTitle heads the reconstruction method comparison chart.
const MethodsTitle = "Inference Time by Reconstruction Method (hours)"

var methodColors = []string{"#87ceeb", "#fa8072", "#99ff99"}

// RenderMethodsPNG draws inference hours per reconstruction method as a
// vertical bar chart.
func RenderMethodsPNG(ctx context.Context, methods []dataset.Method, w io.Writer) error {
	_, span := tracer.Start(ctx, "chart.RenderMethodsPNG")
	defer span.End()

	if len(methods) == 0 {
		return apperrors.Render("no reconstruction methods to chart", nil)
	}

	bars := make([]gochart.Value, 0, len(methods))
	for i, m := range methods {
		if math.IsNaN(m.InferenceHours) || math.IsInf(m.InferenceHours, 0) || m.InferenceHours < 0 {
			return apperrors.Render(fmt.Sprintf("method %q has invalid inference time", m.Name), nil)
		}
		fill := drawing.ColorFromHex(methodColors[i%len(methodColors)][1:])
		bars = append(bars, gochart.Value{
			Label: m.Name,
			Value: m.InferenceHours,
			Style: gochart.Style{
				FillColor:   fill,
				StrokeColor: fill,
				StrokeWidth: 1,
			},
		})
	}

	graph := gochart.BarChart{
		Title:      MethodsTitle,
		Width:      640,
		Height:     400,
		BarWidth:   90,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: maxHours(methods) * 1.2},
		},
		Bars: bars,
	}
	if err := graph.Render(gochart.PNG, w); err != nil {
		span.RecordError(err)
		return apperrors.Render("methods chart", err)
	}
	return nil
}

func maxHours(methods []dataset.Method) float64 {
	peak := 0.0
	for _, m := range methods {
		peak = max(peak, m.InferenceHours)
	}
	if peak == 0 {
		return 1
	}
	return peak
}
