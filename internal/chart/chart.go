// Package chart builds the Mohs surgery bar panels and rasterizes them to PNG.
package chart

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/Shrey1306/noma/internal/dataset"
	apperrors "github.com/Shrey1306/noma/internal/platform/errors"
	"github.com/Shrey1306/noma/internal/platform/otel"
)

// Caption is shown under the Mohs figure.
const Caption = "Distribution of Dermatologists and Mohs Surgeons in the USA"

// ArtifactName is the file name used when the figure is exported to disk.
const ArtifactName = "dermatologists_mohs_surgeons_charts.png"

const (
	presenceTitle  = "Percentage of Dermatologists Performing MMS"
	presenceXLabel = "Percentage (%)"
	absenceTitle   = "Percentage of Counties without Mohs Surgeons"
	absenceXLabel  = "Percentage of Absence (%)"

	colorSkyBlue = "skyblue"
	colorSalmon  = "salmon"
)

var tracer = otel.Tracer("github.com/Shrey1306/noma/internal/chart")

// Bar is one category of a panel.
type Bar struct {
	Label string
	Value float64
}

// Panel is one horizontal bar chart.
type Panel struct {
	Title  string
	XLabel string
	// Color is a named color or #rrggbb hex value.
	Color string
	Bars  []Bar
}

// Figure lays its panels out in a single row.
type Figure struct {
	Panels []Panel
	// Width and Height are in inches.
	Width  float64
	Height float64
}

// BuildMohsPanels splits records into the presence and absence panels.
func BuildMohsPanels(records []dataset.Record) (Figure, error) {
	presence, absence, err := dataset.Split(records)
	if err != nil {
		return Figure{}, err
	}

	left := Panel{Title: presenceTitle, XLabel: presenceXLabel, Color: colorSkyBlue}
	for _, rec := range presence {
		left.Bars = append(left.Bars, Bar{Label: rec.Location, Value: rec.Percentage})
	}
	right := Panel{Title: absenceTitle, XLabel: absenceXLabel, Color: colorSalmon}
	for _, rec := range absence {
		right.Bars = append(right.Bars, Bar{Label: rec.Location, Value: rec.AbsencePercentage})
	}

	return Figure{Panels: []Panel{left, right}, Width: 15, Height: 6}, nil
}

// RenderPNG rasterizes the figure. Identical figures produce identical bytes.
func (f Figure) RenderPNG(ctx context.Context, w io.Writer) error {
	_, span := tracer.Start(ctx, "chart.RenderPNG")
	defer span.End()
	span.SetAttributes(attribute.Int("chart.panels", len(f.Panels)))

	if len(f.Panels) == 0 {
		return apperrors.Render("figure has no panels", nil)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return apperrors.Render(fmt.Sprintf("invalid figure size %gx%g", f.Width, f.Height), nil)
	}

	row := make([]*plot.Plot, 0, len(f.Panels))
	for _, panel := range f.Panels {
		p, err := panel.plot()
		if err != nil {
			span.RecordError(err)
			return err
		}
		row = append(row, p)
	}

	img := vgimg.New(vg.Length(f.Width)*vg.Inch, vg.Length(f.Height)*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(row),
		PadX:      vg.Millimeter * 6,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 4,
	}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, dc)
	for j, p := range row {
		p.Draw(canvases[0][j])
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return apperrors.Render("encode figure png", err)
	}
	return nil
}

func (p Panel) plot() (*plot.Plot, error) {
	fill, err := ParseColor(p.Color)
	if err != nil {
		return nil, apperrors.Render(fmt.Sprintf("panel %q color", p.Title), err)
	}
	if len(p.Bars) == 0 {
		return nil, apperrors.Render(fmt.Sprintf("panel %q has no bars", p.Title), nil)
	}

	// Bars are laid out bottom-up, so reverse them to read top-down in input order.
	n := len(p.Bars)
	values := make(plotter.Values, n)
	labels := make([]string, n)
	for i, bar := range p.Bars {
		if math.IsNaN(bar.Value) || math.IsInf(bar.Value, 0) {
			return nil, apperrors.Render(fmt.Sprintf("bar %q has non-finite value", bar.Label), nil)
		}
		values[n-1-i] = bar.Value
		labels[n-1-i] = bar.Label
	}

	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = p.XLabel
	pl.X.Min = 0

	bars, err := plotter.NewBarChart(values, vg.Points(36))
	if err != nil {
		return nil, apperrors.Render(fmt.Sprintf("panel %q bars", p.Title), err)
	}
	bars.Horizontal = true
	bars.Color = fill
	bars.LineStyle.Width = 0
	pl.Add(bars)
	pl.NominalY(labels...)
	return pl, nil
}

var namedColors = map[string]string{
	"skyblue": "#87ceeb",
	"salmon":  "#fa8072",
	"gray":    "#808080",
	"black":   "#000000",
	"white":   "#ffffff",
}

// ParseColor accepts a small set of named colors or a #rrggbb hex value.
func ParseColor(value string) (color.RGBA, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if hex, ok := namedColors[value]; ok {
		value = hex
	}
	if len(value) != 7 || value[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid color %q", value)
	}
	rgb, err := strconv.ParseUint(value[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", value, err)
	}
	return color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}, nil
}
