// Package diagram draws the fixed transcription pipeline graph.
package diagram

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/Shrey1306/noma/internal/chart"
	apperrors "github.com/Shrey1306/noma/internal/platform/errors"
	"github.com/Shrey1306/noma/internal/platform/otel"
)

// ArtifactName is the file name used when the diagram is exported to disk.
const ArtifactName = "pipeline_diagram.png"

// Title heads the pipeline figure.
const Title = "Real-Time Surgical Transcription Pipeline"

const (
	edgeColor = "#808080"
	edgeWidth = 2.5
)

var tracer = otel.Tracer("github.com/Shrey1306/noma/internal/diagram")

// Node is a labelled vertex at a fixed position in the unit square.
type Node struct {
	Label string
	X, Y  float64
	Color string
}

// Edge connects two node labels.
type Edge struct {
	From, To string
}

// Spec describes a diagram before validation.
type Spec struct {
	Title string
	Nodes []Node
	Edges []Edge
}

// Pipeline returns the surgical transcription pipeline.
func Pipeline() Spec {
	return Spec{
		Title: Title,
		Nodes: []Node{
			{Label: "Video Feed", X: 0.5, Y: 1.0, Color: "#ff9999"},
			{Label: "LITA Transcription", X: 0.3, Y: 0.7, Color: "#66b3ff"},
			{Label: "AWS Transcribe", X: 0.7, Y: 0.7, Color: "#66b3ff"},
			{Label: "Speaker Diarization", X: 0.7, Y: 0.4, Color: "#99ff99"},
			{Label: "Knowledge Graph (Neo4j)", X: 0.5, Y: 0.4, Color: "#ffcc99"},
			{Label: "GraphRAG Updates", X: 0.5, Y: 0.1, Color: "#ffcc99"},
		},
		Edges: []Edge{
			{From: "Video Feed", To: "LITA Transcription"},
			{From: "Video Feed", To: "AWS Transcribe"},
			{From: "AWS Transcribe", To: "Speaker Diarization"},
			{From: "LITA Transcription", To: "Knowledge Graph (Neo4j)"},
			{From: "Speaker Diarization", To: "Knowledge Graph (Neo4j)"},
			{From: "Knowledge Graph (Neo4j)", To: "GraphRAG Updates"},
		},
	}
}

// Diagram is a validated directed graph with drawing attributes.
type Diagram struct {
	title string
	nodes []Node
	edges []Edge
	fills []color.RGBA
	ids   map[string]int64
	graph *simple.DirectedGraph
}

// Build validates spec and constructs its graph.
func Build(spec Spec) (*Diagram, error) {
	d := &Diagram{
		title: spec.Title,
		nodes: slices.Clone(spec.Nodes),
		edges: slices.Clone(spec.Edges),
		ids:   make(map[string]int64, len(spec.Nodes)),
		graph: simple.NewDirectedGraph(),
	}

	for i, n := range spec.Nodes {
		if strings.TrimSpace(n.Label) == "" {
			return nil, apperrors.Render(fmt.Sprintf("node %d has no label", i), nil)
		}
		if _, dup := d.ids[n.Label]; dup {
			return nil, apperrors.Render(fmt.Sprintf("duplicate node %q", n.Label), nil)
		}
		if !inUnit(n.X) || !inUnit(n.Y) {
			return nil, apperrors.Render(fmt.Sprintf("node %q position (%g, %g) outside the unit square", n.Label, n.X, n.Y), nil)
		}
		fill, err := chart.ParseColor(n.Color)
		if err != nil {
			return nil, apperrors.Render(fmt.Sprintf("node %q color", n.Label), err)
		}
		d.fills = append(d.fills, fill)
		d.ids[n.Label] = int64(i)
		d.graph.AddNode(simple.Node(i))
	}

	for _, e := range spec.Edges {
		from, ok := d.ids[e.From]
		if !ok {
			return nil, apperrors.Render(fmt.Sprintf("edge %s -> %s: unknown node %q", e.From, e.To, e.From), nil)
		}
		to, ok := d.ids[e.To]
		if !ok {
			return nil, apperrors.Render(fmt.Sprintf("edge %s -> %s: unknown node %q", e.From, e.To, e.To), nil)
		}
		if from == to {
			return nil, apperrors.Render(fmt.Sprintf("self loop on %q", e.From), nil)
		}
		if d.graph.HasEdgeFromTo(from, to) {
			return nil, apperrors.Render(fmt.Sprintf("duplicate edge %s -> %s", e.From, e.To), nil)
		}
		d.graph.SetEdge(d.graph.NewEdge(simple.Node(from), simple.Node(to)))
	}
	return d, nil
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// Title returns the figure title.
func (d *Diagram) Title() string { return d.title }

// NodeCount returns the number of vertices.
func (d *Diagram) NodeCount() int { return d.graph.Nodes().Len() }

// EdgeCount returns the number of directed edges.
func (d *Diagram) EdgeCount() int { return d.graph.Edges().Len() }

// Nodes returns the vertices in declaration order.
func (d *Diagram) Nodes() []Node { return slices.Clone(d.nodes) }

// Edges returns the edges in declaration order.
func (d *Diagram) Edges() []Edge { return slices.Clone(d.edges) }

// HasEdge reports whether from -> to is present.
func (d *Diagram) HasEdge(from, to string) bool {
	f, ok := d.ids[from]
	if !ok {
		return false
	}
	t, ok := d.ids[to]
	if !ok {
		return false
	}
	return d.graph.HasEdgeFromTo(f, t)
}

// Stages returns node labels in topological order, ties broken by
// declaration order. A cyclic diagram has no stage order.
func (d *Diagram) Stages() ([]string, error) {
	sorted, err := topo.SortStabilized(d.graph, func(nodes []graph.Node) {
		slices.SortFunc(nodes, func(a, b graph.Node) int {
			return int(a.ID() - b.ID())
		})
	})
	if err != nil {
		return nil, fmt.Errorf("order stages: %w", err)
	}
	out := make([]string, 0, len(sorted))
	for _, n := range sorted {
		out = append(out, d.nodes[n.ID()].Label)
	}
	return out, nil
}

// RenderPNG draws the diagram on a 10x6 inch canvas at the declared node
// positions.
func (d *Diagram) RenderPNG(ctx context.Context, w io.Writer) error {
	_, span := tracer.Start(ctx, "diagram.RenderPNG")
	defer span.End()
	span.SetAttributes(
		attribute.Int("diagram.nodes", d.NodeCount()),
		attribute.Int("diagram.edges", d.EdgeCount()),
	)

	stroke, err := chart.ParseColor(edgeColor)
	if err != nil {
		return apperrors.Render("edge color", err)
	}

	p := plot.New()
	p.Title.Text = d.title
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.HideAxes()
	p.X.Min, p.X.Max = -0.1, 1.1
	p.Y.Min, p.Y.Max = -0.05, 1.1
	p.Add(&canvasPlotter{d: d, stroke: stroke})

	img := vgimg.New(10*vg.Inch, 6*vg.Inch)
	p.Draw(draw.New(img))
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		span.RecordError(err)
		return apperrors.Render("encode diagram png", err)
	}
	return nil
}

const (
	nodeRadius = 34 // points
	arrowSize  = 9  // points
)

type canvasPlotter struct {
	d      *Diagram
	stroke color.RGBA
}

// Plot implements plot.Plotter.
func (cp *canvasPlotter) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	point := func(n Node) vg.Point { return vg.Point{X: trX(n.X), Y: trY(n.Y)} }

	line := draw.LineStyle{Color: cp.stroke, Width: vg.Points(edgeWidth)}
	for _, e := range cp.d.edges {
		from := point(cp.d.nodes[cp.d.ids[e.From]])
		to := point(cp.d.nodes[cp.d.ids[e.To]])
		cp.arrow(c, line, from, to)
	}

	outline := draw.GlyphStyle{Color: color.Black, Radius: vg.Points(nodeRadius), Shape: draw.RingGlyph{}}
	label := text.Style{
		Color:   color.Black,
		Font:    font.Font{Typeface: "Liberation", Variant: "Sans", Weight: xfont.WeightBold, Size: vg.Points(8)},
		XAlign:  draw.XCenter,
		YAlign:  draw.YCenter,
		Handler: plot.DefaultTextHandler,
	}
	for i, n := range cp.d.nodes {
		pt := point(n)
		c.DrawGlyph(draw.GlyphStyle{Color: cp.d.fills[i], Radius: vg.Points(nodeRadius), Shape: draw.CircleGlyph{}}, pt)
		c.DrawGlyph(outline, pt)
		c.FillText(label, pt, wrapLabel(n.Label))
	}
}

// arrow strokes from the rim of the source node to the rim of the target
// and caps the line with a filled head.
func (cp *canvasPlotter) arrow(c draw.Canvas, line draw.LineStyle, from, to vg.Point) {
	dx, dy := float64(to.X-from.X), float64(to.Y-from.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	r := float64(vg.Points(nodeRadius))
	head := float64(vg.Points(arrowSize))

	start := vg.Point{X: from.X + vg.Length(ux*r), Y: from.Y + vg.Length(uy*r)}
	tip := vg.Point{X: to.X - vg.Length(ux*r), Y: to.Y - vg.Length(uy*r)}
	base := vg.Point{X: tip.X - vg.Length(ux*head), Y: tip.Y - vg.Length(uy*head)}

	c.StrokeLine2(line, start.X, start.Y, base.X, base.Y)
	half := head / 2
	c.FillPolygon(cp.stroke, []vg.Point{
		tip,
		{X: base.X - vg.Length(uy*half), Y: base.Y + vg.Length(ux*half)},
		{X: base.X + vg.Length(uy*half), Y: base.Y - vg.Length(ux*half)},
	})
}

// wrapLabel breaks long labels at the space nearest the middle.
func wrapLabel(label string) string {
	if len(label) <= 12 {
		return label
	}
	mid := len(label) / 2
	best := -1
	for i, r := range label {
		if r == ' ' && (best < 0 || abs(i-mid) < abs(best-mid)) {
			best = i
		}
	}
	if best < 0 {
		return label
	}
	return label[:best] + "\n" + label[best+1:]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
