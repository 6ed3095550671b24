package diagram

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	apperrors "github.com/Shrey1306/noma/internal/platform/errors"
)

func TestPipelineStructure(t *testing.T) {
	t.Parallel()

	d, err := Build(Pipeline())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if d.NodeCount() != 6 {
		t.Fatalf("NodeCount() = %d, want 6", d.NodeCount())
	}
	if d.EdgeCount() != 6 {
		t.Fatalf("EdgeCount() = %d, want 6", d.EdgeCount())
	}

	wantEdges := [][2]string{
		{"Video Feed", "LITA Transcription"},
		{"Video Feed", "AWS Transcribe"},
		{"AWS Transcribe", "Speaker Diarization"},
		{"LITA Transcription", "Knowledge Graph (Neo4j)"},
		{"Speaker Diarization", "Knowledge Graph (Neo4j)"},
		{"Knowledge Graph (Neo4j)", "GraphRAG Updates"},
	}
	for _, e := range wantEdges {
		if !d.HasEdge(e[0], e[1]) {
			t.Fatalf("missing edge %s -> %s", e[0], e[1])
		}
	}
	if d.HasEdge("GraphRAG Updates", "Video Feed") {
		t.Fatal("unexpected reverse edge")
	}
}

func TestPipelinePositionsAndColors(t *testing.T) {
	t.Parallel()

	d, err := Build(Pipeline())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := map[string]Node{
		"Video Feed":              {Label: "Video Feed", X: 0.5, Y: 1.0, Color: "#ff9999"},
		"LITA Transcription":      {Label: "LITA Transcription", X: 0.3, Y: 0.7, Color: "#66b3ff"},
		"AWS Transcribe":          {Label: "AWS Transcribe", X: 0.7, Y: 0.7, Color: "#66b3ff"},
		"Speaker Diarization":     {Label: "Speaker Diarization", X: 0.7, Y: 0.4, Color: "#99ff99"},
		"Knowledge Graph (Neo4j)": {Label: "Knowledge Graph (Neo4j)", X: 0.5, Y: 0.4, Color: "#ffcc99"},
		"GraphRAG Updates":        {Label: "GraphRAG Updates", X: 0.5, Y: 0.1, Color: "#ffcc99"},
	}
	for _, n := range d.Nodes() {
		if n != want[n.Label] {
			t.Fatalf("node %q = %+v, want %+v", n.Label, n, want[n.Label])
		}
	}
}

func TestStagesFollowEdges(t *testing.T) {
	t.Parallel()

	d, err := Build(Pipeline())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	stages, err := d.Stages()
	if err != nil {
		t.Fatalf("Stages: %v", err)
	}
	pos := make(map[string]int, len(stages))
	for i, s := range stages {
		pos[s] = i
	}
	for _, e := range d.Edges() {
		if pos[e.From] >= pos[e.To] {
			t.Fatalf("stage %q should precede %q in %v", e.From, e.To, stages)
		}
	}
	if stages[0] != "Video Feed" || stages[len(stages)-1] != "GraphRAG Updates" {
		t.Fatalf("stages = %v", stages)
	}
}

func TestBuildRejectsInvalidSpecs(t *testing.T) {
	t.Parallel()

	base := func() Spec {
		return Spec{
			Title: "t",
			Nodes: []Node{
				{Label: "a", X: 0.1, Y: 0.1, Color: "#ffffff"},
				{Label: "b", X: 0.9, Y: 0.9, Color: "#000000"},
			},
			Edges: []Edge{{From: "a", To: "b"}},
		}
	}
	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{name: "unknown endpoint", mutate: func(s *Spec) { s.Edges = append(s.Edges, Edge{From: "a", To: "zzz"}) }},
		{name: "duplicate node", mutate: func(s *Spec) { s.Nodes = append(s.Nodes, s.Nodes[0]) }},
		{name: "self loop", mutate: func(s *Spec) { s.Edges = append(s.Edges, Edge{From: "a", To: "a"}) }},
		{name: "duplicate edge", mutate: func(s *Spec) { s.Edges = append(s.Edges, s.Edges[0]) }},
		{name: "position out of range", mutate: func(s *Spec) { s.Nodes[1].X = 1.5 }},
		{name: "bad color", mutate: func(s *Spec) { s.Nodes[0].Color = "ultraviolet" }},
		{name: "empty label", mutate: func(s *Spec) { s.Nodes[0].Label = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			spec := base()
			tt.mutate(&spec)
			if _, err := Build(spec); !apperrors.IsRender(err) {
				t.Fatalf("Build err = %v, want render error", err)
			}
		})
	}
}

func TestRenderPNG(t *testing.T) {
	t.Parallel()

	d, err := Build(Pipeline())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buf bytes.Buffer
	if err := d.RenderPNG(context.Background(), &buf); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width <= cfg.Height {
		t.Fatalf("diagram %dx%d should be landscape", cfg.Width, cfg.Height)
	}
}

func TestWrapLabel(t *testing.T) {
	t.Parallel()

	if got := wrapLabel("Video Feed"); got != "Video Feed" {
		t.Fatalf("short label wrapped: %q", got)
	}
	if got := wrapLabel("Knowledge Graph (Neo4j)"); got != "Knowledge\nGraph (Neo4j)" {
		t.Fatalf("wrapLabel = %q", got)
	}
}
