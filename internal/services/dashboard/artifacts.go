package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Shrey1306/noma/internal/chart"
	"github.com/Shrey1306/noma/internal/dataset"
	"github.com/Shrey1306/noma/internal/diagram"
)

// WriteArtifacts renders the Mohs figure and the pipeline diagram into dir
// under their fixed artifact names.
func WriteArtifacts(ctx context.Context, dir string, source dataset.Source) error {
	if source == nil {
		source = dataset.Static{}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	records, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	fig, err := chart.BuildMohsPanels(records)
	if err != nil {
		return err
	}
	var charts bytes.Buffer
	if err := fig.RenderPNG(ctx, &charts); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, chart.ArtifactName), charts.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", chart.ArtifactName, err)
	}

	d, err := diagram.Build(diagram.Pipeline())
	if err != nil {
		return err
	}
	var pipeline bytes.Buffer
	if err := d.RenderPNG(ctx, &pipeline); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, diagram.ArtifactName), pipeline.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", diagram.ArtifactName, err)
	}
	return nil
}
