package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/Shrey1306/noma/internal/assets"
	"github.com/Shrey1306/noma/internal/chart"
	"github.com/Shrey1306/noma/internal/diagram"
	"github.com/Shrey1306/noma/internal/platform/branding"
	"github.com/Shrey1306/noma/internal/transcript"
)

const (
	tabOverview       = "overview"
	tabVisualization  = "visualization"
	tabTranscriptions = "transcriptions"
)

// tab is one selectable dashboard view.
type tab struct {
	id    string
	path  string
	title string
}

var tabs = []tab{
	{id: tabOverview, path: "/", title: "Problem Overview"},
	{id: tabVisualization, path: "/visualization", title: "3D Visualization"},
	{id: tabTranscriptions, path: "/transcriptions", title: "Automated Medical Transcriptions"},
}

// transcriptRoute serves the raw transcript for the tab iframe.
const transcriptRoute = "/transcript"

// build renders the body of tab id in a single top-to-bottom pass.
func (h *handler) build(ctx context.Context, id string) (templ.Component, error) {
	switch id {
	case tabOverview:
		return h.overview(ctx)
	case tabVisualization:
		return h.visualization(ctx)
	case tabTranscriptions:
		return h.transcriptions(ctx)
	default:
		return nil, fmt.Errorf("unknown tab %q", id)
	}
}

func (h *handler) overview(ctx context.Context) (templ.Component, error) {
	picture, err := assets.Load(ctx, h.assetDir, assets.PhysicianAvailability)
	if err != nil {
		return nil, err
	}

	records, err := h.dataset.Load(ctx)
	if err != nil {
		return nil, err
	}
	fig, err := chart.BuildMohsPanels(records)
	if err != nil {
		return nil, err
	}
	var charts bytes.Buffer
	if err := fig.RenderPNG(ctx, &charts); err != nil {
		return nil, err
	}

	return templ.Join(
		heading(1, branding.AppName),
		paragraph("Authors: "+strings.Join(branding.Authors, ", ")),
		heading(2, "Problem Context"),
		prose(overviewContext),
		figure(picture.PNG, picture.Asset.Caption, "", picture.Asset.Width),
		prose(overviewMMS),
		figure(charts.Bytes(), chart.Caption, "", 0),
		heading(3, "Telemedicine: The Key to Fighting Healthcare Inequality"),
		prose(overviewTelemedicine),
		heading(3, "The Need for Automated Medical Transcriptions"),
		prose(overviewTranscriptionNeed),
		heading(2, "The Solution"),
		prose(overviewSolution),
	), nil
}

func (h *handler) visualization(ctx context.Context) (templ.Component, error) {
	cloud, err := assets.Load(ctx, h.assetDir, assets.PointCloud)
	if err != nil {
		return nil, err
	}
	annotations, err := assets.Load(ctx, h.assetDir, assets.IncisionAnnotations)
	if err != nil {
		return nil, err
	}
	var methods bytes.Buffer
	if err := chart.RenderMethodsPNG(ctx, h.methods, &methods); err != nil {
		return nil, err
	}

	return templ.Join(
		heading(2, "Generating 3D visualization of patient's face"),
		prose(visualizationTechniques),
		figure(cloud.PNG, cloud.Asset.Caption, "", cloud.Asset.Width),
		figure(annotations.PNG, annotations.Asset.Caption, "", annotations.Asset.Width),
		heading(3, "Comparison of 3D Reconstruction Methods"),
		paragraph("The table below highlights the key performance metrics of the methods we tested:"),
		methodsTable(h.methods),
		figure(methods.Bytes(), chart.MethodsTitle, "", 0),
		heading(2, "Rendering the 3D visualizations"),
	), nil
}

func (h *handler) transcriptions(ctx context.Context) (templ.Component, error) {
	d, err := diagram.Build(diagram.Pipeline())
	if err != nil {
		return nil, err
	}
	var pipeline bytes.Buffer
	if err := d.RenderPNG(ctx, &pipeline); err != nil {
		return nil, err
	}
	stages, err := d.Stages()
	if err != nil {
		return nil, err
	}

	embed, err := transcript.Load(ctx, h.transcriptPath)
	if err != nil {
		return nil, err
	}

	return templ.Join(
		heading(2, "Automated Medical Transcriptions"),
		heading(3, "Tools and Methods Used in the Pipeline"),
		prose(transcriptionTools),
		heading(3, "Pipeline Diagram"),
		figure(pipeline.Bytes(), d.Title(), "Pipeline stages: "+strings.Join(stages, ", "), 0),
		transcriptFrame(transcriptRoute, embed.Title, embed.Height),
	), nil
}
