// Package assets loads the fixed narrative images from the asset root.
package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	xdraw "golang.org/x/image/draw"

	apperrors "github.com/Shrey1306/noma/internal/platform/errors"
	"github.com/Shrey1306/noma/internal/platform/otel"
)

var tracer = otel.Tracer("github.com/Shrey1306/noma/internal/assets")

// Asset is a catalog entry. Width caps the displayed width in pixels; zero
// keeps the source size.
type Asset struct {
	Path    string
	Caption string
	Width   int
}

// Narrative images, relative to the asset root.
var (
	PhysicianAvailability = Asset{
		Path:    "images/Picture1.png",
		Caption: "Physician availability across different states",
		Width:   500,
	}
	PointCloud = Asset{
		Path:    "images/3d_visualization.png",
		Caption: "3D Point Cloud Visualization of Surgical Area",
	}
	IncisionAnnotations = Asset{
		Path:    "images/incision_annotations.png",
		Caption: "Annotations of Incisions Mapped from 3D to 2D",
	}
)

// Catalog lists every image the dashboard references.
func Catalog() []Asset {
	return []Asset{PhysicianAvailability, PointCloud, IncisionAnnotations}
}

// Image is a loaded asset re-encoded as PNG.
type Image struct {
	Asset  Asset
	PNG    []byte
	Width  int
	Height int
}

// Load reads asset under root, downscaling to Asset.Width when the source
// is wider.
func Load(ctx context.Context, root string, asset Asset) (Image, error) {
	_, span := tracer.Start(ctx, "assets.Load")
	defer span.End()

	path := filepath.Join(root, filepath.FromSlash(asset.Path))
	span.SetAttributes(attribute.String("asset.path", path))

	f, err := os.Open(path)
	if err != nil {
		span.RecordError(err)
		return Image{}, apperrors.MissingAsset(path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		span.RecordError(err)
		return Image{}, apperrors.Render(fmt.Sprintf("decode image %s", path), err)
	}

	out := src
	if b := src.Bounds(); asset.Width > 0 && b.Dx() > asset.Width {
		h := max(1, b.Dy()*asset.Width/b.Dx())
		dst := image.NewRGBA(image.Rect(0, 0, asset.Width, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return Image{}, apperrors.Render(fmt.Sprintf("encode image %s", path), err)
	}
	return Image{
		Asset:  asset,
		PNG:    buf.Bytes(),
		Width:  out.Bounds().Dx(),
		Height: out.Bounds().Dy(),
	}, nil
}
