// Package transcript loads the pre-generated transcript document shown on
// the transcriptions tab.
package transcript

import (
	"bytes"
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"

	apperrors "github.com/Shrey1306/noma/internal/platform/errors"
	"github.com/Shrey1306/noma/internal/platform/otel"
)

// DefaultPath is the transcript file name relative to the working directory.
const DefaultPath = "transcript_34.html"

// FrameHeight is the iframe height in pixels.
const FrameHeight = 600

var tracer = otel.Tracer("github.com/Shrey1306/noma/internal/transcript")

// Embed is a loaded transcript. Content is the file exactly as read.
type Embed struct {
	Path    string
	Content []byte
	Title   string
	Height  int
}

// Load reads the whole transcript. A missing or unreadable file is a
// missing asset naming path.
func Load(ctx context.Context, path string) (Embed, error) {
	_, span := tracer.Start(ctx, "transcript.Load")
	defer span.End()
	span.SetAttributes(attribute.String("transcript.path", path))

	content, err := os.ReadFile(path)
	if err != nil {
		span.RecordError(err)
		return Embed{}, apperrors.MissingAsset(path, err)
	}
	span.SetAttributes(attribute.Int("transcript.bytes", len(content)))

	return Embed{
		Path:    path,
		Content: content,
		Title:   documentTitle(content),
		Height:  FrameHeight,
	}, nil
}

// documentTitle returns the text of the first <title> element, if any.
func documentTitle(content []byte) string {
	z := html.NewTokenizer(bytes.NewReader(content))
	inTitle := false
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == "title" {
				inTitle = true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "title" && inTitle {
				return strings.TrimSpace(b.String())
			}
		case html.TextToken:
			if inTitle {
				b.Write(z.Text())
			}
		}
	}
}
