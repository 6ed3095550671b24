package dashboard

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Shrey1306/noma/internal/dataset"
	"github.com/Shrey1306/noma/internal/platform/branding"
)

// htmxConfig swaps error responses into the target like successes, so a
// failing tab shows its error panel on an in-place load.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"[45]..","swap":true,"error":true}]}`

// writeAll writes each fragment in order, stopping at the first error.
func writeAll(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}

func esc(s string) string { return templ.EscapeString(s) }

func heading(level int, text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		tag := fmt.Sprintf("h%d", level)
		return writeAll(w, "<", tag, ">", esc(text), "</", tag, ">")
	})
}

func paragraph(text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return writeAll(w, "<p>", esc(text), "</p>")
	})
}

// prose renders trusted static markup from the narrative.
func prose(markup string) templ.Component {
	return templ.Raw(strings.TrimSpace(markup))
}

func dataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

func methodsTable(methods []dataset.Method) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := message.NewPrinter(language.AmericanEnglish)
		if err := writeAll(w,
			`<table class="methods"><thead><tr>`,
			`<th>Method</th><th>Inference Time (h)</th><th>Rendering Quality (1-10)</th>`,
			`</tr></thead><tbody>`,
		); err != nil {
			return err
		}
		for _, m := range methods {
			if err := writeAll(w,
				"<tr><td>", esc(m.Name), "</td>",
				`<td class="num">`, esc(p.Sprintf("%.2f", m.InferenceHours)), "</td>",
				`<td class="num">`, esc(p.Sprintf("%d", m.RenderingQuality)), "</td></tr>",
			); err != nil {
				return err
			}
		}
		return writeAll(w, "</tbody></table>")
	})
}

func altText(caption, alt string) string {
	if alt == "" {
		return caption
	}
	return alt
}

func frameTitle(title string) string {
	if title == "" {
		return "Surgical transcript"
	}
	return title
}

func pageTitle(t tab) string {
	return t.title + " | " + branding.AppName
}

// fragment is the HTMX swap payload for the panel plus the refreshed tab bar.
func fragment(t tab, body templ.Component) templ.Component {
	return templ.Join(tabBar(t.id, true), tabSection(t, body))
}
