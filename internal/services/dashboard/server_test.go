package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/Shrey1306/noma/internal/assets"
	"github.com/Shrey1306/noma/internal/chart"
	"github.com/Shrey1306/noma/internal/dataset"
	"github.com/Shrey1306/noma/internal/diagram"
)

const sampleTranscript = "<html><head><title>Case 34</title></head><body><p>00:01 Surgeon: marking margin.</p></body></html>\n"

// fixture lays out an asset root with every catalog image and a transcript.
func fixture(t *testing.T) Config {
	t.Helper()
	root := t.TempDir()
	for _, a := range assets.Catalog() {
		path := filepath.Join(root, filepath.FromSlash(a.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		img := image.NewRGBA(image.Rect(0, 0, 40, 20))
		img.Set(1, 1, color.RGBA{R: 0xff, A: 0xff})
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			t.Fatalf("encode: %v", err)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	transcriptPath := filepath.Join(root, "transcript_34.html")
	if err := os.WriteFile(transcriptPath, []byte(sampleTranscript), 0o600); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
	return Config{
		AssetDir:       root,
		TranscriptPath: transcriptPath,
		Logger:         log.New(io.Discard, "", 0),
	}
}

func get(t *testing.T, h http.Handler, path string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestTabsRenderFullPages(t *testing.T) {
	t.Parallel()

	h := NewHandler(fixture(t))
	tests := []struct {
		path string
		want []string
	}{
		{path: "/", want: []string{
			"<h1>Noma</h1>",
			"Authors: Abhishek Pillai, Shrey Gupta, Siddhant Agarwal",
			"Problem Context",
			"Physician availability across different states",
			chart.Caption,
			"https://www.ncbi.nlm.nih.gov/pmc/articles/PMC9392842/",
			"The Solution",
		}},
		{path: "/visualization", want: []string{
			"Generating 3D visualization of patient&#39;s face",
			"3D Point Cloud Visualization of Surgical Area",
			"Annotations of Incisions Mapped from 3D to 2D",
			"<td>Gaussian Splatting</td>",
			`<td class="num">1.75</td>`,
			"Rendering the 3D visualizations",
		}},
		{path: "/transcriptions", want: []string{
			"Tools and Methods Used in the Pipeline",
			"Pipeline Diagram",
			diagram.Title,
			`src="/transcript"`,
			`height="600"`,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			rr := get(t, h, tt.path, nil)
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
			}
			if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
				t.Fatalf("content type = %q", ct)
			}
			body := rr.Body.String()
			if !strings.HasPrefix(body, "<!DOCTYPE html>") {
				t.Fatalf("expected full page, got %.80q", body)
			}
			for _, want := range tt.want {
				if !strings.Contains(body, want) {
					t.Fatalf("body missing %q", want)
				}
			}
			if !strings.Contains(body, "data:image/png;base64,") && tt.path != "/transcriptions" {
				t.Fatal("expected inline png")
			}
		})
	}
}

func TestTabBarMarksActiveTab(t *testing.T) {
	t.Parallel()

	rr := get(t, NewHandler(fixture(t)), "/visualization", nil)
	body := rr.Body.String()
	if !strings.Contains(body, `class="tab active" href="/visualization"`) {
		t.Fatal("visualization tab not marked active")
	}
	if strings.Contains(body, `class="tab active" href="/"`) {
		t.Fatal("overview tab should not be active")
	}
}

func TestHTMXRequestGetsFragment(t *testing.T) {
	t.Parallel()

	rr := get(t, NewHandler(fixture(t)), "/transcriptions", map[string]string{"HX-Request": "true"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Fatal("htmx response should not include the document shell")
	}
	if !strings.HasPrefix(body, "<title>Automated Medical Transcriptions | Noma</title>") {
		t.Fatalf("fragment should lead with title, got %.80q", body)
	}
	if !strings.Contains(body, `hx-swap-oob="true"`) {
		t.Fatal("fragment should refresh the tab bar out of band")
	}
}

func TestTranscriptRouteServesBytesUnmodified(t *testing.T) {
	t.Parallel()

	rr := get(t, NewHandler(fixture(t)), "/transcript", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Body.String() != sampleTranscript {
		t.Fatalf("transcript body = %q", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	if csp := rr.Header().Get("Content-Security-Policy"); csp != "sandbox allow-scripts" {
		t.Fatalf("content security policy = %q", csp)
	}
}

func TestTranscriptFrameRunsScriptsInOpaqueOrigin(t *testing.T) {
	t.Parallel()

	body := get(t, NewHandler(fixture(t)), "/transcriptions", nil).Body.String()
	if !strings.Contains(body, `sandbox="allow-scripts"`) {
		t.Fatal("transcript frame should allow scripts")
	}
	if strings.Contains(body, "allow-same-origin") {
		t.Fatal("transcript frame must not share the dashboard origin")
	}
}

func TestHTMXErrorFragmentIsSwappedIn(t *testing.T) {
	t.Parallel()

	cfg := fixture(t)
	cfg.TranscriptPath = filepath.Join(t.TempDir(), "transcript_34.html")
	h := NewHandler(cfg)

	rr := get(t, h, "/transcriptions", map[string]string{"HX-Request": "true"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Fatal("htmx response should not include the document shell")
	}
	for _, want := range []string{`hx-swap-oob="true"`, `<section class="tab-body"`, `class="error-panel"`, cfg.TranscriptPath} {
		if !strings.Contains(body, want) {
			t.Fatalf("fragment missing %q: %s", want, body)
		}
	}

	// The shell configures htmx to swap 4xx and 5xx fragments.
	page := get(t, h, "/", nil).Body.String()
	rules := htmxResponseRules(t, page)
	for _, status := range []string{"200", "404", "500"} {
		if !swapsStatus(rules, status) {
			t.Fatalf("htmx config does not swap %s responses: %+v", status, rules)
		}
	}
	if swapsStatus(rules, "204") {
		t.Fatal("204 responses should not swap")
	}
}

type responseRule struct {
	Code string `json:"code"`
	Swap bool   `json:"swap"`
}

// htmxResponseRules extracts responseHandling from the htmx-config meta tag.
func htmxResponseRules(t *testing.T, page string) []responseRule {
	t.Helper()
	const marker = `<meta name="htmx-config" content="`
	start := strings.Index(page, marker)
	if start < 0 {
		t.Fatal("page has no htmx-config meta tag")
	}
	rest := page[start+len(marker):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		t.Fatal("unterminated htmx-config content")
	}
	var cfg struct {
		ResponseHandling []responseRule `json:"responseHandling"`
	}
	if err := json.Unmarshal([]byte(html.UnescapeString(rest[:end])), &cfg); err != nil {
		t.Fatalf("decode htmx-config: %v", err)
	}
	return cfg.ResponseHandling
}

// swapsStatus applies the first rule whose pattern matches, as htmx does.
func swapsStatus(rules []responseRule, status string) bool {
	for _, rule := range rules {
		if regexp.MustCompile(rule.Code).MatchString(status) {
			return rule.Swap
		}
	}
	return false
}

func TestMissingTranscriptShowsPathAndKeepsOtherTabs(t *testing.T) {
	t.Parallel()

	cfg := fixture(t)
	cfg.TranscriptPath = filepath.Join(t.TempDir(), "transcript_34.html")
	h := NewHandler(cfg)

	rr := get(t, h, "/transcriptions", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `class="error-panel"`) || !strings.Contains(body, cfg.TranscriptPath) {
		t.Fatalf("error panel missing or does not name path: %s", body)
	}
	if !strings.Contains(body, `<nav id="tabs"`) {
		t.Fatal("tab bar should still render")
	}

	if rr := get(t, h, "/transcript", nil); rr.Code != http.StatusNotFound || !strings.Contains(rr.Body.String(), cfg.TranscriptPath) {
		t.Fatalf("/transcript status = %d body = %q", rr.Code, rr.Body.String())
	}
	if rr := get(t, h, "/visualization", nil); rr.Code != http.StatusOK {
		t.Fatalf("other tab status = %d", rr.Code)
	}
}

func TestShortDatasetShowsDataShapePanel(t *testing.T) {
	t.Parallel()

	cfg := fixture(t)
	cfg.Dataset = dataset.Static{Records: dataset.Default()[:2]}
	rr := get(t, NewHandler(cfg), "/", nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `data-code="DATA_SHAPE"`) {
		t.Fatalf("body = %s", rr.Body.String())
	}
}

func TestMissingImageFailsOnlyItsTab(t *testing.T) {
	t.Parallel()

	cfg := fixture(t)
	if err := os.Remove(filepath.Join(cfg.AssetDir, "images", "3d_visualization.png")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	h := NewHandler(cfg)
	if rr := get(t, h, "/visualization", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("visualization status = %d, want 404", rr.Code)
	}
	if rr := get(t, h, "/", nil); rr.Code != http.StatusOK {
		t.Fatalf("overview status = %d", rr.Code)
	}
}

func TestHealthzAndStatic(t *testing.T) {
	t.Parallel()

	h := NewHandler(fixture(t))
	if rr := get(t, h, "/healthz", nil); rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rr.Code, rr.Body.String())
	}
	if rr := get(t, h, "/static/dashboard.css", nil); rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), ".tabs") {
		t.Fatalf("static css = %d", rr.Code)
	}
	if rr := get(t, h, "/nope", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown route = %d", rr.Code)
	}
}

func TestNewServerRequiresAddr(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty address")
	}
	s, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if s.Addr() != "127.0.0.1:0" {
		t.Fatalf("Addr() = %q", s.Addr())
	}
	s.Close()
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	s, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0", Logger: log.New(io.Discard, "", 0)})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.ListenAndServe(ctx); err != nil {
		t.Fatalf("ListenAndServe after cancel: %v", err)
	}
}

func TestWriteArtifacts(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	if err := WriteArtifacts(context.Background(), dir, nil); err != nil {
		t.Fatalf("WriteArtifacts: %v", err)
	}
	for _, name := range []string{chart.ArtifactName, diagram.ArtifactName} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
			t.Fatalf("%s is not a png: %v", name, err)
		}
	}
}
