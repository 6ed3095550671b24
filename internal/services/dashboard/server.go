// Package dashboard hosts the tabbed Noma dashboard over HTTP.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/language"

	"github.com/Shrey1306/noma/internal/dataset"
	apperrors "github.com/Shrey1306/noma/internal/platform/errors"
	"github.com/Shrey1306/noma/internal/platform/errors/i18n"
	"github.com/Shrey1306/noma/internal/platform/htmx"
	"github.com/Shrey1306/noma/internal/platform/httpx"
	"github.com/Shrey1306/noma/internal/platform/otel"
	"github.com/Shrey1306/noma/internal/platform/timeouts"
	"github.com/Shrey1306/noma/internal/services/dashboard/static"
	"github.com/Shrey1306/noma/internal/transcript"
)

// transcriptPolicy matches the iframe sandbox: scripts run, same-origin
// access does not.
const transcriptPolicy = "sandbox allow-scripts"

var tracer = otel.Tracer("github.com/Shrey1306/noma/internal/services/dashboard")

// Config defines startup inputs for the dashboard service.
type Config struct {
	HTTPAddr string
	// AssetDir is the root the images/ catalog resolves against.
	AssetDir       string
	TranscriptPath string
	// Dataset defaults to the built-in table.
	Dataset dataset.Source
	// Methods defaults to the built-in comparison table.
	Methods []dataset.Method
	Logger  *log.Logger
}

// Server hosts the dashboard HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

type handler struct {
	assetDir       string
	transcriptPath string
	dataset        dataset.Source
	methods        []dataset.Method
	logger         *log.Logger
}

func newHandler(cfg Config) *handler {
	h := &handler{
		assetDir:       strings.TrimSpace(cfg.AssetDir),
		transcriptPath: strings.TrimSpace(cfg.TranscriptPath),
		dataset:        cfg.Dataset,
		methods:        cfg.Methods,
		logger:         cfg.Logger,
	}
	if h.assetDir == "" {
		h.assetDir = "."
	}
	if h.transcriptPath == "" {
		h.transcriptPath = transcript.DefaultPath
	}
	if h.dataset == nil {
		h.dataset = dataset.Static{}
	}
	if h.methods == nil {
		h.methods = dataset.DefaultMethods()
	}
	if h.logger == nil {
		h.logger = log.Default()
	}
	return h
}

// NewHandler builds the root handler with every tab, the transcript, static
// assets, and the health check.
func NewHandler(cfg Config) http.Handler {
	h := newHandler(cfg)

	mux := http.NewServeMux()
	for _, t := range tabs {
		pattern := "GET " + t.path
		if t.path == "/" {
			pattern = "GET /{$}"
		}
		mux.Handle(pattern, h.serveTab(t))
	}
	mux.HandleFunc("GET "+transcriptRoute, h.serveTranscript)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static.FS))))

	return httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.RequestLogger(h.logger),
	)
}

// serveTab renders one tab. A failure replaces the tab body with an error
// panel; the page shell and other tabs are unaffected.
func (h *handler) serveTab(t tab) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "dashboard.tab")
		defer span.End()
		span.SetAttributes(attribute.String("dashboard.tab", t.id))

		status := http.StatusOK
		body, err := h.build(ctx, t.id)
		if err != nil {
			status = apperrors.HTTPStatus(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, string(apperrors.CodeOf(err)))
			h.logger.Printf("tab %s failed code=%s: %v", t.id, apperrors.CodeOf(err), err)
			body = errorPanel(string(apperrors.CodeOf(err)), apperrors.LocalizedMessage(err, requestLocale(r)))
		}

		htmx.RenderPage(w, r.WithContext(ctx), status, fragment(t, body), fullPage(t, body), pageTitle(t))
	})
}

func (h *handler) serveTranscript(w http.ResponseWriter, r *http.Request) {
	embed, err := transcript.Load(r.Context(), h.transcriptPath)
	if err != nil {
		h.logger.Printf("transcript failed code=%s: %v", apperrors.CodeOf(err), err)
		http.Error(w, apperrors.LocalizedMessage(err, requestLocale(r)), apperrors.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Opaque origin even when opened outside the iframe.
	w.Header().Set("Content-Security-Policy", transcriptPolicy)
	_, _ = w.Write(embed.Content)
}

// requestLocale picks the first Accept-Language tag, falling back to the
// catalog base locale.
func requestLocale(r *http.Request) string {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return i18n.BaseLocale
	}
	return tags[0].String()
}

// NewServer validates config and constructs a dashboard server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           NewHandler(cfg),
			ReadHeaderTimeout: timeouts.ReadHeader,
			WriteTimeout:      timeouts.Write,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("dashboard server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown dashboard http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve dashboard http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
