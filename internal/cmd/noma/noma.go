// Package noma parses dashboard flags and launches the service.
package noma

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Shrey1306/noma/internal/assets"
	"github.com/Shrey1306/noma/internal/dataset"
	datasetsqlite "github.com/Shrey1306/noma/internal/dataset/sqlite"
	entrypoint "github.com/Shrey1306/noma/internal/platform/cmd"
	"github.com/Shrey1306/noma/internal/services/dashboard"
)

// Config holds dashboard command configuration.
type Config struct {
	HTTPAddr       string `env:"NOMA_HTTP_ADDR" envDefault:"localhost:8501"`
	AssetDir       string `env:"NOMA_ASSET_DIR" envDefault:"."`
	TranscriptPath string `env:"NOMA_TRANSCRIPT_PATH" envDefault:"transcript_34.html"`
	DatasetCSV     string `env:"NOMA_DATASET_CSV"`
	DatasetDB      string `env:"NOMA_DATASET_DB"`
	ArtifactDir    string `env:"NOMA_ARTIFACT_DIR"`
}

// ParseConfig parses environment and flags into Config. Flags given on the
// command line win over the environment.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.HTTPAddr, "http-addr", "", "HTTP listen address (NOMA_HTTP_ADDR, default localhost:8501)")
	fs.StringVar(&cfg.AssetDir, "asset-dir", "", "Directory containing the images/ folder (NOMA_ASSET_DIR, default .)")
	fs.StringVar(&cfg.TranscriptPath, "transcript", "", "Transcript HTML file embedded on the transcriptions tab (NOMA_TRANSCRIPT_PATH)")
	fs.StringVar(&cfg.DatasetCSV, "dataset-csv", "", "Optional CSV file with the Mohs dataset (NOMA_DATASET_CSV)")
	fs.StringVar(&cfg.DatasetDB, "dataset-db", "", "Optional SQLite database holding the Mohs dataset (NOMA_DATASET_DB)")
	fs.StringVar(&cfg.ArtifactDir, "artifact-dir", "", "Directory to write chart and diagram PNGs at startup (NOMA_ARTIFACT_DIR)")
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the dashboard HTTP service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceNoma, func(ctx context.Context) error {
		source, closeSource, err := openDataset(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeSource()

		for _, path := range missingAssets(cfg.AssetDir) {
			log.Printf("warning: image %s not found; its tab will show an error", path)
		}

		if dir := strings.TrimSpace(cfg.ArtifactDir); dir != "" {
			if err := dashboard.WriteArtifacts(ctx, dir, source); err != nil {
				return fmt.Errorf("write artifacts: %w", err)
			}
			log.Printf("wrote artifacts to %s", dir)
		}

		server, err := dashboard.NewServer(ctx, dashboard.Config{
			HTTPAddr:       cfg.HTTPAddr,
			AssetDir:       cfg.AssetDir,
			TranscriptPath: cfg.TranscriptPath,
			Dataset:        source,
		})
		if err != nil {
			return err
		}
		defer server.Close()

		log.Printf("dashboard listening on http://%s", server.Addr())
		return server.ListenAndServe(ctx)
	})
}

// openDataset picks the dataset source. With both a CSV file and a database
// configured, the CSV rows replace the stored table and the database serves.
func openDataset(ctx context.Context, cfg Config) (dataset.Source, func(), error) {
	noop := func() {}
	csvPath := strings.TrimSpace(cfg.DatasetCSV)
	dbPath := strings.TrimSpace(cfg.DatasetDB)

	if dbPath == "" {
		if csvPath != "" {
			return dataset.CSVFile{Path: csvPath}, noop, nil
		}
		return dataset.Static{}, noop, nil
	}

	store, err := datasetsqlite.Open(ctx, dbPath)
	if err != nil {
		return nil, noop, fmt.Errorf("open dataset db: %w", err)
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Printf("close dataset db: %v", err)
		}
	}
	if csvPath != "" {
		records, err := dataset.CSVFile{Path: csvPath}.Load(ctx)
		if err != nil {
			closeStore()
			return nil, noop, fmt.Errorf("import dataset csv: %w", err)
		}
		if err := store.Replace(ctx, records); err != nil {
			closeStore()
			return nil, noop, fmt.Errorf("import dataset csv: %w", err)
		}
	}
	return store, closeStore, nil
}

// missingAssets lists catalog images absent under root. Their tabs still
// serve, showing the missing-asset panel.
func missingAssets(root string) []string {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	var missing []string
	for _, a := range assets.Catalog() {
		path := filepath.Join(root, filepath.FromSlash(a.Path))
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, path)
		}
	}
	return missing
}
