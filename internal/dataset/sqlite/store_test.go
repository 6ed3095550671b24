package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Shrey1306/noma/internal/dataset"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenSeedsDefaultRecords(t *testing.T) {
	t.Parallel()

	store := openTestStore(t, filepath.Join(t.TempDir(), "dataset.db"))
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, dataset.Default()) {
		t.Fatalf("Load() = %+v, want default table", got)
	}
}

func TestReplaceKeepsOrderAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dataset.db")
	records := []dataset.Record{
		{Location: "Zeta", Percentage: 1, Metric: dataset.MetricPresence},
		{Location: "Alpha", Percentage: 2},
		{Location: "Mid", AbsencePercentage: 3, Metric: dataset.MetricAbsence},
		{Location: "Beta", AbsencePercentage: 4},
	}

	first, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Replace(context.Background(), records); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	store := openTestStore(t, path)
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Fatalf("Load() = %+v, want %+v", got, records)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestStoreSatisfiesSource(t *testing.T) {
	t.Parallel()

	var _ dataset.Source = (*Store)(nil)
}
