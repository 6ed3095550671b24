// Package dataset holds the static tables behind the dashboard charts.
package dataset

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/Shrey1306/noma/internal/platform/errors"
)

// MinRows is the smallest dataset the two-panel split accepts.
const MinRows = 4

// legacyPresenceRows is the positional boundary used when a row carries no
// explicit metric: the first three rows are the presence group.
const legacyPresenceRows = 3

// Metric tags which chart panel a row belongs to.
type Metric int

const (
	MetricUnspecified Metric = iota
	MetricPresence
	MetricAbsence
)

// String returns the lowercase name used in CSV and SQLite sources.
func (m Metric) String() string {
	switch m {
	case MetricPresence:
		return "presence"
	case MetricAbsence:
		return "absence"
	default:
		return ""
	}
}

// ParseMetric accepts "presence", "absence" or an empty value.
func ParseMetric(value string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return MetricUnspecified, nil
	case "presence":
		return MetricPresence, nil
	case "absence":
		return MetricAbsence, nil
	default:
		return MetricUnspecified, fmt.Errorf("unknown metric %q", value)
	}
}

// Record is one row of the Mohs surgery dataset.
type Record struct {
	Location string
	// Percentage of dermatologists performing Mohs micrographic surgery.
	Percentage float64
	// AbsencePercentage of counties lacking a Mohs surgeon.
	AbsencePercentage float64
	Metric            Metric
}

var defaultRecords = []Record{
	{Location: "Urban", Percentage: 13.4, Metric: MetricPresence},
	{Location: "Suburban", Percentage: 9.8, Metric: MetricPresence},
	{Location: "Rural", Percentage: 4.2, Metric: MetricPresence},
	{Location: "Metropolitan Counties", AbsencePercentage: 42.5, Metric: MetricAbsence},
	{Location: "Micropolitan Counties", AbsencePercentage: 78.3, Metric: MetricAbsence},
	{Location: "Rural Counties", AbsencePercentage: 94.1, Metric: MetricAbsence},
}

// Default returns a fresh copy of the built-in six-row table.
func Default() []Record {
	out := make([]Record, len(defaultRecords))
	copy(out, defaultRecords)
	return out
}

// Split partitions records into the presence and absence groups, keeping
// input order within each. Rows with MetricUnspecified fall back to their
// position.
func Split(records []Record) (presence, absence []Record, err error) {
	if len(records) < MinRows {
		return nil, nil, apperrors.DataShape(len(records), fmt.Sprintf("need at least %d rows", MinRows))
	}
	for i, rec := range records {
		metric := rec.Metric
		if metric == MetricUnspecified {
			metric = MetricAbsence
			if i < legacyPresenceRows {
				metric = MetricPresence
			}
		}
		switch metric {
		case MetricPresence:
			presence = append(presence, rec)
		case MetricAbsence:
			absence = append(absence, rec)
		default:
			return nil, nil, apperrors.DataShape(len(records), fmt.Sprintf("row %d has unknown metric %d", i, rec.Metric))
		}
	}
	if len(presence) == 0 {
		return nil, nil, apperrors.DataShape(len(records), "no presence rows")
	}
	if len(absence) == 0 {
		return nil, nil, apperrors.DataShape(len(records), "no absence rows")
	}
	return presence, absence, nil
}

// Source loads the Mohs dataset.
type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

// Static serves a fixed slice; the zero value serves Default.
type Static struct {
	Records []Record
}

// Load returns a copy of the configured records.
func (s Static) Load(context.Context) ([]Record, error) {
	if s.Records == nil {
		return Default(), nil
	}
	out := make([]Record, len(s.Records))
	copy(out, s.Records)
	return out, nil
}

// Method is one row of the 3D reconstruction comparison table.
type Method struct {
	Name             string
	InferenceHours   float64
	RenderingQuality int
}

// DefaultMethods returns the reconstruction methods compared on the
// visualization tab.
func DefaultMethods() []Method {
	return []Method{
		{Name: "NeRF", InferenceHours: 2.5, RenderingQuality: 7},
		{Name: "Gaussian Splatting", InferenceHours: 1.75, RenderingQuality: 8},
		{Name: "Instant Splat", InferenceHours: 0.75, RenderingQuality: 8},
	}
}
