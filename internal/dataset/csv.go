package dataset

import (
	"context"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "github.com/Shrey1306/noma/internal/platform/errors"
)

// CSV column headers.
const (
	ColumnLocation   = "Location"
	ColumnPercentage = "Percentage"
	ColumnAbsence    = "Percentage of Absence"
	ColumnMetric     = "Metric"
)

// CSVFile loads the dataset from a CSV file with a header row.
type CSVFile struct {
	Path string
}

// Load reads and parses the file. A missing file is a missing asset; a
// malformed table is a data shape error.
func (c CSVFile) Load(context.Context) ([]Record, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, apperrors.MissingAsset(c.Path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.WithTypes(map[string]series.Type{
			ColumnLocation:   series.String,
			ColumnPercentage: series.Float,
			ColumnAbsence:    series.Float,
			ColumnMetric:     series.String,
		}),
	)
	if df.Err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeDataShape, "parse dataset csv", map[string]string{
			apperrors.MetaRows:   "0",
			apperrors.MetaDetail: fmt.Sprintf("unreadable CSV %s", c.Path),
		}, df.Err)
	}
	return recordsFromFrame(df)
}

func recordsFromFrame(df dataframe.DataFrame) ([]Record, error) {
	names := df.Names()
	for _, col := range []string{ColumnLocation, ColumnPercentage, ColumnAbsence} {
		if !slices.Contains(names, col) {
			return nil, apperrors.DataShape(df.Nrow(), fmt.Sprintf("missing column %q", col))
		}
	}

	locations := df.Col(ColumnLocation).Records()
	percentages := df.Col(ColumnPercentage).Float()
	absences := df.Col(ColumnAbsence).Float()
	var metrics []string
	if slices.Contains(names, ColumnMetric) {
		metrics = df.Col(ColumnMetric).Records()
	}

	records := make([]Record, 0, df.Nrow())
	for i := range df.Nrow() {
		if math.IsNaN(percentages[i]) || math.IsNaN(absences[i]) {
			return nil, apperrors.DataShape(df.Nrow(), fmt.Sprintf("row %d has a non-numeric percentage", i+1))
		}
		rec := Record{
			Location:          locations[i],
			Percentage:        percentages[i],
			AbsencePercentage: absences[i],
		}
		if metrics != nil {
			value := metrics[i]
			if value == "NaN" {
				value = ""
			}
			m, err := ParseMetric(value)
			if err != nil {
				return nil, apperrors.DataShape(df.Nrow(), fmt.Sprintf("row %d: %v", i+1, err))
			}
			rec.Metric = m
		}
		records = append(records, rec)
	}
	return records, nil
}
