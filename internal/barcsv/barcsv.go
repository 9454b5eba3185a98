// Package barcsv loads and writes bar series as CSV for offline scans.
// Format: header "timestamp,open,high,low,close,volume", timestamps as
// RFC3339 or Unix seconds, one bar per row in ascending time order.
package barcsv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"structure-signalsv1/internal/model"
)

// Load reads a bar series for one symbol from a CSV file.
func Load(path, symbol string) ([]model.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("csv %s: no data rows", path)
	}

	bars := make([]model.Bar, 0, len(rows)-1)
	for i, row := range rows[1:] { // skip header
		if len(row) < 6 {
			return nil, fmt.Errorf("csv %s row %d: want 6 columns, got %d", path, i+2, len(row))
		}
		ts, err := parseTS(row[0])
		if err != nil {
			return nil, fmt.Errorf("csv %s row %d: %w", path, i+2, err)
		}
		vals := make([]float64, 5)
		for j := 1; j <= 5; j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("csv %s row %d col %d: %w", path, i+2, j+1, err)
			}
			vals[j-1] = v
		}
		bars = append(bars, model.Bar{
			Symbol: symbol,
			TS:     ts,
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}

	if err := model.ValidateSeries(bars); err != nil {
		return nil, fmt.Errorf("csv %s: %w", path, err)
	}
	return bars, nil
}

// Write dumps a bar series to a CSV file.
func Write(path string, bars []model.Bar) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv create: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"timestamp", "open", "high", "low", "close", "volume"}); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, b := range bars {
		row := []string{
			b.TS.UTC().Format(time.RFC3339),
			formatF(b.Open), formatF(b.High), formatF(b.Low), formatF(b.Close), formatF(b.Volume),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv row: %w", err)
		}
	}
	return nil
}

func parseTS(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC(), nil
	}
	unix, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: not RFC3339 or unix seconds", s)
	}
	return time.Unix(unix, 0).UTC(), nil
}

func formatF(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
