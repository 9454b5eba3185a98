package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bar represents one OHLCV observation for a single symbol.
// Bars in a series are ordered by TS ascending with unique timestamps;
// the slice order IS the time order and the engine depends on it.
type Bar struct {
	Symbol string    `json:"symbol"`
	TS     time.Time `json:"ts"` // bucket start time (UTC)
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// JSON returns the JSON-encoded bar (ignoring errors for hot-path usage).
func (b *Bar) JSON() []byte {
	out, _ := json.Marshal(b)
	return out
}

// ValidateSeries checks the input contract on a bar slice: ascending,
// unique timestamps. Returns the first violation found.
func ValidateSeries(bars []Bar) error {
	for i := 1; i < len(bars); i++ {
		if !bars[i].TS.After(bars[i-1].TS) {
			return fmt.Errorf("bar series: timestamp at index %d (%s) not after index %d (%s)",
				i, bars[i].TS.Format(time.RFC3339), i-1, bars[i-1].TS.Format(time.RFC3339))
		}
	}
	return nil
}

// Closes extracts the close column from a bar slice.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i := range bars {
		out[i] = bars[i].Close
	}
	return out
}

// Highs extracts the high column from a bar slice.
func Highs(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i := range bars {
		out[i] = bars[i].High
	}
	return out
}

// Lows extracts the low column from a bar slice.
func Lows(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i := range bars {
		out[i] = bars[i].Low
	}
	return out
}

// Volumes extracts the volume column from a bar slice.
func Volumes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i := range bars {
		out[i] = bars[i].Volume
	}
	return out
}
