package indicator

import (
	"math"

	"structure-signalsv1/internal/model"
)

// TrueRange computes the per-bar true range:
// max(high-low, |high-prevClose|, |low-prevClose|).
// The first bar has no previous close, so its TR is high-low.
func TrueRange(bars []model.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		tr := b.High - b.Low
		if i > 0 {
			prevClose := bars[i-1].Close
			tr = math.Max(tr, math.Abs(b.High-prevClose))
			tr = math.Max(tr, math.Abs(b.Low-prevClose))
		}
		out[i] = tr
	}
	return out
}

// ATR computes the Average True Range as an SMA of the true range.
// Always >= 0 wherever defined.
func ATR(bars []model.Bar, period int) []Value {
	return SMA(TrueRange(bars), period)
}
