package indicator

import (
	"math"

	"structure-signalsv1/internal/model"
)

// fibRatios are the retracement ratios measured down from the swing high.
var fibRatios = []float64{0.236, 0.382, 0.5, 0.618, 0.786}

// FibLevel is one retracement level.
type FibLevel struct {
	Ratio float64 `json:"ratio"` // e.g. 0.618
	Price float64 `json:"price"`
}

// FibResult holds the retracement ladder over a lookback window.
type FibResult struct {
	SwingHigh    float64    `json:"swing_high"`
	SwingLow     float64    `json:"swing_low"`
	Levels       []FibLevel `json:"levels"`
	CurrentLevel *FibLevel  `json:"current_level,omitempty"` // level the close sits at, if any
}

// Fibonacci computes retracement levels from the max high / min low over the
// trailing lookback window. The current close is tagged to a level when it
// is within 2% of the swing range of that level. Returns false when the
// window is empty or the range is zero.
func Fibonacci(bars []model.Bar, lookback int) (FibResult, bool) {
	if len(bars) == 0 || lookback <= 0 {
		return FibResult{}, false
	}
	start := len(bars) - lookback
	if start < 0 {
		start = 0
	}
	window := bars[start:]

	high := window[0].High
	low := window[0].Low
	for _, b := range window {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	rng := high - low
	if rng <= 0 {
		return FibResult{}, false
	}

	res := FibResult{SwingHigh: high, SwingLow: low}
	close := bars[len(bars)-1].Close
	tol := 0.02 * rng
	for _, ratio := range fibRatios {
		lvl := FibLevel{Ratio: ratio, Price: high - ratio*rng}
		res.Levels = append(res.Levels, lvl)
		if res.CurrentLevel == nil && math.Abs(close-lvl.Price) <= tol {
			l := lvl
			res.CurrentLevel = &l
		}
	}
	return res, true
}
