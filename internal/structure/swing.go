// Package structure detects market-structure features from bar series:
// confirmed swing points, break-of-structure and change-of-character events,
// inducement (trapped breakouts), and liquidity sweeps.
//
// Swing confirmation uses a centered window, so it is non-causal by
// construction: a swing at index i is only confirmed once Lookback bars
// exist after it. The most recent Lookback bars of any series can never
// yield a confirmed swing — for live use this is a confirmation delay,
// not a defect.
package structure

import (
	"math"

	"structure-signalsv1/internal/model"
)

// SwingConfig controls swing point detection.
type SwingConfig struct {
	Lookback    int     // bars required on EACH side of an extremum
	MinStrength float64 // min fractional move vs previous accepted swing of same kind, e.g. 0.01
}

// DefaultSwingConfig returns the stock parameters: 5-bar centered window,
// 1% minimum swing strength.
func DefaultSwingConfig() SwingConfig {
	return SwingConfig{Lookback: 5, MinStrength: 0.01}
}

// DetectSwings scans the series for confirmed swing highs and lows.
// A bar i is a swing high iff its high strictly exceeds every other high in
// [i-L, i+L], and the move from the previous ACCEPTED swing high is at least
// MinStrength. Swing lows are symmetric. Results are ordered by index.
func DetectSwings(bars []model.Bar, cfg SwingConfig) []model.SwingPoint {
	L := cfg.Lookback
	if L <= 0 || len(bars) < 2*L+1 {
		return nil
	}

	var swings []model.SwingPoint
	var prevHigh, prevLow *model.SwingPoint

	for i := L; i < len(bars)-L; i++ {
		if isStrictHigh(bars, i, L) {
			p := bars[i].High
			// Strength is the magnitude of the move from the previous
			// accepted swing high: lower highs past the threshold still
			// qualify (CHoCH context depends on them).
			if prevHigh == nil || math.Abs(p/prevHigh.Price-1) >= cfg.MinStrength {
				sp := model.SwingPoint{Index: i, Price: p, TS: bars[i].TS, Kind: model.SwingHigh}
				swings = append(swings, sp)
				prevHigh = &swings[len(swings)-1]
			}
		}
		if isStrictLow(bars, i, L) {
			p := bars[i].Low
			if prevLow == nil || math.Abs(prevLow.Price/p-1) >= cfg.MinStrength {
				sp := model.SwingPoint{Index: i, Price: p, TS: bars[i].TS, Kind: model.SwingLow}
				swings = append(swings, sp)
				prevLow = &swings[len(swings)-1]
			}
		}
	}
	return swings
}

func isStrictHigh(bars []model.Bar, i, L int) bool {
	h := bars[i].High
	for j := i - L; j <= i+L; j++ {
		if j == i {
			continue
		}
		if bars[j].High >= h {
			return false
		}
	}
	return true
}

func isStrictLow(bars []model.Bar, i, L int) bool {
	l := bars[i].Low
	for j := i - L; j <= i+L; j++ {
		if j == i {
			continue
		}
		if bars[j].Low <= l {
			return false
		}
	}
	return true
}

// LatestByKind returns the most recent swing of the given kind, or nil.
func LatestByKind(swings []model.SwingPoint, kind model.SwingKind) *model.SwingPoint {
	for i := len(swings) - 1; i >= 0; i-- {
		if swings[i].Kind == kind {
			return &swings[i]
		}
	}
	return nil
}

// LastTwoByKind returns the two most recent swings of the given kind,
// oldest first. ok is false if fewer than two exist.
func LastTwoByKind(swings []model.SwingPoint, kind model.SwingKind) (older, newer model.SwingPoint, ok bool) {
	found := 0
	for i := len(swings) - 1; i >= 0 && found < 2; i-- {
		if swings[i].Kind == kind {
			if found == 0 {
				newer = swings[i]
			} else {
				older = swings[i]
			}
			found++
		}
	}
	return older, newer, found == 2
}
