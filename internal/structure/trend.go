package structure

import "structure-signalsv1/internal/model"

// ClassifyTrend reads the prevailing market structure from the confirmed
// swing sequence: higher highs AND higher lows is an uptrend, lower highs
// AND lower lows a downtrend, anything else ranging.
func ClassifyTrend(swings []model.SwingPoint) model.Trend {
	olderH, newerH, okH := LastTwoByKind(swings, model.SwingHigh)
	olderL, newerL, okL := LastTwoByKind(swings, model.SwingLow)
	if !okH || !okL {
		return model.TrendRanging
	}
	switch {
	case newerH.Price > olderH.Price && newerL.Price > olderL.Price:
		return model.TrendUp
	case newerH.Price < olderH.Price && newerL.Price < olderL.Price:
		return model.TrendDown
	default:
		return model.TrendRanging
	}
}
