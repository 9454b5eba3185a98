package structure

import "structure-signalsv1/internal/model"

// BreakConfig controls structure-break classification.
type BreakConfig struct {
	MinBreak float64 // min fractional break past the level, e.g. 0.005
}

// DefaultBreakConfig returns the stock 0.5% minimum break.
func DefaultBreakConfig() BreakConfig {
	return BreakConfig{MinBreak: 0.005}
}

// ClassifyBreaks derives structure-break events for the LATEST bar from the
// confirmed swing points. All qualifying events are emitted in detection
// order — bullish checks before bearish — and coexisting bullish and bearish
// events are both returned; priority between them is the signal
// synthesizer's call, not the classifier's.
//
//   - BOS_BULLISH: current high breaks the latest swing high upward.
//   - CHOCH_BULLISH: the last two swing highs form a lower-high sequence
//     (downtrend context) and the current high breaks the latest swing LOW
//     upward.
//   - BOS_BEARISH / CHOCH_BEARISH: symmetric on lows/highs.
func ClassifyBreaks(bars []model.Bar, swings []model.SwingPoint, cfg BreakConfig) []model.StructureBreakEvent {
	if len(bars) == 0 {
		return nil
	}
	cur := bars[len(bars)-1]
	lastHigh := LatestByKind(swings, model.SwingHigh)
	lastLow := LatestByKind(swings, model.SwingLow)

	var events []model.StructureBreakEvent

	// Bullish checks first.
	if lastHigh != nil && cur.High > lastHigh.Price*(1+cfg.MinBreak) {
		events = append(events, model.StructureBreakEvent{
			Kind:        model.BOSBullish,
			BreakPrice:  cur.High,
			BrokenLevel: lastHigh.Price,
			StrengthPct: (cur.High/lastHigh.Price - 1) * 100,
		})
	}
	if olderH, newerH, ok := LastTwoByKind(swings, model.SwingHigh); ok && newerH.Price < olderH.Price {
		if lastLow != nil && cur.High > lastLow.Price*(1+cfg.MinBreak) {
			events = append(events, model.StructureBreakEvent{
				Kind:        model.CHOCHBullish,
				BreakPrice:  cur.High,
				BrokenLevel: lastLow.Price,
				StrengthPct: (cur.High/lastLow.Price - 1) * 100,
			})
		}
	}

	// Bearish checks.
	if lastLow != nil && cur.Low < lastLow.Price*(1-cfg.MinBreak) {
		events = append(events, model.StructureBreakEvent{
			Kind:        model.BOSBearish,
			BreakPrice:  cur.Low,
			BrokenLevel: lastLow.Price,
			StrengthPct: (1 - cur.Low/lastLow.Price) * 100,
		})
	}
	if olderL, newerL, ok := LastTwoByKind(swings, model.SwingLow); ok && newerL.Price > olderL.Price {
		if lastHigh != nil && cur.Low < lastHigh.Price*(1-cfg.MinBreak) {
			events = append(events, model.StructureBreakEvent{
				Kind:        model.CHOCHBearish,
				BreakPrice:  cur.Low,
				BrokenLevel: lastHigh.Price,
				StrengthPct: (1 - cur.Low/lastHigh.Price) * 100,
			})
		}
	}

	return events
}
