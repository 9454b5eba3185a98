package structure

import (
	"structure-signalsv1/internal/indicator"
	"structure-signalsv1/internal/model"
)

// SweepConfig controls liquidity-sweep detection.
type SweepConfig struct {
	Tolerance float64 // min fractional wick past the swing level, e.g. 0.001
}

// DefaultSweepConfig returns the stock 0.1% tolerance.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{Tolerance: 0.001}
}

// DetectSweep looks for a same-bar wick through the latest swing level that
// closed back past it — the signature of a stop hunt.
//
// Bullish sweep: current low dips below the latest swing low by the
// tolerance but the close recovers above it. Bearish sweep is the symmetric
// case against the latest swing high. Confidence scales with how far the
// wick reached plus how far the close recovered:
// clamp01((sweepDistance + reversalDistance) * 10).
func DetectSweep(bars []model.Bar, swings []model.SwingPoint, cfg SweepConfig) model.LiquiditySweepSignal {
	if len(bars) == 0 {
		return model.LiquiditySweepSignal{}
	}
	cur := bars[len(bars)-1]

	if sl := LatestByKind(swings, model.SwingLow); sl != nil && sl.Price > 0 {
		if cur.Low < sl.Price*(1-cfg.Tolerance) && cur.Close > sl.Price {
			sweep := (sl.Price - cur.Low) / sl.Price
			reversal := (cur.Close - sl.Price) / sl.Price
			return model.LiquiditySweepSignal{
				Present:    true,
				Kind:       model.BullishSweep,
				Confidence: indicator.Clamp01((sweep + reversal) * 10),
			}
		}
	}

	if sh := LatestByKind(swings, model.SwingHigh); sh != nil && sh.Price > 0 {
		if cur.High > sh.Price*(1+cfg.Tolerance) && cur.Close < sh.Price {
			sweep := (cur.High - sh.Price) / sh.Price
			reversal := (sh.Price - cur.Close) / sh.Price
			return model.LiquiditySweepSignal{
				Present:    true,
				Kind:       model.BearishSweep,
				Confidence: indicator.Clamp01((sweep + reversal) * 10),
			}
		}
	}

	return model.LiquiditySweepSignal{}
}
