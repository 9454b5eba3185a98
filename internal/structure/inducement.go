package structure

import (
	"structure-signalsv1/internal/indicator"
	"structure-signalsv1/internal/model"
)

// InducementConfig controls inducement detection.
type InducementConfig struct {
	Tolerance    float64 // fractional reversal past the broken level, e.g. 0.001
	VolumePeriod int     // average-volume window for the low-volume bonus
}

// DefaultInducementConfig returns the stock 0.1% tolerance and 20-bar
// volume average.
func DefaultInducementConfig() InducementConfig {
	return InducementConfig{Tolerance: 0.001, VolumePeriod: 20}
}

// DetectInducement checks whether the most recent structure break has
// already reversed back through its broken level — a liquidity trap.
//
// For a bullish break: flagged when the current close has fallen back below
// the broken level by more than the tolerance. Confidence is the fractional
// distance back through the level, clamped to [0,1]; a reversal on
// below-average volume (< 0.8x the 20-bar average) adds 0.2, capped at 1.
// Bearish breaks are mirrored.
func DetectInducement(bars []model.Bar, ev model.StructureBreakEvent, cfg InducementConfig) model.InducementSignal {
	if len(bars) == 0 || ev.BrokenLevel <= 0 {
		return model.InducementSignal{}
	}
	cur := bars[len(bars)-1]
	level := ev.BrokenLevel

	var conf float64
	if ev.Kind.Bullish() {
		if cur.Close >= level*(1-cfg.Tolerance) {
			return model.InducementSignal{}
		}
		conf = indicator.Clamp01((level - cur.Close) / level)
	} else {
		if cur.Close <= level*(1+cfg.Tolerance) {
			return model.InducementSignal{}
		}
		conf = indicator.Clamp01((cur.Close - level) / level)
	}

	if ratio, ok := volumeRatio(bars, cfg.VolumePeriod); ok && ratio < 0.8 {
		conf += 0.2
		if conf > 1 {
			conf = 1
		}
	}

	return model.InducementSignal{Present: true, Kind: ev.Kind, Confidence: conf}
}

// volumeRatio returns the latest bar's volume over the trailing
// period-bar average volume.
func volumeRatio(bars []model.Bar, period int) (float64, bool) {
	avg := indicator.Last(indicator.SMA(model.Volumes(bars), period))
	if !avg.Defined || avg.V == 0 {
		return 0, false
	}
	return bars[len(bars)-1].Volume / avg.V, true
}
