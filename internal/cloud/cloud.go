// Package cloud implements the rolling high/low channel indicator: a
// dynamic support/resistance band with per-bar direction and a reversal
// detector. It is independent of the swing/structure components.
package cloud

import (
	"structure-signalsv1/internal/indicator"
	"structure-signalsv1/internal/model"
)

// Config controls the cloud channel.
type Config struct {
	Period              int     // rolling high/low window, e.g. 20
	MinReversalStrength float64 // min same-bar fractional move for an entry reversal, e.g. 0.003
}

// DefaultConfig returns the stock 20-bar channel with 0.3% reversal strength.
func DefaultConfig() Config {
	return Config{Period: 20, MinReversalStrength: 0.003}
}

// Compute builds per-bar cloud bands: upper = rollingMax(high, period),
// lower = rollingMin(low, period), mid = (upper+lower)/2,
// widthPct = (upper-lower)/mid*100.
//
// The window for bar i ends at bar i-1: a band that included its own bar's
// low could never be undercut by that bar's close, which would make the
// documented below-the-cloud entry unreachable. Bands during warm-up use
// the partial window, so lower <= mid <= upper holds for every bar.
func Compute(bars []model.Bar, cfg Config) []model.CloudBand {
	bands := make([]model.CloudBand, len(bars))
	if len(bars) == 0 || cfg.Period <= 0 {
		return bands
	}
	// Monotonic-deque rolling extrema: amortized O(1) per bar.
	uppers := indicator.RollingMax(model.Highs(bars), cfg.Period)
	lowers := indicator.RollingMin(model.Lows(bars), cfg.Period)
	for i := range bars {
		prev := i - 1
		if prev < 0 {
			prev = 0 // first bar has no prior window; band is its own range
		}
		upper := uppers[prev]
		lower := lowers[prev]
		mid := (upper + lower) / 2
		widthPct := 0.0
		if mid != 0 {
			widthPct = (upper - lower) / mid * 100
		}
		bands[i] = model.CloudBand{Upper: upper, Lower: lower, Mid: mid, WidthPct: widthPct}
	}
	return bands
}

// Direction classifies one bar against its band: BULLISH above the midline,
// BEARISH below, NEUTRAL on it.
func Direction(band model.CloudBand, close float64) model.Direction {
	switch {
	case close > band.Mid:
		return model.DirectionBullish
	case close < band.Mid:
		return model.DirectionBearish
	default:
		return model.DirectionNeutral
	}
}

// DetectReversal evaluates the LATEST two bars for a cloud reversal.
//
// A bullish reversal fires when price just entered the cloud from below
// (previous close under the previous lower band) with a same-bar move of at
// least MinReversalStrength; bearish is symmetric from above. When neither
// fires, a weaker midline-crossover reversal is reported with strength
// fixed at 0.5.
func DetectReversal(bars []model.Bar, bands []model.CloudBand, cfg Config) model.CloudReversal {
	n := len(bars)
	rev := model.CloudReversal{Direction: model.DirectionNeutral}
	if n == 0 || len(bands) != n {
		return rev
	}

	cur := bars[n-1]
	band := bands[n-1]
	rev.InCloud = cur.Close >= band.Lower && cur.Close <= band.Upper
	rev.Direction = Direction(band, cur.Close)

	if n < 2 {
		return rev
	}
	prev := bars[n-2]
	prevBand := bands[n-2]
	prevInCloud := prev.Close >= prevBand.Lower && prev.Close <= prevBand.Upper

	movePct := 0.0
	if prev.Close != 0 {
		movePct = (cur.Close - prev.Close) / prev.Close
	}

	// Entry reversals: cloud entered this bar from outside.
	if rev.InCloud && !prevInCloud {
		if prev.Close < prevBand.Lower && movePct >= cfg.MinReversalStrength {
			rev.HasReversal = true
			rev.Kind = model.DirectionBullish
			rev.Strength = indicator.Clamp01(movePct / (2 * cfg.MinReversalStrength))
			return rev
		}
		if prev.Close > prevBand.Upper && -movePct >= cfg.MinReversalStrength {
			rev.HasReversal = true
			rev.Kind = model.DirectionBearish
			rev.Strength = indicator.Clamp01(-movePct / (2 * cfg.MinReversalStrength))
			return rev
		}
	}

	// Weaker fallback: midline crossover in either direction.
	if prev.Close <= prevBand.Mid && cur.Close > band.Mid {
		rev.HasReversal = true
		rev.Kind = model.DirectionBullish
		rev.Strength = 0.5
	} else if prev.Close >= prevBand.Mid && cur.Close < band.Mid {
		rev.HasReversal = true
		rev.Kind = model.DirectionBearish
		rev.Strength = 0.5
	}
	return rev
}
