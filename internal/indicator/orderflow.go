package indicator

import (
	"math"

	"structure-signalsv1/internal/model"
)

// Order-flow regime labels.
const (
	FlowAccumulation    = "ACCUMULATION"
	FlowDistribution    = "DISTRIBUTION"
	FlowStrongBuying    = "STRONG_BUYING"
	FlowStrongSelling   = "STRONG_SELLING"
	FlowModerateBuying  = "MODERATE_BUYING"
	FlowModerateSelling = "MODERATE_SELLING"
	FlowNeutral         = "NEUTRAL"
)

// OrderFlowResult is an estimate of aggregate buying vs selling pressure
// over a trailing window.
type OrderFlowResult struct {
	BuyPct         float64 `json:"buy_pct"`  // [0,100]
	SellPct        float64 `json:"sell_pct"` // [0,100]
	PriceChangePct float64 `json:"price_change_pct"`
	VolumeRising   bool    `json:"volume_rising"`
	Classification string  `json:"classification"`
	Rebalanced     bool    `json:"rebalanced"` // pressure contradicted price and was discarded
}

// OrderFlow estimates per-bar pressure from candle body fraction x volume
// and aggregates it into buying/selling percentages.
//
// Rebalancing rule: a pressure reading that contradicts realized price
// action is unreliable and is forced back to 50/50 — selling > 70% while
// price did not fall meaningfully (> -2%), or buying > 70% while price did
// not rise meaningfully (< +2%).
func OrderFlow(bars []model.Bar, lookback int) (OrderFlowResult, bool) {
	if len(bars) == 0 || lookback <= 0 {
		return OrderFlowResult{}, false
	}
	start := len(bars) - lookback
	if start < 0 {
		start = 0
	}
	window := bars[start:]
	if len(window) < 2 {
		return OrderFlowResult{}, false
	}

	var buy, sell float64
	for _, b := range window {
		rng := b.High - b.Low
		bodyFrac := 0.5
		if rng > 0 {
			bodyFrac = math.Abs(b.Close-b.Open) / rng
		}
		switch {
		case b.Close > b.Open:
			buy += bodyFrac * b.Volume
			sell += (1 - bodyFrac) * b.Volume
		case b.Close < b.Open:
			sell += bodyFrac * b.Volume
			buy += (1 - bodyFrac) * b.Volume
		default:
			buy += 0.5 * b.Volume
			sell += 0.5 * b.Volume
		}
	}
	total := buy + sell
	if total <= 0 {
		return OrderFlowResult{}, false
	}

	res := OrderFlowResult{
		BuyPct:  buy / total * 100,
		SellPct: sell / total * 100,
	}

	first := window[0].Close
	if first != 0 {
		res.PriceChangePct = (window[len(window)-1].Close - first) / first * 100
	}

	// Discard pressure that contradicts realized price action.
	if (res.SellPct > 70 && res.PriceChangePct > -2) ||
		(res.BuyPct > 70 && res.PriceChangePct < 2) {
		res.BuyPct, res.SellPct = 50, 50
		res.Rebalanced = true
	}

	// Volume trend: second half of the window vs first half.
	half := len(window) / 2
	var early, late float64
	for i, b := range window {
		if i < half {
			early += b.Volume
		} else {
			late += b.Volume
		}
	}
	res.VolumeRising = late/float64(len(window)-half) > early/float64(half)

	res.Classification = classifyFlow(res)
	return res, true
}

func classifyFlow(r OrderFlowResult) string {
	priceFlat := math.Abs(r.PriceChangePct) < 2
	switch {
	case r.BuyPct > 65 && r.VolumeRising:
		if priceFlat {
			return FlowAccumulation
		}
		return FlowStrongBuying
	case r.SellPct > 65 && r.VolumeRising:
		if priceFlat {
			return FlowDistribution
		}
		return FlowStrongSelling
	case r.BuyPct > 55:
		return FlowModerateBuying
	case r.SellPct > 55:
		return FlowModerateSelling
	default:
		return FlowNeutral
	}
}
