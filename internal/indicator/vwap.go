package indicator

import "structure-signalsv1/internal/model"

// VWAP computes the cumulative volume-weighted average price over the whole
// series: cum(typicalPrice * volume) / cum(volume). It never resets — it is
// a cumulative, not rolling, statistic. Undefined while cumulative volume
// is zero.
func VWAP(bars []model.Bar) []Value {
	out := make([]Value, len(bars))
	var sumPV, sumV float64
	for i, b := range bars {
		typical := (b.High + b.Low + b.Close) / 3
		sumPV += typical * b.Volume
		sumV += b.Volume
		if sumV > 0 {
			out[i] = Def(sumPV / sumV)
		}
	}
	return out
}
