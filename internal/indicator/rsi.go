package indicator

// RSI computes the Relative Strength Index using simple rolling means of
// gains and losses over period (NOT Wilder's smoothing — that is a
// deliberate behavioral contract of this engine).
//
// RSI = 100 - 100/(1 + avgGain/avgLoss). Undefined during warm-up and
// wherever avgLoss is 0: a degenerate division is not a usable momentum
// reading, so callers see Defined=false rather than a pinned 100.
func RSI(closes []float64, period int) []Value {
	out := make([]Value, len(closes))
	if period <= 0 || len(closes) < 2 {
		return out
	}
	gains := newRollingSum(period)
	losses := newRollingSum(period)
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		gains.push(gain)
		losses.push(loss)

		if !gains.full() {
			continue
		}
		avgLoss := losses.mean()
		if avgLoss == 0 {
			continue // undefined: no losses in window
		}
		rs := gains.mean() / avgLoss
		out[i] = Def(100.0 - 100.0/(1.0+rs))
	}
	return out
}
