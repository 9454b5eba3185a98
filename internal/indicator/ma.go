package indicator

// SMA computes the simple moving average over a trailing window.
// Undefined for the first period-1 elements.
func SMA(values []float64, period int) []Value {
	out := make([]Value, len(values))
	if period <= 0 {
		return out
	}
	acc := newRollingSum(period)
	for i, v := range values {
		acc.push(v)
		if acc.full() {
			out[i] = Def(acc.mean())
		}
	}
	return out
}

// EMA computes the exponential moving average with alpha = 2/(period+1),
// seeded by the raw series: the first element is itself. Defined everywhere.
func EMA(values []float64, period int) []Value {
	out := make([]Value, len(values))
	if period <= 0 || len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(period+1)
	prev := values[0]
	out[0] = Def(prev)
	for i := 1; i < len(values); i++ {
		prev = alpha*values[i] + (1-alpha)*prev
		out[i] = Def(prev)
	}
	return out
}
