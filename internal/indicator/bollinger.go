package indicator

// BollingerResult holds the three band series.
// Invariant: Lower <= Middle <= Upper wherever defined.
type BollingerResult struct {
	Upper  []Value
	Middle []Value
	Lower  []Value
}

// Bollinger computes Bollinger Bands: middle = SMA(period),
// upper/lower = middle +/- k * rolling population std(period).
func Bollinger(closes []float64, period int, k float64) BollingerResult {
	res := BollingerResult{
		Upper:  make([]Value, len(closes)),
		Middle: make([]Value, len(closes)),
		Lower:  make([]Value, len(closes)),
	}
	if period <= 0 {
		return res
	}
	acc := newRollingStat(period)
	for i, v := range closes {
		acc.push(v)
		if !acc.full() {
			continue
		}
		m := acc.mean()
		dev := k * acc.std()
		res.Middle[i] = Def(m)
		res.Upper[i] = Def(m + dev)
		res.Lower[i] = Def(m - dev)
	}
	return res
}
