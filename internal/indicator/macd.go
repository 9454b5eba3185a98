package indicator

// MACDResult holds the three MACD series.
type MACDResult struct {
	MACD      []Value // EMA(fast) - EMA(slow)
	Signal    []Value // EMA(MACD, signal)
	Histogram []Value // MACD - Signal
}

// MACD computes Moving Average Convergence Divergence. Because EMA is seeded
// by the raw series, all three lines are defined from the first element.
func MACD(closes []float64, fast, slow, signal int) MACDResult {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i].V - emaSlow[i].V
	}

	signalLine := EMA(macd, signal)

	res := MACDResult{
		MACD:      make([]Value, len(closes)),
		Signal:    signalLine,
		Histogram: make([]Value, len(closes)),
	}
	for i := range closes {
		res.MACD[i] = Def(macd[i])
		res.Histogram[i] = Def(macd[i] - signalLine[i].V)
	}
	return res
}
