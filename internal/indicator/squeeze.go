package indicator

// SqueezeResult reports Bollinger band-width compression.
type SqueezeResult struct {
	Squeezed   bool    `json:"squeezed"`
	Strength   float64 `json:"strength"` // [0,1], only meaningful when Squeezed
	WidthPct   float64 `json:"width_pct"`
	Percentile float64 `json:"percentile"` // rank of current width in its own window
}

// Squeeze flags low-volatility compression: the current band width
// (upper-lower)/middle is compared against its own trailing lookback window
// and the squeeze fires when it sits below the 15th percentile.
// Strength = 1 - percentile/0.15, only when flagged.
func Squeeze(closes []float64, period int, k float64, lookback int) (SqueezeResult, bool) {
	bb := Bollinger(closes, period, k)

	// Band width series, defined where the bands are.
	widths := make([]float64, 0, len(closes))
	for i := range closes {
		if !bb.Middle[i].Defined || bb.Middle[i].V == 0 {
			continue
		}
		widths = append(widths, (bb.Upper[i].V-bb.Lower[i].V)/bb.Middle[i].V)
	}
	if len(widths) == 0 {
		return SqueezeResult{}, false
	}

	cur := widths[len(widths)-1]
	start := len(widths) - lookback
	if start < 0 {
		start = 0
	}
	window := widths[start:]
	if len(window) < 2 {
		return SqueezeResult{}, false
	}

	below := 0
	for _, w := range window {
		if w < cur {
			below++
		}
	}
	percentile := float64(below) / float64(len(window))

	res := SqueezeResult{WidthPct: cur, Percentile: percentile}
	if percentile < 0.15 {
		res.Squeezed = true
		res.Strength = 1 - percentile/0.15
	}
	return res, true
}
