package indicator

import "structure-signalsv1/internal/model"

// PivotLevels are classic floor-trader pivot points computed from the
// PREVIOUS bar's high/low/close.
type PivotLevels struct {
	PP float64 `json:"pp"`
	R1 float64 `json:"r1"`
	R2 float64 `json:"r2"`
	R3 float64 `json:"r3"`
	S1 float64 `json:"s1"`
	S2 float64 `json:"s2"`
	S3 float64 `json:"s3"`
}

// PivotPoints computes pivot levels for the latest bar from the bar before
// it. Returns false when fewer than two bars exist.
func PivotPoints(bars []model.Bar) (PivotLevels, bool) {
	if len(bars) < 2 {
		return PivotLevels{}, false
	}
	prev := bars[len(bars)-2]
	h, l, c := prev.High, prev.Low, prev.Close
	pp := (h + l + c) / 3
	return PivotLevels{
		PP: pp,
		R1: 2*pp - l,
		R2: pp + (h - l),
		R3: h + 2*(pp-l),
		S1: 2*pp - h,
		S2: pp - (h - l),
		S3: l - 2*(h-pp),
	}, true
}
