package cloud

import (
	"math"
	"testing"
	"time"

	"structure-signalsv1/internal/model"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func mkBar(i int, h, l, c float64) model.Bar {
	return model.Bar{
		Symbol: "TEST",
		TS:     testEpoch.Add(time.Duration(i) * time.Hour),
		Open:   c, High: h, Low: l, Close: c, Volume: 1000,
	}
}

// rangeBars builds n identical bars: high 101, low 99, close 100.
func rangeBars(n int) []model.Bar {
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = mkBar(i, 101, 99, 100)
	}
	return bars
}

func TestCompute_WindowEndsAtPreviousBar(t *testing.T) {
	bars := []model.Bar{
		mkBar(0, 10, 9, 9.5),
		mkBar(1, 20, 19, 19.5),
	}
	bands := Compute(bars, Config{Period: 20, MinReversalStrength: 0.003})

	// Bar 1's band reflects bar 0 only: a gap bar sits fully outside its
	// own band, which is what makes cloud entries detectable at all.
	if bands[1].Upper != 10 || bands[1].Lower != 9 {
		t.Errorf("band[1] = %+v, want upper 10 lower 9", bands[1])
	}
	// The first bar has no prior window and uses its own range.
	if bands[0].Upper != 10 || bands[0].Lower != 9 {
		t.Errorf("band[0] = %+v, want upper 10 lower 9", bands[0])
	}
}

func TestCompute_BandOrdering(t *testing.T) {
	bars := make([]model.Bar, 120)
	for i := range bars {
		c := 100 + 8*math.Sin(float64(i)*0.45)
		bars[i] = mkBar(i, c+1, c-1, c)
	}
	bands := Compute(bars, DefaultConfig())
	for i, b := range bands {
		if b.Lower > b.Mid || b.Mid > b.Upper {
			t.Errorf("index %d: ordering violated: %.4f / %.4f / %.4f", i, b.Lower, b.Mid, b.Upper)
		}
		if b.Mid != 0 {
			want := (b.Upper - b.Lower) / b.Mid * 100
			if math.Abs(b.WidthPct-want) > 1e-9 {
				t.Errorf("index %d: width %.6f, want %.6f", i, b.WidthPct, want)
			}
		}
	}
}

func TestDetectReversal_BullishEntryFromBelow(t *testing.T) {
	// 30 range bars, a crash bar closing well under the prior band, then a
	// recovery bar back inside the cloud: +4.7% on entry.
	bars := rangeBars(30)
	bars = append(bars, mkBar(30, 100, 94.5, 95))
	bars = append(bars, mkBar(31, 99.6, 95, 99.5))

	cfg := DefaultConfig()
	bands := Compute(bars, cfg)
	rev := DetectReversal(bars, bands, cfg)

	if !rev.HasReversal || rev.Kind != model.DirectionBullish {
		t.Fatalf("reversal = %+v, want bullish entry", rev)
	}
	if !rev.InCloud {
		t.Error("recovery close 99.5 should be inside the cloud")
	}
	if rev.Strength != 1 {
		t.Errorf("strength %.4f, want 1 (move far above 2x threshold)", rev.Strength)
	}
}

func TestDetectReversal_BearishEntryFromAbove(t *testing.T) {
	bars := rangeBars(30)
	bars = append(bars, mkBar(30, 105.5, 100, 105))
	bars = append(bars, mkBar(31, 105, 100.2, 100.5))

	cfg := DefaultConfig()
	bands := Compute(bars, cfg)
	rev := DetectReversal(bars, bands, cfg)

	if !rev.HasReversal || rev.Kind != model.DirectionBearish {
		t.Fatalf("reversal = %+v, want bearish entry", rev)
	}
	if rev.Strength != 1 {
		t.Errorf("strength %.4f, want 1", rev.Strength)
	}
}

func TestDetectReversal_MidlineCrossoverFallback(t *testing.T) {
	// Price never leaves the cloud; the close crossing the midline reports
	// the weaker fixed-strength reversal.
	bars := rangeBars(30)
	bars = append(bars, mkBar(30, 101, 99.8, 100.4))

	cfg := DefaultConfig()
	bands := Compute(bars, cfg)
	rev := DetectReversal(bars, bands, cfg)

	if !rev.HasReversal || rev.Kind != model.DirectionBullish {
		t.Fatalf("reversal = %+v, want bullish midline crossover", rev)
	}
	if rev.Strength != 0.5 {
		t.Errorf("strength %.4f, want fixed 0.5", rev.Strength)
	}
	if rev.Direction != model.DirectionBullish {
		t.Errorf("direction %s, want %s", rev.Direction, model.DirectionBullish)
	}
}

func TestDetectReversal_WeakEntry_FallsThrough(t *testing.T) {
	// Entry move of ~0.1% is under the 0.3% minimum: the entry reversal
	// does not fire. The midline is not crossed either (both closes below
	// mid), so no reversal at all.
	bars := rangeBars(30)
	bars = append(bars, mkBar(30, 99.2, 98.8, 98.9)) // just under lower band 99
	bars = append(bars, mkBar(31, 99.2, 98.9, 99.0)) // +0.10%, back at the band edge

	cfg := DefaultConfig()
	bands := Compute(bars, cfg)
	rev := DetectReversal(bars, bands, cfg)

	if rev.HasReversal {
		t.Fatalf("reversal = %+v, want none on a sub-threshold entry", rev)
	}
}

func TestDirection(t *testing.T) {
	band := model.CloudBand{Upper: 110, Lower: 90, Mid: 100}
	if got := Direction(band, 105); got != model.DirectionBullish {
		t.Errorf("above mid: %s", got)
	}
	if got := Direction(band, 95); got != model.DirectionBearish {
		t.Errorf("below mid: %s", got)
	}
	if got := Direction(band, 100); got != model.DirectionNeutral {
		t.Errorf("on mid: %s", got)
	}
}
