package structure

import (
	"math"
	"testing"
	"time"

	"structure-signalsv1/internal/model"
)

// ────────────────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────────────────

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// hlBars builds a series from parallel high/low arrays; close is the
// midpoint and volume is constant.
func hlBars(highs, lows []float64) []model.Bar {
	bars := make([]model.Bar, len(highs))
	for i := range highs {
		c := (highs[i] + lows[i]) / 2
		bars[i] = model.Bar{
			Symbol: "TEST",
			TS:     testEpoch.Add(time.Duration(i) * time.Hour),
			Open:   c, High: highs[i], Low: lows[i], Close: c, Volume: 1000,
		}
	}
	return bars
}

func swingsOfKind(swings []model.SwingPoint, kind model.SwingKind) []model.SwingPoint {
	var out []model.SwingPoint
	for _, s := range swings {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

func assertCloseF(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f", label, got, want)
	}
}

// ────────────────────────────────────────────────────────────
// Swing Detection
// ────────────────────────────────────────────────────────────

func TestDetectSwings_PeakAndTrough(t *testing.T) {
	// Lookback 2: index 4 is a strict high (15 vs 12,13,13,12), index 7 a
	// strict low (9 vs 12,11,10,12).
	highs := []float64{10, 11, 12, 13, 15, 13, 12, 11, 12, 13, 14}
	lows := []float64{9, 10, 11, 12, 14, 12, 11, 9, 10, 12, 13}
	cfg := SwingConfig{Lookback: 2, MinStrength: 0.01}

	swings := DetectSwings(hlBars(highs, lows), cfg)

	hs := swingsOfKind(swings, model.SwingHigh)
	ls := swingsOfKind(swings, model.SwingLow)
	if len(hs) != 1 || len(ls) != 1 {
		t.Fatalf("got %d highs / %d lows, want 1 / 1 (swings: %+v)", len(hs), len(ls), swings)
	}
	if hs[0].Index != 4 || hs[0].Price != 15 {
		t.Errorf("swing high at index %d price %.2f, want index 4 price 15", hs[0].Index, hs[0].Price)
	}
	if ls[0].Index != 7 || ls[0].Price != 9 {
		t.Errorf("swing low at index %d price %.2f, want index 7 price 9", ls[0].Index, ls[0].Price)
	}
}

func TestDetectSwings_StrengthFilter(t *testing.T) {
	// Two peaks: 100 at index 3 and P at index 9. A second peak within 1%
	// of the first is rejected; a 3% move is kept.
	build := func(p float64) []model.Bar {
		highs := []float64{95, 96, 97, 100, 97, 96, 95, 96, 97, p, 97, 96, 95}
		lows := make([]float64, len(highs))
		for i := range highs {
			lows[i] = highs[i] - 1
		}
		return hlBars(highs, lows)
	}
	cfg := SwingConfig{Lookback: 2, MinStrength: 0.01}

	weak := swingsOfKind(DetectSwings(build(100.5), cfg), model.SwingHigh)
	if len(weak) != 1 {
		t.Errorf("0.5%% second peak: got %d swing highs, want 1", len(weak))
	}

	strong := swingsOfKind(DetectSwings(build(103), cfg), model.SwingHigh)
	if len(strong) != 2 {
		t.Errorf("3%% second peak: got %d swing highs, want 2", len(strong))
	}
}

func TestDetectSwings_TrailingBarsNeverConfirmed(t *testing.T) {
	// A swing needs Lookback bars AFTER it, so the most recent Lookback
	// bars of any series can never hold a confirmed swing.
	n := 60
	highs := make([]float64, n)
	lows := make([]float64, n)
	for i := range highs {
		highs[i] = 100 + float64(i) + 0.5
		lows[i] = 100 + float64(i) - 0.5
	}
	cfg := DefaultSwingConfig()

	for _, s := range DetectSwings(hlBars(highs, lows), cfg) {
		if s.Index >= n-cfg.Lookback {
			t.Errorf("swing confirmed at index %d inside the trailing %d bars", s.Index, cfg.Lookback)
		}
	}
}

func TestDetectSwings_TooShortSeries(t *testing.T) {
	highs := []float64{1, 2, 3}
	lows := []float64{0, 1, 2}
	if got := DetectSwings(hlBars(highs, lows), DefaultSwingConfig()); got != nil {
		t.Fatalf("expected nil on a series shorter than the window, got %+v", got)
	}
}

// ────────────────────────────────────────────────────────────
// Structure Breaks
// ────────────────────────────────────────────────────────────

func TestClassifyBreaks_BOSBullish(t *testing.T) {
	swings := []model.SwingPoint{
		{Index: 4, Price: 15, Kind: model.SwingHigh},
		{Index: 7, Price: 9, Kind: model.SwingLow},
	}
	// Current high 15.2 > 15 * 1.005.
	bars := hlBars([]float64{15.2}, []float64{14})

	events := ClassifyBreaks(bars, swings, DefaultBreakConfig())
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	ev := events[0]
	if ev.Kind != model.BOSBullish {
		t.Errorf("kind %s, want %s", ev.Kind, model.BOSBullish)
	}
	assertCloseF(t, "broken level", ev.BrokenLevel, 15, 0.0001)
	assertCloseF(t, "strength pct", ev.StrengthPct, (15.2/15.0-1)*100, 0.0001)
}

func TestClassifyBreaks_BothDirections_BullishFirst(t *testing.T) {
	swings := []model.SwingPoint{
		{Index: 4, Price: 15, Kind: model.SwingHigh},
		{Index: 7, Price: 9, Kind: model.SwingLow},
	}
	// One wide bar through both levels.
	bars := hlBars([]float64{15.2}, []float64{8.9})

	events := ClassifyBreaks(bars, swings, DefaultBreakConfig())
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}
	if events[0].Kind != model.BOSBullish || events[1].Kind != model.BOSBearish {
		t.Errorf("event order %s, %s; want bullish before bearish", events[0].Kind, events[1].Kind)
	}
}

func TestClassifyBreaks_CHOCHBullish(t *testing.T) {
	// Lower-high sequence (110 then 105) and the current high breaks the
	// latest swing LOW upward: change of character, not continuation.
	swings := []model.SwingPoint{
		{Index: 2, Price: 110, Kind: model.SwingHigh},
		{Index: 5, Price: 100, Kind: model.SwingLow},
		{Index: 8, Price: 105, Kind: model.SwingHigh},
	}
	bars := hlBars([]float64{101}, []float64{100.2})

	events := ClassifyBreaks(bars, swings, DefaultBreakConfig())
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	if events[0].Kind != model.CHOCHBullish {
		t.Errorf("kind %s, want %s", events[0].Kind, model.CHOCHBullish)
	}
	assertCloseF(t, "choch broken level", events[0].BrokenLevel, 100, 0.0001)
}

func TestClassifyBreaks_BelowThreshold_NoEvent(t *testing.T) {
	swings := []model.SwingPoint{{Index: 4, Price: 100, Kind: model.SwingHigh}}
	// 0.3% past the level: under the 0.5% minimum.
	bars := hlBars([]float64{100.3}, []float64{99})
	if events := ClassifyBreaks(bars, swings, DefaultBreakConfig()); len(events) != 0 {
		t.Fatalf("got %d events, want 0: %+v", len(events), events)
	}
}

// ────────────────────────────────────────────────────────────
// Inducement
// ────────────────────────────────────────────────────────────

func TestDetectInducement_BullishTrap(t *testing.T) {
	ev := model.StructureBreakEvent{Kind: model.BOSBullish, BrokenLevel: 100}
	// Close fell 2% back below the broken level.
	bars := hlBars([]float64{99}, []float64{97}) // close = 98

	got := DetectInducement(bars, ev, DefaultInducementConfig())
	if !got.Present {
		t.Fatal("inducement not flagged")
	}
	if got.Kind != model.BOSBullish {
		t.Errorf("kind %s, want %s", got.Kind, model.BOSBullish)
	}
	// (100-98)/100 = 0.02; no volume bonus with the average undefined.
	assertCloseF(t, "inducement confidence", got.Confidence, 0.02, 0.0001)
}

func TestDetectInducement_LowVolumeBonus(t *testing.T) {
	ev := model.StructureBreakEvent{Kind: model.BOSBullish, BrokenLevel: 100}
	// 21 bars so the 20-bar volume average is defined. The final bar closes
	// at 98 on half the usual volume: ratio 500/975 = 0.51 < 0.8 -> +0.2.
	bars := make([]model.Bar, 21)
	for i := range bars {
		bars[i] = model.Bar{
			Symbol: "TEST",
			TS:     testEpoch.Add(time.Duration(i) * time.Hour),
			Open:   98, High: 99, Low: 97, Close: 98, Volume: 1000,
		}
	}
	bars[20].Volume = 500

	got := DetectInducement(bars, ev, DefaultInducementConfig())
	if !got.Present {
		t.Fatal("inducement not flagged")
	}
	assertCloseF(t, "confidence with bonus", got.Confidence, 0.22, 0.0001)
}

func TestDetectInducement_HoldsAboveLevel(t *testing.T) {
	ev := model.StructureBreakEvent{Kind: model.BOSBullish, BrokenLevel: 100}
	// Close 99.95 is within the 0.1% tolerance of the level: no trap.
	bars := hlBars([]float64{100.9}, []float64{99})
	bars[0].Close = 99.95

	if got := DetectInducement(bars, ev, DefaultInducementConfig()); got.Present {
		t.Fatalf("inducement flagged at close inside tolerance: %+v", got)
	}
}

// ────────────────────────────────────────────────────────────
// Liquidity Sweeps
// ────────────────────────────────────────────────────────────

func TestDetectSweep_Bullish(t *testing.T) {
	swings := []model.SwingPoint{{Index: 4, Price: 100, Kind: model.SwingLow}}
	// Wick to 99.8 under the level, close back at 100.5.
	bars := hlBars([]float64{101}, []float64{99.8})
	bars[0].Close = 100.5

	got := DetectSweep(bars, swings, DefaultSweepConfig())
	if !got.Present || got.Kind != model.BullishSweep {
		t.Fatalf("sweep = %+v, want present bullish", got)
	}
	// (0.002 sweep + 0.005 reversal) * 10 = 0.07
	assertCloseF(t, "sweep confidence", got.Confidence, 0.07, 0.0001)
}

func TestDetectSweep_Bearish(t *testing.T) {
	swings := []model.SwingPoint{{Index: 4, Price: 100, Kind: model.SwingHigh}}
	bars := hlBars([]float64{100.2}, []float64{99})
	bars[0].Close = 99.6

	got := DetectSweep(bars, swings, DefaultSweepConfig())
	if !got.Present || got.Kind != model.BearishSweep {
		t.Fatalf("sweep = %+v, want present bearish", got)
	}
	assertCloseF(t, "sweep confidence", got.Confidence, 0.06, 0.0001)
}

func TestDetectSweep_CloseBeyondLevel_NoSweep(t *testing.T) {
	// Wick through the low but the close stays below it: that is a break,
	// not a sweep.
	swings := []model.SwingPoint{{Index: 4, Price: 100, Kind: model.SwingLow}}
	bars := hlBars([]float64{100.5}, []float64{99})
	bars[0].Close = 99.5

	if got := DetectSweep(bars, swings, DefaultSweepConfig()); got.Present {
		t.Fatalf("sweep flagged without close recovery: %+v", got)
	}
}

// ────────────────────────────────────────────────────────────
// Trend Classification
// ────────────────────────────────────────────────────────────

func TestClassifyTrend(t *testing.T) {
	mk := func(prices []float64, kinds []model.SwingKind) []model.SwingPoint {
		out := make([]model.SwingPoint, len(prices))
		for i := range prices {
			out[i] = model.SwingPoint{Index: i * 3, Price: prices[i], Kind: kinds[i]}
		}
		return out
	}
	h, l := model.SwingHigh, model.SwingLow

	cases := []struct {
		name   string
		swings []model.SwingPoint
		want   model.Trend
	}{
		{"higher highs and lows", mk([]float64{100, 90, 110, 95}, []model.SwingKind{h, l, h, l}), model.TrendUp},
		{"lower highs and lows", mk([]float64{110, 95, 100, 90}, []model.SwingKind{h, l, h, l}), model.TrendDown},
		{"mixed structure", mk([]float64{100, 90, 110, 85}, []model.SwingKind{h, l, h, l}), model.TrendRanging},
		{"too few swings", mk([]float64{100, 90}, []model.SwingKind{h, l}), model.TrendRanging},
		{"no swings", nil, model.TrendRanging},
	}
	for _, tc := range cases {
		if got := ClassifyTrend(tc.swings); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}
