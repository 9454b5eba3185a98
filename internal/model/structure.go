package model

import "time"

// SwingKind distinguishes swing highs from swing lows.
type SwingKind string

const (
	SwingHigh SwingKind = "HIGH"
	SwingLow  SwingKind = "LOW"
)

// SwingPoint is a confirmed local price extremum. Confirmation requires a
// centered window of L bars on both sides, so a swing at index i only exists
// once L bars follow it.
type SwingPoint struct {
	Index int       `json:"index"`
	Price float64   `json:"price"`
	TS    time.Time `json:"ts"`
	Kind  SwingKind `json:"kind"`
}

// BreakKind classifies structure-break events.
type BreakKind string

const (
	BOSBullish   BreakKind = "BOS_BULLISH"
	BOSBearish   BreakKind = "BOS_BEARISH"
	CHOCHBullish BreakKind = "CHOCH_BULLISH"
	CHOCHBearish BreakKind = "CHOCH_BEARISH"
)

// Bullish reports whether the break is in the bullish direction.
func (k BreakKind) Bullish() bool {
	return k == BOSBullish || k == CHOCHBullish
}

// StructureBreakEvent records price breaking a prior swing level.
// Multiple events may coexist for one bar; slice order is detection order.
type StructureBreakEvent struct {
	Kind        BreakKind `json:"kind"`
	BreakPrice  float64   `json:"break_price"`
	BrokenLevel float64   `json:"broken_level"`
	StrengthPct float64   `json:"strength_pct"`
}

// InducementSignal flags a structure break that immediately reversed back
// through the broken level — a liquidity trap rather than continuation.
type InducementSignal struct {
	Present    bool      `json:"present"`
	Kind       BreakKind `json:"kind,omitempty"` // the break kind it invalidates
	Confidence float64   `json:"confidence"`     // [0,1]
}

// SweepKind classifies liquidity sweeps.
type SweepKind string

const (
	BullishSweep SweepKind = "BULLISH_SWEEP"
	BearishSweep SweepKind = "BEARISH_SWEEP"
)

// LiquiditySweepSignal flags a same-bar wick through a swing level that
// closed back past it (stop hunting).
type LiquiditySweepSignal struct {
	Present    bool      `json:"present"`
	Kind       SweepKind `json:"kind,omitempty"`
	Confidence float64   `json:"confidence"` // [0,1]
}

// Direction is a per-bar bullish/bearish/neutral classification.
type Direction string

const (
	DirectionBullish Direction = "BULLISH"
	DirectionBearish Direction = "BEARISH"
	DirectionNeutral Direction = "NEUTRAL"
)

// Trend classifies the prevailing market structure from confirmed swings.
type Trend string

const (
	TrendUp      Trend = "UPTREND"
	TrendDown    Trend = "DOWNTREND"
	TrendRanging Trend = "RANGING"
)

// CloudBand is one bar's rolling high/low channel.
// Invariant: Lower <= Mid <= Upper.
type CloudBand struct {
	Upper    float64 `json:"upper"`
	Lower    float64 `json:"lower"`
	Mid      float64 `json:"mid"`
	WidthPct float64 `json:"width_pct"`
}

// CloudReversal describes the cloud engine's read of the latest two bars.
type CloudReversal struct {
	HasReversal bool      `json:"has_reversal"`
	Kind        Direction `json:"kind,omitempty"` // BULLISH or BEARISH when HasReversal
	Strength    float64   `json:"strength"`       // [0,1]
	InCloud     bool      `json:"in_cloud"`
	Direction   Direction `json:"direction"`
}
