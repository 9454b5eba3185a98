// Package indicator provides pure technical indicator calculations over bar
// series. Every output carries an explicit Defined flag instead of NaN:
// rolling statistics are undefined during their warm-up window and callers
// must branch on definedness rather than rely on NaN propagation.
//
// All functions are referentially transparent — same input slice, same
// output — and never mutate their inputs.
package indicator

// Value is one indicator output with an explicit defined flag.
// The zero Value is undefined.
type Value struct {
	V       float64
	Defined bool
}

// Def wraps a defined value.
func Def(v float64) Value { return Value{V: v, Defined: true} }

// Undef returns the undefined marker.
func Undef() Value { return Value{} }

// Last returns the final value of a series, or the undefined marker for an
// empty series.
func Last(vs []Value) Value {
	if len(vs) == 0 {
		return Undef()
	}
	return vs[len(vs)-1]
}

// Clamp01 clamps x into [0,1].
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
