package indicator

import "math"

// rollingSum maintains a fixed-window running sum over a preallocated
// circular buffer. Push is O(1); no history scans.
type rollingSum struct {
	period int
	buf    []float64
	idx    int
	count  int
	sum    float64
}

func newRollingSum(period int) *rollingSum {
	return &rollingSum{period: period, buf: make([]float64, period)}
}

func (r *rollingSum) push(v float64) {
	if r.count >= r.period {
		r.sum -= r.buf[r.idx]
	}
	r.buf[r.idx] = v
	r.sum += v
	r.idx = (r.idx + 1) % r.period
	r.count++
}

func (r *rollingSum) full() bool { return r.count >= r.period }

func (r *rollingSum) mean() float64 { return r.sum / float64(r.period) }

// rollingStat extends rollingSum with a running sum of squares for rolling
// population standard deviation.
type rollingStat struct {
	period int
	buf    []float64
	idx    int
	count  int
	sum    float64
	sumSq  float64
}

func newRollingStat(period int) *rollingStat {
	return &rollingStat{period: period, buf: make([]float64, period)}
}

func (r *rollingStat) push(v float64) {
	if r.count >= r.period {
		old := r.buf[r.idx]
		r.sum -= old
		r.sumSq -= old * old
	}
	r.buf[r.idx] = v
	r.sum += v
	r.sumSq += v * v
	r.idx = (r.idx + 1) % r.period
	r.count++
}

func (r *rollingStat) full() bool { return r.count >= r.period }

func (r *rollingStat) mean() float64 { return r.sum / float64(r.period) }

func (r *rollingStat) std() float64 {
	n := float64(r.period)
	m := r.sum / n
	variance := r.sumSq/n - m*m
	if variance < 0 {
		// floating-point cancellation on near-constant windows
		variance = 0
	}
	return math.Sqrt(variance)
}

// rollingExtremum maintains a fixed-window rolling max or min using a
// monotonic index deque. Amortized O(1) per push.
type rollingExtremum struct {
	period int
	max    bool // true = rolling max, false = rolling min
	vals   []float64
	deque  []int // indices into vals, monotonic
	next   int   // index of the next pushed value
}

func newRollingMax(period int) *rollingExtremum {
	return &rollingExtremum{period: period, max: true}
}

func newRollingMin(period int) *rollingExtremum {
	return &rollingExtremum{period: period}
}

func (r *rollingExtremum) push(v float64) {
	r.vals = append(r.vals, v)
	i := r.next
	r.next++

	// Drop indices that fell out of the window.
	for len(r.deque) > 0 && r.deque[0] <= i-r.period {
		r.deque = r.deque[1:]
	}
	// Drop dominated tail entries.
	for len(r.deque) > 0 {
		tail := r.vals[r.deque[len(r.deque)-1]]
		if (r.max && tail <= v) || (!r.max && tail >= v) {
			r.deque = r.deque[:len(r.deque)-1]
		} else {
			break
		}
	}
	r.deque = append(r.deque, i)
}

func (r *rollingExtremum) full() bool { return r.next >= r.period }

func (r *rollingExtremum) value() float64 { return r.vals[r.deque[0]] }

// RollingMax computes the trailing-window maximum per element. The warm-up
// prefix uses the partial window (max over what exists so far), so every
// element is defined.
func RollingMax(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	acc := newRollingMax(period)
	for i, v := range values {
		acc.push(v)
		out[i] = acc.value()
	}
	return out
}

// RollingMin is the symmetric trailing-window minimum.
func RollingMin(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	acc := newRollingMin(period)
	for i, v := range values {
		acc.push(v)
		out[i] = acc.value()
	}
	return out
}
