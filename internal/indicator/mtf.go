package indicator

import "structure-signalsv1/internal/model"

// Multi-timeframe alignment labels.
const (
	AlignBullish     = "ALIGNED_BULLISH" // perfect alignment across all TFs
	AlignBearish     = "ALIGNED_BEARISH"
	AlignPullback    = "PULLBACK_IN_UPTREND" // higher TFs up, daily dipping
	AlignBounce      = "BOUNCE_IN_DOWNTREND" // higher TFs down, daily bouncing
	AlignBullishTilt = "BULLISH_TILT"
	AlignBearishTilt = "BEARISH_TILT"
	AlignMixed       = "MIXED"
	AlignNeutral     = "NEUTRAL"
)

// TimeframeTrend is the trend read for one resampled timeframe.
type TimeframeTrend struct {
	Timeframe string      `json:"timeframe"` // "daily", "weekly", "monthly"
	Trend     model.Trend `json:"trend"`
	Close     float64     `json:"close"`
	MA20      Value       `json:"-"`
	MA50      Value       `json:"-"`
}

// AlignmentResult classifies agreement between daily, weekly, and monthly
// trends using a fixed decision table.
type AlignmentResult struct {
	Daily      TimeframeTrend `json:"daily"`
	Weekly     TimeframeTrend `json:"weekly"`
	Monthly    TimeframeTrend `json:"monthly"`
	Alignment  string         `json:"alignment"`
	Confidence float64        `json:"confidence"` // [0.5, 0.95]
	Score      float64        `json:"score"`      // [-1,1], daily 0.3 / weekly 0.4 / monthly 0.3
}

// ResampleWeekly aggregates bars into ISO-week buckets. The aggregate bar
// carries the bucket's first open, max high, min low, last close, and summed
// volume, timestamped at the bucket's first bar.
func ResampleWeekly(bars []model.Bar) []model.Bar {
	return resample(bars, func(b model.Bar) int {
		y, w := b.TS.ISOWeek()
		return y*100 + w
	})
}

// ResampleMonthly aggregates bars into calendar-month buckets.
func ResampleMonthly(bars []model.Bar) []model.Bar {
	return resample(bars, func(b model.Bar) int {
		return b.TS.Year()*100 + int(b.TS.Month())
	})
}

func resample(bars []model.Bar, bucket func(model.Bar) int) []model.Bar {
	var out []model.Bar
	cur := -1
	for _, b := range bars {
		key := bucket(b)
		if key != cur {
			out = append(out, b)
			cur = key
			continue
		}
		agg := &out[len(out)-1]
		if b.High > agg.High {
			agg.High = b.High
		}
		if b.Low < agg.Low {
			agg.Low = b.Low
		}
		agg.Close = b.Close
		agg.Volume += b.Volume
	}
	return out
}

// TrendForSeries reads the trend of one timeframe from price vs MA20/MA50
// ordering. With MA50 still warming up it falls back to price vs MA20 alone;
// with neither defined the read is NEUTRAL.
func TrendForSeries(timeframe string, bars []model.Bar) TimeframeTrend {
	tt := TimeframeTrend{Timeframe: timeframe, Trend: model.TrendRanging}
	if len(bars) == 0 {
		return tt
	}
	closes := model.Closes(bars)
	tt.Close = closes[len(closes)-1]
	tt.MA20 = Last(SMA(closes, 20))
	tt.MA50 = Last(SMA(closes, 50))

	switch {
	case tt.MA20.Defined && tt.MA50.Defined:
		if tt.Close > tt.MA20.V && tt.MA20.V > tt.MA50.V {
			tt.Trend = model.TrendUp
		} else if tt.Close < tt.MA20.V && tt.MA20.V < tt.MA50.V {
			tt.Trend = model.TrendDown
		}
	case tt.MA20.Defined:
		if tt.Close > tt.MA20.V {
			tt.Trend = model.TrendUp
		} else if tt.Close < tt.MA20.V {
			tt.Trend = model.TrendDown
		}
	}
	return tt
}

// Alignment resamples the series to weekly and monthly aggregates and
// classifies overall agreement. The input series is treated as the daily
// timeframe.
func Alignment(bars []model.Bar) AlignmentResult {
	res := AlignmentResult{
		Daily:   TrendForSeries("daily", bars),
		Weekly:  TrendForSeries("weekly", ResampleWeekly(bars)),
		Monthly: TrendForSeries("monthly", ResampleMonthly(bars)),
	}

	d, w, m := res.Daily.Trend, res.Weekly.Trend, res.Monthly.Trend
	switch {
	case d == model.TrendUp && w == model.TrendUp && m == model.TrendUp:
		res.Alignment, res.Confidence = AlignBullish, 0.95
	case d == model.TrendDown && w == model.TrendDown && m == model.TrendDown:
		res.Alignment, res.Confidence = AlignBearish, 0.95
	case w == model.TrendUp && m == model.TrendUp:
		// higher timeframes agree up, daily is dipping — high-confidence entry
		res.Alignment, res.Confidence = AlignPullback, 0.85
	case w == model.TrendDown && m == model.TrendDown:
		res.Alignment, res.Confidence = AlignBounce, 0.85
	case d == model.TrendUp && w == model.TrendUp:
		res.Alignment, res.Confidence = AlignBullishTilt, 0.70
	case d == model.TrendDown && w == model.TrendDown:
		res.Alignment, res.Confidence = AlignBearishTilt, 0.70
	case d == model.TrendRanging && w == model.TrendRanging && m == model.TrendRanging:
		res.Alignment, res.Confidence = AlignNeutral, 0.50
	default:
		res.Alignment, res.Confidence = AlignMixed, 0.50
	}

	res.Score = 0.3*trendScore(d) + 0.4*trendScore(w) + 0.3*trendScore(m)
	return res
}

func trendScore(t model.Trend) float64 {
	switch t {
	case model.TrendUp:
		return 1
	case model.TrendDown:
		return -1
	default:
		return 0
	}
}
