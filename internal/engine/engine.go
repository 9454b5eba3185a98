// Package engine synthesizes a single TradeSignal from a bar series by
// running the full analysis pipeline: swing points, structure breaks,
// inducement and liquidity-sweep filters, cloud confirmation, and volume
// confirmation, with ATR-derived risk levels.
//
// Evaluate is a pure function of the input slice: no state is carried
// between calls, so one evaluation per symbol may run fully in parallel
// with others.
package engine

import (
	"fmt"

	"structure-signalsv1/internal/cloud"
	"structure-signalsv1/internal/indicator"
	"structure-signalsv1/internal/model"
	"structure-signalsv1/internal/structure"
)

// Reason strings surfaced on degenerate inputs. Downstream consumers match
// on these, so they are part of the output contract.
const (
	ReasonInsufficientData = "Insufficient historical data"
	ReasonNoATR            = "Unable to calculate ATR"
	ReasonNoSignal         = "No clear signal"
)

// Timeframe selects the ATR multipliers for stop-loss/take-profit sizing.
const (
	TimeframeSwing = "swing" // SL 1.5x ATR, TP 2.5x ATR
	TimeframeScalp = "scalp" // SL 0.75x ATR, TP 1.25x ATR
)

// Config holds every tunable of the pipeline. The zero value is NOT usable;
// start from DefaultConfig.
type Config struct {
	MinBars int // minimum series length for a full evaluation

	Swing      structure.SwingConfig
	Break      structure.BreakConfig
	Inducement structure.InducementConfig
	Sweep      structure.SweepConfig
	Cloud      cloud.Config

	ATRPeriod          int
	VolumePeriod       int     // window for the average-volume ratio
	VolumeConfirmRatio float64 // min current/average volume for confirmation, e.g. 1.2
	MinConfidence      int     // global gate: BUY/SELL below this becomes WAIT
	Timeframe          string  // TimeframeSwing or TimeframeScalp
}

// DefaultConfig returns the stock pipeline parameters.
func DefaultConfig() Config {
	return Config{
		MinBars:            50,
		Swing:              structure.DefaultSwingConfig(),
		Break:              structure.DefaultBreakConfig(),
		Inducement:         structure.DefaultInducementConfig(),
		Sweep:              structure.DefaultSweepConfig(),
		Cloud:              cloud.DefaultConfig(),
		ATRPeriod:          14,
		VolumePeriod:       20,
		VolumeConfirmRatio: 1.2,
		MinConfidence:      70,
		Timeframe:          TimeframeSwing,
	}
}

// Result bundles the TradeSignal with the intermediate structures for
// charting/audit consumers.
type Result struct {
	Signal     model.TradeSignal
	Swings     []model.SwingPoint
	Breaks     []model.StructureBreakEvent
	CloudBands []model.CloudBand
	Reversal   model.CloudReversal
	Inducement model.InducementSignal
	Sweep      model.LiquiditySweepSignal
	Trend      model.Trend
}

// Evaluate runs the full pipeline over the bar series and returns the
// synthesized signal plus diagnostics. All failure modes are value-returned
// WAIT signals; Evaluate never panics on degenerate input.
func Evaluate(bars []model.Bar, cfg Config) Result {
	res := Result{Trend: model.TrendRanging}
	sig := &res.Signal
	sig.Action = model.ActionWait
	sig.Timeframe = cfg.Timeframe
	sig.CloudDirection = model.DirectionNeutral
	if len(bars) > 0 {
		sig.Symbol = bars[len(bars)-1].Symbol
		sig.TS = bars[len(bars)-1].TS
	}

	if len(bars) < cfg.MinBars {
		sig.Reasoning = append(sig.Reasoning,
			fmt.Sprintf("%s: need %d bars, got %d", ReasonInsufficientData, cfg.MinBars, len(bars)))
		return res
	}

	atr := indicator.Last(indicator.ATR(bars, cfg.ATRPeriod))
	if !atr.Defined || atr.V == 0 {
		sig.Reasoning = append(sig.Reasoning, ReasonNoATR)
		return res
	}
	sig.ATR = atr.V

	// Structure leg.
	res.Swings = structure.DetectSwings(bars, cfg.Swing)
	res.Trend = structure.ClassifyTrend(res.Swings)
	res.Breaks = structure.ClassifyBreaks(bars, res.Swings, cfg.Break)

	// Cloud leg, independent of structure.
	res.CloudBands = cloud.Compute(bars, cfg.Cloud)
	res.Reversal = cloud.DetectReversal(bars, res.CloudBands, cfg.Cloud)
	sig.CloudDirection = res.Reversal.Direction

	if len(res.Breaks) == 0 {
		sig.Reasoning = append(sig.Reasoning, ReasonNoSignal)
		return res
	}

	// A bullish break takes priority when both directions coexist.
	brk := pickBreak(res.Breaks)
	sig.StructureBreakType = brk.Kind
	bullish := brk.Kind.Bullish()
	sig.Reasoning = append(sig.Reasoning, describeBreak(brk))

	// Inducement filter kills the candidate outright.
	res.Inducement = structure.DetectInducement(bars, brk, cfg.Inducement)
	if res.Inducement.Present {
		sig.Confidence = 30
		sig.Reasoning = append(sig.Reasoning, fmt.Sprintf(
			"Inducement filter: break reversed back through %.4f (confidence %.2f)",
			brk.BrokenLevel, res.Inducement.Confidence))
		return res
	}

	res.Sweep = structure.DetectSweep(bars, res.Swings, cfg.Sweep)

	// Cloud confirmation: a matching reversal OR a matching direction.
	cloudConfirms := false
	if bullish {
		cloudConfirms = (res.Reversal.HasReversal && res.Reversal.Kind == model.DirectionBullish) ||
			res.Reversal.Direction == model.DirectionBullish
	} else {
		cloudConfirms = (res.Reversal.HasReversal && res.Reversal.Kind == model.DirectionBearish) ||
			res.Reversal.Direction == model.DirectionBearish
	}
	if !cloudConfirms {
		sig.Confidence = 40
		sig.Reasoning = append(sig.Reasoning, "Cloud does not confirm the break")
		return res
	}
	sig.Reasoning = append(sig.Reasoning, describeCloud(res.Reversal))

	volRatio, volOK := volumeRatio(bars, cfg.VolumePeriod)
	if !volOK || volRatio < cfg.VolumeConfirmRatio {
		sig.Confidence = 50
		sig.Reasoning = append(sig.Reasoning, fmt.Sprintf(
			"Volume %.2fx below %.2fx confirmation threshold", volRatio, cfg.VolumeConfirmRatio))
		return res
	}
	sig.VolumeConfirmed = true
	sig.Reasoning = append(sig.Reasoning, fmt.Sprintf(
		"Volume %.2fx the %d-bar average", volRatio, cfg.VolumePeriod))

	// Confirmed.
	sig.Confidence = 75
	if bullish {
		sig.Action = model.ActionBuy
	} else {
		sig.Action = model.ActionSell
	}
	if res.Sweep.Present && sweepMatches(res.Sweep.Kind, bullish) {
		sig.Confidence += 10
		if sig.Confidence > 100 {
			sig.Confidence = 100
		}
		sig.Reasoning = append(sig.Reasoning, fmt.Sprintf(
			"Liquidity sweep confluence (confidence %.2f)", res.Sweep.Confidence))
	}

	applyRiskLevels(sig, bars, atr.V, cfg.Timeframe)

	// Global confidence gate: the action is forced back to WAIT but the
	// confidence number is reported as-is — strategy comparators consume
	// the raw value even when the action was gated. Preserved by contract.
	if sig.Confidence < cfg.MinConfidence {
		sig.Action = model.ActionWait
		sig.Reasoning = append(sig.Reasoning, fmt.Sprintf(
			"Confidence %d below minimum %d, holding", sig.Confidence, cfg.MinConfidence))
	}
	return res
}

// pickBreak chooses the event the synthesizer acts on: the most recent
// bullish event if any bullish event exists, else the most recent event.
func pickBreak(events []model.StructureBreakEvent) model.StructureBreakEvent {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind.Bullish() {
			return events[i]
		}
	}
	return events[len(events)-1]
}

func sweepMatches(kind model.SweepKind, bullish bool) bool {
	if bullish {
		return kind == model.BullishSweep
	}
	return kind == model.BearishSweep
}

func describeBreak(ev model.StructureBreakEvent) string {
	return fmt.Sprintf("%s through %.4f (strength %.2f%%)", ev.Kind, ev.BrokenLevel, ev.StrengthPct)
}

func describeCloud(rev model.CloudReversal) string {
	if rev.HasReversal {
		return fmt.Sprintf("Cloud %s reversal (strength %.2f)", rev.Kind, rev.Strength)
	}
	return fmt.Sprintf("Cloud direction %s", rev.Direction)
}

// applyRiskLevels sets entry, stop-loss, and take-profit from ATR.
// Swing: 1.5x / 2.5x. Scalp: 0.75x / 1.25x. Both ~1.67 reward:risk.
func applyRiskLevels(sig *model.TradeSignal, bars []model.Bar, atr float64, timeframe string) {
	slMult, tpMult := 1.5, 2.5
	if timeframe == TimeframeScalp {
		slMult, tpMult = 0.75, 1.25
	}
	entry := bars[len(bars)-1].Close
	var stop, take float64
	if sig.Action == model.ActionSell {
		stop = entry + slMult*atr
		take = entry - tpMult*atr
	} else {
		stop = entry - slMult*atr
		take = entry + tpMult*atr
	}
	sig.EntryPrice = &entry
	sig.StopLoss = &stop
	sig.TakeProfit = &take
	sig.RiskRewardRatio = tpMult / slMult
}

// volumeRatio returns the latest bar's volume over the trailing period-bar
// average.
func volumeRatio(bars []model.Bar, period int) (float64, bool) {
	avg := indicator.Last(indicator.SMA(model.Volumes(bars), period))
	if !avg.Defined || avg.V == 0 {
		return 0, false
	}
	return bars[len(bars)-1].Volume / avg.V, true
}
