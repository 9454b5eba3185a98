package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Action represents the actionable outcome of one evaluation.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionWait Action = "WAIT"
)

// TradeSignal is the single output of one engine evaluation over a bar
// series. All fields are recomputed fresh per call; nothing is carried
// between evaluations.
type TradeSignal struct {
	Symbol     string    `json:"symbol"`
	TS         time.Time `json:"ts"` // timestamp of the latest evaluated bar
	Action     Action    `json:"action"`
	Confidence int       `json:"confidence"` // [0,100]
	Reasoning  []string  `json:"reasoning"`  // ordered clauses, joined for display

	EntryPrice      *float64 `json:"entry_price,omitempty"`
	StopLoss        *float64 `json:"stop_loss,omitempty"`
	TakeProfit      *float64 `json:"take_profit,omitempty"`
	RiskRewardRatio float64  `json:"risk_reward_ratio,omitempty"`

	// Diagnostics
	ATR                float64   `json:"atr"`
	Timeframe          string    `json:"timeframe"` // "swing" or "scalp"
	StructureBreakType BreakKind `json:"structure_break_type,omitempty"`
	CloudDirection     Direction `json:"cloud_direction,omitempty"`
	VolumeConfirmed    bool      `json:"volume_confirmed"`
}

// Reason joins the reasoning clauses for display.
func (s *TradeSignal) Reason() string {
	return strings.Join(s.Reasoning, "; ")
}

// JSON returns the JSON-encoded signal.
func (s *TradeSignal) JSON() []byte {
	b, _ := json.Marshal(s)
	return b
}
