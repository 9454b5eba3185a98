package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestValidateSeries(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ok := []Bar{
		{TS: epoch},
		{TS: epoch.Add(time.Hour)},
		{TS: epoch.Add(2 * time.Hour)},
	}
	if err := ValidateSeries(ok); err != nil {
		t.Errorf("valid series rejected: %v", err)
	}
	if err := ValidateSeries(nil); err != nil {
		t.Errorf("empty series rejected: %v", err)
	}

	dup := []Bar{{TS: epoch}, {TS: epoch}}
	if err := ValidateSeries(dup); err == nil {
		t.Error("duplicate timestamps accepted")
	}
	reversed := []Bar{{TS: epoch.Add(time.Hour)}, {TS: epoch}}
	if err := ValidateSeries(reversed); err == nil {
		t.Error("descending timestamps accepted")
	}
}

func TestTradeSignal_Reason(t *testing.T) {
	s := TradeSignal{Reasoning: []string{"first", "second"}}
	if got := s.Reason(); got != "first; second" {
		t.Errorf("Reason() = %q", got)
	}
	empty := TradeSignal{}
	if got := empty.Reason(); got != "" {
		t.Errorf("empty Reason() = %q", got)
	}
}

func TestTradeSignal_JSON_OmitsUnsetRiskLevels(t *testing.T) {
	s := TradeSignal{Symbol: "TEST", Action: ActionWait, Confidence: 0}
	out := string(s.JSON())
	if strings.Contains(out, "entry_price") {
		t.Errorf("unset entry price serialized: %s", out)
	}

	entry := 100.0
	s.EntryPrice = &entry
	var back map[string]any
	if err := json.Unmarshal(s.JSON(), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back["entry_price"] != 100.0 {
		t.Errorf("entry_price = %v, want 100", back["entry_price"])
	}
}
