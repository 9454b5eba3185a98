package sqlite

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"structure-signalsv1/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// Journal persists emitted trade signals to SQLite for analysis and audit.
type Journal struct {
	mu sync.Mutex
	db *sql.DB
}

// NewJournal opens (or creates) a SQLite signal journal.
func NewJournal(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_sync=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("journal open: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS signals (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id       TEXT NOT NULL,
		symbol       TEXT NOT NULL,
		bar_ts       DATETIME NOT NULL,
		action       TEXT NOT NULL,
		confidence   INTEGER NOT NULL,
		reasoning    TEXT,
		entry_price  REAL,
		stop_loss    REAL,
		take_profit  REAL,
		rr_ratio     REAL,
		atr          REAL,
		timeframe    TEXT,
		break_type   TEXT,
		created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_signals_run ON signals(run_id);
	CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol);
	CREATE INDEX IF NOT EXISTS idx_signals_created ON signals(created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal schema: %w", err)
	}

	log.Printf("[journal] opened signal journal at %s", dbPath)
	return &Journal{db: db}, nil
}

// RecordSignal persists one evaluated signal under a scan run ID.
func (j *Journal) RecordSignal(runID string, sig model.TradeSignal) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.Exec(
		`INSERT INTO signals (run_id, symbol, bar_ts, action, confidence, reasoning,
		                      entry_price, stop_loss, take_profit, rr_ratio, atr, timeframe, break_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		sig.Symbol,
		sig.TS.Format(time.RFC3339),
		string(sig.Action),
		sig.Confidence,
		sig.Reason(),
		nullable(sig.EntryPrice),
		nullable(sig.StopLoss),
		nullable(sig.TakeProfit),
		sig.RiskRewardRatio,
		sig.ATR,
		sig.Timeframe,
		string(sig.StructureBreakType),
	)
	return err
}

// SignalRecord is one row from the signals table.
type SignalRecord struct {
	ID         int64   `json:"id"`
	RunID      string  `json:"run_id"`
	Symbol     string  `json:"symbol"`
	BarTS      string  `json:"bar_ts"`
	Action     string  `json:"action"`
	Confidence int     `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	RRRatio    float64 `json:"rr_ratio"`
}

// GetSignals returns the last N journaled signals, newest first.
func (j *Journal) GetSignals(limit int) ([]SignalRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.Query(
		`SELECT id, run_id, symbol, bar_ts, action, confidence, COALESCE(reasoning, ''), COALESCE(rr_ratio, 0)
		 FROM signals ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal query: %w", err)
	}
	defer rows.Close()

	var out []SignalRecord
	for rows.Next() {
		var rec SignalRecord
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Symbol, &rec.BarTS,
			&rec.Action, &rec.Confidence, &rec.Reasoning, &rec.RRRatio); err != nil {
			return nil, fmt.Errorf("journal scan: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func nullable(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
