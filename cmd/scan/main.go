// cmd/scan runs the signal pipeline across a set of symbols, loading bar
// history from CSV files, SQLite, or the Redis cache, and journals the
// emitted signals.
//
// Usage:
//
//	go run ./cmd/scan --csv-dir=data/bars --symbols=BTCUSDT,ETHUSDT
//	go run ./cmd/scan --db=data/bars.db --timeframe=scalp --journal=data/signals.db
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"structure-signalsv1/config"
	"structure-signalsv1/internal/barcsv"
	"structure-signalsv1/internal/engine"
	"structure-signalsv1/internal/logger"
	"structure-signalsv1/internal/metrics"
	"structure-signalsv1/internal/model"
	"structure-signalsv1/internal/scanner"
	redisstore "structure-signalsv1/internal/store/redis"
	sqlitestore "structure-signalsv1/internal/store/sqlite"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	csvDir := flag.String("csv-dir", "", "Directory of <symbol>.csv bar files")
	dbPath := flag.String("db", "", "SQLite bars database (overrides SQLITE_PATH)")
	useRedis := flag.Bool("redis", false, "Load bars from the Redis cache and publish latest signals")
	symbolsFlag := flag.String("symbols", "", "Comma-separated symbols (default: all found in the source)")
	timeframe := flag.String("timeframe", "", "swing or scalp (overrides TIMEFRAME)")
	minConfidence := flag.Int("min-confidence", -1, "Global confidence gate (overrides MIN_CONFIDENCE)")
	workers := flag.Int("workers", 0, "Parallel evaluations (overrides SCAN_WORKERS)")
	journalPath := flag.String("journal", "", "Signal journal SQLite path (empty = no journaling)")
	metricsAddr := flag.String("metrics-addr", "", "Serve /metrics on this address (empty = off)")
	flag.Parse()

	cfg := config.Load()
	logger.Init("scan", slog.LevelInfo)

	engCfg := engine.DefaultConfig()
	engCfg.Swing.Lookback = cfg.SwingLookback
	engCfg.Swing.MinStrength = cfg.MinSwingStrength
	engCfg.Break.MinBreak = cfg.MinBreak
	engCfg.VolumeConfirmRatio = cfg.VolumeConfirmRatio
	engCfg.MinConfidence = cfg.MinConfidence
	engCfg.Timeframe = cfg.Timeframe
	if *timeframe != "" {
		engCfg.Timeframe = *timeframe
	}
	if *minConfidence >= 0 {
		engCfg.MinConfidence = *minConfidence
	}
	if engCfg.Timeframe != engine.TimeframeSwing && engCfg.Timeframe != engine.TimeframeScalp {
		log.Fatalf("[scan] invalid timeframe %q (want swing or scalp)", engCfg.Timeframe)
	}

	nWorkers := cfg.Workers
	if *workers > 0 {
		nWorkers = *workers
	}

	ctx := context.Background()
	runID := uuid.New().String()
	ctx = logger.WithScanID(ctx, runID)

	var store *redisstore.Store
	if *useRedis {
		var err error
		store, err = redisstore.New(redisstore.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err != nil {
			log.Fatalf("[scan] redis connect failed: %v", err)
		}
		defer store.Close()
	}

	jobs, err := loadJobs(ctx, *csvDir, *dbPath, cfg, store, parseSymbols(*symbolsFlag))
	if err != nil {
		log.Fatalf("[scan] %v", err)
	}
	if len(jobs) == 0 {
		log.Fatal("[scan] no symbols to evaluate")
	}

	var journal *sqlitestore.Journal
	if *journalPath != "" {
		journal, err = sqlitestore.NewJournal(*journalPath)
		if err != nil {
			log.Fatalf("[scan] journal open failed: %v", err)
		}
		defer journal.Close()
	}

	sc := scanner.New(engCfg, nWorkers)
	if *metricsAddr != "" {
		m := metrics.NewMetrics()
		sc.OnEvaluated = func(o scanner.Outcome) {
			if o.Err != nil {
				m.ScanErrors.Inc()
				return
			}
			m.ObserveEval(string(o.Result.Signal.Action), o.Bars, o.Elapsed)
		}
		go func() {
			if err := metrics.Serve(*metricsAddr); err != nil {
				log.Printf("[scan] metrics server: %v", err)
			}
		}()
	}

	slog.Info("scan starting", append([]any{
		slog.Int("symbols", len(jobs)),
		slog.Int("workers", nWorkers),
		slog.String("timeframe", engCfg.Timeframe),
	}, logger.LogWithScan(ctx)...)...)

	outcomes := sc.Scan(ctx, jobs)

	actionable := 0
	for _, o := range outcomes {
		if o.Err != nil {
			slog.Warn("evaluation rejected", slog.String("symbol", o.Symbol), slog.String("err", o.Err.Error()))
			continue
		}
		sig := o.Result.Signal
		if sig.Action != model.ActionWait {
			actionable++
		}
		fmt.Printf("%-12s %-4s conf=%3d  %s\n", o.Symbol, sig.Action, sig.Confidence, sig.Reason())

		if journal != nil {
			if err := journal.RecordSignal(runID, sig); err != nil {
				log.Printf("[scan] journal write failed for %s: %v", o.Symbol, err)
			}
		}
		if store != nil {
			if err := store.WriteLatestSignal(ctx, sig); err != nil {
				log.Printf("[scan] redis signal write failed for %s: %v", o.Symbol, err)
			}
		}
	}

	slog.Info("scan finished", append([]any{
		slog.Int("evaluated", len(outcomes)),
		slog.Int("actionable", actionable),
	}, logger.LogWithScan(ctx)...)...)
}

// loadJobs resolves the bar source in priority order: CSV dir, SQLite, Redis.
func loadJobs(ctx context.Context, csvDir, dbPath string, cfg *config.Config, store *redisstore.Store, symbols []string) ([]scanner.Job, error) {
	switch {
	case csvDir != "":
		return loadFromCSV(csvDir, symbols)
	case dbPath != "" || !fileMissing(cfg.SQLitePath):
		path := dbPath
		if path == "" {
			path = cfg.SQLitePath
		}
		return loadFromSQLite(path, symbols)
	case store != nil:
		return loadFromRedis(ctx, store, symbols)
	default:
		return nil, fmt.Errorf("no bar source: pass --csv-dir, --db, or --redis")
	}
}

func loadFromCSV(dir string, symbols []string) ([]scanner.Job, error) {
	if len(symbols) == 0 {
		matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			symbols = append(symbols, strings.TrimSuffix(filepath.Base(m), ".csv"))
		}
	}
	var jobs []scanner.Job
	for _, sym := range symbols {
		bars, err := barcsv.Load(filepath.Join(dir, sym+".csv"), sym)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", sym, err)
		}
		jobs = append(jobs, scanner.Job{Symbol: sym, Bars: bars})
	}
	return jobs, nil
}

func loadFromSQLite(path string, symbols []string) ([]scanner.Job, error) {
	reader, err := sqlitestore.NewReader(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	if len(symbols) == 0 {
		symbols, err = reader.Symbols()
		if err != nil {
			return nil, err
		}
	}
	var jobs []scanner.Job
	for _, sym := range symbols {
		bars, err := reader.ReadBars(sym, 0)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", sym, err)
		}
		jobs = append(jobs, scanner.Job{Symbol: sym, Bars: bars})
	}
	return jobs, nil
}

func loadFromRedis(ctx context.Context, store *redisstore.Store, symbols []string) ([]scanner.Job, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("--redis requires --symbols")
	}
	var jobs []scanner.Job
	for _, sym := range symbols {
		bars, found, err := store.ReadBars(ctx, sym)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", sym, err)
		}
		if !found {
			log.Printf("[scan] %s: no cached bars, skipping", sym)
			continue
		}
		jobs = append(jobs, scanner.Job{Symbol: sym, Bars: bars})
	}
	return jobs, nil
}

func parseSymbols(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fileMissing(path string) bool {
	_, err := os.Stat(path)
	return err != nil
}
