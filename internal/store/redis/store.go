// Package redis caches bar series and latest signals in Redis so repeated
// scans of the same symbols skip the upstream data source. The engine
// itself never touches this — it receives a plain bar slice.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"structure-signalsv1/internal/model"

	goredis "github.com/go-redis/redis/v8"
)

const defaultBarsTTL = 30 * time.Minute

// Config configures the Redis store.
type Config struct {
	Addr     string // e.g. "localhost:6379"
	Password string
	DB       int
}

// Store reads and writes bar series and latest-signal snapshots.
type Store struct {
	client *goredis.Client
}

// Client returns the underlying Redis client for health checks.
func (s *Store) Client() *goredis.Client { return s.client }

// New creates a Store and pings the server.
func New(cfg Config) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[redis] connected to %s", cfg.Addr)
	return &Store{client: client}, nil
}

func barsKey(symbol string) string   { return "bars:" + symbol }
func signalKey(symbol string) string { return "signal:latest:" + symbol }

// WriteBars caches a bar series for a symbol with a TTL (0 = default 30m).
func (s *Store) WriteBars(ctx context.Context, symbol string, bars []model.Bar, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultBarsTTL
	}
	payload, err := json.Marshal(bars)
	if err != nil {
		return fmt.Errorf("redis marshal bars: %w", err)
	}
	if err := s.client.Set(ctx, barsKey(symbol), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", barsKey(symbol), err)
	}
	return nil
}

// ReadBars loads a cached bar series. found is false on a cache miss.
func (s *Store) ReadBars(ctx context.Context, symbol string) (bars []model.Bar, found bool, err error) {
	payload, err := s.client.Get(ctx, barsKey(symbol)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", barsKey(symbol), err)
	}
	if err := json.Unmarshal(payload, &bars); err != nil {
		return nil, false, fmt.Errorf("redis unmarshal bars: %w", err)
	}
	return bars, true, nil
}

// WriteLatestSignal stores the most recent signal for a symbol.
func (s *Store) WriteLatestSignal(ctx context.Context, sig model.TradeSignal) error {
	if err := s.client.Set(ctx, signalKey(sig.Symbol), sig.JSON(), 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", signalKey(sig.Symbol), err)
	}
	return nil
}

// ReadLatestSignal loads the most recent signal for a symbol.
func (s *Store) ReadLatestSignal(ctx context.Context, symbol string) (sig model.TradeSignal, found bool, err error) {
	payload, err := s.client.Get(ctx, signalKey(symbol)).Bytes()
	if err == goredis.Nil {
		return sig, false, nil
	}
	if err != nil {
		return sig, false, fmt.Errorf("redis get %s: %w", signalKey(symbol), err)
	}
	if err := json.Unmarshal(payload, &sig); err != nil {
		return sig, false, fmt.Errorf("redis unmarshal signal: %w", err)
	}
	return sig, true, nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
