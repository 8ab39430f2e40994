package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/openquant/pricing-service/internal/storage"
	"github.com/openquant/pricing-service/internal/valuation"
)

// PricingService is a self-managing valuation service: it holds the
// live market snapshot, folds streamed curve updates into it, and
// prices instruments against it on demand.
type PricingService struct {
	store       storage.Store
	engine      *valuation.Engine
	opts        *ServiceOptions
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.RWMutex
	market      *valuation.Market
	revision    int
	asOf        time.Time
	cursor      string
	initialized bool
	updateHook  func(update *CurveUpdate)
}

// ServiceOptions provides configuration for the pricing service
type ServiceOptions struct {
	RedisAddr          string        `json:"redisAddr"`
	StreamPollInterval time.Duration `json:"streamPollInterval"`
	EnableLogging      bool          `json:"enableLogging"`
}

// DefaultServiceOptions returns sensible default options
func DefaultServiceOptions() *ServiceOptions {
	return &ServiceOptions{
		StreamPollInterval: 2 * time.Second,
		EnableLogging:      true,
	}
}

// NewPricingService creates a new self-managing pricing service. With
// an empty RedisAddr it runs on an in-memory store, which is the mode
// tests and single-process embedders use.
func NewPricingService(options ...ServiceOption) (*PricingService, error) {
	opts := DefaultServiceOptions()

	// Apply options
	for _, option := range options {
		option(opts)
	}

	var store storage.Store
	if opts.RedisAddr != "" {
		redisStore, err := storage.NewRedisStore(opts.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = redisStore
	} else {
		store = storage.NewMemoryStore()
	}

	ctx, cancel := context.WithCancel(context.Background())

	ps := &PricingService{
		store:  store,
		engine: valuation.NewDefaultEngine(),
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
	}

	return ps, nil
}

// ServiceOption is a function that configures service options
type ServiceOption func(*ServiceOptions)

// WithRedisConfig sets Redis configuration
func WithRedisConfig(addr string) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.RedisAddr = addr
	}
}

func WithStreamPollInterval(interval time.Duration) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.StreamPollInterval = interval
	}
}

// WithLogging enables/disables logging
func WithLogging(enabled bool) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.EnableLogging = enabled
	}
}

// Initialize starts the service: restores the market from the store
// backup when one exists and starts the curve stream scheduler.
func (ps *PricingService) Initialize() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.initialized {
		return nil
	}

	ps.log("🚀 Initializing Pricing Service...")

	if err := ps.restoreFromBackup(); err != nil {
		ps.log("⚠️ Warning: Failed to restore market from backup: %v", err)
	}

	ps.startScheduler()

	ps.initialized = true
	ps.log("✅ Pricing Service initialized successfully")
	return nil
}

func (ps *PricingService) restoreFromBackup() error {
	snapshot, err := ps.store.LoadSnapshot()
	if err != nil {
		return err
	}
	if snapshot == nil {
		ps.log("📥 No market backup found, waiting for LoadMarket")
		return nil
	}

	market, err := marketFromSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("failed to rebuild market from backup: %w", err)
	}

	ps.market = market
	ps.revision = snapshot.Revision
	ps.asOf = snapshot.AsOf
	ps.log("✅ Restored market from backup (revision: %d, %d curves)", snapshot.Revision, len(snapshot.Curves)+len(snapshot.HazardCurves))
	return nil
}

// startScheduler starts the background goroutine that keeps the live
// market in sync with the curve update stream.
func (ps *PricingService) startScheduler() {
	ps.log("⏰ Starting curve stream scheduler...")

	ps.wg.Add(1)
	go ps.streamScheduler()

	ps.log("✅ Scheduler started")
}

func (ps *PricingService) streamScheduler() {
	defer ps.wg.Done()

	// Jitter (±10% of interval) so replicas don't poll in lockstep
	jitteredInterval := ps.addJitter(ps.opts.StreamPollInterval, 0.1)
	ticker := time.NewTicker(jitteredInterval)
	defer ticker.Stop()

	ps.log("🔄 Curve stream scheduler started (base interval: %v, jittered: %v)", ps.opts.StreamPollInterval, jitteredInterval)

	for {
		select {
		case <-ps.ctx.Done():
			ps.log("🛑 Curve stream scheduler stopped")
			return
		case <-ticker.C:
			ps.drainStream()
		}
	}
}

// drainStream reads pending curve updates and folds each one into the
// live market.
func (ps *PricingService) drainStream() {
	ps.mu.RLock()
	cursor := ps.cursor
	ps.mu.RUnlock()

	updates, next, err := ps.store.ReadCurveUpdates(cursor)
	if err != nil {
		ps.log("❌ Failed to read curve updates: %v", err)
		return
	}
	if len(updates) == 0 {
		return
	}

	for _, u := range updates {
		if err := ps.applyCurveUpdate(&u); err != nil {
			ps.log("❌ Failed to apply curve update for %s: %v", u.Curve, err)
		}
	}

	ps.mu.Lock()
	ps.cursor = next
	ps.mu.Unlock()

	ps.log("✅ Applied %d curve updates", len(updates))
}

// applyCurveUpdate swaps one curve in the live market for its streamed
// replacement. Derivation is copy-on-write, in-flight pricings keep
// the snapshot they started with.
func (ps *PricingService) applyCurveUpdate(update *CurveUpdate) error {
	curve, err := valuation.NewZeroRateCurve(update.Curve, update.Pillars, update.ZeroRatesCC)
	if err != nil {
		return err
	}

	ps.mu.Lock()
	if ps.market == nil {
		ps.mu.Unlock()
		return fmt.Errorf("no market loaded")
	}
	ps.market = ps.market.WithCurve(update.Curve, curve)
	ps.revision++
	ps.asOf = update.PublishedAt
	hook := ps.updateHook
	ps.mu.Unlock()

	if hook != nil {
		hook(update)
	}
	return nil
}

// SetUpdateHook registers a callback invoked after each applied curve
// update. The serving layer uses it to fan updates out to websocket
// subscribers.
func (ps *PricingService) SetUpdateHook(hook func(update *CurveUpdate)) {
	ps.mu.Lock()
	ps.updateHook = hook
	ps.mu.Unlock()
}

// LoadMarket replaces the live market and writes a fresh backup to the
// store.
func (ps *PricingService) LoadMarket(input MarketInput) error {
	market, err := buildMarket(input)
	if err != nil {
		return err
	}

	ps.mu.Lock()
	ps.market = market
	ps.revision++
	ps.asOf = time.Now().UTC()
	revision := ps.revision
	asOf := ps.asOf
	ps.mu.Unlock()

	snapshot := snapshotFromMarket(market, revision, asOf)
	if err := ps.store.SaveSnapshot(snapshot); err != nil {
		ps.log("⚠️ Warning: failed to store market backup: %v", err)
		// Pricing continues from memory regardless
	}

	ps.log("✅ Loaded market (revision: %d, curves: %d, fx pairs: %d)",
		revision, len(input.Curves)+len(input.HazardCurves), len(input.FXSpot))
	return nil
}

// Market returns the current market snapshot. Callers can price
// against it directly without holding up updates.
func (ps *PricingService) Market() (*valuation.Market, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if ps.market == nil {
		return nil, fmt.Errorf("no market loaded - call LoadMarket first")
	}
	return ps.market, nil
}

// Info summarizes the live market for health endpoints.
func (ps *PricingService) Info() (*MarketInfo, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if ps.market == nil {
		return nil, fmt.Errorf("no market loaded - call LoadMarket first")
	}
	return &MarketInfo{
		CurveNames: ps.market.CurveNames(),
		FXPairs:    ps.market.FXPairs(),
		Revision:   ps.revision,
		AsOf:       ps.asOf,
	}, nil
}

// PublishCurveUpdate pushes one curve tick onto the stream. Feed
// processes use this, the scheduler picks it up on the consumer side.
func (ps *PricingService) PublishCurveUpdate(update *CurveUpdate) error {
	if update.PublishedAt.IsZero() {
		update.PublishedAt = time.Now().UTC()
	}
	return ps.store.PublishCurveUpdate(update)
}

// Stop gracefully shuts down the service
func (ps *PricingService) Stop() {
	ps.log("🛑 Stopping Pricing Service...")

	ps.cancel()  // Signal all goroutines to stop
	ps.wg.Wait() // Wait for all goroutines to finish

	ps.store.Close()

	ps.log("✅ Pricing Service stopped")
}

func (ps *PricingService) log(format string, args ...interface{}) {
	if ps.opts.EnableLogging {
		// Use fmt.Printf to write to stdout (INFO level in GCP) instead of stderr (ERROR level)
		fmt.Printf("[PricingService] "+format+"\n", args...)
	}
}

// addJitter adds random jitter to prevent replicas polling in lockstep
// jitterPercent should be between 0.0-1.0 (e.g., 0.1 = ±10%)
func (ps *PricingService) addJitter(duration time.Duration, jitterPercent float64) time.Duration {
	if jitterPercent <= 0 {
		return duration
	}

	jitterRange := float64(duration) * jitterPercent
	jitter := (rand.Float64() - 0.5) * 2 * jitterRange

	result := time.Duration(float64(duration) + jitter)
	if result <= 0 {
		result = duration / 2
	}

	return result
}
