// Package feed simulates a live curve source. Each tick it nudges a
// few pillars of every tracked curve by a basis point or so and
// publishes the whole replacement curve as a stream update.
package feed

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/openquant/pricing-service/internal/storage"
)

// Publisher is the sink for simulated curve ticks. The pricing service
// satisfies it.
type Publisher interface {
	PublishCurveUpdate(update *storage.CurveUpdate) error
}

type curveState struct {
	pillars []float64
	rates   []float64
}

// Simulator drives a random walk over a set of zero curves.
type Simulator struct {
	publisher Publisher
	opts      *SimulatorOptions
	rng       *rand.Rand
	mu        sync.Mutex
	curves    map[string]*curveState
	order     []string
	seq       int64
}

// SimulatorOptions provides configuration for the feed simulator
type SimulatorOptions struct {
	Interval      time.Duration
	TickBumpBP    float64
	EnableLogging bool
	Seed          int64
}

// DefaultSimulatorOptions returns sensible default options
func DefaultSimulatorOptions() *SimulatorOptions {
	return &SimulatorOptions{
		Interval:      5 * time.Second,
		TickBumpBP:    1.0,
		EnableLogging: true,
		Seed:          time.Now().UnixNano(),
	}
}

// SimulatorOption is a function that configures simulator options
type SimulatorOption func(*SimulatorOptions)

func WithInterval(interval time.Duration) SimulatorOption {
	return func(opts *SimulatorOptions) {
		opts.Interval = interval
	}
}

func WithTickBumpBP(bp float64) SimulatorOption {
	return func(opts *SimulatorOptions) {
		opts.TickBumpBP = bp
	}
}

func WithLogging(enabled bool) SimulatorOption {
	return func(opts *SimulatorOptions) {
		opts.EnableLogging = enabled
	}
}

// WithSeed fixes the random walk, which keeps tests deterministic.
func WithSeed(seed int64) SimulatorOption {
	return func(opts *SimulatorOptions) {
		opts.Seed = seed
	}
}

// NewSimulator creates a feed simulator publishing to the given sink.
func NewSimulator(publisher Publisher, options ...SimulatorOption) *Simulator {
	opts := DefaultSimulatorOptions()
	for _, option := range options {
		option(opts)
	}
	return &Simulator{
		publisher: publisher,
		opts:      opts,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		curves:    make(map[string]*curveState),
	}
}

// Track registers a curve with its starting pillars and rates. The
// walk evolves from there.
func (s *Simulator) Track(name string, pillars, ratesCC []float64) error {
	if len(pillars) == 0 || len(pillars) != len(ratesCC) {
		return fmt.Errorf("curve %q: need matching non-empty pillars and rates", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.curves[name]; !ok {
		s.order = append(s.order, name)
	}
	state := &curveState{
		pillars: append([]float64(nil), pillars...),
		rates:   append([]float64(nil), ratesCC...),
	}
	s.curves[name] = state
	return nil
}

// Tick performs one random-walk step over every tracked curve and
// publishes the results. Between two and four pillars move per curve,
// each by up to ±TickBumpBP.
func (s *Simulator) Tick() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range s.order {
		state := s.curves[name]

		n := 2 + s.rng.Intn(3)
		if n > len(state.rates) {
			n = len(state.rates)
		}
		for i := 0; i < n; i++ {
			idx := s.rng.Intn(len(state.rates))
			bump := (s.rng.Float64()*2 - 1) * s.opts.TickBumpBP / 10000.0
			state.rates[idx] += bump
		}

		s.seq++
		update := &storage.CurveUpdate{
			Curve:       name,
			Pillars:     append([]float64(nil), state.pillars...),
			ZeroRatesCC: append([]float64(nil), state.rates...),
			Seq:         s.seq,
			PublishedAt: time.Now().UTC(),
		}
		if err := s.publisher.PublishCurveUpdate(update); err != nil {
			return fmt.Errorf("publish %q: %w", name, err)
		}
	}
	return nil
}

// Run ticks until the context is cancelled.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	s.log("🔄 Curve feed started (interval: %v, bump: %.2fbp, curves: %d)", s.opts.Interval, s.opts.TickBumpBP, len(s.order))

	for {
		select {
		case <-ctx.Done():
			s.log("🛑 Curve feed stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := s.Tick(); err != nil {
				s.log("❌ Feed tick failed: %v", err)
			}
		}
	}
}

func (s *Simulator) log(format string, args ...interface{}) {
	if s.opts.EnableLogging {
		fmt.Printf("[CurveFeed] "+format+"\n", args...)
	}
}
