// Package blotter prices a portfolio of trades concurrently and
// collects NPVs and risk measures into rows, one per trade.
package blotter

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/openquant/pricing-service/internal/valuation"
)

// Trade is one blotter line: a labelled instrument plus the measures
// to evaluate alongside its NPV.
type Trade struct {
	Label      string
	Instrument valuation.Instrument
	Measures   []valuation.Measure
}

// Row is the priced result for one trade. A failed trade carries its
// error and zero values, the rest of the portfolio still prices.
type Row struct {
	Label    string
	Kind     string
	NPV      float64
	Measures map[string]float64
	Err      error
}

// Blotter prices trades against a market using a shared engine.
type Blotter struct {
	engine      *valuation.Engine
	concurrency int
}

// Option configures a Blotter.
type Option func(*Blotter)

// WithConcurrency caps the number of trades priced at once.
func WithConcurrency(n int) Option {
	return func(b *Blotter) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithEngine swaps the default engine, for portfolios that carry
// custom instruments with their own pricers.
func WithEngine(engine *valuation.Engine) Option {
	return func(b *Blotter) {
		b.engine = engine
	}
}

// New creates a Blotter with the default engine and a concurrency of 8.
func New(options ...Option) *Blotter {
	b := &Blotter{
		engine:      valuation.NewDefaultEngine(),
		concurrency: 8,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// Price values every trade against the market. Rows come back in
// trade order. Individual pricing failures land in their row, the
// only error returned is context cancellation.
func (b *Blotter) Price(ctx context.Context, market *valuation.Market, trades []Trade) ([]Row, error) {
	rows := make([]Row, len(trades))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, trade := range trades {
		i, trade := i, trade
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = b.priceOne(trade, market)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func (b *Blotter) priceOne(trade Trade, market *valuation.Market) Row {
	row := Row{
		Label: trade.Label,
		Kind:  trade.Instrument.Kind(),
	}

	npv, err := b.engine.Price(trade.Instrument, market)
	if err != nil {
		row.Err = err
		return row
	}
	row.NPV = npv

	if len(trade.Measures) > 0 {
		row.Measures = make(map[string]float64, len(trade.Measures))
		for _, m := range trade.Measures {
			v, err := m.Compute(trade.Instrument, market)
			if err != nil {
				row.Err = err
				return row
			}
			row.Measures[m.Name()] = v
		}
	}
	return row
}

// Total sums the NPVs of the rows that priced cleanly.
func Total(rows []Row) float64 {
	var total float64
	for _, row := range rows {
		if row.Err == nil {
			total += row.NPV
		}
	}
	return total
}
