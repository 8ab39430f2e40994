// pricingd is the valuation service daemon and CLI.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openquant/pricing-service/api"
	"github.com/openquant/pricing-service/internal/config"
	"github.com/openquant/pricing-service/internal/feed"
	"github.com/openquant/pricing-service/internal/service"
	"github.com/openquant/pricing-service/internal/valuation"
	"github.com/openquant/pricing-service/pkg/blotter"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pricingd",
	Short: "pricingd is a curve-based valuation and risk service",
	Long: `pricingd prices zero coupon bonds, swaps, fx forwards, mortgages and
credit default swaps off zero and hazard curves, and computes
bump-and-reprice sensitivities (PV01, CS01, fx delta). It serves a
JSON API with a websocket curve stream and can simulate a live feed.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(feedCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pricingd %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pricing API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Stop()

		if err := svc.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}

		withDemo, _ := cmd.Flags().GetBool("demo-market")
		if withDemo {
			if err := svc.LoadMarket(demoMarket()); err != nil {
				return fmt.Errorf("failed to load demo market: %w", err)
			}
		}

		srv := api.NewServer(cfg, svc)
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("Listening on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().Bool("demo-market", false, "preload the built-in demo market")
}

// --- Feed Command ---

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Run the simulated curve feed",
	Long: `Run a random-walk curve feed against the configured store. Each tick
nudges a few pillars of every demo curve and publishes the replacement
curve to the update stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Stop()

		market := demoMarket()
		sim := feed.NewSimulator(svc,
			feed.WithInterval(time.Duration(cfg.Feed.IntervalSec)*time.Second),
			feed.WithTickBumpBP(cfg.Feed.TickBumpBP),
			feed.WithLogging(cfg.Service.EnableLogging),
		)
		for _, c := range market.Curves {
			if err := sim.Track(c.Name, c.Pillars, c.ZeroRatesCC); err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := sim.Run(ctx); err != context.Canceled {
			return err
		}
		return nil
	},
}

// --- Demo Command ---

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Price a demo portfolio and print the blotter",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Stop()

		if err := svc.Initialize(); err != nil {
			return err
		}
		if err := svc.LoadMarket(demoMarket()); err != nil {
			return err
		}
		market, err := svc.Market()
		if err != nil {
			return err
		}

		trades := []blotter.Trade{
			{
				Label:      "UST-2Y",
				Instrument: valuation.ZeroCouponBond{CurveName: "USD_DISC", Maturity: 2, Notional: 1_000_000},
				Measures:   []valuation.Measure{valuation.PV01Parallel{CurveName: "USD_DISC", BumpBP: 1}},
			},
			{
				Label:      "IRS-10MM",
				Instrument: valuation.FixedFloatSwap{CurveName: "USD_DISC", Notional: 10_000_000, FixedRate: 0.04, PayTimes: []float64{0.5, 1, 1.5, 2}},
				Measures:   []valuation.Measure{valuation.PV01Parallel{CurveName: "USD_DISC", BumpBP: 1}},
			},
			{
				Label:      "EURUSD-FWD",
				Instrument: valuation.FXForward{Pair: "EURUSD", BaseCurve: "EUR_DISC", QuoteCurve: "USD_DISC", Maturity: 1, NotionalBase: 5_000_000, Strike: 1.085},
				Measures:   []valuation.Measure{valuation.FXDelta{Pair: "EURUSD", BumpPct: 0.01}},
			},
			{
				Label:      "MORT-500K",
				Instrument: valuation.LevelPayMortgage{CurveName: "USD_DISC", Notional: 500_000, AnnualRate: 0.06, TermYears: 5, PaymentsPerYear: 12},
				Measures:   []valuation.Measure{valuation.PV01Parallel{CurveName: "USD_DISC", BumpBP: 1}},
			},
			{
				Label: "CDS-CORP",
				Instrument: valuation.CDS{
					DiscountCurve: "USD_DISC", SurvivalCurve: "CORP_HAZ",
					Notional: 10_000_000, PremiumRate: 0.01,
					PayTimes: []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5},
					Recovery: 0.4, ProtectionBuyer: true,
				},
				Measures: []valuation.Measure{valuation.CS01Parallel{HazardCurveName: "CORP_HAZ", BumpBP: 1}},
			},
		}

		rows, err := blotter.New().Price(cmd.Context(), market, trades)
		if err != nil {
			return err
		}

		fmt.Printf("%-12s %-18s %16s  %s\n", "LABEL", "KIND", "NPV", "RISK")
		for _, row := range rows {
			if row.Err != nil {
				fmt.Printf("%-12s %-18s %16s  error: %v\n", row.Label, row.Kind, "-", row.Err)
				continue
			}
			fmt.Printf("%-12s %-18s %16.2f  %v\n", row.Label, row.Kind, row.NPV, row.Measures)
		}
		fmt.Printf("\nPortfolio NPV: %.2f\n", blotter.Total(rows))
		return nil
	},
}

// --- Helpers ---

func newService() (*service.PricingService, error) {
	options := []service.ServiceOption{
		service.WithLogging(cfg.Service.EnableLogging),
		service.WithStreamPollInterval(time.Duration(cfg.Service.StreamPollIntervalSec) * time.Second),
	}
	if cfg.Redis.Addr != "" {
		options = append(options, service.WithRedisConfig(cfg.Redis.Addr))
	}
	return service.NewPricingService(options...)
}

// demoMarket is the market used by the demo, feed and --demo-market
// flows: USD and EUR discount curves, one corporate hazard curve and
// EURUSD spot.
func demoMarket() service.MarketInput {
	pillars := []float64{0.5, 1, 2, 5, 10}
	return service.MarketInput{
		Curves: []service.CurveInput{
			{Name: "USD_DISC", Pillars: pillars, ZeroRatesCC: []float64{0.045, 0.043, 0.040, 0.038, 0.037}},
			{Name: "EUR_DISC", Pillars: pillars, ZeroRatesCC: []float64{0.040, 0.038, 0.036, 0.034, 0.033}},
		},
		HazardCurves: []service.HazardCurveInput{
			{Name: "CORP_HAZ", Pillars: pillars, Hazards: []float64{0.01, 0.01, 0.01, 0.01, 0.01}},
		},
		FXSpot: map[string]float64{"EURUSD": 1.08},
	}
}
