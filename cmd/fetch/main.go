package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolioadvisor/internal/allocation"
	"portfolioadvisor/internal/app"
	"portfolioadvisor/internal/config"
	"portfolioadvisor/internal/logger"
)

type options struct {
	configPath string
	verbose    bool
	offline    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "fetch",
		Short:        "Query prices and portfolio recommendations from the command line",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json or config.toml")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")
	root.PersistentFlags().BoolVar(&opts.offline, "offline", false, "skip the live price source")

	root.AddCommand(newPriceCmd(opts), newHistoryCmd(opts), newRecommendCmd(opts))
	return root
}

// withApp loads config, builds the services and runs fn against them.
func withApp(cmd *cobra.Command, opts *options, fn func(ctx context.Context, a *app.App) (any, error)) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if opts.offline {
		cfg.Market.LiveEnabled = false
	}

	lg := zap.NewNop().Sugar()
	if opts.verbose {
		if lg, err = logger.New("debug", "dev"); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	out, err := fn(ctx, a)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func newPriceCmd(opts *options) *cobra.Command {
	var asset, location string
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Resolve the current price of an asset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) (any, error) {
				return a.Advisor.Price(ctx, asset, location), nil
			})
		},
	}
	cmd.Flags().StringVar(&asset, "asset", "gold", "asset name, e.g. gold or silver")
	cmd.Flags().StringVar(&location, "location", "", "country used in the search (default from config)")
	return cmd
}

func newHistoryCmd(opts *options) *cobra.Command {
	var asset, date string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Resolve the price of an asset on a past date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := time.Parse(time.DateOnly, date)
			if err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) (any, error) {
				return a.Advisor.HistoricalPrice(ctx, asset, d), nil
			})
		},
	}
	cmd.Flags().StringVar(&asset, "asset", "gold", "asset name")
	cmd.Flags().StringVar(&date, "date", time.Now().AddDate(0, 0, -30).Format(time.DateOnly), "date as YYYY-MM-DD")
	return cmd
}

func newRecommendCmd(opts *options) *cobra.Command {
	var (
		risk        string
		instruments []string
		amount      float64
		rateFlags   []string
		location    string
		userID      string
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend a portfolio allocation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			selected := make([]allocation.Instrument, 0, len(instruments))
			for _, s := range instruments {
				inst, err := allocation.ParseInstrument(s)
				if err != nil {
					return err
				}
				selected = append(selected, inst)
			}
			rates, err := parseRates(rateFlags)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) (any, error) {
				return a.Advisor.Recommend(ctx, advisorRequest(userID, risk, selected, amount, rates, location))
			})
		},
	}
	cmd.Flags().StringVar(&risk, "risk", "medium", "risk preference: low, medium or high")
	cmd.Flags().StringSliceVar(&instruments, "instruments", []string{"FD", "SIP"}, "selected instruments (FD, Bank, SIP)")
	cmd.Flags().Float64Var(&amount, "amount", 100000, "investable amount")
	cmd.Flags().StringArrayVar(&rateFlags, "rate", nil, "annual rate override as INSTRUMENT=PERCENT, repeatable")
	cmd.Flags().StringVar(&location, "location", "", "country used for metal prices")
	cmd.Flags().StringVar(&userID, "user", "cli", "user id recorded with the recommendation")
	return cmd
}

// parseRates reads values such as "FD=6.5".
func parseRates(in []string) (allocation.Rates, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(allocation.Rates, len(in))
	for _, kv := range in {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--rate %q: want INSTRUMENT=PERCENT", kv)
		}
		inst, err := allocation.ParseInstrument(k)
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("--rate %q: %w", kv, err)
		}
		out[inst] = f
	}
	return out, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
