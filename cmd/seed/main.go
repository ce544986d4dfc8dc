package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"portfolioadvisor/internal/config"
	"portfolioadvisor/internal/history"
	"portfolioadvisor/internal/history/postgres"
	"portfolioadvisor/internal/logger"
)

func main() {
	var (
		cfgPath string
		dsn     string
		days    int
		endStr  string
		outPath string
	)
	flag.StringVar(&cfgPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json or config.toml (optional)")
	flag.StringVar(&dsn, "dsn", "", "postgres DSN; overrides history.dsn, JSON is written when neither is set")
	flag.IntVar(&days, "days", 0, "days of history to generate (default history.seed_days)")
	flag.StringVar(&endStr, "end", "", "generate up to the day before this date, YYYY-MM-DD (default today)")
	flag.StringVar(&outPath, "out", "-", "JSON output file when not writing to postgres")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg := logger.Must(cfg.Logging.Level, cfg.Logging.Env)
	defer func() { _ = lg.Sync() }()

	if days <= 0 {
		days = cfg.History.SeedDays
	}
	end := time.Now()
	if endStr != "" {
		if end, err = time.Parse(time.DateOnly, endStr); err != nil {
			lg.Fatalw("invalid -end", "error", err)
		}
	}
	if dsn == "" && cfg.History.Driver == "postgres" {
		dsn = cfg.History.DSN
	}

	records := history.Seed(history.DefaultSeeds, days, end)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if dsn != "" {
		if err := writePostgres(ctx, dsn, records, lg); err != nil {
			lg.Fatalw("seeding postgres failed", "error", err)
		}
		return
	}
	if err := writeJSON(outPath, records); err != nil {
		lg.Fatalw("writing seed data failed", "error", err)
	}
}

func writePostgres(ctx context.Context, dsn string, records []history.Record, lg *zap.SugaredLogger) error {
	db, err := postgres.NewDB(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := postgres.NewStore(db).Add(ctx, records...); err != nil {
		return err
	}
	lg.Infow("seeded price history", "records", len(records))
	return nil
}

func writeJSON(path string, records []history.Record) error {
	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
