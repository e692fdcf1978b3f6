package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nabheet/opencausenx/internal/business"
	"github.com/nabheet/opencausenx/internal/config"
	"github.com/nabheet/opencausenx/internal/coord"
	"github.com/nabheet/opencausenx/internal/explain"
	"github.com/nabheet/opencausenx/internal/ingest"
	"github.com/nabheet/opencausenx/internal/store"
)

// runPipeline handles both `run` (scheduled) and `once` (single pass).
func runPipeline(scheduled bool) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	businessFile := fs.String("business", "", "Business model JSON file (adds to configured models)")
	fs.Parse(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}

	models := loadModels(cfg, *businessFile)
	if len(models) == 0 {
		fatal("no business models configured; add one to %s or pass -business", config.ConfigPath())
	}

	st, err := store.Open(cfg.StorePath())
	if err != nil {
		fatal("open store: %v", err)
	}
	defer st.Close()

	explainer, err := explain.FromSettings(cfg.Explainer)
	if err != nil {
		fatal("configure explainer: %v", err)
	}

	fetcher := ingest.NewFetcher(time.Duration(cfg.Pipeline.FetchTimeoutSec) * time.Second)
	c := coord.New(st, fetcher, models, cfg.Sources, explainer, cfg.Pipeline.ExplainTopN)

	if !scheduled {
		stats, err := c.Run(context.Background())
		if err != nil {
			fatal("pipeline pass: %v", err)
		}
		fmt.Printf("events: %d new (%d fetch errors)\n", stats.NewEvents, stats.FetchErrors)
		fmt.Printf("insights: %d new, %d skipped\n", stats.NewInsights, stats.Skipped)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := c.Start(ctx, cfg.Pipeline.Schedule); err != nil {
		fatal("start scheduler: %v", err)
	}
	fmt.Printf("pipeline running on schedule %q (Ctrl-C to stop)\n", cfg.Pipeline.Schedule)

	<-ctx.Done()
	c.Wait()
}

// loadModels loads every configured business model plus an optional
// extra one from the command line.
func loadModels(cfg *config.Config, extra string) []*business.Model {
	paths := cfg.BusinessModelFiles
	if extra != "" {
		paths = append(paths, extra)
	}

	var models []*business.Model
	for _, path := range paths {
		m, err := business.LoadFile(path)
		if err != nil {
			fatal("%v", err)
		}
		models = append(models, m)
	}
	return models
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "opencause: "+format+"\n", args...)
	os.Exit(1)
}
