package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nabheet/opencausenx/internal/business"
	"github.com/nabheet/opencausenx/internal/causal"
	"github.com/nabheet/opencausenx/internal/ingest"
	"github.com/nabheet/opencausenx/internal/insight"
)

// runMap fetches a single feed and prints what the causal engine makes
// of it against one business model. Nothing is stored - this is the
// debug loop for tuning rules, classification, and business models.
func runMap() {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	businessFile := fs.String("business", "", "Business model JSON file (required)")
	feedURL := fs.String("feed", "", "Feed URL to fetch (required)")
	all := fs.Bool("all", false, "Include non-relevant events")
	fs.Parse(os.Args[1:])

	if *businessFile == "" || *feedURL == "" {
		fatal("-business and -feed are required")
	}

	model, err := business.LoadFile(*businessFile)
	if err != nil {
		fatal("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fetcher := ingest.NewFetcher(30 * time.Second)
	events, err := fetcher.Fetch(ctx, ingest.Source{Name: "debug", URL: *feedURL, Weight: 1.0})
	if err != nil {
		fatal("fetch: %v", err)
	}
	fmt.Printf("fetched %d events from %s\n\n", len(events), *feedURL)

	mapper := causal.NewMapper()
	relevant := 0
	for i := range events {
		m, err := mapper.MapEvent(&events[i], model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  error: %v\n", err)
			continue
		}
		if !m.Relevant {
			if *all {
				fmt.Printf("-- not relevant: %s\n   %s\n\n", events[i].Summary, m.RelevanceReason)
			}
			continue
		}
		relevant++
		fmt.Printf("== [%s] %s\n", events[i].Category, events[i].Summary)
		fmt.Println(indent(insight.TemplateExplanation(m), "   "))
		fmt.Println()
	}

	fmt.Printf("%d of %d events relevant to %s\n", relevant, len(events), model.Name)
}
