package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nabheet/opencausenx/internal/causal"
	"github.com/nabheet/opencausenx/internal/config"
	"github.com/nabheet/opencausenx/internal/store"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)

	magnitudeStyles = map[causal.Magnitude]lipgloss.Style{
		causal.MagnitudeHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		causal.MagnitudeMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		causal.MagnitudeLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

func runInsights() {
	fs := flag.NewFlagSet("insights", flag.ExitOnError)
	modelID := fs.String("model", "", "Business model ID (required)")
	limit := fs.Int("limit", 20, "Max insights to show")
	full := fs.Bool("full", false, "Show full explanations")
	fs.Parse(os.Args[1:])

	if *modelID == "" {
		fatal("-model is required")
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}

	st, err := store.Open(cfg.StorePath())
	if err != nil {
		fatal("open store: %v", err)
	}
	defer st.Close()

	insights, err := st.GetInsights(*modelID, *limit)
	if err != nil {
		fatal("load insights: %v", err)
	}
	if len(insights) == 0 {
		fmt.Printf("no insights for business model %q\n", *modelID)
		return
	}

	for _, ins := range insights {
		mag := magnitudeStyles[ins.Mapping.Magnitude]
		fmt.Printf("%s  %s %s\n",
			titleStyle.Render(ins.Title),
			mag.Render(string(ins.Mapping.Magnitude)),
			dimStyle.Render(fmt.Sprintf("conf %.2f", ins.Confidence)))
		fmt.Printf("  %s\n", ins.Summary)
		if *full {
			fmt.Println(dimStyle.Render(indent(ins.Explanation, "  ")))
		}
		fmt.Println()
	}
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n"+prefix)
}
