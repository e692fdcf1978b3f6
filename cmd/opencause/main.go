// Command opencause is the CLI for the event-to-insight pipeline.
//
// Usage:
//
//	opencause                  Show help
//	opencause run              Run the pipeline on the configured schedule
//	opencause once             Run a single pipeline pass and exit
//	opencause insights         List stored insights for a business model
//	opencause map              Map a single feed against a business model (debug)
package main

import (
	"fmt"
	"os"

	"github.com/nabheet/opencausenx/internal/logging"
)

const usage = `opencause — world events mapped to business impact

Usage:
  opencause <command> [flags]

Commands:
  run         Run the pipeline on the configured schedule (Ctrl-C to stop)
  once        Run a single pipeline pass and exit
  insights    List stored insights for a business model
  map         Fetch one feed and map it against a business model (debug)

Configuration lives at ~/.opencause/config.json; business models are
JSON files listed there or passed with -business.

Environment:
  OPENAI_API_KEY   Enables the OpenAI explainer when no provider is configured
  OLLAMA_HOST      Enables the Ollama explainer when no provider is configured

Run 'opencause <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "opencause: logging init: %v\n", err)
	}
	defer logging.Close()

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "run":
		runPipeline(true)
	case "once":
		runPipeline(false)
	case "insights":
		runInsights()
	case "map":
		runMap()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "opencause: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
