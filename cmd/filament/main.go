package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "filament",
		Short: "Fine-grained reactive rendering for Go",
		Long: `Filament renders live views from a signal graph.

State lives in signals on the server; bindings mutate the client DOM
directly over a binary op stream. No virtual DOM, no tree diffing.

  • Signals, memos and effects with glitch-free batching
  • Static HTML rendering for first paint and export
  • Live sessions over WebSocket with a thin JS mirror
  • Prometheus metrics and OpenTelemetry tracing built in`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		publishCmd(),
		benchCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
