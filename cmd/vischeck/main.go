package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vischeck/internal/version"
)

// exitError carries a process exit status through cobra without printing.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

var rootCmd = &cobra.Command{
	Use:           "vischeck",
	Short:         "Privacy checker for resolved-program snapshots",
	Long:          `vischeck enforces item visibility on resolved-program snapshots (*.vsnap) and reports private fields, methods and variants used outside their module`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		stop, err := setupProfiling(cmd)
		if err != nil {
			cleanup()
			return err
		}
		cleanups = append(cleanups, stop, cleanup)
		return nil
	},
}

// cleanups run after the command finishes, including on error.
var cleanups []func()

func runCleanups() {
	for _, fn := range cleanups {
		fn()
	}
	cleanups = nil
}

func init() {
	// --version от cobra
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off); default from vischeck.toml or auto")
	rootCmd.PersistentFlags().Bool("timings", false, "show per-unit phase timings")
	rootCmd.PersistentFlags().Int("max-diagnostics", -1, "maximum diagnostics kept per unit (0 = unlimited); default from vischeck.toml")
	rootCmd.PersistentFlags().String("trace", "", "write compiler trace to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the command line and maps the outcome to a process exit status.
func execute(args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	runCleanups()
	if err == nil {
		return 0
	}
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(rootCmd.ErrOrStderr(), "vischeck: %v\n", err)
	return 2
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
