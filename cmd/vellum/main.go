package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vellum/internal/version"
)

// errFailed is returned by commands that already printed diagnostics.
var errFailed = errors.New("compilation failed")

// newRootCmd builds the command tree with its persistent flags.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vellum",
		Short:         "vellum ABI interface compiler",
		Long:          `vellum checks interface schemas and generates C, C++ and Python bindings for them`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newCompileCmd())
	rootCmd.AddCommand(newSymbolsCmd())
	rootCmd.AddCommand(newLowerCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("format", "pretty", "diagnostics format (pretty|json|short)")
	rootCmd.PersistentFlags().Bool("with-notes", true, "include diagnostic notes in output")
	rootCmd.PersistentFlags().Bool("fullpath", false, "emit absolute file paths in diagnostics")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers (0=auto)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|phase|detail|debug)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	return rootCmd
}

// main runs the root command; any error exits with status 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "vellum: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
