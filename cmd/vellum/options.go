package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vellum/internal/driver"
	"vellum/internal/emit/symbols"
	"vellum/internal/irpack"
	"vellum/internal/project"
)

// globalOptions are the persistent flags every command shares.
type globalOptions struct {
	color          bool
	format         string
	withNotes      bool
	fullPath       bool
	timings        bool
	maxDiagnostics int
	jobs           int
	jobsSet        bool
}

func readGlobalOptions(cmd *cobra.Command) (globalOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var opts globalOptions

	colorMode, err := flags.GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorMode) {
	case "on", "always":
		opts.color = true
	case "off", "never":
		opts.color = false
	case "auto", "":
		opts.color = os.Getenv("NO_COLOR") == "" && isTerminal(os.Stderr)
	default:
		return opts, fmt.Errorf("unknown color mode %q (must be auto, on or off)", colorMode)
	}

	if opts.format, err = flags.GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	opts.format = strings.ToLower(opts.format)
	switch opts.format {
	case "pretty", "json", "short":
	default:
		return opts, fmt.Errorf("unknown format %q (must be pretty, json or short)", opts.format)
	}
	if opts.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return opts, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if opts.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return opts, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	opts.jobsSet = flags.Changed("jobs")
	return opts, nil
}

// buildSettings are the compile flags that vellum.toml may also provide.
type buildSettings struct {
	name          string
	outDir        string
	targets       []string
	symbolsFormat string
	irEncoding    string
	cache         bool
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "output file stem (default: schema file name)")
	cmd.Flags().StringP("out-dir", "o", "", "directory for generated files (default: manifest out_dir or .)")
	cmd.Flags().StringSlice("targets", nil, "outputs to generate (c,cpp,python,symbols,ir)")
	cmd.Flags().String("symbols-format", "", "symbols output format (list|gnu)")
	cmd.Flags().String("ir-encoding", "", "lowered IR encoding (msgpack|json)")
	cmd.Flags().Bool("cache", false, "reuse outputs of identical previous runs from the user cache")
}

// driverOptions merges flags over the manifest governing path.
func driverOptions(cmd *cobra.Command, path string, g globalOptions) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: g.maxDiagnostics,
		Jobs:           g.jobs,
		EnableTimings:  g.timings,
	}

	manifest, err := project.Discover(filepath.Dir(path))
	if err != nil {
		return opts, err
	}
	var s buildSettings
	if manifest != nil {
		s = buildSettings{
			name:          manifest.Name,
			outDir:        manifest.ResolveOutDir(),
			targets:       manifest.Targets,
			symbolsFormat: manifest.SymbolsFormat,
			irEncoding:    manifest.IREncoding,
		}
		if !g.jobsSet && manifest.Jobs > 0 {
			opts.Jobs = manifest.Jobs
		}
	}
	if err := overrideFromFlags(cmd, &s); err != nil {
		return opts, err
	}

	opts.Name = s.name
	opts.OutDir = s.outDir
	opts.Targets = s.targets
	if opts.SymbolsFormat, err = symbols.ParseFormat(s.symbolsFormat); err != nil {
		return opts, err
	}
	if opts.IREncoding, err = irpack.ParseEncoding(s.irEncoding); err != nil {
		return opts, err
	}
	if s.cache {
		if opts.Cache, err = driver.OpenDiskCache("vellum"); err != nil {
			return opts, fmt.Errorf("failed to open cache: %w", err)
		}
	}
	return opts, nil
}

// overrideFromFlags applies only the flags the command defines and the user set.
func overrideFromFlags(cmd *cobra.Command, s *buildSettings) error {
	flags := cmd.Flags()
	var err error
	if f := flags.Lookup("name"); f != nil && f.Changed {
		s.name = f.Value.String()
	}
	if f := flags.Lookup("out-dir"); f != nil && f.Changed {
		s.outDir = f.Value.String()
	}
	if f := flags.Lookup("targets"); f != nil && f.Changed {
		if s.targets, err = flags.GetStringSlice("targets"); err != nil {
			return fmt.Errorf("failed to get targets flag: %w", err)
		}
	}
	if f := flags.Lookup("symbols-format"); f != nil && f.Changed {
		s.symbolsFormat = f.Value.String()
	}
	if f := flags.Lookup("ir-encoding"); f != nil && f.Changed {
		s.irEncoding = f.Value.String()
	}
	if f := flags.Lookup("cache"); f != nil {
		if s.cache, err = flags.GetBool("cache"); err != nil {
			return fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	return nil
}
