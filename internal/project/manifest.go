// Package project reads the optional vellum.toml manifest that fixes build
// settings for a directory tree.
package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Known output targets.
const (
	TargetC       = "c"
	TargetCPP     = "cpp"
	TargetPython  = "python"
	TargetSymbols = "symbols"
	TargetIR      = "ir"
)

// KnownTargets lists every accepted target name.
var KnownTargets = []string{TargetC, TargetCPP, TargetPython, TargetSymbols, TargetIR}

// DefaultTargets is used when neither the manifest nor the command line
// names any.
var DefaultTargets = []string{TargetC, TargetCPP, TargetPython}

var (
	// ErrUnknownKey reports keys the manifest schema does not define.
	ErrUnknownKey = errors.New("unknown manifest key")
	// ErrUnknownTarget reports a target outside KnownTargets.
	ErrUnknownTarget = errors.New("unknown target")
)

// Manifest is a decoded and validated vellum.toml.
type Manifest struct {
	// Path of the manifest file; Root is its directory.
	Path string
	Root string

	Name          string
	OutDir        string
	Targets       []string
	Jobs          int
	SymbolsFormat string
	IREncoding    string
}

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Build struct {
		OutDir        string   `toml:"out_dir"`
		Targets       []string `toml:"targets"`
		Jobs          int      `toml:"jobs"`
		SymbolsFormat string   `toml:"symbols_format"`
		IREncoding    string   `toml:"ir_encoding"`
	} `toml:"build"`
}

// LoadManifest parses and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	if cfg.Build.Jobs < 0 {
		return nil, fmt.Errorf("%s: [build].jobs must not be negative, got %d", path, cfg.Build.Jobs)
	}
	targets, err := NormalizeTargets(cfg.Build.Targets)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Manifest{
		Path:          path,
		Root:          filepath.Dir(path),
		Name:          strings.TrimSpace(cfg.Package.Name),
		OutDir:        strings.TrimSpace(cfg.Build.OutDir),
		Targets:       targets,
		Jobs:          cfg.Build.Jobs,
		SymbolsFormat: strings.TrimSpace(cfg.Build.SymbolsFormat),
		IREncoding:    strings.TrimSpace(cfg.Build.IREncoding),
	}, nil
}

// Discover finds and loads the manifest governing startDir. A missing
// manifest is not an error: it returns nil, nil.
func Discover(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, err
	}
	return LoadManifest(path)
}

// ResolveOutDir returns the output directory: relative paths are taken from
// the manifest root, an empty one means the root itself.
func (m *Manifest) ResolveOutDir() string {
	if m.OutDir == "" {
		return m.Root
	}
	if filepath.IsAbs(m.OutDir) {
		return filepath.Clean(m.OutDir)
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.OutDir))
}

// NormalizeTargets lowercases, de-duplicates and validates target names,
// keeping first-seen order. Comma-separated entries are split.
func NormalizeTargets(in []string) ([]string, error) {
	var out []string
	for _, raw := range in {
		for _, part := range strings.Split(raw, ",") {
			t := strings.ToLower(strings.TrimSpace(part))
			if t == "" {
				continue
			}
			if !slices.Contains(KnownTargets, t) {
				return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownTarget, t, strings.Join(KnownTargets, ", "))
			}
			if !slices.Contains(out, t) {
				out = append(out, t)
			}
		}
	}
	return out, nil
}
