package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the vellum CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component in its own color.
// Anything after the patch number (pre-release, build metadata) stays plain.
func Colored(enabled bool) string {
	for _, c := range []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	core, rest := Version, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, rest = core[:i], core[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2]) + rest
}

// Info returns the multi-line text printed by `vellum version`.
func Info(colored bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "vellum %s\n", Colored(colored))
	if GitCommit != "" {
		fmt.Fprintf(&sb, "commit: %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, "built:  %s\n", BuildDate)
	}
	return sb.String()
}
