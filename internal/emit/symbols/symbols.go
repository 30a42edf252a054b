// Package symbols lists the functions a schema exports, either one per line
// or as a GNU linker version script.
package symbols

import (
	"fmt"
	"strings"

	"vellum/internal/emit"
)

type Format uint8

const (
	FormatList Format = iota
	FormatGNU
)

func (f Format) String() string {
	switch f {
	case FormatGNU:
		return "gnu"
	default:
		return "list"
	}
}

// ParseFormat accepts "list", "gnu" and "gnu-version-script".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "list":
		return FormatList, nil
	case "gnu", "gnu-version-script":
		return FormatGNU, nil
	default:
		return FormatList, fmt.Errorf("unknown symbols format %q (want list or gnu)", s)
	}
}

// Names returns exported function names in item order.
func Names(u *emit.Unit) []string {
	funcs := u.Functions()
	names := make([]string, 0, len(funcs))
	for _, it := range funcs {
		names = append(names, it.Function.Name.Name)
	}
	return names
}

// Render formats the exported names of u.
func Render(u *emit.Unit, format Format) string {
	var buf strings.Builder
	names := Names(u)
	if format == FormatGNU {
		buf.WriteString("{\n  global:\n")
		for _, n := range names {
			fmt.Fprintf(&buf, "    %s;\n", n)
		}
		buf.WriteString("  local: *;\n};\n")
		return buf.String()
	}
	for _, n := range names {
		buf.WriteString(n)
		buf.WriteByte('\n')
	}
	return buf.String()
}

// Backend returns an emit backend writing <name>.symbols (list) or
// <name>.map (gnu).
func Backend(format Format) emit.Backend {
	return func(u *emit.Unit) ([]emit.File, error) {
		ext := ".symbols"
		if format == FormatGNU {
			ext = ".map"
		}
		return []emit.File{{Name: u.Name + ext, Content: []byte(Render(u, format))}}, nil
	}
}
