package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColoredPlainMatchesVersion(t *testing.T) {
	if got := Colored(false); got != Version {
		t.Fatalf("Colored(false) = %q, want %q", got, Version)
	}
	if got := Colored(true); !strings.Contains(got, "\x1b[") {
		t.Fatalf("Colored(true) has no escapes: %q", got)
	}
}

func TestColoredUnusualVersion(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "nightly"
	if got := Colored(true); got != "nightly" {
		t.Fatalf("non-semver versions are printed as is, got %q", got)
	}
	Version = "1.2.3+meta"
	if got := Colored(false); got != "1.2.3+meta" {
		t.Fatalf("got %q", got)
	}
}

func TestInfo(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	if got := Info(false); got != "vellum "+Version+"\n" {
		t.Fatalf("Info = %q", got)
	}

	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"
	got := Info(false)
	if !strings.Contains(got, "commit: abc123def456") || !strings.Contains(got, "built:  2024-01-15T10:30:00Z") {
		t.Fatalf("Info = %q", got)
	}
}
