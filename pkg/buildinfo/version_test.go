package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withDefaults(t *testing.T) {
	t.Helper()
	v, c, d := Version, Commit, Date
	Version, Commit, Date = "dev", "none", "unknown"
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestResolve(t *testing.T) {
	withDefaults(t)
	resolve(func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v0.3.1"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			},
		}, true
	})

	if Version != "v0.3.1" || Commit != "abc123" || Date != "2026-01-02T03:04:05Z" {
		t.Errorf("got %q %q %q", Version, Commit, Date)
	}
}

func TestResolveKeepsLdflags(t *testing.T) {
	withDefaults(t)
	Version = "v1.0.0"
	resolve(func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
	})
	if Version != "v1.0.0" {
		t.Errorf("Version = %q, want v1.0.0", Version)
	}

	resolve(func() (*debug.BuildInfo, bool) { return nil, false })
	if Commit != "none" {
		t.Errorf("Commit = %q, want none", Commit)
	}
}

func TestTemplate(t *testing.T) {
	withDefaults(t)
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version dev") {
		t.Errorf("Template() = %q", got)
	}
	if got := String(); !strings.Contains(got, "commit: none") {
		t.Errorf("String() = %q", got)
	}
}
