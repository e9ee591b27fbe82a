package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stub(t *testing.T, version string, bi *debug.BuildInfo) {
	t.Helper()
	oldV, oldC, oldD, oldRead := Version, Commit, Date, readBuildInfo
	t.Cleanup(func() { Version, Commit, Date, readBuildInfo = oldV, oldC, oldD, oldRead })
	Version, Commit, Date = version, "none", "unknown"
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestGetStamped(t *testing.T) {
	stub(t, "v1.4.0", &debug.BuildInfo{Main: debug.Module{Version: "v0.1.0"}})

	if got := Get(); got.Version != "v1.4.0" || got.Commit != "none" {
		t.Errorf("Get() = %+v", got)
	}
	if !strings.Contains(String(), "version: v1.4.0") {
		t.Errorf("String() = %q", String())
	}
	if !strings.Contains(Template(), "{{.Name}} version v1.4.0") {
		t.Errorf("Template() = %q", Template())
	}
	if CacheScope() != "v1.4.0:" {
		t.Errorf("CacheScope() = %q", CacheScope())
	}
}

func TestGetFromModule(t *testing.T) {
	stub(t, "dev", &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})

	got := Get()
	want := Info{Version: "v1.2.3", Commit: "abc123", Date: "2026-01-02T03:04:05Z"}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGetDevel(t *testing.T) {
	stub(t, "dev", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if got := Get().Version; got != "dev" {
		t.Errorf("Version = %q, want dev", got)
	}
	if CacheScope() != "dev:" {
		t.Errorf("CacheScope() = %q", CacheScope())
	}

	stub(t, "dev", nil)
	if got := Get(); got.Version != "dev" || got.Date != "unknown" {
		t.Errorf("without build info: %+v", got)
	}
}

func TestCacheScopePseudoVersion(t *testing.T) {
	stub(t, "dev", &debug.BuildInfo{Main: debug.Module{Version: "v0.0.0-20260101000000-abcdef123456"}})
	if CacheScope() != "dev:" {
		t.Errorf("CacheScope() = %q", CacheScope())
	}
}
