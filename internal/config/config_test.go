package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formblob.yaml")
	data := "addr: \":9000\"\nshutdown_grace: 3s\nlayout:\n  dir: /srv/layouts\n  name: compact\ntheme:\n  variant: dark\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("FORMBLOB_LAYOUT_NAME", "wide")
	t.Setenv("FORMBLOB_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Addr = ":9000"
	want.ShutdownGrace = 3 * time.Second
	want.LogLevel = "debug"
	want.Layout = LayoutConfig{Dir: "/srv/layouts", Name: "wide"}
	want.Theme = ThemeConfig{Variant: "dark"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Addr = " "
	cfg.AssetPrefix = "assets"
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"addr is required", "asset_prefix must start with /"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestValidate_RootAssetPrefix(t *testing.T) {
	for _, prefix := range []string{"/", "//"} {
		cfg := Default()
		cfg.AssetPrefix = prefix
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "asset_prefix must name a path below /") {
			t.Fatalf("prefix %q: expected root prefix error, got %v", prefix, err)
		}
	}

	cfg := Default()
	cfg.AssetPrefix = "/static/"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected nested prefix to pass, got %v", err)
	}
}
