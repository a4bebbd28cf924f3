package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layercanvas/pkg/canvas"
	lcerrors "github.com/matzehuels/layercanvas/pkg/errors"
	"github.com/matzehuels/layercanvas/pkg/layout"
	"github.com/matzehuels/layercanvas/pkg/store"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[layout]
node_width = 200.0
rank_gap = 120.0

[canvas]
id_policy = "share"
anchor = "right"

[store]
backend = "redis"
redis_addr = "localhost:6379"
`)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Layout.NodeWidth != 200 || cfg.Layout.RankGap != 120 {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
	if cfg.Layout.NodeHeight != layout.DefaultNodeHeight {
		t.Errorf("unset NodeHeight = %v, want default %v", cfg.Layout.NodeHeight, layout.DefaultNodeHeight)
	}
	if cfg.Canvas.IDPolicy != "share" || cfg.Canvas.Anchor != "right" {
		t.Errorf("Canvas = %+v", cfg.Canvas)
	}
	if cfg.Store.Backend != store.BackendRedis || cfg.Store.RedisAddr != "localhost:6379" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}

	opts := cfg.CanvasOptions(nil)
	if opts.IDPolicy != canvas.PolicyShare || opts.Anchor != layout.AnchorRight {
		t.Errorf("CanvasOptions() = %+v", opts)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad syntax", content: "[layout\nnode_width = 1"},
		{name: "bad policy", content: "[canvas]\nid_policy = \"merge\""},
		{name: "bad anchor", content: "[canvas]\nanchor = \"left\""},
		{name: "negative gap", content: "[layout]\nnode_gap = -1.0"},
		{name: "bad backend", content: "[store]\nbackend = \"s3\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			if !lcerrors.Is(err, lcerrors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want %s", err, lcerrors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil); err == nil {
		t.Error("explicit missing path should fail")
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() with no default file: %v", err)
	}
	if cfg.Layout != layout.DefaultConfig() {
		t.Errorf("Layout = %+v, want defaults", cfg.Layout)
	}
}

func TestLoadWarnsOnUnknownKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	path := writeConfig(t, "[layout]\nnode_widht = 10.0\n")
	if _, err := Load(path, logger); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.Contains(buf.String(), "layout.node_widht") {
		t.Errorf("log output %q should name the unknown key", buf.String())
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Canvas.RenderInternalEdges = true
	cfg.Store.Dir = "/srv/canvases"

	if err := Write(cfg, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/cfg", "layercanvas", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}
