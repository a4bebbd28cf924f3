// Package config loads layercanvas settings from a TOML file.
//
// # File Format
//
//	[layout]
//	node_width = 172.0
//	node_height = 36.0
//	container_padding = 20.0
//	node_gap = 50.0
//	rank_gap = 80.0
//	interior_gap = 20.0
//
//	[canvas]
//	id_policy = "isolate"       # or "share"
//	anchor = "below"            # or "right"
//	render_internal_edges = false
//
//	[store]
//	backend = "file"            # file, none, redis, mongo
//	dir = "/var/lib/layercanvas"
//	redis_addr = "localhost:6379"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
//
// Keys missing from the file keep their defaults. Unknown keys are reported
// so typos do not pass silently.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/layercanvas/pkg/canvas"
	lcerrors "github.com/matzehuels/layercanvas/pkg/errors"
	"github.com/matzehuels/layercanvas/pkg/layout"
	"github.com/matzehuels/layercanvas/pkg/store"
)

// Config is the complete settings file.
type Config struct {
	Layout layout.Config `toml:"layout"`
	Canvas CanvasConfig  `toml:"canvas"`
	Store  store.Config  `toml:"store"`
	Server ServerConfig  `toml:"server"`
}

// CanvasConfig holds insertion policies.
type CanvasConfig struct {
	IDPolicy            string `toml:"id_policy"`
	Anchor              string `toml:"anchor"`
	RenderInternalEdges bool   `toml:"render_internal_edges"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultServerAddr is the listen address used when none is configured.
const DefaultServerAddr = ":8080"

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Layout: layout.DefaultConfig(),
		Canvas: CanvasConfig{
			IDPolicy: string(canvas.PolicyIsolate),
			Anchor:   string(layout.AnchorBelow),
		},
		Store:  store.DefaultConfig(),
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/layercanvas/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "layercanvas", "config.toml"), nil
}

// Load reads path on top of the defaults. A missing file at the default
// location is not an error; a missing explicit path is.
func Load(path string, logger *log.Logger) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return Config{}, lcerrors.Wrap(lcerrors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if logger != nil {
		for _, key := range md.Undecoded() {
			logger.Warn("unknown config key", "key", key.String(), "file", path)
		}
		logger.Debug("loaded config", "file", path)
	}
	return cfg, cfg.Validate()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if _, err := canvas.ParseIDPolicy(c.Canvas.IDPolicy); err != nil {
		return lcerrors.Wrap(lcerrors.ErrCodeInvalidConfig, err, "canvas.id_policy")
	}
	if _, err := layout.ParseAnchor(c.Canvas.Anchor); err != nil {
		return lcerrors.Wrap(lcerrors.ErrCodeInvalidConfig, err, "canvas.anchor")
	}
	switch c.Store.Backend {
	case "", store.BackendFile, store.BackendNone, store.BackendRedis, store.BackendMongo:
	default:
		return lcerrors.New(lcerrors.ErrCodeInvalidConfig, "store.backend: unknown backend %q", c.Store.Backend)
	}
	return nil
}

// CanvasOptions converts the settings to canvas options.
func (c Config) CanvasOptions(logger *log.Logger) canvas.Options {
	return canvas.Options{
		Layout:              c.Layout,
		IDPolicy:            canvas.IDPolicy(c.Canvas.IDPolicy),
		Anchor:              layout.Anchor(c.Canvas.Anchor),
		RenderInternalEdges: c.Canvas.RenderInternalEdges,
		Logger:              logger,
	}
}

// Write encodes the settings as TOML to path, creating parent directories.
func Write(c Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
