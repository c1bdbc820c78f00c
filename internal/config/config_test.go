package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gravitas-games/hexgrid/pkg/layout"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 || cfg.Server.Host != "0.0.0.0" {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Grid.Orientation != layout.FlatTop || cfg.Grid.TileWidth != 42 || cfg.Grid.TileHeight != 30 {
		t.Fatalf("unexpected grid defaults %+v", cfg.Grid)
	}
	if cfg.Grid.Columns != 16 || cfg.Grid.Rows != 16 || cfg.Grid.DefaultTerrain != "plains" {
		t.Fatalf("unexpected grid defaults %+v", cfg.Grid)
	}
	if lvl, err := cfg.Log.SlogLevel(); err != nil || lvl != slog.LevelInfo {
		t.Fatalf("SlogLevel = %v, %v", lvl, err)
	}
}

func TestParseGrid(t *testing.T) {
	cfg, err := Parse([]byte(`
grid:
  orientation: pointy
  tile_width: 20
  tile_height: 18
  columns: 3
  rows: 4
  default_terrain: water
  max_query_radius: 2
auth:
  secret: s3cret
log:
  level: debug
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Grid.Orientation != layout.PointyTop || cfg.Grid.Columns != 3 || cfg.Grid.Rows != 4 {
		t.Fatalf("unexpected grid %+v", cfg.Grid)
	}
	l := cfg.Grid.Layout()
	if l.Orientation != layout.PointyTop || l.Size.X != 20 || l.Size.Y != 18 {
		t.Fatalf("unexpected layout %+v", l)
	}
	if cfg.Auth.Secret != "s3cret" || cfg.Auth.Issuer != "hexgrid" {
		t.Fatalf("unexpected auth %+v", cfg.Auth)
	}
	if lvl, _ := cfg.Log.SlogLevel(); lvl != slog.LevelDebug {
		t.Fatalf("level = %v", lvl)
	}
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"tile":   "grid:\n  tile_width: -3\n",
		"rows":   "grid:\n  rows: -1\n",
		"port":   "server:\n  port: 70000\n",
		"level":  "log:\n  level: loud\n",
		"radius": "grid:\n  max_query_radius: -2\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}

	if _, err := Parse([]byte("grid:\n  orientation: hexagonal\n")); !errors.Is(err, layout.ErrUnknownOrientation) {
		t.Fatalf("expected ErrUnknownOrientation, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
