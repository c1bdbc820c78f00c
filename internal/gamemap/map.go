package gamemap

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/gravitas-games/hexgrid/pkg/hex"
	"github.com/gravitas-games/hexgrid/pkg/layout"
)

// ErrOutOfBounds is returned for cells outside the map rectangle.
var ErrOutOfBounds = errors.New("cell out of bounds")

// Options configures a GameMap.
type Options struct {
	Layout         layout.Layout
	Columns        int
	Rows           int
	DefaultTerrain string
}

// GameMap is a rectangle of Columns x Rows hexes addressed by offset
// coordinates, with a terrain type per cell. It is safe for concurrent use.
type GameMap struct {
	layout  layout.Layout
	columns int
	rows    int

	mu    sync.RWMutex
	cells map[hex.Offset[int]]*Hex

	log *slog.Logger
}

// Hex represents a single hex cell in the world
type Hex struct {
	Pos     hex.Offset[int]
	Cube    hex.Cube[int]
	Terrain string // "plains", "forest", ...
}

// New creates a map and fills every cell with the default terrain.
func New(opts Options, logger *slog.Logger) (*GameMap, error) {
	if opts.Columns <= 0 || opts.Rows <= 0 {
		return nil, fmt.Errorf("map size %dx%d must be positive", opts.Columns, opts.Rows)
	}
	if !opts.Layout.Orientation.IsValid() {
		return nil, fmt.Errorf("%w: %d", layout.ErrUnknownOrientation, int(opts.Layout.Orientation))
	}
	if logger == nil {
		logger = slog.Default()
	}

	gm := &GameMap{
		layout:  opts.Layout,
		columns: opts.Columns,
		rows:    opts.Rows,
		cells:   make(map[hex.Offset[int]]*Hex, opts.Columns*opts.Rows),
		log:     logger.With("component", "gamemap"),
	}
	for r := 0; r < gm.rows; r++ {
		for q := 0; q < gm.columns; q++ {
			pos := hex.Offset[int]{Q: q, R: r}
			gm.cells[pos] = &Hex{
				Pos:     pos,
				Cube:    gm.layout.OffsetToCube(pos),
				Terrain: opts.DefaultTerrain,
			}
		}
	}

	gm.log.Info("game map generated",
		"orientation", opts.Layout.Orientation,
		"columns", gm.columns,
		"rows", gm.rows,
		"cells", len(gm.cells))
	return gm, nil
}

// Layout returns the pixel layout of the map.
func (gm *GameMap) Layout() layout.Layout { return gm.layout }

// Columns returns the map width in cells.
func (gm *GameMap) Columns() int { return gm.columns }

// Rows returns the map height in cells.
func (gm *GameMap) Rows() int { return gm.rows }

// CellCount returns the number of cells in the map.
func (gm *GameMap) CellCount() int { return gm.columns * gm.rows }

// Contains reports whether o lies inside the map rectangle.
func (gm *GameMap) Contains(o hex.Offset[int]) bool {
	return o.Q >= 0 && o.R >= 0 && o.Q < gm.columns && o.R < gm.rows
}

// CellAt returns the cell under the pixel position p.
func (gm *GameMap) CellAt(p vec.Vec2) (hex.Offset[int], bool) {
	o := gm.layout.PointToOffset(p)
	return o, gm.Contains(o)
}

// Center returns the pixel centre of o. It does not check bounds.
func (gm *GameMap) Center(o hex.Offset[int]) vec.Vec2 {
	return gm.layout.OffsetToPoint(o)
}

// Bounds returns the pixel rectangle covering every cell centre extended
// by half a tile on each side.
func (gm *GameMap) Bounds() rect.Rect {
	first := true
	var b rect.Rect
	for r := 0; r < gm.rows; r++ {
		for q := 0; q < gm.columns; q++ {
			c := gm.Center(hex.Offset[int]{Q: q, R: r})
			if first {
				b = rect.Rect{LLx: c.X, LLy: c.Y, URx: c.X, URy: c.Y}
				first = false
				continue
			}
			b.LLx = min(b.LLx, c.X)
			b.LLy = min(b.LLy, c.Y)
			b.URx = max(b.URx, c.X)
			b.URy = max(b.URy, c.Y)
		}
	}
	half := gm.layout.Size.Mul(0.5)
	b.LLx -= half.X
	b.LLy -= half.Y
	b.URx += half.X
	b.URy += half.Y
	return b
}

// Cell returns a copy of the cell at o.
func (gm *GameMap) Cell(o hex.Offset[int]) (Hex, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	h, ok := gm.cells[o]
	if !ok {
		return Hex{}, fmt.Errorf("%w: %d,%d", ErrOutOfBounds, o.Q, o.R)
	}
	return *h, nil
}

// Terrain returns the terrain of the cell at o.
func (gm *GameMap) Terrain(o hex.Offset[int]) (string, error) {
	h, err := gm.Cell(o)
	if err != nil {
		return "", err
	}
	return h.Terrain, nil
}

// SetTerrain replaces the terrain of the cell at o.
func (gm *GameMap) SetTerrain(o hex.Offset[int], terrain string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	h, ok := gm.cells[o]
	if !ok {
		return fmt.Errorf("%w: %d,%d", ErrOutOfBounds, o.Q, o.R)
	}
	h.Terrain = terrain
	gm.log.Debug("terrain updated", "q", o.Q, "r", o.R, "terrain", terrain)
	return nil
}

// Distance returns the number of steps between two cells.
func (gm *GameMap) Distance(a, b hex.Offset[int]) int {
	return hex.Distance(gm.layout.OffsetToCube(a), gm.layout.OffsetToCube(b))
}

// Ring returns the in-bounds cells at exactly distance n from o, ordered by
// row then column.
func (gm *GameMap) Ring(o hex.Offset[int], n int) ([]hex.Offset[int], error) {
	if !gm.Contains(o) {
		return nil, fmt.Errorf("%w: %d,%d", ErrOutOfBounds, o.Q, o.R)
	}
	return gm.clip(hex.NthNearest(gm.layout.OffsetToCube(o), n)), nil
}

// Range returns the in-bounds cells within distance n of o, o included,
// ordered by row then column.
func (gm *GameMap) Range(o hex.Offset[int], n int) ([]hex.Offset[int], error) {
	if !gm.Contains(o) {
		return nil, fmt.Errorf("%w: %d,%d", ErrOutOfBounds, o.Q, o.R)
	}
	return gm.clip(hex.WithinRange(gm.layout.OffsetToCube(o), n)), nil
}

func (gm *GameMap) clip(cubes iter.Seq[hex.Cube[int]]) []hex.Offset[int] {
	var out []hex.Offset[int]
	for c := range cubes {
		o := gm.layout.CubeToOffset(c)
		if gm.Contains(o) {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b hex.Offset[int]) int {
		if c := cmp.Compare(a.R, b.R); c != 0 {
			return c
		}
		return cmp.Compare(a.Q, b.Q)
	})
	return out
}
