package gamemap

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"seehuhn.de/go/geom/vec"

	"github.com/gravitas-games/hexgrid/pkg/hex"
	"github.com/gravitas-games/hexgrid/pkg/layout"
)

func off(q, r int) hex.Offset[int] { return hex.Offset[int]{Q: q, R: r} }

func rowOrder(cells []hex.Offset[int]) []hex.Offset[int] {
	out := slices.Clone(cells)
	slices.SortFunc(out, func(a, b hex.Offset[int]) int {
		if a.R != b.R {
			return a.R - b.R
		}
		return a.Q - b.Q
	})
	return out
}

func newTestMap(t *testing.T, o layout.Orientation, columns, rows int) *GameMap {
	t.Helper()
	gm, err := New(Options{
		Layout:         layout.New(o, 42, 30),
		Columns:        columns,
		Rows:           rows,
		DefaultTerrain: "plains",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return gm
}

// skill targeting on a 3x3 flat-top board
var skillCases = []struct {
	src  hex.Offset[int]
	n    int
	want []hex.Offset[int]
}{
	{off(0, 0), 1, []hex.Offset[int]{off(0, 1), off(1, 0)}},
	{off(1, 0), 1, []hex.Offset[int]{off(0, 0), off(0, 1), off(1, 1), off(2, 0), off(2, 1)}},
	{off(2, 0), 1, []hex.Offset[int]{off(1, 0), off(2, 1)}},
	{off(0, 1), 1, []hex.Offset[int]{off(0, 0), off(0, 2), off(1, 0), off(1, 1)}},
	{off(1, 1), 1, []hex.Offset[int]{off(0, 1), off(0, 2), off(1, 0), off(1, 2), off(2, 1), off(2, 2)}},
	{off(2, 1), 1, []hex.Offset[int]{off(1, 0), off(1, 1), off(2, 0), off(2, 2)}},
	{off(0, 2), 1, []hex.Offset[int]{off(0, 1), off(1, 1), off(1, 2)}},
	{off(1, 2), 1, []hex.Offset[int]{off(0, 2), off(1, 1), off(2, 2)}},
	{off(2, 2), 1, []hex.Offset[int]{off(1, 1), off(1, 2), off(2, 1)}},
	{off(0, 0), 2, []hex.Offset[int]{off(0, 2), off(1, 1), off(2, 0), off(2, 1)}},
	{off(1, 0), 2, []hex.Offset[int]{off(0, 2), off(1, 2), off(2, 2)}},
	{off(2, 0), 2, []hex.Offset[int]{off(0, 0), off(0, 1), off(1, 1), off(2, 2)}},
	{off(0, 1), 2, []hex.Offset[int]{off(1, 2), off(2, 0), off(2, 1), off(2, 2)}},
	{off(1, 1), 2, []hex.Offset[int]{off(0, 0), off(2, 0)}},
	{off(2, 1), 2, []hex.Offset[int]{off(0, 0), off(0, 1), off(0, 2), off(1, 2)}},
	{off(0, 2), 2, []hex.Offset[int]{off(0, 0), off(1, 0), off(2, 1), off(2, 2)}},
	{off(1, 2), 2, []hex.Offset[int]{off(0, 1), off(1, 0), off(2, 1)}},
	{off(2, 2), 2, []hex.Offset[int]{off(0, 1), off(0, 2), off(1, 0), off(2, 0)}},
}

func TestSkillTargeting(t *testing.T) {
	gm := newTestMap(t, layout.FlatTop, 3, 3)

	Convey("Given a 3x3 flat-top map", t, func() {
		for _, c := range skillCases {
			got, err := gm.Ring(c.src, c.n)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, rowOrder(c.want))
			for _, o := range got {
				So(gm.Distance(c.src, o), ShouldEqual, c.n)
			}
		}
	})
}

func TestGameMap(t *testing.T) {
	Convey("Given a 5x4 pointy-top map", t, func() {
		gm := newTestMap(t, layout.PointyTop, 5, 4)

		Convey("Every cell starts with the default terrain", func() {
			So(gm.CellCount(), ShouldEqual, 20)
			for r := 0; r < 4; r++ {
				for q := 0; q < 5; q++ {
					terrain, err := gm.Terrain(off(q, r))
					So(err, ShouldBeNil)
					So(terrain, ShouldEqual, "plains")
				}
			}
		})

		Convey("Cells outside the rectangle are rejected", func() {
			So(gm.Contains(off(5, 0)), ShouldBeFalse)
			So(gm.Contains(off(0, -1)), ShouldBeFalse)
			_, err := gm.Terrain(off(-1, 2))
			So(errors.Is(err, ErrOutOfBounds), ShouldBeTrue)
			So(errors.Is(gm.SetTerrain(off(9, 9), "forest"), ErrOutOfBounds), ShouldBeTrue)
			_, err = gm.Ring(off(7, 0), 1)
			So(errors.Is(err, ErrOutOfBounds), ShouldBeTrue)
		})

		Convey("SetTerrain updates one cell", func() {
			So(gm.SetTerrain(off(2, 3), "forest"), ShouldBeNil)
			cell, err := gm.Cell(off(2, 3))
			So(err, ShouldBeNil)
			So(cell.Terrain, ShouldEqual, "forest")
			So(cell.Cube.Valid(), ShouldBeTrue)
			other, _ := gm.Terrain(off(2, 2))
			So(other, ShouldEqual, "plains")
		})

		Convey("Pixels map onto cells", func() {
			o, ok := gm.CellAt(vec.Vec2{X: 21, Y: 30})
			So(ok, ShouldBeTrue)
			So(o, ShouldResemble, off(0, 1))
			o, ok = gm.CellAt(vec.Vec2{X: 84, Y: 0})
			So(ok, ShouldBeTrue)
			So(o, ShouldResemble, off(2, 0))
			_, ok = gm.CellAt(vec.Vec2{X: -60, Y: 0})
			So(ok, ShouldBeFalse)
			So(gm.Center(off(0, 1)), ShouldResemble, vec.Vec2{X: 21, Y: 30})
		})

		Convey("Bounds cover every centre plus half a tile", func() {
			b := gm.Bounds()
			So(b.LLx, ShouldEqual, -21.0)
			So(b.LLy, ShouldEqual, -15.0)
			So(b.URx, ShouldEqual, 4.5*42+21)
			So(b.URy, ShouldEqual, 3*30+15.0)
		})

		Convey("Range is the clipped disc in row order", func() {
			cells, err := gm.Range(off(0, 0), 1)
			So(err, ShouldBeNil)
			So(cells, ShouldResemble, []hex.Offset[int]{off(0, 0), off(1, 0), off(0, 1)})

			all, err := gm.Range(off(2, 2), 10)
			So(err, ShouldBeNil)
			So(all, ShouldHaveLength, gm.CellCount())
		})

		Convey("Ring of radius zero is the cell itself", func() {
			cells, err := gm.Ring(off(3, 1), 0)
			So(err, ShouldBeNil)
			So(cells, ShouldResemble, []hex.Offset[int]{off(3, 1)})
		})
	})
}

func TestNewRejectsEmptyMap(t *testing.T) {
	_, err := New(Options{Layout: layout.New(layout.FlatTop, 1, 1)}, nil)
	if err == nil {
		t.Fatalf("expected error for 0x0 map")
	}
	_, err = New(Options{Layout: layout.New(layout.Orientation(5), 1, 1), Columns: 1, Rows: 1}, nil)
	if !errors.Is(err, layout.ErrUnknownOrientation) {
		t.Fatalf("expected ErrUnknownOrientation, got %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	gm := newTestMap(t, layout.FlatTop, 8, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if err := gm.SetTerrain(off(i, j%8), "forest"); err != nil {
					t.Errorf("SetTerrain: %v", err)
					return
				}
				if _, err := gm.Range(off(i, j%8), 2); err != nil {
					t.Errorf("Range: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	for q := 0; q < 8; q++ {
		if terrain, _ := gm.Terrain(off(q, 0)); terrain != "forest" {
			t.Fatalf("cell %d,0 = %q", q, terrain)
		}
	}
}
