// Package layout binds a hex orientation to a tile size and exposes the pixel
// and offset conversions with concrete types: int cells and float64 pixels.
package layout

import (
	"seehuhn.de/go/geom/vec"

	"github.com/gravitas-games/hexgrid/pkg/hex"
	"github.com/gravitas-games/hexgrid/pkg/hex/flat"
	"github.com/gravitas-games/hexgrid/pkg/hex/pointy"
)

// Layout maps between pixel positions and cells of one grid.
// Size is the pixel distance between neighbouring column and row centres.
// The cell at offset (0,0) is centred on the pixel origin.
type Layout struct {
	Orientation Orientation
	Size        vec.Vec2
}

// New returns a layout with the given orientation and tile size.
func New(o Orientation, width, height float64) Layout {
	return Layout{Orientation: o, Size: vec.Vec2{X: width, Y: height}}
}

func (l Layout) size() hex.Point[float64] {
	return toPoint(l.Size)
}

// PointToAxial returns the axial cell under p.
func (l Layout) PointToAxial(p vec.Vec2) hex.Axial[int] {
	if l.Orientation == PointyTop {
		return pointy.PointToAxial[int](l.size(), toPoint(p))
	}
	return flat.PointToAxial[int](l.size(), toPoint(p))
}

// AxialToPoint returns the pixel centre of a.
func (l Layout) AxialToPoint(a hex.Axial[int]) vec.Vec2 {
	if l.Orientation == PointyTop {
		return toVec(pointy.AxialToPoint(l.size(), a))
	}
	return toVec(flat.AxialToPoint(l.size(), a))
}

// AxialToOffset converts a to the offset address used by this orientation.
func (l Layout) AxialToOffset(a hex.Axial[int]) hex.Offset[int] {
	if l.Orientation == PointyTop {
		return pointy.AxialToOffset(a)
	}
	return flat.AxialToOffset(a)
}

// OffsetToAxial is the inverse of AxialToOffset.
func (l Layout) OffsetToAxial(o hex.Offset[int]) hex.Axial[int] {
	if l.Orientation == PointyTop {
		return pointy.OffsetToAxial(o)
	}
	return flat.OffsetToAxial(o)
}

// PointToOffset returns the cell under p.
func (l Layout) PointToOffset(p vec.Vec2) hex.Offset[int] {
	return l.AxialToOffset(l.PointToAxial(p))
}

// OffsetToPoint returns the pixel centre of o.
func (l Layout) OffsetToPoint(o hex.Offset[int]) vec.Vec2 {
	return l.AxialToPoint(l.OffsetToAxial(o))
}

// OffsetToCube converts o into cube space for distance and range queries.
func (l Layout) OffsetToCube(o hex.Offset[int]) hex.Cube[int] {
	return hex.AxialToCube(l.OffsetToAxial(o))
}

// CubeToOffset converts c back to this orientation's offset address.
func (l Layout) CubeToOffset(c hex.Cube[int]) hex.Offset[int] {
	return l.AxialToOffset(hex.CubeToAxial(c))
}

func toPoint(v vec.Vec2) hex.Point[float64] {
	return hex.Point[float64]{X: v.X, Y: v.Y}
}

func toVec(p hex.Point[float64]) vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}
