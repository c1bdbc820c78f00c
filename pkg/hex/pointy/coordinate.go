// Package pointy converts between pixels, axial and offset coordinates for
// pointy-top hexes.
//
// Offsets follow the odd-r layout with y growing downwards: every row
// contributes half a column, so odd rows sit half a tile to the right.
// Size is the pixel distance between neighbouring column and row centres.
package pointy

import "github.com/gravitas-games/hexgrid/pkg/hex"

// PointToOffset returns the cell under point.
func PointToOffset[I hex.Integer, F hex.Float](size, point hex.Point[F]) hex.Offset[I] {
	return AxialToOffset(PointToAxial[I](size, point))
}

// OffsetToPoint returns the pixel centre of offset.
func OffsetToPoint[I hex.Integer, F hex.Float](size hex.Point[F], offset hex.Offset[I]) hex.Point[F] {
	return AxialToPoint(size, OffsetToAxial(offset))
}

// PointToAxial returns the axial cell under point.
func PointToAxial[I hex.Integer, F hex.Float](size, point hex.Point[F]) hex.Axial[I] {
	q := point.X / size.X
	r := point.Y / size.Y
	q = q - r/2 // every row contributes half a column

	return hex.AxialRound[I](hex.Axial[F]{Q: q, R: r})
}

// AxialToPoint returns the pixel centre of axial.
func AxialToPoint[I hex.Integer, F hex.Float](size hex.Point[F], axial hex.Axial[I]) hex.Point[F] {
	r := axial.R
	q := axial.Q*2 + r
	x := F(q) / 2 * size.X
	y := F(r) * size.Y
	return hex.Point[F]{X: x, Y: y}
}

// AxialToOffset shifts q by half of r, rounding towards negative infinity.
func AxialToOffset[T hex.Integer](axial hex.Axial[T]) hex.Offset[T] {
	q := axial.Q + (axial.R-(axial.R&1))/2
	r := axial.R
	return hex.Offset[T]{Q: q, R: r}
}

// OffsetToAxial is the inverse of AxialToOffset.
func OffsetToAxial[T hex.Integer](offset hex.Offset[T]) hex.Axial[T] {
	q := offset.Q - (offset.R-(offset.R&1))/2
	r := offset.R
	return hex.Axial[T]{Q: q, R: r}
}
