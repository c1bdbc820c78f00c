// Package flat converts between pixels, axial and offset coordinates for
// flat-top hexes.
//
// Offsets follow the odd-q layout with y growing downwards: every column
// contributes half a row, so odd columns sit half a tile lower than even ones.
// Size is the pixel distance between neighbouring column and row centres.
package flat

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
	r = r - q/2 // every column contributes half a row

	return hex.AxialRound[I](hex.Axial[F]{Q: q, R: r})
}

// AxialToPoint returns the pixel centre of axial.
func AxialToPoint[I hex.Integer, F hex.Float](size hex.Point[F], axial hex.Axial[I]) hex.Point[F] {
	q := axial.Q
	r := axial.R*2 + q
	x := F(q) * size.X
	y := F(r) / 2 * size.Y
	return hex.Point[F]{X: x, Y: y}
}

// AxialToOffset shifts r by half of q, rounding towards negative infinity.
func AxialToOffset[T hex.Integer](axial hex.Axial[T]) hex.Offset[T] {
	q := axial.Q
	r := axial.R + (axial.Q-(axial.Q&1))/2
	return hex.Offset[T]{Q: q, R: r}
}

// OffsetToAxial is the inverse of AxialToOffset.
func OffsetToAxial[T hex.Integer](offset hex.Offset[T]) hex.Axial[T] {
	q := offset.Q
	r := offset.R - (offset.Q-(offset.Q&1))/2
	return hex.Axial[T]{Q: q, R: r}
}
