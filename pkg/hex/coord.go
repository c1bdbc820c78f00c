// Package hex implements cube, axial and offset hex-grid coordinates together
// with the orientation-independent cube algebra: distance, neighbours, rings
// and discs.
//
// All functions are pure and safe for concurrent use. Integer overflow on very
// large coordinates is the caller's responsibility.
package hex

import "golang.org/x/exp/constraints"

// Integer is the element type of discrete hex coordinates.
type Integer interface {
	constraints.Signed
}

// Float is the element type of fractional coordinates and pixel positions.
type Float interface {
	constraints.Float
}

// Signed is any element type a coordinate can carry.
type Signed interface {
	constraints.Signed | constraints.Float
}

// Cube represents cube coordinates (q, r, s) with q+r+s=0.
type Cube[T Signed] struct {
	Q T
	R T
	S T
}

// Axial represents axial coordinates (q, r); s is implied as -q-r.
type Axial[T Signed] struct {
	Q T
	R T
}

// Offset represents column/row coordinates suited to array storage.
// Converting to and from axial depends on the grid orientation.
type Offset[T Signed] struct {
	Q T
	R T
}

// Point is a pixel position, or a tile size when X and Y are the width and
// height of one cell.
type Point[F Float] struct {
	X F
	Y F
}

// CubeToAxial drops the s axis.
func CubeToAxial[T Signed](c Cube[T]) Axial[T] {
	return Axial[T]{Q: c.Q, R: c.R}
}

// AxialToCube recovers s as -q-r.
func AxialToCube[T Signed](a Axial[T]) Cube[T] {
	q := a.Q
	r := a.R
	s := -q - r
	return Cube[T]{Q: q, R: r, S: s}
}

// Axial converts cube to axial.
func (c Cube[T]) Axial() Axial[T] { return CubeToAxial(c) }

// Cube converts axial to cube.
func (a Axial[T]) Cube() Cube[T] { return AxialToCube(a) }

// Add returns c+o.
func (c Cube[T]) Add(o Cube[T]) Cube[T] {
	return Cube[T]{Q: c.Q + o.Q, R: c.R + o.R, S: c.S + o.S}
}

// Sub returns c-o.
func (c Cube[T]) Sub(o Cube[T]) Cube[T] {
	return Cube[T]{Q: c.Q - o.Q, R: c.R - o.R, S: c.S - o.S}
}

// Scale multiplies every axis by k.
func (c Cube[T]) Scale(k T) Cube[T] {
	return Cube[T]{Q: c.Q * k, R: c.R * k, S: c.S * k}
}

// Valid reports whether c satisfies q+r+s=0.
func (c Cube[T]) Valid() bool { return c.Q+c.R+c.S == 0 }

// Add returns a+b in axial space.
func (a Axial[T]) Add(b Axial[T]) Axial[T] { return Axial[T]{Q: a.Q + b.Q, R: a.R + b.R} }
