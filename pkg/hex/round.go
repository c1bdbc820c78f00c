package hex

import "math"

// CubeRound returns the integer cube nearest to frac. Each axis is rounded on
// its own; the axis with the largest rounding error is then rebuilt from the
// other two so the result satisfies q+r+s=0. On equal errors s is rebuilt
// first, then r, then q.
func CubeRound[I Integer, F Float](frac Cube[F]) Cube[I] {
	q := F(math.Round(float64(frac.Q)))
	r := F(math.Round(float64(frac.R)))
	s := F(math.Round(float64(frac.S)))

	qDiff := abs(q - frac.Q)
	rDiff := abs(r - frac.R)
	sDiff := abs(s - frac.S)

	qi, ri, si := I(q), I(r), I(s)

	if qDiff > rDiff && qDiff > sDiff {
		return Cube[I]{Q: -ri - si, R: ri, S: si}
	}
	if rDiff > sDiff {
		return Cube[I]{Q: qi, R: -qi - si, S: si}
	}
	return Cube[I]{Q: qi, R: ri, S: -qi - ri}
}

// AxialRound rounds through cube space so it shares CubeRound's tie-break.
func AxialRound[I Integer, F Float](frac Axial[F]) Axial[I] {
	return CubeToAxial(CubeRound[I](AxialToCube(frac)))
}
