package hex

import "iter"

// Directions returns the six unit steps to adjacent cells, starting at
// (+1, 0, -1) and rotating through the neighbours in order; each entry is
// followed by its 60° turn and dirs[i+3] is the opposite of dirs[i]. The
// order is stable, callers may index it.
func Directions[T Signed]() [6]Cube[T] {
	return [6]Cube[T]{
		{Q: 1, R: 0, S: -1},
		{Q: 1, R: -1, S: 0},
		{Q: 0, R: -1, S: 1},
		{Q: -1, R: 0, S: 1},
		{Q: -1, R: 1, S: 0},
		{Q: 0, R: 1, S: -1},
	}
}

// Neighbor returns the cell adjacent to c in direction dir (0..5, wrapping).
func Neighbor[T Integer](c Cube[T], dir int) Cube[T] {
	dir %= 6
	if dir < 0 {
		dir += 6
	}
	return c.Add(Directions[T]()[dir])
}

// Neighbors returns the six cells adjacent to c in Directions order.
func Neighbors[T Integer](c Cube[T]) [6]Cube[T] {
	var out [6]Cube[T]
	for i, d := range Directions[T]() {
		out[i] = c.Add(d)
	}
	return out
}

// Distance returns the number of single steps between a and b.
func Distance[T Signed](a, b Cube[T]) T {
	d := a.Sub(b)
	return (abs(d.Q) + abs(d.R) + abs(d.S)) / 2
}

// WithinRange yields every cell at distance <= n from src: a disc of
// 3n²+3n+1 cells. Only cells inside the disc are visited. Negative n yields
// nothing.
func WithinRange[T Integer](src Cube[T], n T) iter.Seq[Cube[T]] {
	return func(yield func(Cube[T]) bool) {
		for q := -n; q <= n; q++ {
			for r := max(-n, -q-n); r <= min(n, -q+n); r++ {
				s := -q - r
				if !yield(src.Add(Cube[T]{Q: q, R: r, S: s})) {
					return
				}
			}
		}
	}
}

// NthNearest yields the ring of cells at exactly distance n from src.
// For n == 0 it yields src alone.
func NthNearest[T Integer](src Cube[T], n T) iter.Seq[Cube[T]] {
	return func(yield func(Cube[T]) bool) {
		for c := range WithinRange(src, n) {
			if Distance(src, c) != n {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Ring yields the same cells as NthNearest by walking the six sides of the
// ring, starting from src + direction 4 * n. It never touches the interior.
func Ring[T Integer](src Cube[T], n T) iter.Seq[Cube[T]] {
	return func(yield func(Cube[T]) bool) {
		if n < 0 {
			return
		}
		if n == 0 {
			yield(src)
			return
		}
		dirs := Directions[T]()
		cur := src.Add(dirs[4].Scale(n))
		for side := 0; side < 6; side++ {
			for step := T(0); step < n; step++ {
				if !yield(cur) {
					return
				}
				cur = cur.Add(dirs[side])
			}
		}
	}
}

// RingSize is the closed-form cell count of the ring at distance n.
func RingSize[T Integer](n T) T {
	switch {
	case n < 0:
		return 0
	case n == 0:
		return 1
	}
	return 6 * n
}

// DiscSize is the closed-form cell count of the disc of radius n.
func DiscSize[T Integer](n T) T {
	if n < 0 {
		return 0
	}
	return 3*n*n + 3*n + 1
}

func abs[T Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
