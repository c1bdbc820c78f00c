package hex

import "testing"

func TestCubeRoundNearest(t *testing.T) {
	cases := []struct {
		in   Cube[float64]
		want Cube[int]
	}{
		{Cube[float64]{Q: 0, R: 0, S: 0}, Cube[int]{}},
		{Cube[float64]{Q: 0.1, R: 0.2, S: -0.3}, Cube[int]{}},
		{Cube[float64]{Q: 1.2, R: -0.9, S: -0.3}, Cube[int]{Q: 1, R: -1, S: 0}},
		{Cube[float64]{Q: -2.1, R: 0.6, S: 1.5}, Cube[int]{Q: -2, R: 1, S: 1}},
		{Cube[float64]{Q: 3, R: -5, S: 2}, Cube[int]{Q: 3, R: -5, S: 2}},
	}
	for _, c := range cases {
		got := CubeRound[int](c.in)
		if got != c.want {
			t.Errorf("CubeRound(%+v) = %+v, want %+v", c.in, got, c.want)
		}
		if !got.Valid() {
			t.Errorf("CubeRound(%+v) = %+v is not zero-sum", c.in, got)
		}
	}
}

func TestCubeRoundTieBreak(t *testing.T) {
	cases := []struct {
		name string
		in   Cube[float64]
		want Cube[int]
	}{
		// q and r equally uncertain: r is rebuilt, not q
		{"q=r>s", Cube[float64]{Q: 0.5, R: 0.5, S: -1}, Cube[int]{Q: 1, R: 0, S: -1}},
		// q and s equally uncertain: s is rebuilt
		{"q=s>r", Cube[float64]{Q: 0.5, R: -1, S: 0.5}, Cube[int]{Q: 1, R: -1, S: 0}},
		// r and s equally uncertain: s is rebuilt
		{"r=s>q", Cube[float64]{Q: -1, R: 0.5, S: 0.5}, Cube[int]{Q: -1, R: 1, S: 0}},
		// q strictly worst wins over everything
		{"q>r=s", Cube[float64]{Q: 0.5, R: -0.25, S: -0.25}, Cube[int]{Q: 0, R: 0, S: 0}},
		// no error at all: s is rebuilt from exact values
		{"exact", Cube[float64]{Q: 2, R: -1, S: -1}, Cube[int]{Q: 2, R: -1, S: -1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CubeRound[int](c.in); got != c.want {
				t.Fatalf("CubeRound(%+v) = %+v, want %+v", c.in, got, c.want)
			}
		})
	}
}

func TestAxialRoundMatchesCubeRound(t *testing.T) {
	for q := -2.0; q <= 2.0; q += 0.25 {
		for r := -2.0; r <= 2.0; r += 0.25 {
			frac := Axial[float32]{Q: float32(q), R: float32(r)}
			got := AxialRound[int32](frac)
			want := CubeToAxial(CubeRound[int32](AxialToCube(frac)))
			if got != want {
				t.Fatalf("AxialRound(%+v) = %+v, want %+v", frac, got, want)
			}
		}
	}
}
