package hypercube

import (
	"math/big"
	"testing"
)

// enumerate returns all vertices of [w]^v in counting order.
func enumerate(v, w int) []Vertex {
	total := 1
	for i := 0; i < v; i++ {
		total *= w
	}
	out := make([]Vertex, 0, total)
	cur := make(Vertex, v)
	for {
		x := make(Vertex, v)
		copy(x, cur)
		out = append(out, x)
		j := v - 1
		for ; j >= 0; j-- {
			if int(cur[j]) < w-1 {
				cur[j]++
				break
			}
			cur[j] = 0
		}
		if j < 0 {
			return out
		}
	}
}

func TestLayerSizeMatchesEnumeration(t *testing.T) {
	for _, tc := range []struct{ v, w int }{{3, 2}, {4, 3}, {5, 4}, {3, 6}} {
		counts := make(map[int]int64)
		for _, x := range enumerate(tc.v, tc.w) {
			d, err := Layer(x, tc.w)
			if err != nil {
				t.Fatalf("Layer: %v", err)
			}
			counts[d]++
		}
		for d := 0; d <= MaxLayer(tc.v, tc.w); d++ {
			want := big.NewInt(counts[d])
			if got := LayerSize(tc.v, tc.w, d); got.Cmp(want) != 0 {
				t.Fatalf("L(%d,%d,%d)=%s, enumeration says %s", tc.v, tc.w, d, got, want)
			}
		}
	}
}

func TestLayerSizeOutOfRange(t *testing.T) {
	if LayerSize(4, 3, -1).Sign() != 0 {
		t.Fatal("negative layer must have size 0")
	}
	if LayerSize(4, 3, MaxLayer(4, 3)+1).Sign() != 0 {
		t.Fatal("layer beyond v*(w-1) must have size 0")
	}
}

func TestLayerSizeDegenerate(t *testing.T) {
	one := big.NewInt(1)
	if got := LayerSize(7, 5, 0); got.Cmp(one) != 0 {
		t.Fatalf("L(7,5,0)=%s, want 1", got)
	}
	if got := LayerSize(7, 5, MaxLayer(7, 5)); got.Cmp(one) != 0 {
		t.Fatalf("top layer size=%s, want 1", got)
	}
}

func TestRankUnrankBijection(t *testing.T) {
	for _, tc := range []struct{ v, w int }{{3, 2}, {4, 3}, {5, 4}} {
		byLayer := make(map[int][]Vertex)
		for _, x := range enumerate(tc.v, tc.w) {
			d, _ := Layer(x, tc.w)
			byLayer[d] = append(byLayer[d], x)
		}
		for d, vs := range byLayer {
			seen := make(map[string]bool)
			size := LayerSize(tc.v, tc.w, d)
			for _, x := range vs {
				r, err := Rank(x, tc.w)
				if err != nil {
					t.Fatalf("Rank(%v): %v", x, err)
				}
				if r.Sign() < 0 || r.Cmp(size) >= 0 {
					t.Fatalf("rank %s outside [0,%s) for %v", r, size, x)
				}
				if seen[r.String()] {
					t.Fatalf("rank collision at %s in layer %d", r, d)
				}
				seen[r.String()] = true
				back, err := Unrank(tc.v, tc.w, d, r)
				if err != nil {
					t.Fatalf("Unrank(%s): %v", r, err)
				}
				for i := range x {
					if back[i] != x[i] {
						t.Fatalf("unrank(rank(%v)) = %v", x, back)
					}
				}
			}
			if int64(len(seen)) != size.Int64() {
				t.Fatalf("layer %d: %d distinct ranks, size %s", d, len(seen), size)
			}
		}
	}
}

func TestUnrankRejectsOutOfRange(t *testing.T) {
	if _, err := Unrank(4, 3, 2, LayerSize(4, 3, 2)); err == nil {
		t.Fatal("expected error for index == layer size")
	}
	if _, err := Unrank(4, 3, 2, big.NewInt(-1)); err == nil {
		t.Fatal("expected error for negative index")
	}
}

func TestLayerRejectsBadDigit(t *testing.T) {
	if _, err := Layer(Vertex{0, 3, 1}, 3); err == nil {
		t.Fatal("expected digit range error")
	}
}

func TestUnrankLargeLayerSpotCheck(t *testing.T) {
	// v=64, w=16 is the 128-bit TSL shape; round-trip a few indices in a
	// layer whose size comfortably exceeds 2^128.
	v, w := 64, 16
	d := 0
	for ; d <= MaxLayer(v, w); d++ {
		if LayerSize(v, w, d).BitLen() > 130 {
			break
		}
	}
	size := LayerSize(v, w, d)
	for _, idx := range []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		new(big.Int).Rsh(size, 1),
		new(big.Int).Sub(size, big.NewInt(1)),
	} {
		x, err := Unrank(v, w, d, idx)
		if err != nil {
			t.Fatalf("Unrank(%s): %v", idx, err)
		}
		got, _ := Layer(x, w)
		if got != d {
			t.Fatalf("unranked vertex in layer %d, want %d", got, d)
		}
		r, err := Rank(x, w)
		if err != nil {
			t.Fatalf("Rank: %v", err)
		}
		if r.Cmp(idx) != 0 {
			t.Fatalf("rank(unrank(%s)) = %s", idx, r)
		}
	}
}
