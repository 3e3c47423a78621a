package game

import "testing"

func TestIntersects_SymmetricAndEdgeInclusive(t *testing.T) {
	a := Rect{X: 10, Y: 10, W: 10, H: 10}
	cases := []struct {
		b    Rect
		want bool
	}{
		{Rect{X: 12, Y: 12, W: 2, H: 2}, true},  // inside
		{Rect{X: 20, Y: 10, W: 5, H: 5}, true},  // touching the right edge
		{Rect{X: 0, Y: 20, W: 10, H: 5}, true},  // touching a corner
		{Rect{X: 21, Y: 10, W: 5, H: 5}, false}, // one pixel clear
		{Rect{X: 10, Y: -6, W: 5, H: 5}, false},
	}
	for i, c := range cases {
		if got := Intersects(a, c.b); got != c.want {
			t.Fatalf("case %d: Intersects(a, b) = %v, want %v", i, got, c.want)
		}
		if got := Intersects(c.b, a); got != c.want {
			t.Fatalf("case %d: Intersects(b, a) = %v, want %v", i, got, c.want)
		}
	}
}

func TestOverlaps_ExcludesTouchingEdges(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	if a.Overlaps(Rect{X: 10, Y: 0, W: 5, H: 5}) {
		t.Fatal("boxes sharing only an edge should not overlap")
	}
	if !a.Overlaps(Rect{X: 9, Y: 9, W: 5, H: 5}) {
		t.Fatal("boxes sharing a pixel should overlap")
	}
	if a.Overlaps(Rect{X: 2, Y: 2}) {
		t.Fatal("an empty box overlaps nothing")
	}
}

func TestIntersectPixels_FindsFirstWallCell(t *testing.T) {
	sh := Shield{X: 20, Y: 180, Mask: archMask}
	shot := Rect{X: 30, Y: 176, W: ShotWidth, H: ShotHeight}
	if !Intersects(sh.Rect(), shot) {
		t.Fatal("setup: shot should touch the shield box")
	}
	hit, ok := IntersectPixels(shot, sh.Rect(), &sh.Mask)
	if !ok {
		t.Fatal("expected a pixel hit on the shield roof")
	}
	if hit.Row != 0 || hit.Col != 5 {
		t.Fatalf("expected cell (0,5), got (%d,%d)", hit.Row, hit.Col)
	}
	if !Intersects(sh.CellRect(hit.Row, hit.Col), shot) {
		t.Fatalf("hit cell %+v does not touch the shot %+v", sh.CellRect(hit.Row, hit.Col), shot)
	}
}

func TestIntersectPixels_ArchOpeningIsEmpty(t *testing.T) {
	sh := Shield{X: 20, Y: 180, Mask: archMask}
	// column 6, rows 4..6: inside the arch
	shot := Rect{X: 32, Y: 189, W: ShotWidth, H: ShotHeight}
	if _, ok := IntersectPixels(shot, sh.Rect(), &sh.Mask); ok {
		t.Fatal("expected no wall inside the arch opening")
	}
}

func TestSubtract_SingleAxisMoveLeavesOneStrip(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	cases := []struct {
		b    Rect
		want Rect
	}{
		{Rect{X: 3, Y: 0, W: 10, H: 10}, Rect{X: 0, Y: 0, W: 3, H: 10}},
		{Rect{X: -4, Y: 0, W: 10, H: 10}, Rect{X: 6, Y: 0, W: 4, H: 10}},
		{Rect{X: 0, Y: 2, W: 10, H: 10}, Rect{X: 0, Y: 0, W: 10, H: 2}},
		{Rect{X: 0, Y: -1, W: 10, H: 10}, Rect{X: 0, Y: 9, W: 10, H: 1}},
	}
	for i, c := range cases {
		var got []Rect
		for _, r := range Subtract(a, c.b) {
			if !r.Empty() {
				got = append(got, r)
			}
		}
		if len(got) != 1 || got[0] != c.want {
			t.Fatalf("case %d: expected [%+v], got %+v", i, c.want, got)
		}
	}
}

func TestSubtract_DisjointReturnsWhole(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	out := Subtract(a, Rect{X: 50, Y: 50, W: 5, H: 5})
	if out[0] != a {
		t.Fatalf("expected a unchanged, got %+v", out[0])
	}
	for _, r := range out[1:] {
		if !r.Empty() {
			t.Fatalf("unexpected extra strip %+v", r)
		}
	}
}

func TestSubtract_DiagonalCoversRemainder(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 4, Y: 3, W: 10, H: 10}
	area := 0
	for _, r := range Subtract(a, b) {
		if r.Overlaps(b) {
			t.Fatalf("strip %+v overlaps the subtracted box", r)
		}
		area += r.W * r.H
	}
	if want := 100 - 6*7; area != want {
		t.Fatalf("expected %d pixels left, got %d", want, area)
	}
}
