package game

// Rect is an axis-aligned box covering pixels [X, X+W) × [Y, Y+H).
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Right returns the first column right of r.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row below r.
func (r Rect) Bottom() int { return r.Y + r.H }

// Overlaps reports whether r and o share at least one pixel.
func (r Rect) Overlaps(o Rect) bool {
	return !r.Empty() && !o.Empty() &&
		r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Intersect returns the pixels shared by r and o; the result is empty when
// they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest box containing r and o. Empty boxes are
// ignored.
func (r Rect) Union(o Rect) Rect {
	switch {
	case r.Empty():
		return o
	case o.Empty():
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Intersects is the collision test: a separating-axis check that treats
// boxes touching along an edge as colliding.
func Intersects(a, b Rect) bool {
	return !(b.X > a.X+a.W ||
		b.X+b.W < a.X ||
		b.Y > a.Y+a.H ||
		b.Y+b.H < a.Y)
}

// PixelHit is the result of a pixel-level collision against a shield mask.
type PixelHit struct {
	Row, Col int  // first opaque mask cell found
	Overlap  Rect // region that was scanned
}

// IntersectPixels scans the overlap of a and b, which must already
// Intersect, in 2-pixel steps, rows top to bottom and columns left to
// right. It reports the first cell of b's mask that is opaque. The overlap
// is inclusive of the far edges, matching Intersects.
func IntersectPixels(a, b Rect, m *Mask) (PixelHit, bool) {
	top := max(a.Y, b.Y)
	bottom := min(a.Y+a.H, b.Y+b.H)
	left := max(a.X, b.X)
	right := min(a.X+a.W, b.X+b.W)
	overlap := Rect{X: left, Y: top, W: right - left + 1, H: bottom - top + 1}

	for y := top; y <= bottom; y += 2 {
		row := (y - b.Y) >> 1
		if row < 0 || row >= MaskRows {
			continue
		}
		for x := left; x <= right; x += 2 {
			col := (x - b.X) >> 1
			if col < 0 || col >= MaskCols {
				continue
			}
			if m.Bit(row, col) {
				return PixelHit{Row: row, Col: col, Overlap: overlap}, true
			}
		}
	}
	return PixelHit{}, false
}

// Subtract returns the parts of a not covered by b, as up to four disjoint
// boxes; unused entries are empty. When a and b are the same size and
// offset along one axis only, at most one entry is non-empty.
func Subtract(a, b Rect) [4]Rect {
	var out [4]Rect
	in := a.Intersect(b)
	if in.Empty() {
		out[0] = a
		return out
	}
	// bands above and below the overlap, full width
	out[0] = Rect{X: a.X, Y: a.Y, W: a.W, H: in.Y - a.Y}
	out[1] = Rect{X: a.X, Y: in.Bottom(), W: a.W, H: a.Bottom() - in.Bottom()}
	// strips left and right of the overlap, within its rows
	out[2] = Rect{X: a.X, Y: in.Y, W: in.X - a.X, H: in.H}
	out[3] = Rect{X: in.Right(), Y: in.Y, W: a.Right() - in.Right(), H: in.H}
	for i := range out {
		if out[i].Empty() {
			out[i] = Rect{}
		}
	}
	return out
}
