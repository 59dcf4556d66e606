package image

import "strconv"

// Rect is an integer rectangle, half-open on both axes: a pixel (x, y) is
// inside when X1 <= x < X2 and Y1 <= y < Y2.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// R is shorthand for Rect{x1, y1, x2, y2}.
func R(x1, y1, x2, y2 int) Rect {
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Dx returns the width of r, or 0 when r is inverted.
func (r Rect) Dx() int {
	return max(r.X2-r.X1, 0)
}

// Dy returns the height of r, or 0 when r is inverted.
func (r Rect) Dy() int {
	return max(r.Y2-r.Y1, 0)
}

// Empty reports whether r contains no pixels.
func (r Rect) Empty() bool {
	return r.X1 >= r.X2 || r.Y1 >= r.Y2
}

// Valid reports whether X1 <= X2 and Y1 <= Y2.
func (r Rect) Valid() bool {
	return r.X1 <= r.X2 && r.Y1 <= r.Y2
}

// Contains reports whether pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x < r.X2 && y >= r.Y1 && y < r.Y2
}

// Intersect returns the largest rectangle contained by both r and s.
// Disjoint rectangles yield an empty Rect anchored at r's origin.
func (r Rect) Intersect(s Rect) Rect {
	out := Rect{
		X1: max(r.X1, s.X1),
		Y1: max(r.Y1, s.Y1),
		X2: min(r.X2, s.X2),
		Y2: min(r.Y2, s.Y2),
	}
	if out.Empty() {
		return Rect{X1: r.X1, Y1: r.Y1, X2: r.X1, Y2: r.Y1}
	}
	return out
}

// In reports whether every pixel of r is inside s. An empty r is in any s.
func (r Rect) In(s Rect) bool {
	if r.Empty() {
		return true
	}
	return r.X1 >= s.X1 && r.X2 <= s.X2 && r.Y1 >= s.Y1 && r.Y2 <= s.Y2
}

// String returns "(x1,y1)-(x2,y2)".
func (r Rect) String() string {
	return "(" + strconv.Itoa(r.X1) + "," + strconv.Itoa(r.Y1) + ")-(" +
		strconv.Itoa(r.X2) + "," + strconv.Itoa(r.Y2) + ")"
}
