package geo

import "math"

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the X extent.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the Y extent.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Center returns the center point of the box.
func (r Rect) Center() Point2D {
	return Point2D{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}

// AspectRatio returns width/height, or 0 when height is zero.
func (r Rect) AspectRatio() float64 {
	h := r.Height()
	if h <= 0 {
		return 0
	}
	return r.Width() / h
}

// Expand returns the box grown by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Intersects returns true if the two boxes overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX < o.MaxX && r.MaxX > o.MinX && r.MinY < o.MaxY && r.MaxY > o.MinY
}

// RectPolygon builds a width x height rectangle centered at center, rotated
// by rotationDeg around its center. Vertices are in CCW order at zero rotation.
func RectPolygon(center Point2D, width, height, rotationDeg float64) Polygon {
	hw, hh := width/2, height/2
	corners := []Point2D{
		{center.X - hw, center.Y - hh},
		{center.X + hw, center.Y - hh},
		{center.X + hw, center.Y + hh},
		{center.X - hw, center.Y + hh},
	}
	if rotationDeg != 0 {
		rad := rotationDeg * math.Pi / 180
		for i, c := range corners {
			corners[i] = c.RotateAround(center, rad)
		}
	}
	return Polygon{Vertices: corners}
}
