package geo

import "math"

// Polygon is a closed polygon defined by its vertices in order. The last
// vertex connects implicitly back to the first.
type Polygon struct {
	Vertices []Point2D `json:"vertices"`
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (p Polygon) Edge(i int) (Point2D, Point2D) {
	n := len(p.Vertices)
	return p.Vertices[i%n], p.Vertices[(i+1)%n]
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
// Degenerate input (<3 vertices) returns 0.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon in square feet.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// IsCounterClockwise returns true if vertices are in CCW order.
func (p Polygon) IsCounterClockwise() bool {
	return p.SignedArea() > 0
}

// EnsureCCW returns the polygon with vertices in counterclockwise order.
func (p Polygon) EnsureCCW() Polygon {
	if p.SignedArea() < 0 {
		return p.Reverse()
	}
	return p
}

// Reverse returns the polygon with reversed vertex order.
func (p Polygon) Reverse() Polygon {
	n := len(p.Vertices)
	rev := make([]Point2D, n)
	for i, v := range p.Vertices {
		rev[n-1-i] = v
	}
	return Polygon{Vertices: rev}
}

// Centroid returns the centroid of the polygon.
func (p Polygon) Centroid() Point2D {
	n := len(p.Vertices)
	if n == 0 {
		return Point2D{}
	}
	a := p.SignedArea()
	if n < 3 || math.Abs(a) < 1e-12 {
		// Degenerate: return the vertex average.
		sum := Point2D{}
		for _, v := range p.Vertices {
			sum = sum.Add(v)
		}
		return sum.Scale(1.0 / float64(n))
	}
	cx, cy := 0.0, 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p.Vertices[i].X*p.Vertices[j].Y - p.Vertices[j].X*p.Vertices[i].Y
		cx += (p.Vertices[i].X + p.Vertices[j].X) * cross
		cy += (p.Vertices[i].Y + p.Vertices[j].Y) * cross
	}
	f := 1.0 / (6.0 * a)
	return Point2D{cx * f, cy * f}
}

// BoundingBox returns the axis-aligned bounding box of the polygon.
func (p Polygon) BoundingBox() Rect {
	if len(p.Vertices) == 0 {
		return Rect{}
	}
	r := Rect{
		MinX: p.Vertices[0].X, MaxX: p.Vertices[0].X,
		MinY: p.Vertices[0].Y, MaxY: p.Vertices[0].Y,
	}
	for _, v := range p.Vertices[1:] {
		if v.X < r.MinX {
			r.MinX = v.X
		}
		if v.Y < r.MinY {
			r.MinY = v.Y
		}
		if v.X > r.MaxX {
			r.MaxX = v.X
		}
		if v.Y > r.MaxY {
			r.MaxY = v.Y
		}
	}
	return r
}

// Contains returns true if the point is inside the polygon using ray casting.
// A point exactly on an edge is implementation-defined: the crossing test
// counts the lower endpoint of an edge as inside and the upper as outside,
// so callers must not rely on exact-boundary behavior.
func (p Polygon) Contains(pt Point2D) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// ContainsPolygon returns true if every vertex of q lies inside p.
// Sufficient for the convex-in-convex checks used by placement search.
func (p Polygon) ContainsPolygon(q Polygon) bool {
	for _, v := range q.Vertices {
		if !p.Contains(v) {
			return false
		}
	}
	return len(q.Vertices) > 0
}

// Perimeter returns the total perimeter length of the closed loop.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += p.Vertices[i].Distance(p.Vertices[j])
	}
	return total
}

// Translate returns the polygon shifted by the given offset.
func (p Polygon) Translate(offset Point2D) Polygon {
	pts := make([]Point2D, len(p.Vertices))
	for i, v := range p.Vertices {
		pts[i] = v.Add(offset)
	}
	return Polygon{Vertices: pts}
}
