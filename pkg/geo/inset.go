package geo

// Inset shrinks a polygon toward its centroid so that vertices move inward
// by approximately the requested distance.
//
// This is an approximation, not a true parallel offset: each vertex is scaled
// toward the centroid by a ratio derived from the average centroid-to-vertex
// distance. It is accurate for convex, roughly regular shapes and degrades on
// concave or very elongated polygons. Callers that have per-edge setback data
// should prefer the exact half-plane clipping in ClipHalfPlane.
//
// Returns an empty polygon when the inset consumes the whole shape or the
// input is degenerate.
func Inset(p Polygon, distance float64) Polygon {
	if p.IsEmpty() || distance < 0 {
		return Polygon{}
	}
	if distance == 0 {
		return p
	}
	c := p.Centroid()
	avg := 0.0
	for _, v := range p.Vertices {
		avg += v.Distance(c)
	}
	avg /= float64(len(p.Vertices))
	if avg <= distance {
		return Polygon{}
	}
	ratio := 1 - distance/avg
	pts := make([]Point2D, len(p.Vertices))
	for i, v := range p.Vertices {
		pts[i] = c.Add(v.Sub(c).Scale(ratio))
	}
	return Polygon{Vertices: pts}
}
