package geo

import "math"

// ClipHalfPlane clips the polygon to the half-plane on the left of the
// directed line a->b. Used to re-intersect a parcel after offsetting one
// edge inward by its setback.
func ClipHalfPlane(subject Polygon, a, b Point2D) Polygon {
	if subject.IsEmpty() {
		return Polygon{}
	}
	input := subject.Vertices
	output := make([]Point2D, 0, len(input)+2)

	for i := 0; i < len(input); i++ {
		current := input[i]
		next := input[(i+1)%len(input)]
		curInside := isInsideEdge(current, a, b)
		nextInside := isInsideEdge(next, a, b)

		switch {
		case curInside && nextInside:
			output = append(output, next)
		case curInside && !nextInside:
			if ix, ok := lineIntersection(current, next, a, b); ok {
				output = append(output, ix)
			}
		case !curInside && nextInside:
			if ix, ok := lineIntersection(current, next, a, b); ok {
				output = append(output, ix)
			}
			output = append(output, next)
		}
	}
	if len(output) < 3 {
		return Polygon{}
	}
	return Polygon{Vertices: output}
}

// ClipToConvex clips the subject polygon to a convex clip polygon using
// the Sutherland-Hodgman algorithm. Returns the intersection polygon.
// The clipper must be in CCW order.
func ClipToConvex(subject, clipper Polygon) Polygon {
	if subject.IsEmpty() || clipper.IsEmpty() {
		return Polygon{}
	}
	result := subject
	clipN := len(clipper.Vertices)
	for i := 0; i < clipN; i++ {
		if result.IsEmpty() {
			return Polygon{}
		}
		result = ClipHalfPlane(result, clipper.Vertices[i], clipper.Vertices[(i+1)%clipN])
	}
	return result
}

// isInsideEdge returns true if the point is on the inside (left) of the
// directed edge from a to b.
func isInsideEdge(p, a, b Point2D) bool {
	return (b.X-a.X)*(p.Y-a.Y)-(b.Y-a.Y)*(p.X-a.X) >= 0
}

// lineIntersection returns the intersection point of lines (p1->p2) and (p3->p4).
func lineIntersection(p1, p2, p3, p4 Point2D) (Point2D, bool) {
	d := (p1.X-p2.X)*(p3.Y-p4.Y) - (p1.Y-p2.Y)*(p3.X-p4.X)
	if math.Abs(d) < 1e-12 {
		return Point2D{}, false
	}
	t := ((p1.X-p3.X)*(p3.Y-p4.Y) - (p1.Y-p3.Y)*(p3.X-p4.X)) / d
	return Point2D{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
	}, true
}
