package massing

import "github.com/emruss3/Optimizer-sub001/pkg/geo"

// validPosition reports whether a width x height footprint centered at
// center sits entirely inside the buildable polygon (all four corners) and
// keeps the clearance buffer from every already placed element.
func validPosition(center geo.Point2D, width, height, rotationDeg float64, buildable geo.Polygon, placed []Element, buffer float64) bool {
	fp := geo.RectPolygon(center, width, height, rotationDeg)
	for _, corner := range fp.Vertices {
		if !buildable.Contains(corner) {
			return false
		}
	}
	candidate := fp.BoundingBox().Expand(buffer)
	for _, e := range placed {
		if candidate.Intersects(e.Footprint.BoundingBox()) {
			return false
		}
	}
	return true
}

// findPosition searches for a valid center for the footprint. The preferred
// position is tried first; failing that, the envelope bounding box is scanned
// on a progressively finer grid (50 -> 25 -> 12 -> 6 ft) until a fully
// contained, non-overlapping position is found or the attempt budget runs
// out. The scan order is deterministic.
func findPosition(preferred geo.Point2D, width, height, rotationDeg float64, buildable geo.Polygon, placed []Element, buffer float64) (geo.Point2D, bool) {
	if validPosition(preferred, width, height, rotationDeg, buildable, placed, buffer) {
		return preferred, true
	}

	bb := buildable.BoundingBox()
	attempts := 0
	for _, step := range searchStepsFt {
		for y := bb.MinY + height/2; y <= bb.MaxY-height/2; y += step {
			for x := bb.MinX + width/2; x <= bb.MaxX-width/2; x += step {
				attempts++
				if attempts > maxPlacementAttempts {
					return geo.Point2D{}, false
				}
				c := geo.Pt(x, y)
				if validPosition(c, width, height, rotationDeg, buildable, placed, buffer) {
					return c, true
				}
			}
		}
	}
	return geo.Point2D{}, false
}

// placeElement builds an element at the first valid position near preferred.
// Returns false when no valid position exists; the caller records the
// omission as a placement warning (never places out of bounds).
func placeElement(kind Kind, name string, preferred geo.Point2D, width, height, rotationDeg float64, buildable geo.Polygon, placed []Element) (Element, bool) {
	center, ok := findPosition(preferred, width, height, rotationDeg, buildable, placed, PlacementBufferFt)
	if !ok {
		return Element{}, false
	}
	return newElement(kind, name, center, width, height, rotationDeg), true
}
