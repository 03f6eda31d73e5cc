package massing

import (
	"fmt"
	"math"

	"github.com/emruss3/Optimizer-sub001/pkg/geo"
)

// partitionSpaces splits a required space count into lots of at most
// MaxSpacesPerLot. Lot counts always sum to the requirement.
func partitionSpaces(total int) []int {
	if total <= 0 {
		return nil
	}
	var lots []int
	for total > 0 {
		n := total
		if n > MaxSpacesPerLot {
			n = MaxSpacesPerLot
		}
		lots = append(lots, n)
		total -= n
	}
	return lots
}

// lotDimensions sizes a lot for the given space count at the standard gross
// area per space and lot aspect ratio.
func lotDimensions(spaces int) (width, depth float64) {
	area := float64(spaces) * ParkingSqFtPerSpace
	width = math.Sqrt(area * LotAspectRatio)
	depth = area / width
	return width, depth
}

// generateParking partitions the required spaces into lots and places each
// with a three-tier fallback search: envelope bounding-box corners first,
// then center-offset positions, then the full progressive grid scan. Lots
// that cannot be placed are dropped; the shortfall is visible in the metrics.
// Returns the placed lots and the number of spaces actually placed.
func generateParking(requiredSpaces int, buildable geo.Polygon, placed []Element) (lots []Element, placedSpaces int, omitted []string) {
	if requiredSpaces <= 0 {
		return nil, 0, nil
	}

	bb := buildable.BoundingBox()
	center := bb.Center()

	for i, spaces := range partitionSpaces(requiredSpaces) {
		width, depth := lotDimensions(spaces)
		name := fmt.Sprintf("Lot %c", 'A'+i%26)

		// Tier 1: corner positions, inset by the lot half-dimensions.
		candidates := []geo.Point2D{
			geo.Pt(bb.MinX+width/2, bb.MinY+depth/2),
			geo.Pt(bb.MaxX-width/2, bb.MinY+depth/2),
			geo.Pt(bb.MinX+width/2, bb.MaxY-depth/2),
			geo.Pt(bb.MaxX-width/2, bb.MaxY-depth/2),
		}
		// Tier 2: center and center-offset positions.
		candidates = append(candidates,
			center,
			geo.Pt(center.X-width, center.Y),
			geo.Pt(center.X+width, center.Y),
			geo.Pt(center.X, center.Y-depth),
			geo.Pt(center.X, center.Y+depth),
		)

		all := append(placed, lots...)
		lot, ok := Element{}, false
		for _, c := range candidates {
			if validPosition(c, width, depth, 0, buildable, all, PlacementBufferFt) {
				lot = newElement(KindParking, name, c, width, depth, 0)
				ok = true
				break
			}
		}
		if !ok {
			// Tier 3: full grid scan.
			if c, found := findPosition(center, width, depth, 0, buildable, all, PlacementBufferFt); found {
				lot = newElement(KindParking, name, c, width, depth, 0)
				ok = true
			}
		}
		if !ok {
			omitted = append(omitted, name)
			continue
		}

		lot.Spaces = spaces
		lots = append(lots, lot)
		placedSpaces += spaces
	}
	return lots, placedSpaces, omitted
}
