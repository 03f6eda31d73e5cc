package massing

import "math"

// generateAmenities adds shared amenities for larger programs: a clubhouse
// and a greenspace sized as a fraction of the envelope. Applied only above
// the unit threshold. Unplaceable amenities are omitted with a warning, the
// same as any other element.
func generateAmenities(site Site, layout *Layout, units int) (placedNames, omitted []string) {
	if units < AmenityThresholdUnits {
		return nil, nil
	}

	buildable := site.Envelope.Polygon
	centroid := buildable.Centroid()
	placed := layout.AllElements()

	// Clubhouse: 1.5:1 rectangle.
	cw := math.Sqrt(ClubhouseSqFt * 1.5)
	ch := ClubhouseSqFt / cw
	if club, ok := placeElement(KindBuilding, "Clubhouse", centroid, cw, ch, 0, buildable, placed); ok {
		club.Floors = 1
		layout.Amenities = append(layout.Amenities, club)
		placed = append(placed, club)
		placedNames = append(placedNames, "Clubhouse")
	} else {
		omitted = append(omitted, "Clubhouse")
	}

	// Greenspace: square sized by envelope fraction.
	side := math.Sqrt(site.Envelope.AreaSqFt * GreenspaceFraction)
	if green, ok := placeElement(KindGreenspace, "Greenspace", centroid, side, side, 0, buildable, placed); ok {
		layout.Amenities = append(layout.Amenities, green)
		placedNames = append(placedNames, "Greenspace")
	} else {
		omitted = append(omitted, "Greenspace")
	}
	return placedNames, omitted
}
