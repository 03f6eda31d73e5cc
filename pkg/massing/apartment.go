package massing

import (
	"fmt"
	"math"

	"github.com/emruss3/Optimizer-sub001/pkg/geo"
	"github.com/emruss3/Optimizer-sub001/pkg/validation"
)

// apartmentStrategy places multi-building apartment programs. The unit count
// comes from the binding zoning ceiling; building arrangement follows the
// site orientation: linear bars on wide sites, a radial cluster on deep
// sites, and three bars framing a central courtyard on square sites.
type apartmentStrategy struct{}

func (apartmentStrategy) Typology() Typology { return TypologyApartment }

func (apartmentStrategy) Generate(site Site) (*Layout, *validation.Report, error) {
	report, err := checkSite(site)
	if err != nil {
		return nil, report, err
	}

	maxUnits, binding := site.unitProgram()
	if maxUnits < 1 {
		report.AddError(validation.Result{
			Level:   validation.LevelFeasibility,
			Message: fmt.Sprintf("zoning ceilings (binding: %s) allow zero apartment units", binding),
		})
		return nil, report, ErrInfeasible
	}

	sub := site.orientation()
	var strategyName string
	switch sub {
	case orientationWide:
		strategyName = "linear"
	case orientationDeep:
		strategyName = "cluster"
	default:
		strategyName = "courtyard"
	}
	layout := &Layout{Typology: TypologyApartment, Strategy: strategyName}

	count := int(math.Ceil(float64(maxUnits) / UnitsPerApartmentBuilding))
	if strategyName == "courtyard" {
		count = 3
	}
	if count > 6 {
		count = 6
	}
	unitsPer := maxUnits / count
	if unitsPer < 1 {
		unitsPer = 1
		count = maxUnits
	}

	floors := site.maxFloors(MaxApartmentFloors)
	footprint := float64(unitsPer) * ApartmentUnitSqFt / float64(floors)

	var placedUnits int
	switch strategyName {
	case "linear":
		placedUnits = placeLinear(site, layout, report, count, unitsPer, floors, footprint)
	case "cluster":
		placedUnits = placeCluster(site, layout, report, count, unitsPer, floors, footprint)
	default:
		placedUnits = placeCourtyard(site, layout, report, unitsPer, floors, footprint)
	}

	if len(layout.Buildings) == 0 {
		report.AddError(validation.Result{
			Level:   validation.LevelFeasibility,
			Message: fmt.Sprintf("no apartment building could be placed (%s arrangement, %d units allowed)", strategyName, maxUnits),
		})
		return nil, report, ErrInfeasible
	}

	gross := 0.0
	for _, b := range layout.Buildings {
		gross += b.GrossSqFt()
	}
	spaces := site.requiredParkingSpaces(gross)
	lots, placedSpaces, omitted := generateParking(spaces, site.Envelope.Polygon, layout.AllElements())
	layout.Parking = append(layout.Parking, lots...)
	for _, name := range omitted {
		warnOmitted(report, layout, "parking "+name)
	}

	_, amenityOmitted := generateAmenities(site, layout, placedUnits)
	for _, name := range amenityOmitted {
		warnOmitted(report, layout, name)
	}

	layout.Metrics = ComputeMetrics(layout, site.Parcel, site.Market)
	report.AddInfo(validation.Result{
		Level: validation.LevelPlacement,
		Message: fmt.Sprintf("apartment (%s, binding %s): %d buildings, %d units, %d of %d parking spaces",
			strategyName, binding, len(layout.Buildings), placedUnits, placedSpaces, spaces),
	})
	return layout, report, nil
}

// placeLinear spaces the buildings evenly along the envelope's dominant axis.
func placeLinear(site Site, layout *Layout, report *validation.Report, count, unitsPer, floors int, footprint float64) int {
	buildable := site.Envelope.Polygon
	bb := buildable.BoundingBox()
	horizontal := bb.Width() >= bb.Height()

	// Bars elongated along the dominant axis.
	long := math.Sqrt(footprint * 3)
	short := footprint / long
	width, depth := long, short
	if !horizontal {
		width, depth = short, long
	}

	units := 0
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("Building %c", 'A'+i)
		t := (float64(i) + 0.5) / float64(count)
		var preferred geo.Point2D
		if horizontal {
			preferred = geo.Pt(bb.MinX+t*bb.Width(), bb.Center().Y)
		} else {
			preferred = geo.Pt(bb.Center().X, bb.MinY+t*bb.Height())
		}
		b, ok := placeElement(KindBuilding, name, preferred, width, depth, 0, buildable, layout.AllElements())
		if !ok {
			warnOmitted(report, layout, name)
			continue
		}
		b.Floors = floors
		b.Units = unitsPer
		layout.Buildings = append(layout.Buildings, b)
		units += unitsPer
	}
	return units
}

// placeCluster arranges the buildings radially around the envelope centroid.
func placeCluster(site Site, layout *Layout, report *validation.Report, count, unitsPer, floors int, footprint float64) int {
	buildable := site.Envelope.Polygon
	bb := buildable.BoundingBox()
	centroid := buildable.Centroid()
	radius := math.Min(bb.Width(), bb.Height()) / 3

	side := math.Sqrt(footprint * 1.2)
	depth := footprint / side

	units := 0
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("Building %c", 'A'+i)
		angle := 2 * math.Pi * float64(i) / float64(count)
		preferred := centroid.Add(geo.Pt(radius*math.Cos(angle), radius*math.Sin(angle)))
		b, ok := placeElement(KindBuilding, name, preferred, side, depth, 0, buildable, layout.AllElements())
		if !ok {
			warnOmitted(report, layout, name)
			continue
		}
		b.Floors = floors
		b.Units = unitsPer
		layout.Buildings = append(layout.Buildings, b)
		units += unitsPer
	}
	return units
}

// placeCourtyard frames a central open court with three bars on its west,
// north, and east sides. The court is never smaller than the configured
// minimum dimension.
func placeCourtyard(site Site, layout *Layout, report *validation.Report, unitsPer, floors int, footprint float64) int {
	c := site.Constraints.withDefaults()
	buildable := site.Envelope.Polygon
	centroid := buildable.Centroid()

	court := math.Max(c.MinCourtyardFt, math.Sqrt(site.Envelope.AreaSqFt)*0.15)
	barDepth := 35.0
	barLength := math.Max(court, footprint/barDepth)
	offset := court/2 + barDepth/2 + PlacementBufferFt

	bars := []struct {
		name          string
		preferred     geo.Point2D
		width, height float64
	}{
		{"Building A", centroid.Add(geo.Pt(0, offset)), barLength, barDepth},  // north
		{"Building B", centroid.Add(geo.Pt(-offset, 0)), barDepth, barLength}, // west
		{"Building C", centroid.Add(geo.Pt(offset, 0)), barDepth, barLength},  // east
	}

	units := 0
	for _, bar := range bars {
		b, ok := placeElement(KindBuilding, bar.name, bar.preferred, bar.width, bar.height, 0, buildable, layout.AllElements())
		if !ok {
			warnOmitted(report, layout, bar.name)
			continue
		}
		b.Floors = floors
		b.Units = unitsPer
		layout.Buildings = append(layout.Buildings, b)
		units += unitsPer
	}
	return units
}
