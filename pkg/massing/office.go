package massing

import (
	"fmt"
	"math"

	"github.com/emruss3/Optimizer-sub001/pkg/validation"
)

// officeStrategy places a single office bar sized to the FAR and coverage
// ceilings. Office programs carry no dwelling units; density never binds.
type officeStrategy struct{}

func (officeStrategy) Typology() Typology { return TypologyOffice }

func (officeStrategy) Generate(site Site) (*Layout, *validation.Report, error) {
	return generateCommercial(site, TypologyOffice, "Office Building", "bar", site.maxFloors(MaxOfficeFloors), 1.5)
}

// retailStrategy places a single-story retail strip with ratio-driven
// surface parking.
type retailStrategy struct{}

func (retailStrategy) Typology() Typology { return TypologyRetail }

func (retailStrategy) Generate(site Site) (*Layout, *validation.Report, error) {
	return generateCommercial(site, TypologyRetail, "Retail Strip", "strip", 1, 2.5)
}

// generateCommercial is the shared office/retail program: gross floor area
// targets the FAR ceiling, footprint is capped by the coverage ceiling.
func generateCommercial(site Site, typ Typology, name, strategyName string, floors int, aspect float64) (*Layout, *validation.Report, error) {
	report, err := checkSite(site)
	if err != nil {
		return nil, report, err
	}
	layout := &Layout{Typology: typ, Strategy: strategyName}
	buildable := site.Envelope.Polygon

	grossTarget := site.Envelope.AreaSqFt * site.Zoning.MaxFAR
	maxFootprint := site.Envelope.AreaSqFt * site.Zoning.MaxCoveragePct / 100
	footprint := math.Min(grossTarget/float64(floors), maxFootprint)
	if footprint <= 0 {
		report.AddError(validation.Result{
			Level:   validation.LevelFeasibility,
			Message: fmt.Sprintf("%s program has zero footprint under zoning ceilings", typ),
		})
		return nil, report, ErrInfeasible
	}

	width := math.Sqrt(footprint * aspect)
	depth := footprint / width

	building, ok := placeElement(KindBuilding, name, buildable.Centroid(), width, depth, 0, buildable, nil)
	if !ok {
		// Retry at half footprint before declaring the site infeasible.
		width = math.Sqrt(footprint / 2 * aspect)
		depth = footprint / 2 / width
		building, ok = placeElement(KindBuilding, name, buildable.Centroid(), width, depth, 0, buildable, nil)
	}
	if !ok {
		report.AddError(validation.Result{
			Level:   validation.LevelFeasibility,
			Message: fmt.Sprintf("%s footprint %.0f sqft does not fit the buildable envelope", typ, footprint),
		})
		return nil, report, ErrInfeasible
	}
	building.Floors = floors
	layout.Buildings = append(layout.Buildings, building)

	spaces := site.requiredParkingSpaces(building.GrossSqFt())
	lots, placedSpaces, omitted := generateParking(spaces, buildable, layout.AllElements())
	layout.Parking = append(layout.Parking, lots...)
	for _, lotName := range omitted {
		warnOmitted(report, layout, "parking "+lotName)
	}

	layout.Metrics = ComputeMetrics(layout, site.Parcel, site.Market)
	report.AddInfo(validation.Result{
		Level: validation.LevelPlacement,
		Message: fmt.Sprintf("%s: %.0f sqft gross over %d floors, %d of %d parking spaces",
			typ, building.GrossSqFt(), floors, placedSpaces, spaces),
	})
	return layout, report, nil
}
