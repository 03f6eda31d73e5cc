package massing

import (
	"fmt"
	"math"

	"github.com/emruss3/Optimizer-sub001/pkg/validation"
)

// duplexStrategy places one two-unit building over two stories with a
// shared parking pad.
type duplexStrategy struct{}

func (duplexStrategy) Typology() Typology { return TypologyDuplex }

func (duplexStrategy) Generate(site Site) (*Layout, *validation.Report, error) {
	report, err := checkSite(site)
	if err != nil {
		return nil, report, err
	}
	layout := &Layout{Typology: TypologyDuplex, Strategy: "attached"}
	buildable := site.Envelope.Polygon

	unitSize := clamp(site.Market.AvgHomeSizeSqFt*0.75, 1200, 2250)
	gross := 2 * unitSize
	floors := site.maxFloors(2)
	footprint := gross / float64(floors)
	width := math.Sqrt(footprint * 1.4)
	depth := footprint / width

	building, ok := placeElement(KindBuilding, "Duplex", buildable.Centroid(), width, depth, 0, buildable, nil)
	if !ok {
		report.AddError(validation.Result{
			Level:   validation.LevelFeasibility,
			Message: fmt.Sprintf("duplex footprint %.0f sqft does not fit the buildable envelope", footprint),
		})
		return nil, report, ErrInfeasible
	}
	building.Floors = floors
	building.Units = 2
	layout.Buildings = append(layout.Buildings, building)

	spaces := site.requiredParkingSpaces(building.GrossSqFt())
	if spaces < 2 {
		spaces = 2
	}
	lots, placedSpaces, omitted := generateParking(spaces, buildable, layout.AllElements())
	layout.Parking = append(layout.Parking, lots...)
	for _, name := range omitted {
		warnOmitted(report, layout, "parking "+name)
	}

	layout.Metrics = ComputeMetrics(layout, site.Parcel, site.Market)
	report.AddInfo(validation.Result{
		Level:   validation.LevelPlacement,
		Message: fmt.Sprintf("duplex: %d units over %d floors, %d of %d parking spaces placed", building.Units, floors, placedSpaces, spaces),
	})
	return layout, report, nil
}
