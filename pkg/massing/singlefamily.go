package massing

import (
	"fmt"
	"math"

	"github.com/emruss3/Optimizer-sub001/pkg/geo"
	"github.com/emruss3/Optimizer-sub001/pkg/validation"
)

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// singleFamilyStrategy places one detached house sized from the market's
// average home size, clamped to the house-size limits, plus a driveway.
type singleFamilyStrategy struct{}

func (singleFamilyStrategy) Typology() Typology { return TypologySingleFamily }

func (singleFamilyStrategy) Generate(site Site) (*Layout, *validation.Report, error) {
	report, err := checkSite(site)
	if err != nil {
		return nil, report, err
	}
	layout := &Layout{Typology: TypologySingleFamily, Strategy: "detached"}
	buildable := site.Envelope.Polygon

	houseArea := clamp(site.Market.AvgHomeSizeSqFt, MinHouseSqFt, MaxHouseSqFt)
	width := math.Sqrt(houseArea * 1.5)
	depth := houseArea / width

	house, ok := placeElement(KindBuilding, "Residence", buildable.Centroid(), width, depth, 0, buildable, nil)
	if !ok {
		report.AddError(validation.Result{
			Level:   validation.LevelFeasibility,
			Message: fmt.Sprintf("a %.0f sqft house does not fit the %.0f sqft buildable envelope", houseArea, site.Envelope.AreaSqFt),
		})
		return nil, report, ErrInfeasible
	}
	house.Floors = 1
	house.Units = 1
	layout.Buildings = append(layout.Buildings, house)

	// Driveway toward the front of the envelope, at least two cars, sized at
	// the standard gross area per space so the placed area meets the ratio.
	spaces := site.requiredParkingSpaces(house.GrossSqFt())
	if spaces < 2 {
		spaces = 2
	}
	driveWidth, driveDepth := lotDimensions(spaces)
	bb := buildable.BoundingBox()
	drivePref := geo.Pt(house.Footprint.Centroid().X, bb.MinY+driveDepth/2+1)
	if drive, placed := placeElement(KindParking, "Driveway", drivePref, driveWidth, driveDepth, 0, buildable, layout.AllElements()); placed {
		drive.Spaces = spaces
		layout.Parking = append(layout.Parking, drive)
	} else {
		warnOmitted(report, layout, "Driveway")
	}

	layout.Metrics = ComputeMetrics(layout, site.Parcel, site.Market)
	report.AddInfo(validation.Result{
		Level:   validation.LevelPlacement,
		Message: fmt.Sprintf("single-family: placed %.0f sqft residence, coverage %.1f%%", house.AreaSqFt, layout.Metrics.CoveragePct),
	})
	return layout, report, nil
}
