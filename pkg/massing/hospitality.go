package massing

import (
	"fmt"
	"math"

	"github.com/emruss3/Optimizer-sub001/pkg/validation"
)

// hospitalityStrategy places a hotel sized in rooms. Rooms count as units
// for density purposes, which mirrors how lodging density is regulated.
type hospitalityStrategy struct{}

func (hospitalityStrategy) Typology() Typology { return TypologyHospitality }

func (hospitalityStrategy) Generate(site Site) (*Layout, *validation.Report, error) {
	report, err := checkSite(site)
	if err != nil {
		return nil, report, err
	}
	layout := &Layout{Typology: TypologyHospitality, Strategy: "tower"}
	buildable := site.Envelope.Polygon

	floors := site.maxFloors(MaxHotelFloors)
	grossCeiling := site.Envelope.AreaSqFt * site.Zoning.MaxFAR
	footprintCeiling := site.Envelope.AreaSqFt * site.Zoning.MaxCoveragePct / 100
	gross := math.Min(grossCeiling, footprintCeiling*float64(floors))

	rooms := int(math.Floor(gross / HotelRoomSqFt))
	if site.Zoning.MaxDensityDUAcre > 0 {
		if cap := int(site.Parcel.Acres() * site.Zoning.MaxDensityDUAcre); rooms > cap {
			rooms = cap
		}
	}
	if rooms < 1 {
		report.AddError(validation.Result{
			Level:   validation.LevelFeasibility,
			Message: "zoning ceilings allow zero hotel rooms",
		})
		return nil, report, ErrInfeasible
	}

	footprint := float64(rooms) * HotelRoomSqFt / float64(floors)
	width := math.Sqrt(footprint * 2)
	depth := footprint / width

	hotel, ok := placeElement(KindBuilding, "Hotel", buildable.Centroid(), width, depth, 0, buildable, nil)
	if !ok {
		report.AddError(validation.Result{
			Level:   validation.LevelFeasibility,
			Message: fmt.Sprintf("hotel footprint %.0f sqft does not fit the buildable envelope", footprint),
		})
		return nil, report, ErrInfeasible
	}
	hotel.Floors = floors
	hotel.Units = rooms
	layout.Buildings = append(layout.Buildings, hotel)

	spaces := site.requiredParkingSpaces(hotel.GrossSqFt())
	lots, placedSpaces, omitted := generateParking(spaces, buildable, layout.AllElements())
	layout.Parking = append(layout.Parking, lots...)
	for _, name := range omitted {
		warnOmitted(report, layout, "parking "+name)
	}

	_, amenityOmitted := generateAmenities(site, layout, rooms)
	for _, name := range amenityOmitted {
		warnOmitted(report, layout, name)
	}

	layout.Metrics = ComputeMetrics(layout, site.Parcel, site.Market)
	report.AddInfo(validation.Result{
		Level: validation.LevelPlacement,
		Message: fmt.Sprintf("hospitality: %d rooms over %d floors, %d of %d parking spaces",
			rooms, floors, placedSpaces, spaces),
	})
	return layout, report, nil
}
