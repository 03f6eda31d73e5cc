package massing

import (
	"math"

	"github.com/emruss3/Optimizer-sub001/pkg/envelope"
	"github.com/emruss3/Optimizer-sub001/pkg/zoning"
)

// Site bundles the immutable inputs to one generator invocation. All
// geometry is in feet; converting display or geographic coordinates is the
// caller's concern. Safe to share across concurrent typology runs; nothing
// in it is mutated.
type Site struct {
	Envelope    *envelope.BuildableEnvelope
	Parcel      zoning.Parcel
	Zoning      zoning.ZoningRules
	Market      zoning.MarketData
	Constraints Constraints
}

// Constraints are generator tuning knobs with sensible defaults.
type Constraints struct {
	// AssumedUnitSqFt sizes the FAR ceiling (gross floor area per unit).
	AssumedUnitSqFt float64 `json:"assumed_unit_sqft,omitempty"`
	// FootprintPerUnitSqFt sizes the coverage ceiling.
	FootprintPerUnitSqFt float64 `json:"footprint_per_unit_sqft,omitempty"`
	// MinCourtyardFt is the minimum courtyard dimension for the courtyard
	// sub-strategy.
	MinCourtyardFt float64 `json:"min_courtyard_ft,omitempty"`
}

// withDefaults fills zero-valued constraint fields.
func (c Constraints) withDefaults() Constraints {
	if c.AssumedUnitSqFt <= 0 {
		c.AssumedUnitSqFt = ApartmentUnitSqFt
	}
	if c.FootprintPerUnitSqFt <= 0 {
		c.FootprintPerUnitSqFt = ApartmentUnitSqFt / 2
	}
	if c.MinCourtyardFt <= 0 {
		c.MinCourtyardFt = 40
	}
	return c
}

// maxFloors returns the floor count allowed by the height limit, at least 1,
// capped by the given typology ceiling.
func (s Site) maxFloors(cap int) int {
	floors := int(s.Zoning.MaxHeightFt / FloorHeightFt)
	if floors < 1 {
		floors = 1
	}
	if cap > 0 && floors > cap {
		floors = cap
	}
	return floors
}

// unitProgram computes the maximum allowed unit count from the three
// independent ceilings (density, FAR, coverage) and reports which one binds.
func (s Site) unitProgram() (maxUnits int, binding string) {
	c := s.Constraints.withDefaults()
	envArea := s.Envelope.AreaSqFt

	farUnits := envArea * s.Zoning.MaxFAR / c.AssumedUnitSqFt
	coverageUnits := envArea * s.Zoning.MaxCoveragePct / 100 / c.FootprintPerUnitSqFt

	maxF := farUnits
	binding = "far"
	if coverageUnits < maxF {
		maxF = coverageUnits
		binding = "coverage"
	}
	if s.Zoning.MaxDensityDUAcre > 0 {
		densityUnits := s.Parcel.Acres() * s.Zoning.MaxDensityDUAcre
		if densityUnits < maxF {
			maxF = densityUnits
			binding = "density"
		}
	}
	return int(math.Floor(maxF)), binding
}

// Site orientation classes from the envelope bounding-box aspect ratio.
// Heuristic tie-break for sub-strategy selection, not an optimality claim.
const (
	orientationWide   = "wide"
	orientationDeep   = "deep"
	orientationSquare = "square"
)

func (s Site) orientation() string {
	ratio := s.Envelope.Polygon.BoundingBox().AspectRatio()
	switch {
	case ratio > 1.5:
		return orientationWide
	case ratio > 0 && ratio < 0.67:
		return orientationDeep
	default:
		return orientationSquare
	}
}

// requiredParkingSpaces converts the zoning parking-area ratio into a space
// count for a given gross building area.
func (s Site) requiredParkingSpaces(grossSqFt float64) int {
	if s.Zoning.MinParkingRatio <= 0 || grossSqFt <= 0 {
		return 0
	}
	return int(math.Ceil(grossSqFt * s.Zoning.MinParkingRatio / ParkingSqFtPerSpace))
}
