package massing

// Sizing constants. Baseline values carried from the feasibility model.
const (
	// ParkingSqFtPerSpace is the gross area per parking space including
	// drive aisles and circulation. The net 9x18 stall is 162 sqft; lot
	// sizing deliberately uses the single gross constant instead of a
	// separate circulation model.
	ParkingSqFtPerSpace = 350.0
	StallWidthFt        = 9.0
	StallDepthFt        = 18.0

	// MaxSpacesPerLot caps lot size; several legible lots beat one giant one.
	MaxSpacesPerLot = 50
	LotAspectRatio  = 2.5

	// PlacementBufferFt is the required clearance between placed elements.
	PlacementBufferFt = 10.0

	FloorHeightFt = 12.0

	// Single-family house size clamps in square feet.
	MinHouseSqFt = 1800.0
	MaxHouseSqFt = 4500.0

	// AmenityThresholdUnits is the unit count above which shared amenities
	// (clubhouse, greenspace) are added.
	AmenityThresholdUnits = 50
	ClubhouseSqFt         = 3000.0
	GreenspaceFraction    = 0.05

	// Apartment program defaults.
	UnitsPerApartmentBuilding = 24
	ApartmentUnitSqFt         = 900.0
	MaxApartmentFloors        = 4

	// Hospitality program defaults.
	HotelRoomSqFt  = 450.0
	MaxHotelFloors = 6

	MaxOfficeFloors = 6

	// maxPlacementAttempts bounds the grid position search per element.
	maxPlacementAttempts = 2000
)

// searchStepsFt is the progressively finer grid used by the position search.
var searchStepsFt = []float64{50, 25, 12, 6}
