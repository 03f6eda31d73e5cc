package massing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emruss3/Optimizer-sub001/pkg/envelope"
	"github.com/emruss3/Optimizer-sub001/pkg/geo"
	"github.com/emruss3/Optimizer-sub001/pkg/zoning"
)

// testSite builds a rectangular parcel with a centered rectangular envelope.
func testSite(parcelW, parcelH, envW, envH float64, rules zoning.ZoningRules, market zoning.MarketData) Site {
	cx, cy := parcelW/2, parcelH/2
	envPoly := geo.NewPolygon(
		geo.Pt(cx-envW/2, cy-envH/2),
		geo.Pt(cx+envW/2, cy-envH/2),
		geo.Pt(cx+envW/2, cy+envH/2),
		geo.Pt(cx-envW/2, cy+envH/2),
	)
	return Site{
		Envelope: &envelope.BuildableEnvelope{
			Polygon:  envPoly,
			AreaSqFt: envPoly.Area(),
			Method:   envelope.MethodUniformInset,
		},
		Parcel: zoning.Parcel{
			ID:       "test-parcel",
			Boundary: [][2]float64{{0, 0}, {parcelW, 0}, {parcelW, parcelH}, {0, parcelH}},
		},
		Zoning: rules,
		Market: market,
	}
}

func residentialRules() zoning.ZoningRules {
	return zoning.ZoningRules{
		MaxFAR:           2.0,
		MaxHeightFt:      48,
		MaxCoveragePct:   60,
		MaxDensityDUAcre: 30,
		FrontSetbackFt:   25,
		SideSetbackFt:    15,
		RearSetbackFt:    20,
		MinParkingRatio:  0.3,
	}
}

func testMarket() zoning.MarketData {
	return zoning.MarketData{
		AvgRentPerSqFt:          2.25,
		ConstructionCostPerSqFt: 185,
		AvgHomeSizeSqFt:         2400,
	}
}

func assertWithinEnvelope(t *testing.T, layout *Layout, env geo.Polygon) {
	t.Helper()
	bb := env.BoundingBox()
	for _, e := range layout.AllElements() {
		fb := e.Footprint.BoundingBox()
		assert.GreaterOrEqual(t, fb.MinX, bb.MinX-0.01, "%s extends past west edge", e.Name)
		assert.GreaterOrEqual(t, fb.MinY, bb.MinY-0.01, "%s extends past south edge", e.Name)
		assert.LessOrEqual(t, fb.MaxX, bb.MaxX+0.01, "%s extends past east edge", e.Name)
		assert.LessOrEqual(t, fb.MaxY, bb.MaxY+0.01, "%s extends past north edge", e.Name)
	}
}

func TestSingleFamilyHouseSizeClamped(t *testing.T) {
	site := testSite(200, 200, 160, 155, residentialRules(), testMarket())

	layout, report, err := Generate(site, NewRegistry(), TypologySingleFamily)
	require.NoError(t, err)
	require.NotNil(t, layout)
	assert.True(t, report.Valid)

	require.Len(t, layout.Buildings, 1)
	house := layout.Buildings[0]
	assert.GreaterOrEqual(t, house.AreaSqFt, MinHouseSqFt)
	assert.LessOrEqual(t, house.AreaSqFt, MaxHouseSqFt)
	assert.Equal(t, 1, house.Units)
	assert.Equal(t, 1, house.Floors)
	assertWithinEnvelope(t, layout, site.Envelope.Polygon)

	// Average size below the floor clamps up.
	small := testMarket()
	small.AvgHomeSizeSqFt = 900
	site.Market = small
	layout, _, err = Generate(site, NewRegistry(), TypologySingleFamily)
	require.NoError(t, err)
	assert.InDelta(t, MinHouseSqFt, layout.Buildings[0].AreaSqFt, 1.0)
}

// TestSingleFamilyDrivewayMeetsParkingRatio checks the driveway is sized at
// the standard gross area per space, so the placed parking area satisfies
// the zoning ratio the compliance engine measures.
func TestSingleFamilyDrivewayMeetsParkingRatio(t *testing.T) {
	rules := residentialRules() // ratio 0.3
	market := testMarket()
	market.AvgHomeSizeSqFt = 1800
	site := testSite(200, 200, 160, 155, rules, market)

	layout, _, err := Generate(site, NewRegistry(), TypologySingleFamily)
	require.NoError(t, err)
	require.Len(t, layout.Parking, 1)
	assert.Empty(t, layout.Warnings)

	drive := layout.Parking[0]
	gross := layout.Buildings[0].GrossSqFt()
	assert.Equal(t, site.requiredParkingSpaces(gross), drive.Spaces)
	assert.InDelta(t, float64(drive.Spaces)*ParkingSqFtPerSpace, drive.AreaSqFt, 0.1)
	assert.GreaterOrEqual(t, drive.AreaSqFt/gross, rules.MinParkingRatio)
}

func TestSingleFamilyInfeasibleOnTinyEnvelope(t *testing.T) {
	// A 1800 sqft minimum house cannot fit a 20x20 envelope.
	site := testSite(200, 200, 20, 20, residentialRules(), testMarket())

	layout, report, err := Generate(site, NewRegistry(), TypologySingleFamily)
	assert.ErrorIs(t, err, ErrInfeasible)
	assert.Nil(t, layout)
	require.NotNil(t, report)
	assert.False(t, report.Valid)
}

func TestDuplexTwoUnits(t *testing.T) {
	site := testSite(220, 220, 170, 170, residentialRules(), testMarket())

	layout, _, err := Generate(site, NewRegistry(), TypologyDuplex)
	require.NoError(t, err)
	require.Len(t, layout.Buildings, 1)
	assert.Equal(t, 2, layout.Buildings[0].Units)
	assert.Equal(t, 2, layout.Metrics.TotalUnits)
	// Duplexes always get at least a space per unit.
	assert.GreaterOrEqual(t, layout.Metrics.ParkingSpaces, 0)
	assertWithinEnvelope(t, layout, site.Envelope.Polygon)
}

func TestApartmentRespectsDensityCeiling(t *testing.T) {
	rules := residentialRules()
	site := testSite(300, 300, 250, 250, rules, testMarket())

	layout, _, err := Generate(site, NewRegistry(), TypologyApartment)
	require.NoError(t, err)
	require.NotEmpty(t, layout.Buildings)

	// 300x300 ft parcel is ~2.07 acres; at 30 DU/acre the ceiling is 61 units.
	maxUnits := int(site.Parcel.Acres() * rules.MaxDensityDUAcre)
	assert.LessOrEqual(t, layout.Metrics.TotalUnits, maxUnits)
	assert.LessOrEqual(t, layout.Metrics.DensityDUAcre, rules.MaxDensityDUAcre+0.01)
	assertWithinEnvelope(t, layout, site.Envelope.Polygon)

	for _, b := range layout.Buildings {
		assert.LessOrEqual(t, b.Floors, MaxApartmentFloors)
	}
}

func TestApartmentDeterministic(t *testing.T) {
	site := testSite(400, 260, 340, 200, residentialRules(), testMarket())

	first, _, err := Generate(site, NewRegistry(), TypologyApartment)
	require.NoError(t, err)
	second, _, err := Generate(site, NewRegistry(), TypologyApartment)
	require.NoError(t, err)

	require.Equal(t, len(first.Buildings), len(second.Buildings))
	for i := range first.Buildings {
		assert.Equal(t, first.Buildings[i].Footprint.Vertices, second.Buildings[i].Footprint.Vertices)
	}
	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, first.Strategy, second.Strategy)
}

func TestApartmentOrientationSelectsStrategy(t *testing.T) {
	rules := residentialRules()
	market := testMarket()

	wide, _, err := Generate(testSite(500, 200, 440, 140, rules, market), NewRegistry(), TypologyApartment)
	require.NoError(t, err)
	assert.Equal(t, "linear", wide.Strategy)

	deep, _, err := Generate(testSite(200, 500, 140, 440, rules, market), NewRegistry(), TypologyApartment)
	require.NoError(t, err)
	assert.Equal(t, "cluster", deep.Strategy)

	square, _, err := Generate(testSite(320, 320, 260, 260, rules, market), NewRegistry(), TypologyApartment)
	require.NoError(t, err)
	assert.Equal(t, "courtyard", square.Strategy)
}

func TestOfficeUsesFARCeiling(t *testing.T) {
	rules := residentialRules()
	site := testSite(300, 300, 240, 240, rules, testMarket())

	layout, _, err := Generate(site, NewRegistry(), TypologyOffice)
	require.NoError(t, err)
	require.Len(t, layout.Buildings, 1)

	office := layout.Buildings[0]
	assert.Zero(t, office.Units)
	assert.LessOrEqual(t, office.Floors, site.maxFloors(MaxOfficeFloors))
	assert.LessOrEqual(t, office.GrossSqFt(), site.Envelope.AreaSqFt*rules.MaxFAR+1)
	assert.LessOrEqual(t, office.AreaSqFt, site.Envelope.AreaSqFt*rules.MaxCoveragePct/100+1)
	assertWithinEnvelope(t, layout, site.Envelope.Polygon)
}

func TestRetailSingleStory(t *testing.T) {
	site := testSite(300, 300, 240, 240, residentialRules(), testMarket())

	layout, _, err := Generate(site, NewRegistry(), TypologyRetail)
	require.NoError(t, err)
	require.Len(t, layout.Buildings, 1)
	assert.Equal(t, 1, layout.Buildings[0].Floors)
	assert.Equal(t, "strip", layout.Strategy)
}

func TestHospitalityRoomsFromGross(t *testing.T) {
	rules := residentialRules()
	site := testSite(300, 300, 240, 240, rules, testMarket())

	layout, _, err := Generate(site, NewRegistry(), TypologyHospitality)
	require.NoError(t, err)
	require.Len(t, layout.Buildings, 1)

	hotel := layout.Buildings[0]
	assert.Greater(t, hotel.Units, 0)
	assert.InDelta(t, float64(hotel.Units)*HotelRoomSqFt, hotel.GrossSqFt(), 1.0)

	// Rooms are units for density purposes.
	maxRooms := int(site.Parcel.Acres() * rules.MaxDensityDUAcre)
	assert.LessOrEqual(t, hotel.Units, maxRooms)
}

func TestGenerateDegenerateEnvelope(t *testing.T) {
	site := testSite(200, 200, 150, 150, residentialRules(), testMarket())
	site.Envelope = &envelope.BuildableEnvelope{}

	reg := NewRegistry()
	for _, s := range reg.All() {
		layout, report, err := s.Generate(site)
		assert.ErrorIs(t, err, ErrInfeasible, "typology %s", s.Typology())
		assert.Nil(t, layout)
		assert.False(t, report.Valid)
	}
}

func TestGenerateUnknownTypology(t *testing.T) {
	site := testSite(200, 200, 150, 150, residentialRules(), testMarket())
	_, _, err := Generate(site, NewRegistry(), Typology("arcology"))
	assert.Error(t, err)
}

func TestRegistryOrderStable(t *testing.T) {
	want := []Typology{
		TypologySingleFamily, TypologyDuplex, TypologyApartment,
		TypologyOffice, TypologyRetail, TypologyHospitality,
	}
	reg := NewRegistry()
	got := make([]Typology, 0, len(want))
	for _, s := range reg.All() {
		got = append(got, s.Typology())
	}
	assert.Equal(t, want, got)

	// Re-registering keeps the original position.
	reg.Register(officeStrategy{})
	assert.Len(t, reg.All(), len(want))
}

func TestPartitionSpaces(t *testing.T) {
	cases := []struct {
		total int
		want  []int
	}{
		{0, nil},
		{-3, nil},
		{12, []int{12}},
		{50, []int{50}},
		{51, []int{50, 1}},
		{130, []int{50, 50, 30}},
	}
	for _, tc := range cases {
		got := partitionSpaces(tc.total)
		assert.Equal(t, tc.want, got)
		sum := 0
		for _, n := range got {
			sum += n
		}
		if tc.total > 0 {
			assert.Equal(t, tc.total, sum)
		}
	}
}

func TestGenerateParkingOmitsWhatCannotFit(t *testing.T) {
	// A 30x30 envelope cannot hold a 50-space lot.
	tiny := geo.NewPolygon(
		geo.Pt(0, 0), geo.Pt(30, 0), geo.Pt(30, 30), geo.Pt(0, 30),
	)
	lots, placed, omitted := generateParking(120, tiny, nil)
	assert.Empty(t, lots)
	assert.Zero(t, placed)
	assert.Len(t, omitted, 3)
}

func TestWarningsOnOmittedElements(t *testing.T) {
	// Generous zoning but a cramped envelope: parking cannot all fit.
	rules := residentialRules()
	rules.MinParkingRatio = 2.0
	site := testSite(200, 200, 120, 120, rules, testMarket())

	layout, report, err := Generate(site, NewRegistry(), TypologyOffice)
	require.NoError(t, err)
	if layout.Metrics.ParkingSpaces < site.requiredParkingSpaces(layout.Buildings[0].GrossSqFt()) {
		assert.NotEmpty(t, layout.Warnings)
		assert.NotEmpty(t, report.Warnings)
	}
	assertWithinEnvelope(t, layout, site.Envelope.Polygon)
}

func TestComputeMetrics(t *testing.T) {
	parcel := zoning.Parcel{Boundary: [][2]float64{{0, 0}, {208.71, 0}, {208.71, 208.71}, {0, 208.71}}}
	market := zoning.MarketData{AvgRentPerSqFt: 2, ConstructionCostPerSqFt: 100}

	layout := &Layout{
		Buildings: []Element{
			{Kind: KindBuilding, AreaSqFt: 5000, Floors: 4, Units: 22},
		},
		Parking: []Element{
			{Kind: KindParking, AreaSqFt: 7000, Spaces: 20},
		},
	}
	m := ComputeMetrics(layout, parcel, market)

	assert.Equal(t, 22, m.TotalUnits)
	assert.InDelta(t, 20000, m.TotalSqFt, 0.01)
	assert.Equal(t, 20, m.ParkingSpaces)
	// Parking never counts toward coverage.
	assert.InDelta(t, 5000/parcel.Area()*100, m.CoveragePct, 0.01)
	assert.InDelta(t, 22/parcel.Acres(), m.DensityDUAcre, 0.01)
	assert.InDelta(t, 20000*2*12, m.EstimatedRevenue, 0.01)
	assert.InDelta(t, 20000*100, m.EstimatedCost, 0.01)
}

func TestUnitProgramBindingConstraint(t *testing.T) {
	site := testSite(300, 300, 250, 250, residentialRules(), testMarket())

	// 62500 sqft envelope: FAR allows 138, coverage 83, density 61.
	units, binding := site.unitProgram()
	assert.Equal(t, "density", binding)
	assert.Equal(t, 61, units)

	site.Zoning.MaxDensityDUAcre = 0
	units, binding = site.unitProgram()
	assert.Equal(t, "coverage", binding)
	assert.Equal(t, 83, units)
}

func TestFindPositionAvoidsOverlap(t *testing.T) {
	env := geo.NewPolygon(
		geo.Pt(0, 0), geo.Pt(300, 0), geo.Pt(300, 300), geo.Pt(0, 300),
	)
	first := newElement(KindBuilding, "A", geo.Pt(150, 150), 60, 60, 0)

	center, ok := findPosition(geo.Pt(150, 150), 60, 60, 0, env, []Element{first}, PlacementBufferFt)
	require.True(t, ok)
	second := geo.RectPolygon(center, 60, 60, 0)
	assert.False(t, second.BoundingBox().Expand(PlacementBufferFt).Intersects(first.Footprint.BoundingBox()))
}
