package massing

import "github.com/emruss3/Optimizer-sub001/pkg/zoning"

// ComputeMetrics derives SiteMetrics from the current element set. Coverage
// counts building footprints only (parking and greenspace are not coverage);
// total square footage is gross floor area (footprint x floors). Revenue and
// cost are simple linear functions of built area and the externally supplied
// market assumptions: rent is monthly per gross sqft, cost is per gross sqft.
// Callers that mutate a layout's elements must call this again before the
// cached metrics are read.
func ComputeMetrics(layout *Layout, parcel zoning.Parcel, market zoning.MarketData) SiteMetrics {
	var m SiteMetrics
	footprintSqFt := 0.0

	for _, e := range layout.AllElements() {
		switch e.Kind {
		case KindBuilding:
			m.TotalUnits += e.Units
			m.TotalSqFt += e.GrossSqFt()
			footprintSqFt += e.AreaSqFt
		case KindParking:
			m.ParkingSpaces += e.Spaces
		}
	}

	parcelArea := parcel.Area()
	if parcelArea > 0 {
		m.CoveragePct = footprintSqFt / parcelArea * 100
	}
	if acres := parcel.Acres(); acres > 0 {
		m.DensityDUAcre = float64(m.TotalUnits) / acres
	}

	m.EstimatedRevenue = m.TotalSqFt * market.AvgRentPerSqFt * 12
	m.EstimatedCost = m.TotalSqFt * market.ConstructionCostPerSqFt
	return m
}
