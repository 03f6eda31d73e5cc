package validation

import (
	"fmt"

	"github.com/emruss3/Optimizer-sub001/pkg/zoning"
)

// ValidateSchema performs input validation on a parsed SiteSpec. It checks
// structural correctness before any geometry or layout computation runs.
func ValidateSchema(s *zoning.SiteSpec) *Report {
	r := NewReport()

	validateParcel(&s.Parcel, "parcel", r)
	for i := range s.Assemblage {
		validateParcel(&s.Assemblage[i], fmt.Sprintf("assemblage[%d]", i), r)
	}
	validateZoning(&s.Zoning, r)
	validateMarket(&s.Market, r)
	validateEdges(s, r)

	return r
}

func validateParcel(p *zoning.Parcel, path string, r *Report) {
	if len(p.Boundary) < 3 {
		r.AddError(Result{
			Level:       LevelInput,
			Message:     fmt.Sprintf("%s must have at least 3 vertices", path),
			Path:        path + ".vertices",
			ActualValue: len(p.Boundary),
			Expected:    ">= 3",
		})
		return
	}
	for i := 0; i < len(p.Boundary); i++ {
		j := (i + 1) % len(p.Boundary)
		if p.Boundary[i] == p.Boundary[j] {
			r.AddError(Result{
				Level:       LevelInput,
				Message:     fmt.Sprintf("%s has coincident consecutive vertices at index %d", path, i),
				Path:        fmt.Sprintf("%s.vertices[%d]", path, i),
				ActualValue: p.Boundary[i],
			})
		}
	}
	if area := p.Polygon().Area(); area <= 0 {
		r.AddError(Result{
			Level:       LevelInput,
			Message:     fmt.Sprintf("%s boundary has zero area", path),
			Path:        path + ".vertices",
			ActualValue: area,
			Expected:    "> 0",
		})
	}
	if p.AreaSqFt < 0 {
		r.AddError(Result{
			Level:       LevelInput,
			Message:     fmt.Sprintf("%s.area_sq_ft must be non-negative", path),
			Path:        path + ".area_sq_ft",
			ActualValue: p.AreaSqFt,
			Expected:    ">= 0",
		})
	}
}

func validateZoning(z *zoning.ZoningRules, r *Report) {
	if z.MaxFAR <= 0 {
		r.AddError(Result{
			Level:       LevelInput,
			Message:     "zoning.max_far must be > 0",
			Path:        "zoning.max_far",
			ActualValue: z.MaxFAR,
			Expected:    "> 0",
		})
	}
	if z.MaxHeightFt <= 0 {
		r.AddError(Result{
			Level:       LevelInput,
			Message:     "zoning.max_height_ft must be > 0",
			Path:        "zoning.max_height_ft",
			ActualValue: z.MaxHeightFt,
			Expected:    "> 0",
		})
	}
	if z.MaxCoveragePct <= 0 || z.MaxCoveragePct > 100 {
		r.AddError(Result{
			Level:       LevelInput,
			Message:     fmt.Sprintf("zoning.max_coverage_pct %.1f is outside valid range (0-100]", z.MaxCoveragePct),
			Path:        "zoning.max_coverage_pct",
			ActualValue: z.MaxCoveragePct,
			Expected:    "0 < pct <= 100",
		})
	}
	setbacks := map[string]float64{
		"front_setback_ft": z.FrontSetbackFt,
		"side_setback_ft":  z.SideSetbackFt,
		"rear_setback_ft":  z.RearSetbackFt,
	}
	for name, v := range setbacks {
		if v < 0 {
			r.AddError(Result{
				Level:       LevelInput,
				Message:     fmt.Sprintf("zoning.%s must be non-negative", name),
				Path:        "zoning." + name,
				ActualValue: v,
				Expected:    ">= 0",
			})
		}
	}
	if z.MinParkingRatio < 0 {
		r.AddError(Result{
			Level:       LevelInput,
			Message:     "zoning.min_parking_ratio must be non-negative",
			Path:        "zoning.min_parking_ratio",
			ActualValue: z.MinParkingRatio,
			Expected:    ">= 0",
		})
	}
	if z.MaxDensityDUAcre < 0 {
		r.AddError(Result{
			Level:       LevelInput,
			Message:     "zoning.max_density_du_acre must be non-negative (0 = uncapped)",
			Path:        "zoning.max_density_du_acre",
			ActualValue: z.MaxDensityDUAcre,
			Expected:    ">= 0",
		})
	}
}

func validateMarket(m *zoning.MarketData, r *Report) {
	if m.AvgRentPerSqFt <= 0 {
		r.AddError(Result{
			Level:       LevelInput,
			Message:     "market.avg_rent_per_sqft must be > 0",
			Path:        "market.avg_rent_per_sqft",
			ActualValue: m.AvgRentPerSqFt,
			Expected:    "> 0",
		})
	}
	if m.ConstructionCostPerSqFt <= 0 {
		r.AddError(Result{
			Level:       LevelInput,
			Message:     "market.construction_cost_per_sqft must be > 0",
			Path:        "market.construction_cost_per_sqft",
			ActualValue: m.ConstructionCostPerSqFt,
			Expected:    "> 0",
		})
	}
	if m.AvgHomeSizeSqFt <= 0 {
		r.AddError(Result{
			Level:       LevelInput,
			Message:     "market.avg_home_size_sqft must be > 0",
			Path:        "market.avg_home_size_sqft",
			ActualValue: m.AvgHomeSizeSqFt,
			Expected:    "> 0",
		})
	}
}

func validateEdges(s *zoning.SiteSpec, r *Report) {
	if s.Edges == nil {
		r.AddInfo(Result{
			Level:   LevelInput,
			Message: "no edge classification supplied; envelope derivation will use the uniform inset approximation",
		})
		return
	}
	n := len(s.Parcel.Boundary)
	for _, idx := range s.Edges.FrontEdgeIndices {
		if idx < 0 || idx >= n {
			r.AddError(Result{
				Level:       LevelInput,
				Message:     fmt.Sprintf("edges.front_edge_indices contains %d, out of range for %d parcel edges", idx, n),
				Path:        "edges.front_edge_indices",
				ActualValue: idx,
				Expected:    fmt.Sprintf("0 <= index < %d", n),
			})
		}
	}
}
