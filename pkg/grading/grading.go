// Package grading estimates cut/fill earthwork volumes and cost for bringing
// a buildable area to a target pad elevation. It consumes only a polygon and
// an elevation sampling callback, so it is independent of layout generation.
package grading

import (
	"math"

	"github.com/emruss3/Optimizer-sub001/pkg/geo"
)

// ElevationSampler returns the ground elevation in feet at a point in the
// site plane. Supplied by an external DEM service; treated as an opaque
// callback and never cached here.
type ElevationSampler func(x, y float64) float64

// Unit cost defaults. Baseline values for rough feasibility estimates.
const (
	DefaultSpacingFt         = 10.0
	DefaultCutCostPerCY      = 8.0
	DefaultFillCostPerCY     = 12.0
	DefaultHaulCostPerCYMile = 5.0
	DefaultHaulDistanceMiles = 5.0

	cubicFtPerCY = 27.0
)

// Params configures one grading estimate.
type Params struct {
	PadElevationFt    float64 `json:"pad_elevation_ft"`
	SpacingFt         float64 `json:"spacing_ft"`
	CutCostPerCY      float64 `json:"cut_cost_per_cy"`
	FillCostPerCY     float64 `json:"fill_cost_per_cy"`
	HaulCostPerCYMile float64 `json:"haul_cost_per_cy_mile"`
	HaulDistanceMiles float64 `json:"haul_distance_miles"`
}

// withDefaults fills zero-valued fields with the package defaults.
func (p Params) withDefaults() Params {
	if p.SpacingFt <= 0 {
		p.SpacingFt = DefaultSpacingFt
	}
	if p.CutCostPerCY <= 0 {
		p.CutCostPerCY = DefaultCutCostPerCY
	}
	if p.FillCostPerCY <= 0 {
		p.FillCostPerCY = DefaultFillCostPerCY
	}
	if p.HaulCostPerCYMile <= 0 {
		p.HaulCostPerCYMile = DefaultHaulCostPerCYMile
	}
	if p.HaulDistanceMiles <= 0 {
		p.HaulDistanceMiles = DefaultHaulDistanceMiles
	}
	return p
}

// Result is the grading estimate for one pad elevation.
type Result struct {
	PadElevationFt float64 `json:"pad_elevation_ft"`
	CutCY          float64 `json:"cut_cy"`
	FillCY         float64 `json:"fill_cy"`
	NetFillCY      float64 `json:"net_fill_cy"`
	// BalanceRatio is fill/cut; 1.0 means a balanced site. By convention it
	// is also 1.0 when there is no cut at all (not a real ratio there).
	BalanceRatio float64 `json:"balance_ratio"`
	CutCost      float64 `json:"cut_cost"`
	FillCost     float64 `json:"fill_cost"`
	HaulCost     float64 `json:"haul_cost"`
	TotalCost    float64 `json:"total_cost"`
	Samples      int     `json:"samples"`
}

// EstimateCost samples elevation on a regular grid inside the polygon and
// integrates cut and fill volume against the pad elevation. An empty sample
// set (degenerate polygon) yields a zero result.
func EstimateCost(poly geo.Polygon, elev ElevationSampler, params Params) Result {
	p := params.withDefaults()
	res := Result{PadElevationFt: p.PadElevationFt, BalanceRatio: 1.0}
	if elev == nil {
		return res
	}

	samples := geo.SampleGrid(poly, p.SpacingFt)
	res.Samples = len(samples)

	cutCF, fillCF := 0.0, 0.0
	for _, s := range samples {
		ground := elev(s.Point.X, s.Point.Y)
		if ground > p.PadElevationFt {
			cutCF += (ground - p.PadElevationFt) * s.CellArea
		} else {
			fillCF += (p.PadElevationFt - ground) * s.CellArea
		}
	}

	res.CutCY = cutCF / cubicFtPerCY
	res.FillCY = fillCF / cubicFtPerCY
	res.NetFillCY = math.Max(0, res.FillCY-res.CutCY)
	if res.CutCY > 0 {
		res.BalanceRatio = res.FillCY / res.CutCY
	}

	res.CutCost = res.CutCY * p.CutCostPerCY
	res.FillCost = res.FillCY * p.FillCostPerCY
	res.HaulCost = res.NetFillCY * p.HaulCostPerCYMile * p.HaulDistanceMiles
	res.TotalCost = res.CutCost + res.FillCost + res.HaulCost
	return res
}

// SuggestPadElevation scans candidate pad elevations between the lowest and
// highest sampled ground elevation and returns the one with the lowest total
// grading cost. The scan is deterministic; steps controls its resolution
// (minimum 2 candidates).
func SuggestPadElevation(poly geo.Polygon, elev ElevationSampler, params Params, steps int) (float64, Result) {
	p := params.withDefaults()
	if steps < 2 {
		steps = 2
	}
	samples := geo.SampleGrid(poly, p.SpacingFt)
	if len(samples) == 0 || elev == nil {
		return p.PadElevationFt, EstimateCost(poly, elev, p)
	}

	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, s := range samples {
		g := elev(s.Point.X, s.Point.Y)
		lo = math.Min(lo, g)
		hi = math.Max(hi, g)
	}

	bestPad := lo
	best := Result{TotalCost: math.Inf(1)}
	for i := 0; i < steps; i++ {
		pad := lo + (hi-lo)*float64(i)/float64(steps-1)
		p.PadElevationFt = pad
		r := EstimateCost(poly, elev, p)
		if r.TotalCost < best.TotalCost {
			bestPad, best = pad, r
		}
	}
	return bestPad, best
}
