// Package compliance checks a generated layout against the zoning rules it
// was produced under and scores the result. Each of the four rules (FAR,
// coverage, parking, setbacks) is pass/fail worth 25 points, so scores land
// on 0, 25, 50, 75, or 100. Checking is pure: the same layout and rules
// always produce the same result.
package compliance

import (
	"fmt"
	"math"

	"github.com/emruss3/Optimizer-sub001/pkg/massing"
	"github.com/emruss3/Optimizer-sub001/pkg/zoning"
)

const pointsPerRule = 25

// eps absorbs float accumulation from footprint sums; rules never fail on
// sub-microscopic overshoot.
const eps = 1e-6

// RuleResult is the outcome of one zoning rule.
type RuleResult struct {
	Compliant bool    `json:"compliant"`
	Actual    float64 `json:"actual"`
	Required  float64 `json:"required"`
	Message   string  `json:"message"`
}

// Result aggregates the four rule checks.
type Result struct {
	FAR              RuleResult `json:"far"`
	Coverage         RuleResult `json:"coverage"`
	Parking          RuleResult `json:"parking"`
	Setbacks         RuleResult `json:"setbacks"`
	OverallCompliant bool       `json:"overall_compliant"`
	Score            int        `json:"score"`
}

// Check evaluates a layout against the zoning rules. FAR and coverage are
// measured against the gross parcel area, parking against gross built area,
// and setbacks as bounding-box clearances from the parcel edges with the
// front on the minimum-Y side. Every rule input is derived from the layout's
// elements as they stand, never from its cached metrics, so a caller that
// edits elements can re-check without recomputing metrics first.
func Check(layout *massing.Layout, parcel zoning.Parcel, rules zoning.ZoningRules) *Result {
	r := &Result{
		FAR:      checkFAR(layout, parcel, rules),
		Coverage: checkCoverage(layout, parcel, rules),
		Parking:  checkParking(layout, rules),
		Setbacks: checkSetbacks(layout, parcel, rules),
	}
	compliant := 0
	for _, rule := range []RuleResult{r.FAR, r.Coverage, r.Parking, r.Setbacks} {
		if rule.Compliant {
			compliant++
		}
	}
	r.Score = compliant * pointsPerRule
	r.OverallCompliant = compliant == 4
	return r
}

// grossBuiltSqFt sums gross floor area over the placed buildings.
func grossBuiltSqFt(layout *massing.Layout) float64 {
	gross := 0.0
	for _, e := range layout.AllElements() {
		if e.Kind == massing.KindBuilding {
			gross += e.GrossSqFt()
		}
	}
	return gross
}

func checkFAR(layout *massing.Layout, parcel zoning.Parcel, rules zoning.ZoningRules) RuleResult {
	area := parcel.Area()
	if area <= 0 {
		return RuleResult{Compliant: false, Required: rules.MaxFAR, Message: "parcel has zero area"}
	}
	actual := grossBuiltSqFt(layout) / area
	ok := actual <= rules.MaxFAR+eps
	return RuleResult{
		Compliant: ok,
		Actual:    actual,
		Required:  rules.MaxFAR,
		Message:   fmt.Sprintf("FAR %.2f against maximum %.2f", actual, rules.MaxFAR),
	}
}

func checkCoverage(layout *massing.Layout, parcel zoning.Parcel, rules zoning.ZoningRules) RuleResult {
	area := parcel.Area()
	if area <= 0 {
		return RuleResult{Compliant: false, Required: rules.MaxCoveragePct, Message: "parcel has zero area"}
	}
	footprint := 0.0
	for _, e := range layout.AllElements() {
		if e.Kind == massing.KindBuilding {
			footprint += e.AreaSqFt
		}
	}
	actual := footprint / area * 100
	ok := actual <= rules.MaxCoveragePct+eps
	return RuleResult{
		Compliant: ok,
		Actual:    actual,
		Required:  rules.MaxCoveragePct,
		Message:   fmt.Sprintf("coverage %.1f%% against maximum %.1f%%", actual, rules.MaxCoveragePct),
	}
}

// checkParking compares placed parking area to the required fraction of
// gross built area. A zero ratio, or a layout with no built area, passes.
func checkParking(layout *massing.Layout, rules zoning.ZoningRules) RuleResult {
	gross := grossBuiltSqFt(layout)
	if rules.MinParkingRatio <= 0 || gross <= 0 {
		return RuleResult{Compliant: true, Required: rules.MinParkingRatio, Message: "no parking requirement applies"}
	}
	parkingArea := 0.0
	for _, e := range layout.AllElements() {
		if e.Kind == massing.KindParking {
			parkingArea += e.AreaSqFt
		}
	}
	actual := parkingArea / gross
	ok := actual+eps >= rules.MinParkingRatio
	return RuleResult{
		Compliant: ok,
		Actual:    actual,
		Required:  rules.MinParkingRatio,
		Message:   fmt.Sprintf("parking ratio %.2f against minimum %.2f", actual, rules.MinParkingRatio),
	}
}

// checkSetbacks measures each building's bounding-box clearance from the
// parcel's bounding box. Front is the minimum-Y edge, rear the maximum-Y
// edge, sides the X edges. Every building must clear every setback.
func checkSetbacks(layout *massing.Layout, parcel zoning.Parcel, rules zoning.ZoningRules) RuleResult {
	pb := parcel.Polygon().BoundingBox()
	if pb.Width() <= 0 || pb.Height() <= 0 {
		return RuleResult{Compliant: false, Message: "parcel has no extent"}
	}

	worstMargin := math.Inf(1)
	required := 0.0
	violator := ""
	for _, e := range layout.AllElements() {
		if e.Kind != massing.KindBuilding {
			continue
		}
		bb := e.Footprint.BoundingBox()
		checks := []struct {
			name     string
			distance float64
			required float64
		}{
			{"front", bb.MinY - pb.MinY, rules.FrontSetbackFt},
			{"rear", pb.MaxY - bb.MaxY, rules.RearSetbackFt},
			{"side", math.Min(bb.MinX-pb.MinX, pb.MaxX-bb.MaxX), rules.SideSetbackFt},
		}
		for _, c := range checks {
			margin := c.distance - c.required
			if margin < worstMargin {
				worstMargin = margin
				required = c.required
				if margin < -eps {
					violator = fmt.Sprintf("%s violates the %s setback (%.1f ft of %.1f ft)", e.Name, c.name, c.distance, c.required)
				}
			}
		}
	}

	if math.IsInf(worstMargin, 1) {
		return RuleResult{Compliant: true, Message: "no buildings to check"}
	}
	ok := worstMargin >= -eps
	msg := fmt.Sprintf("all buildings clear the setbacks (tightest margin %.1f ft)", worstMargin)
	if !ok {
		msg = violator
	}
	return RuleResult{
		Compliant: ok,
		Actual:    worstMargin + required,
		Required:  required,
		Message:   msg,
	}
}
