package grading

import (
	"math"
	"testing"

	"github.com/emruss3/Optimizer-sub001/pkg/geo"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func pad100() geo.Polygon {
	return geo.NewPolygon(geo.Pt(0, 0), geo.Pt(100, 0), geo.Pt(100, 100), geo.Pt(0, 100))
}

func TestFlatSiteAtPadElevation(t *testing.T) {
	flat := func(x, y float64) float64 { return 100 }
	res := EstimateCost(pad100(), flat, Params{PadElevationFt: 100})

	if res.CutCY != 0 || res.FillCY != 0 {
		t.Errorf("expected zero cut and fill on flat site, got cut=%f fill=%f", res.CutCY, res.FillCY)
	}
	if res.TotalCost != 0 {
		t.Errorf("expected zero cost, got %f", res.TotalCost)
	}
	if res.BalanceRatio != 1.0 {
		t.Errorf("expected balance ratio 1.0 by convention, got %f", res.BalanceRatio)
	}
}

func TestUniformFill(t *testing.T) {
	// Ground 2 ft below pad everywhere: 100x100x2 = 20000 cf = 740.74 cy fill.
	ground := func(x, y float64) float64 { return 98 }
	res := EstimateCost(pad100(), ground, Params{PadElevationFt: 100})

	if !approxEqual(res.FillCY, 20000.0/27.0, tolerance) {
		t.Errorf("expected fill %.2f cy, got %f", 20000.0/27.0, res.FillCY)
	}
	if res.CutCY != 0 {
		t.Errorf("expected zero cut, got %f", res.CutCY)
	}
	if !approxEqual(res.NetFillCY, res.FillCY, tolerance) {
		t.Errorf("net fill should equal fill when cut is zero, got %f", res.NetFillCY)
	}
	wantCost := res.FillCY*DefaultFillCostPerCY + res.NetFillCY*DefaultHaulCostPerCYMile*DefaultHaulDistanceMiles
	if !approxEqual(res.TotalCost, wantCost, tolerance) {
		t.Errorf("expected total cost %f, got %f", wantCost, res.TotalCost)
	}
}

func TestBalancedSlope(t *testing.T) {
	// Linear slope from 98 to 102 across X with pad at 100: cut equals fill.
	slope := func(x, y float64) float64 { return 98 + x*0.04 }
	res := EstimateCost(pad100(), slope, Params{PadElevationFt: 100})

	if !approxEqual(res.BalanceRatio, 1.0, 0.05) {
		t.Errorf("expected near-balanced site, got ratio %f", res.BalanceRatio)
	}
	if res.NetFillCY > res.FillCY*0.05 {
		t.Errorf("expected negligible net fill, got %f of %f", res.NetFillCY, res.FillCY)
	}
}

func TestDegeneratePolygonZeroResult(t *testing.T) {
	res := EstimateCost(geo.Polygon{}, func(x, y float64) float64 { return 100 }, Params{PadElevationFt: 95})
	if res.Samples != 0 || res.TotalCost != 0 {
		t.Errorf("expected empty result for degenerate polygon, got %+v", res)
	}
}

func TestSuggestPadElevationPicksBalance(t *testing.T) {
	slope := func(x, y float64) float64 { return 98 + x*0.04 }
	pad, best := SuggestPadElevation(pad100(), slope, Params{}, 21)

	// Optimum sits near the mid-elevation of the slope.
	if pad < 99 || pad > 101 {
		t.Errorf("expected suggested pad near 100, got %f", pad)
	}
	worse := EstimateCost(pad100(), slope, Params{PadElevationFt: 98})
	if best.TotalCost > worse.TotalCost {
		t.Errorf("suggested pad cost %f should not exceed extreme pad cost %f", best.TotalCost, worse.TotalCost)
	}
}

func TestSuggestPadElevationDeterministic(t *testing.T) {
	slope := func(x, y float64) float64 { return 95 + y*0.02 }
	p1, r1 := SuggestPadElevation(pad100(), slope, Params{}, 11)
	p2, r2 := SuggestPadElevation(pad100(), slope, Params{}, 11)
	if p1 != p2 || r1.TotalCost != r2.TotalCost {
		t.Errorf("expected deterministic suggestion, got (%f,%f) vs (%f,%f)", p1, r1.TotalCost, p2, r2.TotalCost)
	}
}
