// Package envelope derives the legally buildable region of a parcel by
// subtracting front, side, and rear setbacks from its boundary.
package envelope

import (
	"errors"
	"fmt"

	"github.com/emruss3/Optimizer-sub001/pkg/geo"
	"github.com/emruss3/Optimizer-sub001/pkg/validation"
	"github.com/emruss3/Optimizer-sub001/pkg/zoning"
)

// ErrNoBuildableArea is returned when the setbacks consume the entire parcel.
var ErrNoBuildableArea = errors.New("setbacks consume the entire parcel: no buildable area")

// ErrDegenerateParcel is returned for parcels with fewer than 3 vertices or
// zero area.
var ErrDegenerateParcel = errors.New("parcel polygon is degenerate")

// Derivation methods.
const (
	MethodPerEdge      = "per_edge"
	MethodUniformInset = "uniform_inset"
)

// Setbacks holds the per-class setback distances in feet.
type Setbacks struct {
	FrontFt float64 `json:"front_ft"`
	SideFt  float64 `json:"side_ft"`
	RearFt  float64 `json:"rear_ft"`
}

// FromZoning extracts setbacks from a zoning rule set.
func FromZoning(z zoning.ZoningRules) Setbacks {
	return Setbacks{FrontFt: z.FrontSetbackFt, SideFt: z.SideSetbackFt, RearFt: z.RearSetbackFt}
}

// Blended returns the single inset distance used by the fallback
// approximation: front and rear once each, sides twice.
func (s Setbacks) Blended() float64 {
	return (s.FrontFt + s.RearFt + 2*s.SideFt) / 4
}

// BuildableEnvelope is the derived buildable region. Its polygon is always a
// subset of the parcel, and its area never exceeds the parcel area.
type BuildableEnvelope struct {
	Polygon  geo.Polygon `json:"polygon"`
	AreaSqFt float64     `json:"area_sq_ft"`
	Setbacks Setbacks    `json:"setbacks_applied"`
	Method   string      `json:"method"`
}

// Derive computes the buildable envelope for a parcel.
//
// With an edge classification, each parcel edge is offset inward by its
// class-specific setback and the parcel is re-intersected against the
// resulting half-planes (exact). Without one, the parcel is shrunk by the
// blended setback using the centroid-scaling inset (approximation, lower
// fidelity for irregular parcels).
func Derive(parcel geo.Polygon, sb Setbacks, edges *zoning.EdgeClassification) (*BuildableEnvelope, *validation.Report, error) {
	report := validation.NewReport()

	if parcel.IsEmpty() || parcel.Area() <= 0 {
		report.AddError(validation.Result{
			Level:   validation.LevelInput,
			Message: "parcel polygon is degenerate (fewer than 3 vertices or zero area)",
		})
		return nil, report, ErrDegenerateParcel
	}

	var result geo.Polygon
	method := MethodUniformInset

	if edges != nil && len(edges.FrontEdgeIndices) > 0 {
		result = perEdgeOffset(parcel, sb, edges)
		method = MethodPerEdge
	} else {
		report.AddWarning(validation.Result{
			Level:   validation.LevelFeasibility,
			Message: fmt.Sprintf("no edge classification: using uniform inset of %.1f ft (approximation)", sb.Blended()),
		})
		result = geo.Inset(parcel, sb.Blended())
	}

	if result.IsEmpty() || result.Area() <= 0 {
		report.AddError(validation.Result{
			Level:   validation.LevelFeasibility,
			Message: fmt.Sprintf("setbacks (front %.0f, side %.0f, rear %.0f) leave no buildable area on a %.0f sqft parcel", sb.FrontFt, sb.SideFt, sb.RearFt, parcel.Area()),
		})
		return nil, report, ErrNoBuildableArea
	}

	area := result.Area()
	if parcelArea := parcel.Area(); area > parcelArea {
		// Numerical safety only; clipping and inset cannot grow the polygon.
		area = parcelArea
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelFeasibility,
		Message: fmt.Sprintf("buildable envelope %.0f sqft (%.1f%% of parcel) via %s", area, area/parcel.Area()*100, method),
	})

	return &BuildableEnvelope{
		Polygon:  result,
		AreaSqFt: area,
		Setbacks: sb,
		Method:   method,
	}, report, nil
}

// perEdgeOffset offsets every parcel edge inward by its class setback and
// intersects the resulting half-planes. Edge indices from the classification
// refer to the parcel's declared vertex order, so the offset runs on the
// original winding rather than re-normalizing to CCW.
func perEdgeOffset(parcel geo.Polygon, sb Setbacks, edges *zoning.EdgeClassification) geo.Polygon {
	n := parcel.Len()
	ccw := parcel.IsCounterClockwise()

	front := make(map[int]bool, len(edges.FrontEdgeIndices))
	for _, i := range edges.FrontEdgeIndices {
		if i >= 0 && i < n {
			front[i] = true
		}
	}
	rear := rearEdgeIndex(parcel, front)

	result := parcel
	for i := 0; i < n; i++ {
		d := sb.SideFt
		switch {
		case front[i]:
			d = sb.FrontFt
		case i == rear:
			d = sb.RearFt
		}
		if d <= 0 {
			continue
		}
		a, b := parcel.Edge(i)
		// Interior is left of each edge for CCW winding, right for CW.
		inward := b.Sub(a).Perp().Normalize().Scale(d)
		if !ccw {
			inward = inward.Scale(-1)
		}
		a, b = a.Add(inward), b.Add(inward)
		if !ccw {
			// ClipHalfPlane keeps the left side; flip the line for CW input.
			a, b = b, a
		}
		result = geo.ClipHalfPlane(result, a, b)
		if result.IsEmpty() {
			return geo.Polygon{}
		}
	}
	return result
}

// rearEdgeIndex picks the non-front edge whose midpoint is farthest from the
// front edge midpoints. Returns -1 when every edge is a front edge.
func rearEdgeIndex(p geo.Polygon, front map[int]bool) int {
	n := p.Len()
	var frontMid geo.Point2D
	count := 0
	for i := range front {
		a, b := p.Edge(i)
		frontMid = frontMid.Add(geo.MidPoint(a, b))
		count++
	}
	if count == 0 {
		return -1
	}
	frontMid = frontMid.Scale(1 / float64(count))

	best, bestDist := -1, -1.0
	for i := 0; i < n; i++ {
		if front[i] {
			continue
		}
		a, b := p.Edge(i)
		if d := geo.MidPoint(a, b).Distance(frontMid); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
