package massing

import (
	"github.com/google/uuid"

	"github.com/emruss3/Optimizer-sub001/pkg/geo"
)

// Kind classifies a placed site element.
type Kind string

const (
	KindBuilding   Kind = "building"
	KindParking    Kind = "parking"
	KindGreenspace Kind = "greenspace"
)

// Element is one placed object on the site. The owning Layout holds its
// elements exclusively; elements carry no back-reference.
type Element struct {
	ID          string      `json:"id"`
	Kind        Kind        `json:"kind"`
	Name        string      `json:"name"`
	Footprint   geo.Polygon `json:"vertices"`
	RotationDeg float64     `json:"rotation_deg"`
	AreaSqFt    float64     `json:"area_sq_ft"`
	Floors      int         `json:"floors,omitempty"`
	Units       int         `json:"units,omitempty"`
	Spaces      int         `json:"spaces,omitempty"`
}

// GrossSqFt returns total floor area: footprint times floors.
// Non-building elements report their footprint area.
func (e Element) GrossSqFt() float64 {
	if e.Kind == KindBuilding && e.Floors > 1 {
		return e.AreaSqFt * float64(e.Floors)
	}
	return e.AreaSqFt
}

// newElement builds an element from a rectangular footprint.
func newElement(kind Kind, name string, center geo.Point2D, width, height, rotationDeg float64) Element {
	fp := geo.RectPolygon(center, width, height, rotationDeg)
	return Element{
		ID:          uuid.NewString(),
		Kind:        kind,
		Name:        name,
		Footprint:   fp,
		RotationDeg: rotationDeg,
		AreaSqFt:    fp.Area(),
	}
}

// SiteMetrics is the derived summary handed to the external underwriting
// calculator. Always recomputed from the current element set.
type SiteMetrics struct {
	TotalUnits       int     `json:"total_units"`
	TotalSqFt        float64 `json:"total_sq_ft"`
	ParkingSpaces    int     `json:"parking_spaces"`
	DensityDUAcre    float64 `json:"density_du_acre"`
	CoveragePct      float64 `json:"coverage_pct"`
	EstimatedRevenue float64 `json:"estimated_revenue"`
	EstimatedCost    float64 `json:"estimated_cost"`
}

// Layout is the product of one generator invocation. Immutable once
// returned; callers that edit elements own their copy and must re-run
// compliance and metrics themselves.
type Layout struct {
	Typology  Typology    `json:"typology"`
	Strategy  string      `json:"strategy"`
	Buildings []Element   `json:"buildings"`
	Parking   []Element   `json:"parking"`
	Amenities []Element   `json:"amenities"`
	Metrics   SiteMetrics `json:"metrics"`
	Warnings  []string    `json:"warnings,omitempty"`
}

// AllElements returns every placed element across the three groups.
func (l *Layout) AllElements() []Element {
	out := make([]Element, 0, len(l.Buildings)+len(l.Parking)+len(l.Amenities))
	out = append(out, l.Buildings...)
	out = append(out, l.Parking...)
	out = append(out, l.Amenities...)
	return out
}
