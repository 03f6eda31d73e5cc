package zoning

import "github.com/emruss3/Optimizer-sub001/pkg/geo"

// SqFtPerAcre converts between square feet and acres.
const SqFtPerAcre = 43560.0

// SiteSpec is the top-level project input: one parcel (or assemblage), its
// zoning constraints, and the market assumptions used for underwriting
// handoff. All geometry is in feet in a local planar frame.
type SiteSpec struct {
	SpecVersion string              `yaml:"spec_version" json:"spec_version"`
	Parcel      Parcel              `yaml:"parcel" json:"parcel"`
	Assemblage  []Parcel            `yaml:"assemblage,omitempty" json:"assemblage,omitempty"`
	Zoning      ZoningRules         `yaml:"zoning" json:"zoning"`
	Overlays    []ZoningRules       `yaml:"zoning_overlays,omitempty" json:"zoning_overlays,omitempty"`
	Market      MarketData          `yaml:"market" json:"market"`
	Edges       *EdgeClassification `yaml:"edges,omitempty" json:"edges,omitempty"`
	Grading     *GradingDef         `yaml:"grading,omitempty" json:"grading,omitempty"`
}

// EffectiveZoning merges the base district with any overlay districts into
// the most restrictive rule set.
func (s *SiteSpec) EffectiveZoning() ZoningRules {
	if len(s.Overlays) == 0 {
		return s.Zoning
	}
	return MergeZoning(append([]ZoningRules{s.Zoning}, s.Overlays...)...)
}

// Parcel is a single legal lot. Owned by the external data layer; the
// engine treats it as immutable input.
type Parcel struct {
	ID       string       `yaml:"id,omitempty" json:"id,omitempty"`
	Boundary [][2]float64 `yaml:"vertices" json:"vertices"`
	AreaSqFt float64      `yaml:"area_sq_ft,omitempty" json:"area_sq_ft,omitempty"`
}

// Polygon returns the parcel boundary as a geo.Polygon.
func (p Parcel) Polygon() geo.Polygon {
	pts := make([]geo.Point2D, len(p.Boundary))
	for i, b := range p.Boundary {
		pts[i] = geo.Pt(b[0], b[1])
	}
	return geo.NewPolygon(pts...)
}

// Area returns the parcel area in square feet. Uses the declared area when
// present, otherwise computes it from the boundary.
func (p Parcel) Area() float64 {
	if p.AreaSqFt > 0 {
		return p.AreaSqFt
	}
	return p.Polygon().Area()
}

// Acres returns the parcel area in acres.
func (p Parcel) Acres() float64 {
	return p.Area() / SqFtPerAcre
}

// ZoningRules is the read-only constraint set for a parcel.
// MaxDensityDUAcre of 0 means no density cap applies.
type ZoningRules struct {
	MaxFAR           float64 `yaml:"max_far" json:"max_far"`
	MaxHeightFt      float64 `yaml:"max_height_ft" json:"max_height_ft"`
	MaxCoveragePct   float64 `yaml:"max_coverage_pct" json:"max_coverage_pct"`
	MaxDensityDUAcre float64 `yaml:"max_density_du_acre,omitempty" json:"max_density_du_acre,omitempty"`
	FrontSetbackFt   float64 `yaml:"front_setback_ft" json:"front_setback_ft"`
	SideSetbackFt    float64 `yaml:"side_setback_ft" json:"side_setback_ft"`
	RearSetbackFt    float64 `yaml:"rear_setback_ft" json:"rear_setback_ft"`
	MinParkingRatio  float64 `yaml:"min_parking_ratio" json:"min_parking_ratio"`
}

// MarketData holds the externally supplied market assumptions consumed by
// layout metrics. The engine never fetches these itself.
type MarketData struct {
	AvgRentPerSqFt          float64 `yaml:"avg_rent_per_sqft" json:"avg_rent_per_sqft"`
	ConstructionCostPerSqFt float64 `yaml:"construction_cost_per_sqft" json:"construction_cost_per_sqft"`
	AvgHomeSizeSqFt         float64 `yaml:"avg_home_size_sqft" json:"avg_home_size_sqft"`
}

// EdgeClassification is the optional road-proximity classification supplied
// by an external service. Indices refer to parcel edges: edge i runs from
// vertex i to vertex i+1 (wrapping).
type EdgeClassification struct {
	FrontEdgeIndices []int  `yaml:"front_edge_indices" json:"front_edge_indices"`
	Method           string `yaml:"method,omitempty" json:"method,omitempty"`
	Source           string `yaml:"source,omitempty" json:"source,omitempty"`
}

// GradingDef holds the optional earthwork inputs for a project.
type GradingDef struct {
	PadElevationFt    float64 `yaml:"pad_elevation_ft" json:"pad_elevation_ft"`
	SampleSpacingFt   float64 `yaml:"sample_spacing_ft,omitempty" json:"sample_spacing_ft,omitempty"`
	CutCostPerCY      float64 `yaml:"cut_cost_per_cy,omitempty" json:"cut_cost_per_cy,omitempty"`
	FillCostPerCY     float64 `yaml:"fill_cost_per_cy,omitempty" json:"fill_cost_per_cy,omitempty"`
	HaulCostPerCYMile float64 `yaml:"haul_cost_per_cy_mile,omitempty" json:"haul_cost_per_cy_mile,omitempty"`
	HaulDistanceMiles float64 `yaml:"haul_distance_miles,omitempty" json:"haul_distance_miles,omitempty"`
}
