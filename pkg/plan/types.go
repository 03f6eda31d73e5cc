package plan

// Plan is the complete 2D site-plan document for a top-down renderer or
// downstream underwriting export.
type Plan struct {
	Metadata   Metadata          `json:"metadata"`
	Parcel     Parcel2D          `json:"parcel"`
	Envelope   Envelope2D        `json:"envelope"`
	Buildings  []Building2D      `json:"buildings"`
	Parking    []Parking2D       `json:"parking"`
	Amenities  []Amenity2D       `json:"amenities"`
	Metrics    MetricsSummary    `json:"metrics"`
	Compliance ComplianceSummary `json:"compliance"`
	Grading    *GradingSummary   `json:"grading,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// Metadata holds plan-level summary data.
type Metadata struct {
	ParcelID    string  `json:"parcel_id"`
	Typology    string  `json:"typology"`
	Strategy    string  `json:"strategy"`
	Score       float64 `json:"score"`
	GeneratedAt string  `json:"generated_at"`
}

// Parcel2D is the parcel outline with derived areas.
type Parcel2D struct {
	Boundary [][2]float64 `json:"boundary"`
	AreaSqFt float64      `json:"area_sq_ft"`
	Acres    float64      `json:"acres"`
}

// Envelope2D is the buildable area after setbacks.
type Envelope2D struct {
	Polygon  [][2]float64 `json:"polygon"`
	AreaSqFt float64      `json:"area_sq_ft"`
	Method   string       `json:"method"`
	FrontFt  float64      `json:"front_ft"`
	SideFt   float64      `json:"side_ft"`
	RearFt   float64      `json:"rear_ft"`
}

// Building2D is a placed building footprint.
type Building2D struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Footprint [][2]float64 `json:"footprint"`
	AreaSqFt  float64      `json:"area_sq_ft"`
	GrossSqFt float64      `json:"gross_sq_ft"`
	Floors    int          `json:"floors"`
	Units     int          `json:"units,omitempty"`
	HeightFt  float64      `json:"height_ft"`
}

// Parking2D is a placed parking lot or driveway.
type Parking2D struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Footprint [][2]float64 `json:"footprint"`
	AreaSqFt  float64      `json:"area_sq_ft"`
	Spaces    int          `json:"spaces"`
}

// Amenity2D is a shared amenity (clubhouse, greenspace).
type Amenity2D struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Kind      string       `json:"kind"`
	Footprint [][2]float64 `json:"footprint"`
	AreaSqFt  float64      `json:"area_sq_ft"`
}

// MetricsSummary is the layout's derived program numbers.
type MetricsSummary struct {
	TotalUnits       int     `json:"total_units"`
	TotalSqFt        float64 `json:"total_sq_ft"`
	ParkingSpaces    int     `json:"parking_spaces"`
	DensityDUAcre    float64 `json:"density_du_acre"`
	CoveragePct      float64 `json:"coverage_pct"`
	EstimatedRevenue float64 `json:"estimated_revenue"`
	EstimatedCost    float64 `json:"estimated_cost"`
}

// ComplianceSummary is the scored rule outcome.
type ComplianceSummary struct {
	Score            int                    `json:"score"`
	OverallCompliant bool                   `json:"overall_compliant"`
	Rules            map[string]RuleSummary `json:"rules"`
}

// RuleSummary is one zoning rule's pass/fail outcome.
type RuleSummary struct {
	Compliant bool   `json:"compliant"`
	Message   string `json:"message"`
}

// GradingSummary holds earthwork volumes and cost.
type GradingSummary struct {
	CutCY        float64 `json:"cut_cy"`
	FillCY       float64 `json:"fill_cy"`
	NetFillCY    float64 `json:"net_fill_cy"`
	BalanceRatio float64 `json:"balance_ratio"`
	TotalCost    float64 `json:"total_cost"`
}
