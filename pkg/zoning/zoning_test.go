package zoning

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParcelAreaComputed(t *testing.T) {
	p := Parcel{Boundary: [][2]float64{{0, 0}, {200, 0}, {200, 200}, {0, 200}}}
	if got := p.Area(); math.Abs(got-40000) > 0.01 {
		t.Errorf("expected computed area 40000, got %f", got)
	}
}

func TestParcelAreaDeclaredWins(t *testing.T) {
	p := Parcel{
		Boundary: [][2]float64{{0, 0}, {200, 0}, {200, 200}, {0, 200}},
		AreaSqFt: 39500,
	}
	if got := p.Area(); got != 39500 {
		t.Errorf("expected declared area 39500, got %f", got)
	}
}

func TestParcelAcres(t *testing.T) {
	p := Parcel{AreaSqFt: SqFtPerAcre}
	if got := p.Acres(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected 1 acre, got %f", got)
	}
}

func TestMergeZoningMostRestrictive(t *testing.T) {
	a := ZoningRules{
		MaxFAR: 0.6, MaxHeightFt: 45, MaxCoveragePct: 40, MaxDensityDUAcre: 24,
		FrontSetbackFt: 25, SideSetbackFt: 10, RearSetbackFt: 20, MinParkingRatio: 0.3,
	}
	b := ZoningRules{
		MaxFAR: 0.8, MaxHeightFt: 35, MaxCoveragePct: 50, MaxDensityDUAcre: 18,
		FrontSetbackFt: 20, SideSetbackFt: 15, RearSetbackFt: 25, MinParkingRatio: 0.25,
	}
	m := MergeZoning(a, b)
	if m.MaxFAR != 0.6 || m.MaxHeightFt != 35 || m.MaxCoveragePct != 40 || m.MaxDensityDUAcre != 18 {
		t.Errorf("upper bounds not minimized: %+v", m)
	}
	if m.FrontSetbackFt != 25 || m.SideSetbackFt != 15 || m.RearSetbackFt != 25 || m.MinParkingRatio != 0.3 {
		t.Errorf("lower bounds not maximized: %+v", m)
	}
}

func TestMergeZoningUncappedDensity(t *testing.T) {
	a := ZoningRules{MaxFAR: 0.6, MaxDensityDUAcre: 0}
	b := ZoningRules{MaxFAR: 0.8, MaxDensityDUAcre: 12}
	m := MergeZoning(a, b)
	if m.MaxDensityDUAcre != 12 {
		t.Errorf("uncapped density should not win the minimum, got %f", m.MaxDensityDUAcre)
	}
}

func TestEffectiveZoningNoOverlays(t *testing.T) {
	s := SiteSpec{Zoning: ZoningRules{MaxFAR: 1.2, FrontSetbackFt: 25}}
	if got := s.EffectiveZoning(); got != s.Zoning {
		t.Errorf("expected base zoning unchanged, got %+v", got)
	}
}

func TestEffectiveZoningMergesOverlays(t *testing.T) {
	s := SiteSpec{
		Zoning: ZoningRules{MaxFAR: 1.2, MaxHeightFt: 60, FrontSetbackFt: 25},
		Overlays: []ZoningRules{
			{MaxHeightFt: 35, FrontSetbackFt: 30},
		},
	}
	got := s.EffectiveZoning()
	if got.MaxHeightFt != 35 {
		t.Errorf("overlay height cap should win: got %f", got.MaxHeightFt)
	}
	if got.FrontSetbackFt != 30 {
		t.Errorf("overlay setback should win: got %f", got.FrontSetbackFt)
	}
	if got.MaxFAR != 1.2 {
		t.Errorf("base FAR should survive: got %f", got.MaxFAR)
	}
}

func TestLoadProjectYAML(t *testing.T) {
	dir := t.TempDir()
	content := `spec_version: "1.0"
parcel:
  vertices: [[0, 0], [200, 0], [200, 200], [0, 200]]
zoning:
  max_far: 0.6
  max_height_ft: 35
  max_coverage_pct: 40
  front_setback_ft: 25
  side_setback_ft: 15
  rear_setback_ft: 20
  min_parking_ratio: 0.3
market:
  avg_rent_per_sqft: 2.1
  construction_cost_per_sqft: 185
  avg_home_size_sqft: 2400
edges:
  front_edge_indices: [0]
  method: road_proximity
`
	if err := os.WriteFile(filepath.Join(dir, "site.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if s.Zoning.MaxFAR != 0.6 {
		t.Errorf("expected max_far 0.6, got %f", s.Zoning.MaxFAR)
	}
	if len(s.Parcel.Boundary) != 4 {
		t.Errorf("expected 4 parcel vertices, got %d", len(s.Parcel.Boundary))
	}
	if s.Edges == nil || len(s.Edges.FrontEdgeIndices) != 1 || s.Edges.FrontEdgeIndices[0] != 0 {
		t.Errorf("edge classification not parsed: %+v", s.Edges)
	}
}

func TestLoadParcelGeoJSON(t *testing.T) {
	dir := t.TempDir()
	// Roughly 200ft x 200ft square near the equator.
	gj := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},
"geometry":{"type":"Polygon","coordinates":[[
[0.0,0.0],[0.00055,0.0],[0.00055,0.00055],[0.0,0.00055],[0.0,0.0]]]}}]}`
	if err := os.WriteFile(filepath.Join(dir, "parcel.geojson"), []byte(gj), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadParcelGeoJSON(filepath.Join(dir, "parcel.geojson"))
	if err != nil {
		t.Fatalf("LoadParcelGeoJSON failed: %v", err)
	}
	if len(p.Boundary) != 4 {
		t.Errorf("expected closing vertex dropped, got %d vertices", len(p.Boundary))
	}
	// 0.00055 deg ~ 200.2 ft; allow generous tolerance for projection.
	if p.AreaSqFt < 35000 || p.AreaSqFt > 45000 {
		t.Errorf("expected ~40000 sqft parcel, got %f", p.AreaSqFt)
	}
}
