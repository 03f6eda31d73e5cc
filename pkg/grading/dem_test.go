package grading

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func testDEM() *GridDEM {
	return &GridDEM{
		OriginX:   0,
		OriginY:   0,
		SpacingFt: 100,
		Values: [][]float64{
			{100, 110},
			{120, 130},
		},
	}
}

func TestDEMSampleAtNodes(t *testing.T) {
	dem := testDEM()
	cases := []struct {
		x, y, want float64
	}{
		{0, 0, 100},
		{100, 0, 110},
		{0, 100, 120},
		{100, 100, 130},
	}
	for _, tc := range cases {
		if got := dem.Sample(tc.x, tc.y); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Sample(%g, %g) = %g, want %g", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestDEMSampleBilinear(t *testing.T) {
	dem := testDEM()
	if got := dem.Sample(50, 50); math.Abs(got-115) > 1e-9 {
		t.Errorf("center sample = %g, want 115", got)
	}
	if got := dem.Sample(50, 0); math.Abs(got-105) > 1e-9 {
		t.Errorf("top-edge sample = %g, want 105", got)
	}
}

func TestDEMSampleClampsOutsideGrid(t *testing.T) {
	dem := testDEM()
	if got := dem.Sample(-500, -500); got != 100 {
		t.Errorf("below-origin sample = %g, want 100", got)
	}
	if got := dem.Sample(5000, 5000); got != 130 {
		t.Errorf("past-extent sample = %g, want 130", got)
	}
}

func TestLoadDEM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dem.json")
	data := `{"origin_x": 10, "origin_y": 20, "spacing_ft": 50, "values": [[1, 2], [3, 4]]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	dem, err := LoadDEM(path)
	if err != nil {
		t.Fatalf("LoadDEM: %v", err)
	}
	if dem.OriginX != 10 || dem.OriginY != 20 || dem.SpacingFt != 50 {
		t.Errorf("unexpected header: %+v", dem)
	}
	if got := dem.Sample(10, 20); got != 1 {
		t.Errorf("origin sample = %g, want 1", got)
	}
}

func TestLoadDEMRejectsBadGrids(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"zero spacing": `{"spacing_ft": 0, "values": [[1]]}`,
		"empty grid":   `{"spacing_ft": 10, "values": []}`,
		"ragged rows":  `{"spacing_ft": 10, "values": [[1, 2], [3]]}`,
		"not json":     `spacing: 10`,
	}
	for name, data := range cases {
		path := filepath.Join(dir, name+".json")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadDEM(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadDEMMissingFile(t *testing.T) {
	if _, err := LoadDEM(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
