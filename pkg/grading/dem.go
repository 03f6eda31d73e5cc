package grading

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// GridDEM is a regular elevation grid in site coordinates. Values[r][c] is
// the elevation in feet at (OriginX + c*SpacingFt, OriginY + r*SpacingFt).
type GridDEM struct {
	OriginX   float64     `json:"origin_x"`
	OriginY   float64     `json:"origin_y"`
	SpacingFt float64     `json:"spacing_ft"`
	Values    [][]float64 `json:"values"`
}

// LoadDEM reads a grid DEM from a JSON file.
func LoadDEM(path string) (*GridDEM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading DEM: %w", err)
	}
	var dem GridDEM
	if err := json.Unmarshal(data, &dem); err != nil {
		return nil, fmt.Errorf("parsing DEM JSON: %w", err)
	}
	if err := dem.validate(); err != nil {
		return nil, err
	}
	return &dem, nil
}

func (d *GridDEM) validate() error {
	if d.SpacingFt <= 0 {
		return fmt.Errorf("DEM spacing must be positive, got %g", d.SpacingFt)
	}
	if len(d.Values) == 0 || len(d.Values[0]) == 0 {
		return fmt.Errorf("DEM grid is empty")
	}
	cols := len(d.Values[0])
	for r, row := range d.Values {
		if len(row) != cols {
			return fmt.Errorf("DEM row %d has %d values, want %d", r, len(row), cols)
		}
	}
	return nil
}

// Sample returns the bilinearly interpolated elevation at (x, y). Points
// outside the grid clamp to the nearest edge cell.
func (d *GridDEM) Sample(x, y float64) float64 {
	rows := len(d.Values)
	cols := len(d.Values[0])

	fx := (x - d.OriginX) / d.SpacingFt
	fy := (y - d.OriginY) / d.SpacingFt
	fx = math.Max(0, math.Min(float64(cols-1), fx))
	fy = math.Max(0, math.Min(float64(rows-1), fy))

	c0 := int(math.Floor(fx))
	r0 := int(math.Floor(fy))
	c1 := c0 + 1
	r1 := r0 + 1
	if c1 > cols-1 {
		c1 = cols - 1
	}
	if r1 > rows-1 {
		r1 = rows - 1
	}

	tx := fx - float64(c0)
	ty := fy - float64(r0)

	top := d.Values[r0][c0]*(1-tx) + d.Values[r0][c1]*tx
	bot := d.Values[r1][c0]*(1-tx) + d.Values[r1][c1]*tx
	return top*(1-ty) + bot*ty
}

// Sampler adapts the grid to the ElevationSampler callback type.
func (d *GridDEM) Sampler() ElevationSampler {
	return d.Sample
}
