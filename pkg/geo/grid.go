package geo

// GridSample is one cell of a regular grid sample inside a polygon.
// CellArea is spacing squared, for piecewise integration.
type GridSample struct {
	Point    Point2D `json:"point"`
	CellArea float64 `json:"cell_area"`
}

// SampleGrid samples the polygon interior on a regular grid with the given
// spacing. Sample points start half a cell in from the bounding box corner so
// each sample sits at its cell center. Malformed input (empty polygon,
// non-positive spacing) yields an empty sample set rather than an error.
func SampleGrid(p Polygon, spacing float64) []GridSample {
	if p.IsEmpty() || spacing <= 0 {
		return nil
	}
	bb := p.BoundingBox()
	cellArea := spacing * spacing
	var samples []GridSample
	for y := bb.MinY + spacing/2; y < bb.MaxY; y += spacing {
		for x := bb.MinX + spacing/2; x < bb.MaxX; x += spacing {
			pt := Point2D{x, y}
			if p.Contains(pt) {
				samples = append(samples, GridSample{Point: pt, CellArea: cellArea})
			}
		}
	}
	return samples
}
