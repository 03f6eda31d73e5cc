package zoning

import (
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ftPerDegreeLat is the approximate length of one degree of latitude in feet.
// Good to ~0.5% anywhere on Earth, which is well within parcel-data accuracy.
const ftPerDegreeLat = 364000.0

// LoadParcelGeoJSON reads the first polygon feature from a GeoJSON file and
// projects its outer ring from lon/lat into the local planar frame in feet,
// centered on the ring centroid. Holes are ignored; the engine operates on
// simple boundaries.
func LoadParcelGeoJSON(path string) (*Parcel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parcel geojson: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing parcel geojson: %w", err)
	}

	for _, f := range fc.Features {
		var ring orb.Ring
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			if len(g) > 0 {
				ring = g[0]
			}
		case orb.MultiPolygon:
			if len(g) > 0 && len(g[0]) > 0 {
				ring = g[0][0]
			}
		default:
			continue
		}
		if len(ring) < 4 {
			continue
		}
		return projectRing(ring), nil
	}

	return nil, fmt.Errorf("no polygon feature in %s", path)
}

// projectRing converts a closed lon/lat ring to a local feet frame using an
// equirectangular projection about the ring centroid. Adequate at parcel
// scale where curvature is negligible.
func projectRing(ring orb.Ring) *Parcel {
	centroid, _ := planar.CentroidArea(ring)
	lon0, lat0 := centroid[0], centroid[1]
	cosLat := math.Cos(lat0 * math.Pi / 180)

	// Drop the GeoJSON closing vertex; Polygon closes implicitly.
	pts := ring
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}

	boundary := make([][2]float64, len(pts))
	for i, pt := range pts {
		boundary[i] = [2]float64{
			(pt[0] - lon0) * ftPerDegreeLat * cosLat,
			(pt[1] - lat0) * ftPerDegreeLat,
		}
	}

	p := &Parcel{Boundary: boundary}
	p.AreaSqFt = p.Polygon().Area()
	return p
}
