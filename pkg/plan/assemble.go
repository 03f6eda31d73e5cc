// Package plan assembles engine outputs into a single 2D site-plan document
// suitable for JSON export or an SVG top-down renderer.
package plan

import (
	"time"

	"github.com/emruss3/Optimizer-sub001/pkg/compliance"
	"github.com/emruss3/Optimizer-sub001/pkg/envelope"
	"github.com/emruss3/Optimizer-sub001/pkg/geo"
	"github.com/emruss3/Optimizer-sub001/pkg/grading"
	"github.com/emruss3/Optimizer-sub001/pkg/massing"
	"github.com/emruss3/Optimizer-sub001/pkg/optimize"
	"github.com/emruss3/Optimizer-sub001/pkg/zoning"
)

// Assemble converts a parcel, its derived envelope, and the winning candidate
// into a plan document. The grading result is optional.
func Assemble(parcel zoning.Parcel, env *envelope.BuildableEnvelope, cand *optimize.Candidate, grade *grading.Result) *Plan {
	p := &Plan{
		Metadata:   assembleMetadata(parcel, cand),
		Parcel:     assembleParcel(parcel),
		Envelope:   assembleEnvelope(env),
		Buildings:  assembleBuildings(cand.Layout.Buildings),
		Parking:    assembleParking(cand.Layout.Parking),
		Amenities:  assembleAmenities(cand.Layout.Amenities),
		Metrics:    assembleMetrics(cand.Layout.Metrics),
		Compliance: assembleCompliance(cand.Compliance),
		Warnings:   cand.Layout.Warnings,
	}
	if grade != nil {
		p.Grading = &GradingSummary{
			CutCY:        grade.CutCY,
			FillCY:       grade.FillCY,
			NetFillCY:    grade.NetFillCY,
			BalanceRatio: grade.BalanceRatio,
			TotalCost:    grade.TotalCost,
		}
	}
	return p
}

func assembleMetadata(parcel zoning.Parcel, cand *optimize.Candidate) Metadata {
	return Metadata{
		ParcelID:    parcel.ID,
		Typology:    string(cand.Typology),
		Strategy:    cand.Layout.Strategy,
		Score:       cand.Score,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func assembleParcel(parcel zoning.Parcel) Parcel2D {
	return Parcel2D{
		Boundary: parcel.Boundary,
		AreaSqFt: parcel.Area(),
		Acres:    parcel.Acres(),
	}
}

func assembleEnvelope(env *envelope.BuildableEnvelope) Envelope2D {
	if env == nil {
		return Envelope2D{}
	}
	return Envelope2D{
		Polygon:  polygonToCoords(env.Polygon),
		AreaSqFt: env.AreaSqFt,
		Method:   env.Method,
		FrontFt:  env.Setbacks.FrontFt,
		SideFt:   env.Setbacks.SideFt,
		RearFt:   env.Setbacks.RearFt,
	}
}

func assembleBuildings(buildings []massing.Element) []Building2D {
	result := make([]Building2D, 0, len(buildings))
	for _, b := range buildings {
		result = append(result, Building2D{
			ID:        b.ID,
			Name:      b.Name,
			Footprint: polygonToCoords(b.Footprint),
			AreaSqFt:  b.AreaSqFt,
			GrossSqFt: b.GrossSqFt(),
			Floors:    b.Floors,
			Units:     b.Units,
			HeightFt:  float64(b.Floors) * massing.FloorHeightFt,
		})
	}
	return result
}

func assembleParking(lots []massing.Element) []Parking2D {
	result := make([]Parking2D, 0, len(lots))
	for _, lot := range lots {
		result = append(result, Parking2D{
			ID:        lot.ID,
			Name:      lot.Name,
			Footprint: polygonToCoords(lot.Footprint),
			AreaSqFt:  lot.AreaSqFt,
			Spaces:    lot.Spaces,
		})
	}
	return result
}

func assembleAmenities(amenities []massing.Element) []Amenity2D {
	result := make([]Amenity2D, 0, len(amenities))
	for _, a := range amenities {
		result = append(result, Amenity2D{
			ID:        a.ID,
			Name:      a.Name,
			Kind:      string(a.Kind),
			Footprint: polygonToCoords(a.Footprint),
			AreaSqFt:  a.AreaSqFt,
		})
	}
	return result
}

func assembleMetrics(m massing.SiteMetrics) MetricsSummary {
	return MetricsSummary{
		TotalUnits:       m.TotalUnits,
		TotalSqFt:        m.TotalSqFt,
		ParkingSpaces:    m.ParkingSpaces,
		DensityDUAcre:    m.DensityDUAcre,
		CoveragePct:      m.CoveragePct,
		EstimatedRevenue: m.EstimatedRevenue,
		EstimatedCost:    m.EstimatedCost,
	}
}

func assembleCompliance(c *compliance.Result) ComplianceSummary {
	if c == nil {
		return ComplianceSummary{Rules: map[string]RuleSummary{}}
	}
	return ComplianceSummary{
		Score:            c.Score,
		OverallCompliant: c.OverallCompliant,
		Rules: map[string]RuleSummary{
			"far":      {Compliant: c.FAR.Compliant, Message: c.FAR.Message},
			"coverage": {Compliant: c.Coverage.Compliant, Message: c.Coverage.Message},
			"parking":  {Compliant: c.Parking.Compliant, Message: c.Parking.Message},
			"setbacks": {Compliant: c.Setbacks.Compliant, Message: c.Setbacks.Message},
		},
	}
}

// polygonToCoords converts a geo.Polygon to a [][2]float64 coordinate list.
func polygonToCoords(p geo.Polygon) [][2]float64 {
	coords := make([][2]float64, len(p.Vertices))
	for i, v := range p.Vertices {
		coords[i] = [2]float64{v.X, v.Y}
	}
	return coords
}
