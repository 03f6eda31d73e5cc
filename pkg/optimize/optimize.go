// Package optimize sweeps every registered typology against a site,
// scores the feasible layouts, and picks the best one. Typologies run
// concurrently; results are collected by registry index so the sweep is
// deterministic regardless of scheduling.
package optimize

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/emruss3/Optimizer-sub001/pkg/compliance"
	"github.com/emruss3/Optimizer-sub001/pkg/massing"
	"github.com/emruss3/Optimizer-sub001/pkg/validation"
)

// ErrNoFeasibleLayout is returned when every typology fails to produce a
// layout for the site.
var ErrNoFeasibleLayout = errors.New("no feasible layout for any typology")

// Scoring weights. The four components sum to a 100-point scale.
const (
	DensityPoints     = 20.0
	ROIPoints         = 30.0
	UtilizationPoints = 25.0
	RevenuePoints     = 25.0

	// roiCapPct is the return-on-cost percentage that earns full ROI points.
	roiCapPct = 15.0
	// noiMargin converts gross revenue to net operating income.
	noiMargin = 0.6
	// revenueCap is the annual revenue that earns full revenue points.
	revenueCap = 5_000_000.0
	// defaultDensityBaseline normalizes density scoring when zoning leaves
	// density uncapped.
	defaultDensityBaseline = 30.0
)

// ScoreBreakdown itemizes a candidate's score by component.
type ScoreBreakdown struct {
	Density     float64 `json:"density"`
	ROI         float64 `json:"roi"`
	Utilization float64 `json:"utilization"`
	Revenue     float64 `json:"revenue"`
}

// Candidate is one scored feasible layout.
type Candidate struct {
	Typology   massing.Typology   `json:"typology"`
	Layout     *massing.Layout    `json:"layout"`
	Compliance *compliance.Result `json:"compliance"`
	Score      float64            `json:"score"`
	Breakdown  ScoreBreakdown     `json:"breakdown"`
}

// Result is the outcome of a full typology sweep.
type Result struct {
	Best       *Candidate  `json:"best"`
	Candidates []Candidate `json:"candidates"`
}

// Optimize generates a layout for every typology in the registry, scores
// the feasible ones, and returns them with the best candidate marked. Ties
// go to the typology registered first. Infeasible typologies are noted on
// the report, not treated as errors; only a fully infeasible site is.
func Optimize(site massing.Site, reg *massing.Registry) (*Result, *validation.Report, error) {
	strategies := reg.All()

	type outcome struct {
		candidate *Candidate
		report    *validation.Report
		err       error
	}
	outcomes := make([]outcome, len(strategies))

	var wg sync.WaitGroup
	for i, s := range strategies {
		wg.Add(1)
		go func(i int, s massing.LayoutStrategy) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = outcome{err: fmt.Errorf("typology %s: panic: %v", s.Typology(), r)}
				}
			}()
			layout, rep, err := s.Generate(site)
			if err != nil {
				outcomes[i] = outcome{report: rep, err: err}
				return
			}
			comp := compliance.Check(layout, site.Parcel, site.Zoning)
			score, breakdown := scoreLayout(layout, site)
			outcomes[i] = outcome{
				candidate: &Candidate{
					Typology:   s.Typology(),
					Layout:     layout,
					Compliance: comp,
					Score:      score,
					Breakdown:  breakdown,
				},
				report: rep,
			}
		}(i, s)
	}
	wg.Wait()

	report := validation.NewReport()
	result := &Result{}
	for i, o := range outcomes {
		report.Merge(o.report)
		if o.err != nil {
			report.AddInfo(validation.Result{
				Level:   validation.LevelFeasibility,
				Message: fmt.Sprintf("typology %s skipped: %v", strategies[i].Typology(), o.err),
			})
			continue
		}
		result.Candidates = append(result.Candidates, *o.candidate)
		if result.Best == nil || o.candidate.Score > result.Best.Score {
			result.Best = o.candidate
		}
	}

	if result.Best == nil {
		report.AddError(validation.Result{
			Level:   validation.LevelFeasibility,
			Message: "every typology is infeasible on this site",
		})
		return nil, report, ErrNoFeasibleLayout
	}

	report.AddInfo(validation.Result{
		Level: validation.LevelFeasibility,
		Message: fmt.Sprintf("best typology %s scored %.1f of 100 (%d candidates)",
			result.Best.Typology, result.Best.Score, len(result.Candidates)),
	})
	return result, report, nil
}

// scoreLayout rates a layout on density, return on cost, coverage
// utilization, and absolute revenue. Each component is a capped linear
// fraction of its weight.
func scoreLayout(layout *massing.Layout, site massing.Site) (float64, ScoreBreakdown) {
	m := layout.Metrics
	var b ScoreBreakdown

	baseline := site.Zoning.MaxDensityDUAcre
	if baseline <= 0 {
		baseline = defaultDensityBaseline
	}
	b.Density = fraction(m.DensityDUAcre, baseline) * DensityPoints

	if m.EstimatedCost > 0 {
		roi := m.EstimatedRevenue * noiMargin / m.EstimatedCost * 100
		b.ROI = fraction(roi, roiCapPct) * ROIPoints
	}

	if site.Zoning.MaxCoveragePct > 0 {
		b.Utilization = fraction(m.CoveragePct, site.Zoning.MaxCoveragePct) * UtilizationPoints
	}

	b.Revenue = fraction(m.EstimatedRevenue, revenueCap) * RevenuePoints

	return b.Density + b.ROI + b.Utilization + b.Revenue, b
}

// fraction returns value/cap clamped to [0, 1].
func fraction(value, cap float64) float64 {
	if cap <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, value/cap))
}
