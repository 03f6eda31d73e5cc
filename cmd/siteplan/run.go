package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emruss3/Optimizer-sub001/pkg/compliance"
	"github.com/emruss3/Optimizer-sub001/pkg/envelope"
	"github.com/emruss3/Optimizer-sub001/pkg/grading"
	"github.com/emruss3/Optimizer-sub001/pkg/massing"
	"github.com/emruss3/Optimizer-sub001/pkg/optimize"
	"github.com/emruss3/Optimizer-sub001/pkg/plan"
	"github.com/emruss3/Optimizer-sub001/pkg/validation"
	"github.com/emruss3/Optimizer-sub001/pkg/zoning"
)

// loadAndValidate loads the site spec and runs schema validation.
func loadAndValidate(projectPath string) (*zoning.SiteSpec, *validation.Report, error) {
	siteSpec, err := zoning.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading site spec: %w", err)
	}
	schemaReport := validation.ValidateSchema(siteSpec)
	return siteSpec, schemaReport, nil
}

func runValidate(projectPath string) error {
	_, schemaReport, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(schemaReport)

	if !schemaReport.Valid {
		os.Exit(1)
	}
	return nil
}

func runEnvelope(projectPath string) error {
	siteSpec, schemaReport, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !schemaReport.Valid {
		printValidationReport(schemaReport)
		return fmt.Errorf("site spec has validation errors")
	}

	rules := siteSpec.EffectiveZoning()
	env, envReport, err := envelope.Derive(siteSpec.Parcel.Polygon(), envelope.FromZoning(rules), siteSpec.Edges)
	schemaReport.Merge(envReport)
	printValidationReport(schemaReport)
	if err != nil {
		return err
	}

	printEnvelope(siteSpec.Parcel, env)
	return nil
}

func runGrade(projectPath string, suggest bool) error {
	siteSpec, schemaReport, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !schemaReport.Valid {
		printValidationReport(schemaReport)
		return fmt.Errorf("site spec has validation errors")
	}

	rules := siteSpec.EffectiveZoning()
	env, _, err := envelope.Derive(siteSpec.Parcel.Polygon(), envelope.FromZoning(rules), siteSpec.Edges)
	if err != nil {
		return err
	}

	params := gradingParams(siteSpec)
	sampler, err := loadSampler(projectPath, params.PadElevationFt)
	if err != nil {
		return err
	}

	if suggest {
		pad, result := grading.SuggestPadElevation(env.Polygon, sampler, params, 50)
		fmt.Printf("Suggested pad elevation: %.1f ft\n\n", pad)
		printGradingResult(result)
		return nil
	}

	printGradingResult(grading.EstimateCost(env.Polygon, sampler, params))
	return nil
}

func runOptimize(projectPath string, typology string) error {
	siteSpec, schemaReport, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !schemaReport.Valid {
		printValidationReport(schemaReport)
		return fmt.Errorf("site spec has validation errors")
	}

	rules := siteSpec.EffectiveZoning()
	env, envReport, err := envelope.Derive(siteSpec.Parcel.Polygon(), envelope.FromZoning(rules), siteSpec.Edges)
	schemaReport.Merge(envReport)
	if err != nil {
		printValidationReport(schemaReport)
		return err
	}

	site := massing.Site{
		Envelope: env,
		Parcel:   siteSpec.Parcel,
		Zoning:   rules,
		Market:   siteSpec.Market,
	}

	registry, err := registryFor(typology)
	if err != nil {
		return err
	}

	result, sweepReport, err := optimize.Optimize(site, registry)
	schemaReport.Merge(sweepReport)
	if err != nil {
		printValidationReport(schemaReport)
		return err
	}

	var grade *grading.Result
	if siteSpec.Grading != nil {
		params := gradingParams(siteSpec)
		sampler, samplerErr := loadSampler(projectPath, params.PadElevationFt)
		if samplerErr != nil {
			return samplerErr
		}
		g := grading.EstimateCost(env.Polygon, sampler, params)
		grade = &g
	}

	document := plan.Assemble(siteSpec.Parcel, env, result.Best, grade)
	output := map[string]any{
		"plan":       document,
		"candidates": result.Candidates,
		"validation": schemaReport,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// runCompliance runs the typology sweep and emits only the compliance
// verdicts, one per feasible typology.
func runCompliance(projectPath string, typology string) error {
	siteSpec, schemaReport, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !schemaReport.Valid {
		printValidationReport(schemaReport)
		return fmt.Errorf("site spec has validation errors")
	}

	rules := siteSpec.EffectiveZoning()
	env, envReport, err := envelope.Derive(siteSpec.Parcel.Polygon(), envelope.FromZoning(rules), siteSpec.Edges)
	schemaReport.Merge(envReport)
	if err != nil {
		printValidationReport(schemaReport)
		return err
	}

	site := massing.Site{
		Envelope: env,
		Parcel:   siteSpec.Parcel,
		Zoning:   rules,
		Market:   siteSpec.Market,
	}

	registry, err := registryFor(typology)
	if err != nil {
		return err
	}

	result, sweepReport, err := optimize.Optimize(site, registry)
	schemaReport.Merge(sweepReport)
	if err != nil {
		printValidationReport(schemaReport)
		return err
	}

	type entry struct {
		Typology   massing.Typology   `json:"typology"`
		Score      float64            `json:"score"`
		Compliance *compliance.Result `json:"compliance"`
	}
	entries := make([]entry, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		entries = append(entries, entry{Typology: c.Typology, Score: c.Score, Compliance: c.Compliance})
	}

	output := map[string]any{
		"best":       result.Best.Typology,
		"compliance": entries,
		"validation": schemaReport,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// registryFor returns the full registry, or one restricted to a single
// typology when the flag names one.
func registryFor(typology string) (*massing.Registry, error) {
	registry := massing.NewRegistry()
	if typology == "" {
		return registry, nil
	}
	strategy, ok := registry.Get(massing.Typology(typology))
	if !ok {
		return nil, fmt.Errorf("unknown typology %q", typology)
	}
	restricted := &massing.Registry{}
	restricted.Register(strategy)
	return restricted, nil
}

// gradingParams maps the spec's grading block onto estimator params.
func gradingParams(siteSpec *zoning.SiteSpec) grading.Params {
	if siteSpec.Grading == nil {
		return grading.Params{}
	}
	g := siteSpec.Grading
	return grading.Params{
		PadElevationFt:    g.PadElevationFt,
		SpacingFt:         g.SampleSpacingFt,
		CutCostPerCY:      g.CutCostPerCY,
		FillCostPerCY:     g.FillCostPerCY,
		HaulCostPerCYMile: g.HaulCostPerCYMile,
		HaulDistanceMiles: g.HaulDistanceMiles,
	}
}

// loadSampler reads dem.json from the project directory when present;
// otherwise the ground is treated as flat at the pad elevation.
func loadSampler(projectPath string, padElevationFt float64) (grading.ElevationSampler, error) {
	demPath := filepath.Join(projectPath, "dem.json")
	if _, err := os.Stat(demPath); err != nil {
		fmt.Fprintf(os.Stderr, "no dem.json in project: assuming flat ground at %.1f ft\n", padElevationFt)
		return func(x, y float64) float64 { return padElevationFt }, nil
	}
	dem, err := grading.LoadDEM(demPath)
	if err != nil {
		return nil, err
	}
	return dem.Sampler(), nil
}
