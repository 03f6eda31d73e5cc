package main

import (
	"fmt"

	"github.com/emruss3/Optimizer-sub001/pkg/envelope"
	"github.com/emruss3/Optimizer-sub001/pkg/grading"
	"github.com/emruss3/Optimizer-sub001/pkg/validation"
	"github.com/emruss3/Optimizer-sub001/pkg/zoning"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s = %v\n", w.Path, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printEnvelope(parcel zoning.Parcel, env *envelope.BuildableEnvelope) {
	fmt.Println()
	fmt.Println("Buildable Envelope")
	fmt.Println("==================")
	fmt.Printf("  Parcel area:     %s sqft (%.2f acres)\n", formatNumber(parcel.Area()), parcel.Acres())
	fmt.Printf("  Buildable area:  %s sqft (%.1f%% of parcel)\n",
		formatNumber(env.AreaSqFt), env.AreaSqFt/parcel.Area()*100)
	fmt.Printf("  Method:          %s\n", env.Method)
	fmt.Printf("  Setbacks:        front %.0f ft, side %.0f ft, rear %.0f ft\n",
		env.Setbacks.FrontFt, env.Setbacks.SideFt, env.Setbacks.RearFt)
	fmt.Printf("  Vertices:        %d\n", env.Polygon.Len())
}

func printGradingResult(r grading.Result) {
	fmt.Println("Grading Estimate")
	fmt.Println("================")
	fmt.Printf("  Pad elevation:  %.1f ft\n", r.PadElevationFt)
	fmt.Printf("  Cut:            %s CY ($%s)\n", formatNumber(r.CutCY), formatNumber(r.CutCost))
	fmt.Printf("  Fill:           %s CY ($%s)\n", formatNumber(r.FillCY), formatNumber(r.FillCost))
	fmt.Printf("  Net import:     %s CY ($%s haul)\n", formatNumber(r.NetFillCY), formatNumber(r.HaulCost))
	fmt.Printf("  Balance ratio:  %.2f\n", r.BalanceRatio)
	fmt.Printf("  Total cost:     $%s\n", formatNumber(r.TotalCost))
	fmt.Printf("  Samples:        %d\n", r.Samples)
}

func formatNumber(v float64) string {
	if v >= 1_000_000_000 {
		return fmt.Sprintf("%.2fB", v/1_000_000_000)
	}
	if v >= 1_000_000 {
		return fmt.Sprintf("%.2fM", v/1_000_000)
	}
	if v >= 1_000 {
		return fmt.Sprintf("%.1fK", v/1_000)
	}
	return fmt.Sprintf("%.0f", v)
}
