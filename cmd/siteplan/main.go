package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/emruss3/Optimizer-sub001/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "siteplan",
		Short: "Parcel feasibility engine: envelope, massing, compliance, and yield optimization",
	}

	rootCmd.AddCommand(optimizeCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(envelopeCmd())
	rootCmd.AddCommand(gradeCmd())
	rootCmd.AddCommand(complianceCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func optimizeCmd() *cobra.Command {
	var typology string

	cmd := &cobra.Command{
		Use:   "optimize [project-path]",
		Short: "Run the full pipeline and emit the winning site plan as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runOptimize(args[0], typology)
		},
	}

	cmd.Flags().StringVarP(&typology, "typology", "t", "", "restrict the sweep to one typology")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a site spec without generating layouts",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func envelopeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "envelope [project-path]",
		Short: "Derive and display the buildable envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEnvelope(args[0])
		},
	}
}

func gradeCmd() *cobra.Command {
	var suggest bool

	cmd := &cobra.Command{
		Use:   "grade [project-path]",
		Short: "Estimate cut/fill earthwork cost for the buildable pad",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGrade(args[0], suggest)
		},
	}

	cmd.Flags().BoolVar(&suggest, "suggest-pad", false, "scan for the cheapest pad elevation")
	return cmd
}

func complianceCmd() *cobra.Command {
	var typology string

	cmd := &cobra.Command{
		Use:   "compliance [project-path]",
		Short: "Generate layouts and report zoning compliance per typology",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCompliance(args[0], typology)
		},
	}

	cmd.Flags().StringVarP(&typology, "typology", "t", "", "restrict the check to one typology")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local API server",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			srv := server.New(args[0], port)
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
