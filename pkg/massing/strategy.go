package massing

import (
	"errors"
	"fmt"

	"github.com/emruss3/Optimizer-sub001/pkg/validation"
)

// Typology identifies a building program type.
type Typology string

const (
	TypologySingleFamily Typology = "single_family"
	TypologyDuplex       Typology = "duplex"
	TypologyApartment    Typology = "apartment"
	TypologyOffice       Typology = "office"
	TypologyRetail       Typology = "retail"
	TypologyHospitality  Typology = "hospitality"
)

// ErrInfeasible is returned when a typology cannot place any required
// building within the buildable area. Never returned alongside a layout;
// an empty layout is not a success.
var ErrInfeasible = errors.New("layout infeasible: no required building could be placed")

// LayoutStrategy generates a candidate layout for one typology. Generation
// is pure over the Site inputs: same inputs, same layout.
type LayoutStrategy interface {
	Typology() Typology
	Generate(site Site) (*Layout, *validation.Report, error)
}

// Registry holds the available strategies in a fixed, deterministic order.
type Registry struct {
	order      []Typology
	strategies map[Typology]LayoutStrategy
}

// NewRegistry returns a registry with every built-in typology registered.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[Typology]LayoutStrategy)}
	r.Register(singleFamilyStrategy{})
	r.Register(duplexStrategy{})
	r.Register(apartmentStrategy{})
	r.Register(officeStrategy{})
	r.Register(retailStrategy{})
	r.Register(hospitalityStrategy{})
	return r
}

// Register adds or replaces a strategy. Order of first registration is kept
// so optimizer sweeps and tie-breaks stay deterministic.
func (r *Registry) Register(s LayoutStrategy) {
	if r.strategies == nil {
		r.strategies = make(map[Typology]LayoutStrategy)
	}
	t := s.Typology()
	if _, exists := r.strategies[t]; !exists {
		r.order = append(r.order, t)
	}
	r.strategies[t] = s
}

// Get returns the strategy for a typology.
func (r *Registry) Get(t Typology) (LayoutStrategy, bool) {
	s, ok := r.strategies[t]
	return s, ok
}

// All returns the strategies in registration order.
func (r *Registry) All() []LayoutStrategy {
	out := make([]LayoutStrategy, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.strategies[t])
	}
	return out
}

// Generate runs a single typology against the site.
func Generate(site Site, reg *Registry, t Typology) (*Layout, *validation.Report, error) {
	s, ok := reg.Get(t)
	if !ok {
		return nil, validation.NewReport(), fmt.Errorf("unknown typology %q", t)
	}
	return s.Generate(site)
}

// checkSite rejects degenerate inputs before any placement work.
func checkSite(site Site) (*validation.Report, error) {
	report := validation.NewReport()
	if site.Envelope == nil || site.Envelope.Polygon.IsEmpty() || site.Envelope.AreaSqFt <= 0 {
		report.AddError(validation.Result{
			Level:   validation.LevelInput,
			Message: "buildable envelope is empty or degenerate",
		})
		return report, ErrInfeasible
	}
	if site.Parcel.Area() <= 0 {
		report.AddError(validation.Result{
			Level:   validation.LevelInput,
			Message: "parcel has zero area",
		})
		return report, ErrInfeasible
	}
	return report, nil
}

// warnOmitted records a placement failure on both the report and the layout.
func warnOmitted(report *validation.Report, layout *Layout, what string) {
	msg := fmt.Sprintf("could not place %s within buildable area; omitted", what)
	layout.Warnings = append(layout.Warnings, msg)
	report.AddWarning(validation.Result{
		Level:   validation.LevelPlacement,
		Message: msg,
	})
}
