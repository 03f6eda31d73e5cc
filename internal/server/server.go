// Package server exposes the feasibility pipeline over HTTP for an
// interactive front end. Every request reloads the project from disk, so
// edits to site.yaml show up without restarting.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emruss3/Optimizer-sub001/pkg/envelope"
	"github.com/emruss3/Optimizer-sub001/pkg/massing"
	"github.com/emruss3/Optimizer-sub001/pkg/optimize"
	"github.com/emruss3/Optimizer-sub001/pkg/plan"
	"github.com/emruss3/Optimizer-sub001/pkg/validation"
	"github.com/emruss3/Optimizer-sub001/pkg/zoning"
)

// Server is the local API server for one project directory.
type Server struct {
	projectPath string
	port        int
	engine      *gin.Engine
}

// New creates a server for the given project directory.
func New(projectPath string, port int) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		projectPath: projectPath,
		port:        port,
		engine:      gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	api.GET("/spec", s.handleSpec)
	api.GET("/validation", s.handleValidation)
	api.GET("/envelope", s.handleEnvelope)
	api.POST("/optimize", s.handleOptimize)
	api.POST("/compliance", s.handleCompliance)
	api.POST("/layout/:typology", s.handleLayout)
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("siteplan server starting on http://localhost%s", addr)
	log.Printf("project: %s", s.projectPath)
	return s.engine.Run(addr)
}

// Handler returns the underlying HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// load reads the project and runs schema validation.
func (s *Server) load() (*zoning.SiteSpec, *validation.Report, error) {
	siteSpec, err := zoning.LoadProject(s.projectPath)
	if err != nil {
		return nil, nil, err
	}
	return siteSpec, validation.ValidateSchema(siteSpec), nil
}

// derive runs envelope derivation under the effective zoning.
func derive(siteSpec *zoning.SiteSpec) (*envelope.BuildableEnvelope, *validation.Report, error) {
	rules := siteSpec.EffectiveZoning()
	return envelope.Derive(siteSpec.Parcel.Polygon(), envelope.FromZoning(rules), siteSpec.Edges)
}

func (s *Server) handleSpec(c *gin.Context) {
	siteSpec, _, err := s.load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, siteSpec)
}

func (s *Server) handleValidation(c *gin.Context) {
	_, report, err := s.load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleEnvelope(c *gin.Context) {
	siteSpec, report, err := s.load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !report.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"validation": report})
		return
	}

	env, envReport, err := derive(siteSpec)
	report.Merge(envReport)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "validation": report})
		return
	}
	c.JSON(http.StatusOK, gin.H{"envelope": env, "validation": report})
}

func (s *Server) handleOptimize(c *gin.Context) {
	siteSpec, report, err := s.load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !report.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"validation": report})
		return
	}

	env, envReport, err := derive(siteSpec)
	report.Merge(envReport)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "validation": report})
		return
	}

	site := massing.Site{
		Envelope: env,
		Parcel:   siteSpec.Parcel,
		Zoning:   siteSpec.EffectiveZoning(),
		Market:   siteSpec.Market,
	}
	result, sweepReport, err := optimize.Optimize(site, massing.NewRegistry())
	report.Merge(sweepReport)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "validation": report})
		return
	}

	document := plan.Assemble(siteSpec.Parcel, env, result.Best, nil)
	c.JSON(http.StatusOK, gin.H{
		"plan":       document,
		"candidates": result.Candidates,
		"validation": report,
	})
}

func (s *Server) handleCompliance(c *gin.Context) {
	siteSpec, report, err := s.load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !report.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"validation": report})
		return
	}

	env, envReport, err := derive(siteSpec)
	report.Merge(envReport)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "validation": report})
		return
	}

	site := massing.Site{
		Envelope: env,
		Parcel:   siteSpec.Parcel,
		Zoning:   siteSpec.EffectiveZoning(),
		Market:   siteSpec.Market,
	}
	result, sweepReport, err := optimize.Optimize(site, massing.NewRegistry())
	report.Merge(sweepReport)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "validation": report})
		return
	}

	entries := make([]gin.H, 0, len(result.Candidates))
	for _, cand := range result.Candidates {
		entries = append(entries, gin.H{
			"typology":   cand.Typology,
			"score":      cand.Score,
			"compliance": cand.Compliance,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"best":       result.Best.Typology,
		"compliance": entries,
		"validation": report,
	})
}

func (s *Server) handleLayout(c *gin.Context) {
	typology := massing.Typology(c.Param("typology"))

	siteSpec, report, err := s.load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !report.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"validation": report})
		return
	}

	env, envReport, err := derive(siteSpec)
	report.Merge(envReport)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "validation": report})
		return
	}

	registry := massing.NewRegistry()
	if _, ok := registry.Get(typology); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown typology %q", typology)})
		return
	}

	site := massing.Site{
		Envelope: env,
		Parcel:   siteSpec.Parcel,
		Zoning:   siteSpec.EffectiveZoning(),
		Market:   siteSpec.Market,
	}
	layout, layoutReport, err := massing.Generate(site, registry, typology)
	report.Merge(layoutReport)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "validation": report})
		return
	}
	c.JSON(http.StatusOK, gin.H{"layout": layout, "validation": report})
}
