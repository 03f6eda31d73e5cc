package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSiteYAML = `spec_version: "1.0"
parcel:
  id: server-test
  vertices:
    - [0, 0]
    - [300, 0]
    - [300, 300]
    - [0, 300]
zoning:
  max_far: 1.5
  max_height_ft: 48
  max_coverage_pct: 50
  max_density_du_acre: 25
  front_setback_ft: 25
  side_setback_ft: 15
  rear_setback_ft: 20
  min_parking_ratio: 0.25
market:
  avg_rent_per_sqft: 2.1
  construction_cost_per_sqft: 180
  avg_home_size_sqft: 2300
edges:
  front_edge_indices: [0]
`

const invalidSiteYAML = `spec_version: "1.0"
parcel:
  id: broken
  vertices:
    - [0, 0]
    - [100, 0]
zoning:
  max_far: 1.5
  max_height_ft: 48
  max_coverage_pct: 50
  front_setback_ft: 25
  side_setback_ft: 15
  rear_setback_ft: 20
  min_parking_ratio: 0.25
market:
  avg_rent_per_sqft: 2.1
  construction_cost_per_sqft: 180
  avg_home_size_sqft: 2300
`

func testServer(t *testing.T, siteYAML string) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "site.yaml"), []byte(siteYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return New(dir, 0)
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleSpec(t *testing.T) {
	s := testServer(t, validSiteYAML)
	rec := doRequest(t, s, http.MethodGet, "/api/spec")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	parcel, ok := body["parcel"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "server-test", parcel["id"])
}

func TestHandleValidation(t *testing.T) {
	s := testServer(t, validSiteYAML)
	rec := doRequest(t, s, http.MethodGet, "/api/validation")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["valid"])
}

func TestHandleEnvelope(t *testing.T) {
	s := testServer(t, validSiteYAML)
	rec := doRequest(t, s, http.MethodGet, "/api/envelope")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Envelope struct {
			AreaSqFt float64 `json:"area_sq_ft"`
			Method   string  `json:"method"`
		} `json:"envelope"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Greater(t, body.Envelope.AreaSqFt, 0.0)
	assert.Less(t, body.Envelope.AreaSqFt, 90000.0)
	assert.Equal(t, "per_edge", body.Envelope.Method)
}

func TestHandleOptimize(t *testing.T) {
	s := testServer(t, validSiteYAML)
	rec := doRequest(t, s, http.MethodPost, "/api/optimize")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Plan struct {
			Metadata struct {
				Typology string  `json:"typology"`
				Score    float64 `json:"score"`
			} `json:"metadata"`
			Buildings []any `json:"buildings"`
		} `json:"plan"`
		Candidates []any `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Plan.Metadata.Typology)
	assert.NotEmpty(t, body.Plan.Buildings)
	assert.NotEmpty(t, body.Candidates)
	assert.GreaterOrEqual(t, body.Plan.Metadata.Score, 0.0)
}

func TestHandleCompliance(t *testing.T) {
	s := testServer(t, validSiteYAML)
	rec := doRequest(t, s, http.MethodPost, "/api/compliance")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Best       string `json:"best"`
		Compliance []struct {
			Typology   string  `json:"typology"`
			Score      float64 `json:"score"`
			Compliance struct {
				Score int `json:"score"`
			} `json:"compliance"`
		} `json:"compliance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Best)
	require.NotEmpty(t, body.Compliance)
	for _, e := range body.Compliance {
		assert.NotEmpty(t, e.Typology)
		assert.Zero(t, e.Compliance.Score%25, "typology %s", e.Typology)
	}
}

func TestHandleLayout(t *testing.T) {
	s := testServer(t, validSiteYAML)
	rec := doRequest(t, s, http.MethodPost, "/api/layout/single_family")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Layout struct {
			Typology string `json:"typology"`
		} `json:"layout"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "single_family", body.Layout.Typology)
}

func TestHandleLayoutUnknownTypology(t *testing.T) {
	s := testServer(t, validSiteYAML)
	rec := doRequest(t, s, http.MethodPost, "/api/layout/arcology")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidSpecRejected(t *testing.T) {
	s := testServer(t, invalidSiteYAML)

	cases := []struct{ method, path string }{
		{http.MethodGet, "/api/envelope"},
		{http.MethodPost, "/api/optimize"},
		{http.MethodPost, "/api/compliance"},
	}
	for _, tc := range cases {
		rec := doRequest(t, s, tc.method, tc.path)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, tc.path)
	}
}

func TestMissingProject(t *testing.T) {
	s := New(t.TempDir(), 0)
	rec := doRequest(t, s, http.MethodGet, "/api/spec")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
