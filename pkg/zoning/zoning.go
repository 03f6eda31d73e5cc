package zoning

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a site spec from a YAML file.
func Load(path string) (*SiteSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading site spec: %w", err)
	}

	var s SiteSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing site spec YAML: %w", err)
	}

	return &s, nil
}

// LoadProject loads a site spec from a project directory. It looks for
// site.yaml in the given directory; if a parcel.geojson file is present and
// the spec declares no boundary, the parcel geometry is read from it.
func LoadProject(projectDir string) (*SiteSpec, error) {
	s, err := Load(filepath.Join(projectDir, "site.yaml"))
	if err != nil {
		return nil, err
	}

	if len(s.Parcel.Boundary) == 0 {
		gjPath := filepath.Join(projectDir, "parcel.geojson")
		if _, statErr := os.Stat(gjPath); statErr == nil {
			parcel, gjErr := LoadParcelGeoJSON(gjPath)
			if gjErr != nil {
				return nil, gjErr
			}
			parcel.ID = s.Parcel.ID
			s.Parcel = *parcel
		}
	}

	return s, nil
}
