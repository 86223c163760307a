package reconcile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/geocons/internal/geometry"
)

// targetYAML is one entry of a targets file. The bounding box is given
// either as numbers or as the application's "min: (..) max: (..)" text.
type targetYAML struct {
	Name        string        `yaml:"name"`
	Area        float64       `yaml:"area"`
	Box         *geometry.Box `yaml:"bbox,omitempty"`
	BoundingBox string        `yaml:"bounding_box,omitempty"`
}

type targetsFile struct {
	Targets []targetYAML `yaml:"targets"`
}

// LoadTargets reads match targets from a YAML file:
//
//	targets:
//	  - name: Soil_1_1
//	    area: 40
//	    bounding_box: "min: (0; -8; 0) max: (10; -4; 0)"
//	  - name: Soil_2_1
//	    area: 40
//	    bbox: {xmin: 0, ymin: -4, xmax: 10, ymax: 0}
func LoadTargets(path string) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read targets: %w", err)
	}
	return ParseTargets(data)
}

// ParseTargets decodes a YAML targets document.
func ParseTargets(data []byte) ([]Target, error) {
	var doc targetsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse targets: %w", err)
	}

	targets := make([]Target, 0, len(doc.Targets))
	for i, ty := range doc.Targets {
		t := Target{Name: ty.Name, Area: ty.Area}
		switch {
		case ty.Box != nil:
			t.Box = *ty.Box
		case ty.BoundingBox != "":
			box, err := geometry.ParseBoundingBox(ty.BoundingBox)
			if err != nil {
				return nil, fmt.Errorf("target %d (%s): %w", i+1, ty.Name, err)
			}
			t.Box = box
		default:
			return nil, fmt.Errorf("target %d (%s): bbox or bounding_box is required", i+1, ty.Name)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("target %d: %w", i+1, err)
		}
		targets = append(targets, t)
	}
	return targets, nil
}
