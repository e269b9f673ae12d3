package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProfileSchema is the top-level structure of a profile import file.
type ProfileSchema struct {
	Profile      ProfileImport      `json:"profile" yaml:"profile"`
	Assessments  []AssessmentImport `json:"assessments" yaml:"assessments"`
	Dependencies []DependencyImport `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

type ProfileImport struct {
	Name     string `json:"name" yaml:"name"`
	Kind     string `json:"kind" yaml:"kind"`
	OrgName  string `json:"org_name,omitempty" yaml:"org_name,omitempty"`
	Industry string `json:"industry,omitempty" yaml:"industry,omitempty"`
	Size     string `json:"size,omitempty" yaml:"size,omitempty"`
}

// AssessmentImport records one subcategory. Level accepts either the
// snake_case form or the spreadsheet label ("Largely Implemented").
type AssessmentImport struct {
	SubcategoryID   string `json:"subcategory_id" yaml:"subcategory_id"`
	Level           string `json:"implementation_level" yaml:"implementation_level"`
	MaturityScore   *int   `json:"maturity_score,omitempty" yaml:"maturity_score,omitempty"`
	ConfidenceLevel string `json:"confidence_level,omitempty" yaml:"confidence_level,omitempty"`
	Notes           string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type DependencyImport struct {
	SubcategoryID string `json:"subcategory_id" yaml:"subcategory_id"`
	DependsOn     string `json:"depends_on" yaml:"depends_on"`
	Strength      int    `json:"strength" yaml:"strength"`
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the decoder from the file extension; anything that is not
// .yaml or .yml is treated as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadProfileSchema reads and parses a profile import file.
func LoadProfileSchema(path string) (*ProfileSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseProfileSchema(data, FormatOf(path))
}

func ParseProfileSchema(data []byte, format Format) (*ProfileSchema, error) {
	var schema ProfileSchema
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	}
	return &schema, nil
}
