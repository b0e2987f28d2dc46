package tables

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// tablesFile is the recognized override filename inside the scoring
// config directory.
const tablesFile = "scoring_tables.yaml"

// Load returns the scoring tables, applying YAML overrides from dir
// when present. An empty dir returns the compiled-in defaults. Sections
// absent from the override file keep their default values, so operators
// can ship a file containing only the tables they changed.
func Load(dir string) (*Tables, error) {
	t := Default()
	if dir == "" {
		return t, t.Validate()
	}

	path := filepath.Join(dir, tablesFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return t, t.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("read scoring tables: %w", err)
	}

	var override Tables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse %s: %w", tablesFile, err)
	}
	t.merge(&override)

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring tables in %s: %w", path, err)
	}
	return t, nil
}

// merge overrides any section the file actually provided.
func (t *Tables) merge(o *Tables) {
	if len(o.V5ByIndustry) > 0 {
		for ind, w := range o.V5ByIndustry {
			t.V5ByIndustry[ind] = w
		}
	}
	if o.V5Neutral.Sum() > 0 {
		t.V5Neutral = o.V5Neutral
	}
	if o.DefaultFeatures.Sum() > 0 {
		t.DefaultFeatures = o.DefaultFeatures
	}
	if o.V4.Sum() > 0 {
		t.V4 = o.V4
	}
	if len(o.PersonasByIndustry) > 0 {
		for ind, p := range o.PersonasByIndustry {
			t.PersonasByIndustry[ind] = p
		}
	}
	if len(o.GenericPersonas) > 0 {
		t.GenericPersonas = o.GenericPersonas
	}
	if len(o.CTAsByIndustry) > 0 {
		for ind, c := range o.CTAsByIndustry {
			t.CTAsByIndustry[ind] = c
		}
	}
	if len(o.GenericCTAs) > 0 {
		t.GenericCTAs = o.GenericCTAs
	}
	if len(o.Emotions) > 0 {
		t.Emotions = o.Emotions
	}
	if len(o.RiskFamilies) > 0 {
		t.RiskFamilies = o.RiskFamilies
	}
	if len(o.Keywords.Pain) > 0 || len(o.Keywords.Opportunity) > 0 || len(o.Keywords.Price) > 0 {
		t.Keywords = o.Keywords
	}
	if len(o.CuratedPatterns) > 0 {
		t.CuratedPatterns = o.CuratedPatterns
	}
}
