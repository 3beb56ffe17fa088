// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/edustream/pkg/types"
)

//go:embed seed.yaml
var defaultSeed []byte

// Categories is the fixed list offered for browsing. Course.Category is not
// constrained to it.
var Categories = []string{
	"Data Science",
	"Business",
	"Computer Science",
	"Personal Development",
	"Language Learning",
	"Arts and Humanities",
}

// LoadSeed returns the seed catalog. An empty path selects the built-in
// catalog; otherwise the YAML file at path is read.
func LoadSeed(path string) ([]types.Course, error) {
	data := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading seed catalog %s: %w", path, err)
		}
		data = b
	}
	return parseSeed(data)
}

func parseSeed(data []byte) ([]types.Course, error) {
	var courses []types.Course
	if err := yaml.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("parsing seed catalog: %w", err)
	}
	for i, c := range courses {
		if c.ID == "" {
			return nil, fmt.Errorf("seed course %d: missing id", i)
		}
		if !c.Level.Valid() {
			return nil, fmt.Errorf("seed course %s: invalid level %q", c.ID, c.Level)
		}
		if c.Rating < 0 || c.Rating > types.MaxRating {
			return nil, fmt.Errorf("seed course %s: rating %.1f out of range [0,%.0f]", c.ID, c.Rating, types.MaxRating)
		}
		if c.Modules == nil {
			courses[i].Modules = []types.Module{}
		}
	}
	return courses, nil
}
