package req

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// manifest is the YAML structure of a requirement manifest.
type manifest struct {
	Requirement string            `yaml:"requirement"`
	Fields      []FieldEntry      `yaml:"fields"`
	Constraints []ConstraintEntry `yaml:"constraints"`
}

// Parse builds a registry from a YAML manifest.
func Parse(data []byte) (*Registry, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing requirement manifest: %w", err)
	}
	if m.Requirement == "" {
		return nil, fmt.Errorf("%w: manifest has no requirement name", ErrInvalidEntry)
	}
	return New(m.Requirement, m.Fields, m.Constraints)
}

// MustParse is like Parse but panics on error.
// Use only for manifests embedded at build time.
func MustParse(data []byte) *Registry {
	r, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return r
}
