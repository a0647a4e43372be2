package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Project is the on-disk description of a checking problem: the
// lattices and filters to declare, the many-lattice wiring them
// together, a Kripke model over it, and optionally named formulas.
type Project struct {
	Lattices    []latticeConfig   `yaml:"lattices"`
	Filters     []filterConfig    `yaml:"filters"`
	ManyLattice manyLatticeConfig `yaml:"many_lattice"`
	Model       modelConfig       `yaml:"model"`
	Formulas    []formulaConfig   `yaml:"formulas"`
}

type latticeConfig struct {
	Name     string            `yaml:"name"`
	Elements []string          `yaml:"elements"`
	Order    [][2]string       `yaml:"order"`
	Negation map[string]string `yaml:"negation"`
	// Residuum entries are [a, b, a→b] triples; a YAML mapping cannot
	// be keyed by a pair.
	Residuum [][3]string `yaml:"residuum"`
	Heyting  bool        `yaml:"heyting"`
}

type filterConfig struct {
	Name     string   `yaml:"name"`
	Lattice  string   `yaml:"lattice"`
	Elements []string `yaml:"elements"`
}

type componentConfig struct {
	Lattice string `yaml:"lattice"`
	Filter  string `yaml:"filter"`
}

type manyLatticeConfig struct {
	Components []componentConfig `yaml:"components"`
	Base       *componentConfig  `yaml:"base"`
}

type worldConfig struct {
	ID        string            `yaml:"id"`
	Component int               `yaml:"component"`
	Assign    map[string]string `yaml:"assign"`
}

type modelConfig struct {
	Name    string        `yaml:"name"`
	Props   []string      `yaml:"props"`
	Worlds  []worldConfig `yaml:"worlds"`
	Edges   [][2]string   `yaml:"edges"`
	Initial string        `yaml:"initial"`
}

type formulaConfig struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

// LoadProject reads and decodes a project file. Unknown keys are
// rejected so a misspelled field fails loudly instead of being
// silently dropped.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	proj := &Project{}
	if err := dec.Decode(proj); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return proj, nil
}
