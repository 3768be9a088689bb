// Package catalog loads the symptom columns and the diseases they indicate.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Disease struct {
	Name     string   `yaml:"name"`
	Symptoms []string `yaml:"symptoms"`
}

// Catalog lists symptom columns in feature-vector order.
type Catalog struct {
	Symptoms []string  `yaml:"symptoms"`
	Diseases []Disease `yaml:"diseases"`

	index map[string]int
}

// Load reads the catalog at path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	raw := defaultCatalog
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read disease catalog: %w", err)
		}
		raw = data
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML catalog.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode disease catalog: %w", err)
	}
	if err := c.build(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) build() error {
	if len(c.Symptoms) == 0 {
		return errors.New("disease catalog has no symptoms")
	}
	if len(c.Diseases) == 0 {
		return errors.New("disease catalog has no diseases")
	}

	c.index = make(map[string]int, len(c.Symptoms))
	for i, symptom := range c.Symptoms {
		symptom = strings.TrimSpace(symptom)
		if symptom == "" {
			return fmt.Errorf("disease catalog: empty symptom at column %d", i)
		}
		if _, dup := c.index[symptom]; dup {
			return fmt.Errorf("disease catalog: duplicate symptom %q", symptom)
		}
		c.Symptoms[i] = symptom
		c.index[symptom] = i
	}

	for _, d := range c.Diseases {
		if strings.TrimSpace(d.Name) == "" {
			return errors.New("disease catalog: disease without a name")
		}
		if len(d.Symptoms) == 0 {
			return fmt.Errorf("disease catalog: %s has no symptoms", d.Name)
		}
		for _, symptom := range d.Symptoms {
			if _, ok := c.index[symptom]; !ok {
				return fmt.Errorf("disease catalog: %s lists unknown symptom %q", d.Name, symptom)
			}
		}
	}
	return nil
}

// Column returns the vector position of symptom.
func (c *Catalog) Column(symptom string) (int, bool) {
	i, ok := c.index[symptom]
	return i, ok
}
