package audio

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Patch is a set of normalized control values, keyed like "osc.1.shape".
type Patch struct {
	Name     string             `yaml:"name"`
	Controls map[string]float64 `yaml:"controls"`
}

// ParsePatch decodes a YAML patch.
func ParsePatch(data []byte) (*Patch, error) {
	var p Patch
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse patch: %w", err)
	}
	return &p, nil
}

// LoadPatch reads a patch file and applies it.
func (a *Audio) LoadPatch(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	p, err := ParsePatch(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return a.ApplyPatch(p)
}

// ApplyPatch applies every control of p in key order. Controls that fail
// are skipped and reported together.
func (a *Audio) ApplyPatch(p *Patch) error {
	keys := make([]string, 0, len(p.Controls))
	for k := range p.Controls {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var errs []error
	for _, k := range keys {
		key, err := ParseControlKey(k)
		if err == nil {
			err = a.setControl(key, p.Controls[k])
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
		}
	}
	if p.Name != "" {
		log.Printf("loaded patch %q (%d controls)", p.Name, len(keys)-len(errs))
	}
	return errors.Join(errs...)
}
