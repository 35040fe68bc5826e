package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/orgresolve/internal/model"
)

// SeedFile is the on-disk seed list format:
//
//	companies:
//	  - 东京电子(上海)有限公司
//	  - name: 华为技术有限公司
//	    attributes:
//	      legal_representative: 徐直军
type SeedFile struct {
	Companies []seedEntry `yaml:"companies"`
}

type seedEntry struct {
	model.CatalogEntry
}

// UnmarshalYAML accepts either a bare name or a full entry mapping
func (s *seedEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.CatalogEntry = model.NewEntry(value.Value, model.OriginSeed)
		return nil
	}

	var e model.CatalogEntry
	if err := value.Decode(&e); err != nil {
		return err
	}
	if e.Origin == "" {
		e.Origin = model.OriginSeed
	}
	s.CatalogEntry = e
	return nil
}

// ParseSeed decodes a YAML seed list
func ParseSeed(data []byte) ([]model.CatalogEntry, error) {
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	entries := make([]model.CatalogEntry, 0, len(f.Companies))
	for i, c := range f.Companies {
		if c.Name == "" {
			return nil, fmt.Errorf("parse seed: companies[%d] has no name", i)
		}
		entries = append(entries, c.CatalogEntry)
	}
	return entries, nil
}

// LoadSeedFile reads and decodes a YAML seed list from path
func LoadSeedFile(path string) ([]model.CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}
