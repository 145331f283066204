package industry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// OverrideFile is the YAML layout accepted by LoadOverrides:
//
//	industries:
//	  - key: hvac
//	    name: HVAC Services
//	    sde: {low: 2.6, mid: 3.1, high: 4.2}
//	    ...
//	aliases:
//	  - text: mini split
//	    key: hvac
type OverrideFile struct {
	Industries []MultipleData `yaml:"industries"`
	Aliases    []Alias        `yaml:"aliases"`
}

// LoadOverrides reads a YAML override file and returns a new catalog built
// from the default table plus the overrides. The default catalog is not touched.
func LoadOverrides(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog overrides %s: %w", path, err)
	}
	return ParseOverrides(data)
}

// ParseOverrides is LoadOverrides on an in-memory document.
func ParseOverrides(data []byte) (*Catalog, error) {
	var file OverrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog overrides: %w", err)
	}
	return Default().With(file.Industries, file.Aliases)
}

// With returns a new catalog where entries replace (by key) or extend the
// receiver's table. Extra aliases take precedence over existing ones.
func (c *Catalog) With(entries []MultipleData, aliases []Alias) (*Catalog, error) {
	merged := c.Entries()
	index := make(map[string]int, len(merged))
	for i, e := range merged {
		index[e.IndustryKey] = i
	}
	for _, e := range entries {
		if e.Volatility == "" {
			e.Volatility = VolatilityMedium
		}
		if i, ok := index[e.IndustryKey]; ok {
			merged[i] = e
			continue
		}
		index[e.IndustryKey] = len(merged)
		merged = append(merged, e)
	}

	allAliases := make([]Alias, 0, len(aliases)+len(c.aliases))
	allAliases = append(allAliases, aliases...)
	allAliases = append(allAliases, c.aliases...)

	return NewCatalog(merged, allAliases)
}
