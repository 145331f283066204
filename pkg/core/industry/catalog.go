// Package industry holds the static catalog of baseline valuation multiples
// and the fuzzy name matching used to resolve free-text industry labels.
package industry

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// FallbackKey is the entry every unresolved label resolves to.
const FallbackKey = "general_business"

// Volatility classifies how cyclical or unpredictable an industry's earnings are.
type Volatility string

const (
	VolatilityLow    Volatility = "low"
	VolatilityMedium Volatility = "medium"
	VolatilityHigh   Volatility = "high"
)

// MultipleRange is a low/mid/high band of valuation multiples.
type MultipleRange struct {
	Low  float64 `json:"low" yaml:"low"`
	Mid  float64 `json:"mid" yaml:"mid"`
	High float64 `json:"high" yaml:"high"`
}

// Ordered reports whether Low <= Mid <= High.
func (r MultipleRange) Ordered() bool {
	return r.Low <= r.Mid && r.Mid <= r.High
}

// MultipleData is one catalog record.
type MultipleData struct {
	IndustryKey       string        `json:"industryKey" yaml:"key"`
	IndustryName      string        `json:"industryName" yaml:"name"`
	NAICSCode         string        `json:"naicsCode,omitempty" yaml:"naics"`
	SDE               MultipleRange `json:"sde" yaml:"sde"`
	EBITDA            MultipleRange `json:"ebitda" yaml:"ebitda"`
	Revenue           MultipleRange `json:"revenue" yaml:"revenue"`
	TypicalOwnerHours int           `json:"typicalOwnerHours" yaml:"typical_owner_hours"`
	Volatility        Volatility    `json:"volatility" yaml:"volatility"`
}

// Alias maps a lowercase phrase to a canonical industry key.
type Alias struct {
	Text string `yaml:"text"`
	Key  string `yaml:"key"`
}

// Option is the metadata-only view used to populate industry pickers.
type Option struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// MatchKind records which rule resolved a lookup.
type MatchKind string

const (
	MatchKey       MatchKind = "key"
	MatchAlias     MatchKind = "alias"
	MatchSubstring MatchKind = "substring"
	MatchFallback  MatchKind = "fallback"
)

// Catalog is an immutable industry table. All accessors return copies.
type Catalog struct {
	entries map[string]MultipleData
	aliases []Alias
	exact   map[string]string
}

// NewCatalog validates entries and aliases and builds a catalog.
// Alias order is preserved: it decides substring-match precedence.
func NewCatalog(entries []MultipleData, aliases []Alias) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[string]MultipleData, len(entries)),
		aliases: make([]Alias, 0, len(aliases)),
		exact:   make(map[string]string, len(aliases)),
	}

	for _, e := range entries {
		if e.IndustryKey == "" {
			return nil, fmt.Errorf("industry entry %q has no key", e.IndustryName)
		}
		if _, dup := c.entries[e.IndustryKey]; dup {
			return nil, fmt.Errorf("duplicate industry key %q", e.IndustryKey)
		}
		if !e.SDE.Ordered() || !e.EBITDA.Ordered() || !e.Revenue.Ordered() {
			return nil, fmt.Errorf("industry %q: multiple bands must satisfy low <= mid <= high", e.IndustryKey)
		}
		c.entries[e.IndustryKey] = e
	}
	if _, ok := c.entries[FallbackKey]; !ok {
		return nil, fmt.Errorf("catalog is missing the %q fallback entry", FallbackKey)
	}

	for _, a := range aliases {
		text := normalize(a.Text)
		if text == "" {
			return nil, fmt.Errorf("alias for %q is empty", a.Key)
		}
		if _, ok := c.entries[a.Key]; !ok {
			return nil, fmt.Errorf("alias %q points at unknown industry %q", a.Text, a.Key)
		}
		c.aliases = append(c.aliases, Alias{Text: text, Key: a.Key})
		// first declaration wins for exact alias hits too
		if _, seen := c.exact[text]; !seen {
			c.exact[text] = a.Key
		}
	}
	return c, nil
}

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// Default returns the compiled-in catalog, built once per process.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := NewCatalog(builtinEntries(), builtinAliases())
		if err != nil {
			// the compiled-in table is covered by tests; a failure here is a programming error
			panic(fmt.Sprintf("industry: invalid builtin catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Lookup resolves a free-text label on the default catalog.
func Lookup(text string) MultipleData {
	return Default().Lookup(text)
}

// AllOptions lists the default catalog's industries sorted by name.
func AllOptions() []Option {
	return Default().Options()
}

// Lookup resolves text to an industry record. It never fails: unknown labels
// resolve to the general_business entry.
func (c *Catalog) Lookup(text string) MultipleData {
	data, _ := c.Resolve(text)
	return data
}

// Resolve is Lookup plus the rule that produced the match.
//
// Priority: canonical key, exact alias, substring alias (declared order,
// alias inside input or input inside alias), fallback.
func (c *Catalog) Resolve(text string) (MultipleData, MatchKind) {
	if e, ok := c.entries[text]; ok {
		return e, MatchKey
	}

	needle := normalize(text)
	if needle == "" {
		return c.entries[FallbackKey], MatchFallback
	}
	if e, ok := c.entries[needle]; ok {
		return e, MatchKey
	}
	if key, ok := c.exact[needle]; ok {
		return c.entries[key], MatchAlias
	}
	for _, a := range c.aliases {
		if strings.Contains(needle, a.Text) || strings.Contains(a.Text, needle) {
			return c.entries[a.Key], MatchSubstring
		}
	}
	return c.entries[FallbackKey], MatchFallback
}

// Get returns the entry stored under key.
func (c *Catalog) Get(key string) (MultipleData, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Len is the number of industries in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns every record sorted by key.
func (c *Catalog) Entries() []MultipleData {
	out := make([]MultipleData, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IndustryKey < out[j].IndustryKey })
	return out
}

// Aliases returns the alias table in precedence order.
func (c *Catalog) Aliases() []Alias {
	out := make([]Alias, len(c.aliases))
	copy(out, c.aliases)
	return out
}

// Options lists {key, name} pairs sorted by name, then key.
func (c *Catalog) Options() []Option {
	opts := make([]Option, 0, len(c.entries))
	for _, e := range c.entries {
		opts = append(opts, Option{Key: e.IndustryKey, Name: e.IndustryName})
	}
	sort.Slice(opts, func(i, j int) bool {
		if opts[i].Name != opts[j].Name {
			return opts[i].Name < opts[j].Name
		}
		return opts[i].Key < opts[j].Key
	})
	return opts
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
