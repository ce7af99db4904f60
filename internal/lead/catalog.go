package lead

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Option is a value/label pair for single-choice fields.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Practice groups the software systems offered for a practice type.
type Practice struct {
	Value    string   `yaml:"value"`
	Label    string   `yaml:"label"`
	Software []string `yaml:"software"`
}

// Catalog lists every choice the lead form accepts.
type Catalog struct {
	Others     string     `yaml:"others"`
	Positions  []string   `yaml:"positions"`
	Experience []Option   `yaml:"experience"`
	Practices  []Practice `yaml:"practices"`
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := ParseCatalog(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("lead: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// ParseCatalog decodes and checks a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("lead: parse catalog: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) check() error {
	if len(c.Positions) == 0 {
		return errors.New("lead: catalog has no positions")
	}
	if len(c.Experience) == 0 {
		return errors.New("lead: catalog has no experience tiers")
	}
	if len(c.Practices) == 0 {
		return errors.New("lead: catalog has no practice types")
	}
	if c.Others == "" {
		return errors.New("lead: catalog has no others label")
	}
	seen := make(map[string]struct{}, len(c.Practices))
	for _, p := range c.Practices {
		if p.Value == "" {
			return errors.New("lead: practice without value")
		}
		if _, dup := seen[p.Value]; dup {
			return fmt.Errorf("lead: duplicate practice %q", p.Value)
		}
		seen[p.Value] = struct{}{}
		if !slices.Contains(p.Software, c.Others) {
			return fmt.Errorf("lead: practice %q does not offer %q", p.Value, c.Others)
		}
	}
	return nil
}

// DefaultPractice is the practice type a fresh form starts with.
func (c *Catalog) DefaultPractice() string {
	return c.Practices[0].Value
}

// HasPosition reports whether label is an offered position.
func (c *Catalog) HasPosition(label string) bool {
	return slices.Contains(c.Positions, label)
}

// ExperienceLabel returns the display label for an experience tier value.
func (c *Catalog) ExperienceLabel(value string) (string, bool) {
	for _, opt := range c.Experience {
		if opt.Value == value {
			return opt.Label, true
		}
	}
	return "", false
}

// HasPractice reports whether value names a practice type.
func (c *Catalog) HasPractice(value string) bool {
	_, ok := c.practice(value)
	return ok
}

// PracticeOptions lists practice types as options.
func (c *Catalog) PracticeOptions() []Option {
	out := make([]Option, 0, len(c.Practices))
	for _, p := range c.Practices {
		out = append(out, Option{Value: p.Value, Label: p.Label})
	}
	return out
}

// Software returns the software systems offered for a practice type.
func (c *Catalog) Software(practice string) []string {
	p, ok := c.practice(practice)
	if !ok {
		return nil
	}
	return p.Software
}

// HasSoftware reports whether label is offered for the practice type.
func (c *Catalog) HasSoftware(practice, label string) bool {
	return slices.Contains(c.Software(practice), label)
}

func (c *Catalog) practice(value string) (Practice, bool) {
	for _, p := range c.Practices {
		if p.Value == value {
			return p, true
		}
	}
	return Practice{}, false
}
