// Package catalog loads the declarative list of shortcut cases recorded by the driver.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"

	"github.com/slashymail/shortcut-acceptor/types"
)

//go:embed default.yaml
var defaultCatalog []byte

// Case is a single literal shortcut check with its hardcoded outcome
type Case struct {
	Shortcut    string           `yaml:"shortcut"`
	Description string           `yaml:"description"`
	Status      types.TestStatus `yaml:"status"`
	Notes       string           `yaml:"notes,omitempty"`

	// Category is filled from the enclosing category description on load
	Category string `yaml:"-"`
}

// CategoryConfig groups related cases
type CategoryConfig struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Cases       []Case `yaml:"cases"`
}

// Config is the on-disk catalog document
type Config struct {
	Application string           `yaml:"application,omitempty"`
	Categories  []CategoryConfig `yaml:"categories"`
}

// Catalog holds the validated, flattened case list in declaration order
type Catalog struct {
	application string
	categories  []CategoryConfig
	cases       []Case
}

// Options controls where the catalog is read from
type Options struct {
	Log  log.Logger
	Path string // empty selects the embedded default catalog
}

// Load reads and validates a catalog
func Load(opts Options) (*Catalog, error) {
	if opts.Log == nil {
		opts.Log = log.New()
	}

	data := defaultCatalog
	source := "embedded"
	if opts.Path != "" {
		var err error
		data, err = os.ReadFile(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog file: %w", err)
		}
		source = opts.Path
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", source, err)
	}
	opts.Log.Debug("Catalog loaded", "source", source, "categories", len(c.categories), "cases", len(c.cases))
	return c, nil
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes and validates a catalog document
func Parse(data []byte) (*Catalog, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	c := &Catalog{
		application: cfg.Application,
		categories:  cfg.Categories,
	}
	for _, category := range cfg.Categories {
		for _, tc := range category.Cases {
			tc.Category = category.Description
			if tc.Category == "" {
				tc.Category = category.ID
			}
			c.cases = append(c.cases, tc)
		}
	}
	return c, nil
}

func validate(cfg *Config) error {
	if len(cfg.Categories) == 0 {
		return errors.New("catalog has no categories")
	}

	seen := make(map[string]bool)
	total := 0
	for i, category := range cfg.Categories {
		if category.ID == "" {
			return fmt.Errorf("category at index %d has no id", i)
		}
		if seen[category.ID] {
			return fmt.Errorf("duplicate category id %q", category.ID)
		}
		seen[category.ID] = true

		for j, tc := range category.Cases {
			if tc.Shortcut == "" {
				return fmt.Errorf("category %s: case %d has no shortcut", category.ID, j)
			}
			if tc.Description == "" {
				return fmt.Errorf("category %s: case %q has no description", category.ID, tc.Shortcut)
			}
			if err := tc.Status.Validate(); err != nil {
				return fmt.Errorf("category %s: case %q: %w", category.ID, tc.Shortcut, err)
			}
		}
		total += len(category.Cases)
	}
	if total == 0 {
		return errors.New("catalog has no cases")
	}
	return nil
}

// Application returns the application name declared by the catalog, if any
func (c *Catalog) Application() string {
	return c.application
}

// Cases returns a copy of every case in declaration order
func (c *Catalog) Cases() []Case {
	out := make([]Case, len(c.cases))
	copy(out, c.cases)
	return out
}

// Categories returns the category descriptions in declaration order
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for _, category := range c.categories {
		name := category.Description
		if name == "" {
			name = category.ID
		}
		names = append(names, name)
	}
	return names
}

// Len returns the number of cases
func (c *Catalog) Len() int {
	return len(c.cases)
}
