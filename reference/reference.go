package reference

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hotel-catalog/models"
)

// Option is one entry of a filter dropdown.
type Option struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// Data is the static reference data behind the category and specialist filters.
type Data struct {
	Categories  []Option `yaml:"categories"`
	Specialists []Option `yaml:"specialists"`
}

// Verify checks that every option has an id and a known kind, once per list.
func (d *Data) Verify() error {
	seen := make(map[string]struct{})
	for _, list := range [][]Option{d.Categories, d.Specialists} {
		for _, o := range list {
			if o.ID == "" {
				return fmt.Errorf("reference: option %q has no id", o.Name)
			}
			if o.Kind != "" {
				if _, err := models.ParseKind(o.Kind); err != nil {
					return fmt.Errorf("reference: option %q: %w", o.ID, err)
				}
			}
			key := o.Kind + "/" + o.ID
			if _, dup := seen[key]; dup {
				return fmt.Errorf("reference: duplicate option %q", key)
			}
			seen[key] = struct{}{}
		}
		seen = make(map[string]struct{})
	}
	return nil
}

// Load reads and verifies the reference data file at path.
func Load(path string) (*Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	return Parse(b)
}

// Parse decodes and verifies reference data.
func Parse(b []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("reference: decode: %w", err)
	}
	if err := d.Verify(); err != nil {
		return nil, err
	}
	return &d, nil
}

// CategoriesFor returns the categories offered on the page of kind. Options
// without a kind are shared by every page.
func (d *Data) CategoriesFor(kind models.Kind) []Option {
	return forKind(d.Categories, kind)
}

// SpecialistsFor returns the specialists offered on the page of kind.
func (d *Data) SpecialistsFor(kind models.Kind) []Option {
	return forKind(d.Specialists, kind)
}

func forKind(opts []Option, kind models.Kind) []Option {
	var out []Option
	for _, o := range opts {
		if o.Kind == "" {
			out = append(out, o)
			continue
		}
		if k, err := models.ParseKind(o.Kind); err == nil && k == kind {
			out = append(out, o)
		}
	}
	return out
}
