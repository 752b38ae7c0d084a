package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// catalogFile is the on-disk shape of the catalog configuration.
type catalogFile struct {
	Products []Product `koanf:"products" validate:"required,gt=0,dive"`
}

// Load reads the catalog from a YAML file and validates every product.
// The catalog is static configuration: a file that fails to load or
// validate is a startup error, not a runtime refusal.
func Load(path string) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error loading catalog file %s: %w", path, err)
	}

	var cf catalogFile
	if err := k.Unmarshal("", &cf); err != nil {
		return nil, fmt.Errorf("error unmarshalling catalog: %w", err)
	}

	if err := validate(cf); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	return New(cf.Products), nil
}

func validate(cf catalogFile) error {
	if err := validator.New().Struct(cf); err != nil {
		return err
	}
	seen := make(map[string]bool, len(cf.Products))
	for _, p := range cf.Products {
		if seen[p.ID] {
			return fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen[p.ID] = true
		if p.OriginalPrice != nil && *p.OriginalPrice <= p.Price {
			return fmt.Errorf("product %q: original price %d must exceed price %d", p.ID, *p.OriginalPrice, p.Price)
		}
	}
	return nil
}
