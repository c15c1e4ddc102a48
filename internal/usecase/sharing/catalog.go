package sharing

import (
	"errors"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type catalogCategoryConfig struct {
	Name     string `toml:"name"`
	ItemType string `toml:"item_type"`
}

type catalogFile struct {
	Version    int                     `toml:"version"`
	Categories []catalogCategoryConfig `toml:"categories"`
}

// Catalog maps listing categories to the item type they belong to. Sharing
// a "vegetables" listing as non-food is a data entry mistake the catalog
// catches before the item is stored.
type Catalog struct {
	categories map[string]string
}

// DefaultCatalog covers the categories the app ships with. Deployments with
// their own taxonomy replace it via a catalog file.
func DefaultCatalog() Catalog {
	return newCatalog(map[string]string{
		"vegetables":    "food",
		"fruits":        "food",
		"grains":        "food",
		"cooked-meals":  "food",
		"dairy":         "food",
		"clothing":      "non-food",
		"furniture":     "non-food",
		"tools":         "non-food",
		"books":         "non-food",
		"electronics":   "non-food",
		"baby-supplies": "non-food",
	})
}

func newCatalog(categories map[string]string) Catalog {
	normalized := make(map[string]string, len(categories))
	for name, itemType := range categories {
		normalized[strings.ToLower(strings.TrimSpace(name))] = strings.ToLower(strings.TrimSpace(itemType))
	}
	return Catalog{categories: normalized}
}

// Allows reports whether the category exists and is registered under the
// given item type.
func (c Catalog) Allows(category string, itemType string) bool {
	registered, ok := c.categories[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return false
	}
	return registered == strings.ToLower(strings.TrimSpace(itemType))
}

// Categories returns the known category names for the given item type.
func (c Catalog) Categories(itemType string) []string {
	normalized := strings.ToLower(strings.TrimSpace(itemType))
	names := make([]string, 0, len(c.categories))
	for name, registered := range c.categories {
		if registered == normalized {
			names = append(names, name)
		}
	}
	return names
}

// LoadCatalog reads a catalog definition from a TOML file. An empty path
// yields the built-in default.
func LoadCatalog(path string) (Catalog, error) {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		return DefaultCatalog(), nil
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return Catalog{}, err
	}

	var file catalogFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return Catalog{}, err
	}
	if err := validateCatalogFile(file); err != nil {
		return Catalog{}, err
	}

	categories := make(map[string]string, len(file.Categories))
	for _, entry := range file.Categories {
		categories[entry.Name] = entry.ItemType
	}
	return newCatalog(categories), nil
}

func validateCatalogFile(file catalogFile) error {
	if file.Version != 1 {
		return errors.New("unsupported catalog version: expected version = 1")
	}
	if len(file.Categories) == 0 {
		return errors.New("catalog must define at least one category")
	}
	for _, entry := range file.Categories {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return errors.New("catalog category name is required")
		}
		itemType := strings.ToLower(strings.TrimSpace(entry.ItemType))
		if itemType != "food" && itemType != "non-food" {
			return errors.New("categories." + name + ".item_type must be food or non-food")
		}
	}
	return nil
}
