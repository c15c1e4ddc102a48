package sharing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogAllows(t *testing.T) {
	catalog := DefaultCatalog()

	if !catalog.Allows("vegetables", "food") {
		t.Fatal("vegetables should be a food category")
	}
	if catalog.Allows("vegetables", "non-food") {
		t.Fatal("vegetables must not pass as non-food")
	}
	if catalog.Allows("spaceships", "non-food") {
		t.Fatal("unknown category must not pass")
	}
	if !catalog.Allows(" Clothing ", "Non-Food") {
		t.Fatal("category matching should ignore case and whitespace")
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	content := `version = 1

[[categories]]
name = "seeds"
item_type = "food"

[[categories]]
name = "bicycles"
item_type = "non-food"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if !catalog.Allows("seeds", "food") {
		t.Fatal("seeds should be allowed as food")
	}
	if catalog.Allows("vegetables", "food") {
		t.Fatal("file catalog must replace the default, not extend it")
	}
}

func TestLoadCatalogEmptyPathYieldsDefault(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if !catalog.Allows("grains", "food") {
		t.Fatal("empty path should fall back to the default catalog")
	}
}

func TestLoadCatalogRejectsBadFiles(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"wrong version", "version = 9\n[[categories]]\nname = \"x\"\nitem_type = \"food\"\n"},
		{"no categories", "version = 1\n"},
		{"bad item type", "version = 1\n[[categories]]\nname = \"x\"\nitem_type = \"gadgets\"\n"},
		{"missing name", "version = 1\n[[categories]]\nname = \"\"\nitem_type = \"food\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write catalog: %v", err)
			}
			if _, err := LoadCatalog(path); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}
