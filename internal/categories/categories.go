// Package categories holds the built-in category table shipped with the binary.
package categories

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/GregMSThompson/budget-backend/internal/models"
)

//go:embed defaults.toml
var defaultsTOML []byte

type entry struct {
	Name  string `toml:"name"`
	Icon  string `toml:"icon"`
	Color string `toml:"color"`
	Type  string `toml:"type"`
}

type file struct {
	Category []entry `toml:"category"`
}

// Table is a read-only set of categories keyed by name.
type Table struct {
	ordered []models.Category
	byName  map[string]models.Category
}

// Parse builds a Table from TOML with one [[category]] block per entry.
func Parse(data []byte) (*Table, error) {
	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("decode category table: %w", err)
	}
	t := &Table{byName: make(map[string]models.Category, len(f.Category))}
	for _, e := range f.Category {
		typ := models.TransactionType(e.Type)
		if e.Name == "" || !typ.Valid() {
			return nil, fmt.Errorf("invalid category entry %q (type %q)", e.Name, e.Type)
		}
		if _, dup := t.byName[e.Name]; dup {
			return nil, fmt.Errorf("duplicate category %q", e.Name)
		}
		c := models.Category{
			UserID: models.DefaultScope,
			Name:   e.Name,
			Icon:   e.Icon,
			Color:  e.Color,
			Type:   typ,
		}
		t.ordered = append(t.ordered, c)
		t.byName[e.Name] = c
	}
	return t, nil
}

// All returns the categories in file order.
func (t *Table) All() []models.Category {
	return append([]models.Category(nil), t.ordered...)
}

func (t *Table) Lookup(name string) (models.Category, bool) {
	c, ok := t.byName[name]
	return c, ok
}

var (
	defaultsOnce  sync.Once
	defaultsTable *Table
)

// Defaults returns the embedded table. The file is checked by the package tests, so a parse
// failure here is a build defect.
func Defaults() *Table {
	defaultsOnce.Do(func() {
		t, err := Parse(defaultsTOML)
		if err != nil {
			panic(err)
		}
		defaultsTable = t
	})
	return defaultsTable
}
