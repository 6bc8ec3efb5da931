package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Catalog holds the table to field-list mapping scraped from the wiki.
// It is immutable after construction; Provider.Reload builds a fresh
// instance instead of mutating one in place.
type Catalog struct {
	fields map[string][]string
}

// Empty returns a catalog with no field data. Validation fails open on it.
func Empty() *Catalog {
	return &Catalog{fields: map[string][]string{}}
}

// Load reads the JSON mapping file produced by the scraper.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}

	fields := map[string][]string{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode mapping file: %w", err)
	}
	return &Catalog{fields: fields}, nil
}

// NormalizeField maps a field name to its canonical underscore spelling.
// Cargo accepts both spellings in queries; the mapping stores underscores.
func NormalizeField(field string) string {
	return strings.ReplaceAll(field, " ", "_")
}

// TableForClass returns the supplementary table for an item class.
func (c *Catalog) TableForClass(itemClass string) (string, bool) {
	table, ok := classTables[itemClass]
	return table, ok
}

// FieldsForTable returns all known columns of a table.
func (c *Catalog) FieldsForTable(table string) []string {
	return c.fields[table]
}

// ValidateField reports whether a column exists in a table. A catalog with
// no data at all validates everything: a stale or missing mapping must not
// break queries (fail open, never fail closed).
func (c *Catalog) ValidateField(table, field string) bool {
	if len(c.fields) == 0 {
		return true
	}

	normalized := NormalizeField(field)
	for _, f := range c.fields[table] {
		if f == normalized || f == field {
			return true
		}
	}
	return false
}

// Tables returns the table names present in the mapping, sorted.
func (c *Catalog) Tables() []string {
	tables := make([]string, 0, len(c.fields))
	for table := range c.fields {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}
