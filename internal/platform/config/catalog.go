package config

import (
	"fmt"
	"strings"
)

// CatalogConfig controls the initial content of the in-memory catalog.
type CatalogConfig struct {
	Seed bool `koanf:"seed"`
}

// String returns a string representation of the catalog configuration.
func (c *CatalogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  seed: %t\n", c.Seed))
	return b.String()
}

func (c *CatalogConfig) Validate() error {
	return nil
}
