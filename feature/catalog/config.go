package catalog

// Config holds configuration for the field catalog.
type Config struct {
	// Path is the JSON mapping file produced by the catalog scraper.
	Path string `mapstructure:"path" default:"cargo_mapping.json"`
}
