// Package loader wires features into the running application.
//
// A feature is a self-contained module (items, catalog, health) that owns
// its routes and dependencies. Features implement:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager collects registered features and loads the enabled ones in
// registration order. Disabled features are skipped with a log line rather
// than treated as an error, so a deployment can switch modules off through
// configuration alone.
package loader
