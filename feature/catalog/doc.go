// Package catalog provides the field catalog: which Cargo table backs each
// item class and which columns each table declares.
//
// The resolver consults the catalog before building queries so it never asks
// the remote wiki for a column that does not exist. Validation fails open:
// a missing or stale mapping must degrade to "everything is valid" rather
// than blank every query.
//
// # Components
//
//   - Catalog: immutable table-to-fields mapping loaded from a JSON file,
//     plus the static class-to-table routing.
//   - Provider: holds the current Catalog behind an atomic pointer and
//     supports explicit reloads that swap in a fresh instance.
//   - Scraper: regenerates the mapping file from the wiki's
//     Special:CargoTables pages (run via 'poewikibot catalog update').
//
// # HTTP Endpoints
//
//   - GET /catalog : Lists tables in the current catalog with field counts.
//   - POST /catalog/reload : Reloads the mapping file from disk.
package catalog
