// Package items resolves game items from the remote wiki's normalized
// Cargo tables into enriched records.
//
// Resolution is a sequence of dependent, individually guarded remote calls:
// a substring search produces bare records, then per-item enrichment fills
// mod text (item table column first, normalized mod tables as fallback),
// metadata (level, flavour, description) and the supplementary base stats of
// the item's class table. A failed step logs and leaves its fields absent;
// only the top-level search can fail hard.
//
// # Mod resolution
//
// The fallback path joins three tables: item_mods (which mods the item has
// and whether each is implicit or explicit), mods (the display template,
// hidden templates skipped) and item_stats (numeric min/max/avg observations
// substituted into the template's range placeholders).
//
// # HTTP Endpoints
//
//   - GET /items/search?q=&limit=&detailed=&mods= : Search for items.
//   - GET /items/:name?mods= : Fully resolved single item, 404 when absent.
package items
