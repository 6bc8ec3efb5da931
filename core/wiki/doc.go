// Package wiki provides the HTTP client for the remote wiki's query APIs.
//
// Two read-only surfaces are wrapped:
//
//   - cargoquery: the structured-table query mechanism (tables, fields,
//     where, order by, limit). Results arrive as a list of "title" objects
//     whose keys may spell field names with spaces instead of underscores;
//     Row.Get absorbs that divergence so callers never retry spellings.
//   - imageinfo: resolves File: page titles to direct image URLs, batched up
//     to MaxTitlesPerCall titles per request.
//
// # Error Model
//
// Transport failures, non-2xx statuses and undecodable bodies surface as
// ordinary errors. A 2xx response carrying an error envelope becomes an
// *APIError: consumers treat it as an empty result, and IsAPIError lets the
// batched supplementary path distinguish "rejected" from "empty".
//
// # Usage
//
//	client := wiki.NewClient(cfg.Wiki, logg)
//	rows, err := client.CargoQuery(ctx, wiki.CargoQuery{
//	    Tables: "items",
//	    Fields: "name,rarity,class",
//	    Where:  "name LIKE '%Starforge%'",
//	    Limit:  10,
//	})
package wiki
