// Package health checks the bot's external dependencies.
//
// The resolver degrades quietly when the wiki misbehaves or the field
// catalog is missing, so a deployment can look alive while every lookup
// comes back hollow. These checks make that state visible.
//
// # Checks Provided
//
//   - Wiki: probes the remote query API with a minimal cargoquery call and
//     reports reachability and latency.
//   - Catalog: reports how many tables the loaded mapping covers, which
//     resolver tables are missing, and whether field validation is running
//     fail-open because no mapping is loaded.
//
// # HTTP Endpoints
//
//   - GET /health : Runs all checks and returns a combined report.
//   - GET /health/wiki : Runs the wiki probe only.
//   - GET /health/catalog : Reports the catalog state only.
//
// The same checks back the 'poewikibot health' command.
package health
