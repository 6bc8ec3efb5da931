// Package utils provides common utility functions for the wiki bot.
// It includes helper functions for loose type conversion of Cargo response
// values and for batching slices, shared logic that doesn't fit into
// domain-specific packages.
package utils
