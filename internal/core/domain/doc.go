// Package domain defines the core business entities for stackprobe.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Page: One crawled URL with its raw HTML or text content
//   - Signature: A named, categorised predicate over page content
//   - DetectedTechnology: A technology seen on one or more pages
//   - AggregationState: Per-session detection state, owned by the caller
//   - ViewParams / ViewSnapshot: Filtered and sorted reads of the state
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
