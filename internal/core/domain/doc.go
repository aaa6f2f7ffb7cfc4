// Package domain defines the core business entities for Handout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Group: A named set of recipients who receive one shared duplicate
//   - Roster: The ordered collection of groups parsed from tabular input
//   - DuplicateRequest: One run's immutable duplication parameters
//   - RunSummary: The per-group outcomes accumulated over a run
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
