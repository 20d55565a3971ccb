// Package domain defines the core business entities for Bureau.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Report: The normalised record extracted from a bureau document
//   - CreditAccount: One credit facility reported by the bureau
//   - Upload: Raw document bytes handed to the ingest pipeline
//   - Tree: The attribute-merged XML tree extractors read from
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
