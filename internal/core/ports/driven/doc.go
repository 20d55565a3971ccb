// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TreeParser: Converts raw XML bytes into an attribute-merged tree
//   - ReportExtractor: Maps raw bytes onto the normalised report
//   - ReportStore: Report persistence (SQLite, PostgreSQL or memory)
//   - ConfigStore: Application configuration
//
// A Redis read-through cache, when configured, is itself a ReportStore
// wrapping the selected backend.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
