// Package extractors turns raw bureau XML into the normalised report.
//
// The Engine parses bytes into a tree through a driven.TreeParser, detects
// which schema the tree carries and dispatches to exactly one format
// extractor:
//
//   - experian: the nested INProfileResponse schema
//   - generic: the legacy schema with several aliases per field
//
// Extraction is pure. Missing, malformed or differently shaped fields
// degrade to defaults; the only failure is domain.ErrMalformedDocument
// when the bytes are not XML at all.
package extractors
