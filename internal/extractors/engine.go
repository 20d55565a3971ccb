package extractors

import (
	"fmt"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bureau-cli/internal/extractors/experian"
	"github.com/custodia-labs/bureau-cli/internal/extractors/generic"
)

// Ensure Engine implements the interface.
var _ driven.ReportExtractor = (*Engine)(nil)

// Engine parses raw bureau XML and dispatches to the extractor for the
// detected schema. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	parser     driven.TreeParser
	extractors map[domain.ReportFormat]driven.FormatExtractor
}

// NewEngine creates an engine with the Experian and generic extractors.
func NewEngine(parser driven.TreeParser) *Engine {
	return NewEngineWith(parser, experian.New(), generic.New())
}

// NewEngineWith creates an engine with the given format extractors.
// A later extractor for the same format replaces an earlier one.
func NewEngineWith(parser driven.TreeParser, extractors ...driven.FormatExtractor) *Engine {
	byFormat := make(map[domain.ReportFormat]driven.FormatExtractor, len(extractors))
	for _, e := range extractors {
		byFormat[e.Format()] = e
	}
	return &Engine{
		parser:     parser,
		extractors: byFormat,
	}
}

// Extract parses data and returns the normalised report.
// Bytes that are not well-formed XML fail with domain.ErrMalformedDocument.
func (e *Engine) Extract(data []byte) (*domain.Report, error) {
	tree, err := e.parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return e.ExtractTree(tree)
}

// ExtractTree dispatches an already parsed tree.
func (e *Engine) ExtractTree(tree domain.Tree) (*domain.Report, error) {
	doc := Detect(tree)

	extractor, ok := e.extractors[doc.Format()]
	if !ok {
		return nil, fmt.Errorf("no extractor for %s documents: %w", doc.Format(), domain.ErrNotImplemented)
	}

	report := extractor.Extract(doc.Root())
	report.Format = doc.Format()
	return &report, nil
}
