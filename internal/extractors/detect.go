package extractors

import (
	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/extractors/experian"
	"github.com/custodia-labs/bureau-cli/internal/extractors/generic"
)

// Document is a parsed tree classified by schema.
// It is either an ExperianDocument or a GenericDocument.
type Document interface {
	// Format returns the detected schema.
	Format() domain.ReportFormat

	// Root returns the schema root handed to the format extractor.
	Root() any
}

// ExperianDocument carries the contents of the INProfileResponse wrapper.
type ExperianDocument struct {
	root any
}

// Format returns domain.FormatExperian.
func (d ExperianDocument) Format() domain.ReportFormat { return domain.FormatExperian }

// Root returns the wrapper contents.
func (d ExperianDocument) Root() any { return d.root }

// GenericDocument carries the generic schema root.
type GenericDocument struct {
	root any
}

// Format returns domain.FormatGeneric.
func (d GenericDocument) Format() domain.ReportFormat { return domain.FormatGeneric }

// Root returns the unwrapped root, or the whole tree when there is no wrapper.
func (d GenericDocument) Root() any { return d.root }

// Detect classifies a tree. It never fails: any tree that is not Experian
// is generic, including an empty one.
func Detect(tree domain.Tree) Document {
	if root, ok := tree[experian.RootKey]; ok {
		return ExperianDocument{root: root}
	}
	if wrapped, ok := tree[generic.WrapperKey].(map[string]any); ok {
		return GenericDocument{root: wrapped}
	}
	if tree == nil {
		return GenericDocument{root: domain.Tree{}}
	}
	return GenericDocument{root: tree}
}
