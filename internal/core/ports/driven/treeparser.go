package driven

import "github.com/custodia-labs/bureau-cli/internal/core/domain"

// TreeParser converts raw XML bytes into a domain.Tree.
//
// Elements become mappings keyed by tag name, attributes are merged into the
// same mapping, and repeated siblings become sequences. Bytes that are not
// well-formed XML fail with an error wrapping domain.ErrMalformedDocument.
type TreeParser interface {
	Parse(data []byte) (domain.Tree, error)
}
