// Package xmltree converts XML documents into domain.Tree values using etree.
package xmltree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.TreeParser = (*Parser)(nil)

// Parser builds trees from XML bytes.
//
// Conversion rules:
//   - an element with only character data becomes its text
//   - an element with attributes or child elements becomes a mapping;
//     attributes are merged in as keys and non-blank text is kept under
//     domain.TextKey
//   - repeated keys within one element become a sequence in document order
//   - comments, processing instructions and directives are ignored
//
// A leading UTF-8 byte order mark is skipped and documents declaring a
// non-UTF-8 encoding are decoded before parsing.
type Parser struct {
	settings etree.ReadSettings
}

// New creates a new XML tree parser.
func New() *Parser {
	return &Parser{settings: etree.ReadSettings{
		ValidateInput: true,
		CharsetReader: charsetReader,
	}}
}

var utf8BOM = []byte("\xef\xbb\xbf")

// Parse converts data into a tree keyed by the root element name.
func (p *Parser) Parse(data []byte) (domain.Tree, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = p.settings

	if err := doc.ReadFromBytes(bytes.TrimPrefix(data, utf8BOM)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}

	var root *etree.Element
	for _, token := range doc.Child {
		switch t := token.(type) {
		case *etree.Element:
			if root != nil {
				return nil, fmt.Errorf("%w: multiple root elements", domain.ErrMalformedDocument)
			}
			root = t
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return nil, fmt.Errorf("%w: text outside the root element", domain.ErrMalformedDocument)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", domain.ErrMalformedDocument)
	}

	return domain.Tree{root.FullTag(): convert(root)}, nil
}

// charsetReader decodes input in the encoding named by the XML declaration.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// convert returns the tree value of an element.
func convert(el *etree.Element) any {
	var text strings.Builder
	node := make(map[string]any)

	for _, attr := range el.Attr {
		put(node, attr.FullKey(), attr.Value)
	}

	for _, token := range el.Child {
		switch t := token.(type) {
		case *etree.Element:
			put(node, t.FullTag(), convert(t))
		case *etree.CharData:
			text.WriteString(t.Data)
		}
	}

	if len(node) == 0 {
		return text.String()
	}
	if s := text.String(); strings.TrimSpace(s) != "" {
		put(node, domain.TextKey, s)
	}
	return node
}

// put stores value under key, turning repeated keys into a sequence.
func put(node map[string]any, key string, value any) {
	existing, ok := node[key]
	if !ok {
		node[key] = value
		return
	}
	if seq, ok := existing.([]any); ok {
		node[key] = append(seq, value)
		return
	}
	node[key] = []any{existing, value}
}
