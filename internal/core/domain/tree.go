package domain

// Tree is an XML document converted to nested mappings.
//
// Elements become map[string]any keyed by tag name, attributes are merged
// into the same mapping, repeated sibling elements become []any, and
// text-only elements collapse to their string content. Character data of
// an element that also has attributes or children is kept under TextKey.
type Tree = map[string]any

// TextKey holds the character data of an element that is not a plain text leaf.
const TextKey = "_"

// ReportFormat identifies which extraction strategy produced a report.
type ReportFormat string

// Known report formats.
const (
	// FormatExperian is the nested INProfileResponse bureau schema.
	FormatExperian ReportFormat = "experian"

	// FormatGeneric is the loosely structured legacy schema.
	FormatGeneric ReportFormat = "generic"
)

// String returns the string representation.
func (f ReportFormat) String() string {
	return string(f)
}

// IsValid returns true if the format is recognised.
func (f ReportFormat) IsValid() bool {
	return f == FormatExperian || f == FormatGeneric
}
