package domain

import (
	"path/filepath"
	"strings"
)

// Upload represents a bureau document handed to the ingest pipeline.
// It is the collaborator's input before extraction.
type Upload struct {
	// Name is the original file name (used for extension checks and provenance).
	Name string

	// Content is the raw XML bytes.
	Content []byte
}

// IsXML reports whether the upload name carries a .xml extension (any case).
func (u Upload) IsXML() bool {
	return strings.EqualFold(filepath.Ext(u.Name), ".xml")
}
