package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpload_IsXML(t *testing.T) {
	tests := []struct {
		name     string
		upload   Upload
		expected bool
	}{
		{"lower case extension", Upload{Name: "report.xml"}, true},
		{"upper case extension", Upload{Name: "REPORT.XML"}, true},
		{"mixed case with path", Upload{Name: "/tmp/in/Sample1.Xml"}, true},
		{"json file", Upload{Name: "report.json"}, false},
		{"xml in the middle", Upload{Name: "report.xml.txt"}, false},
		{"no extension", Upload{Name: "report"}, false},
		{"empty name", Upload{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.upload.IsXML())
		})
	}
}
