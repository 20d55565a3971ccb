package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrMalformedDocument", ErrMalformedDocument},
		{"ErrUnsupportedFile", ErrUnsupportedFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrMalformedDocument_Wrapped tests that adapters can wrap the sentinel
func TestErrMalformedDocument_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("%w: XML syntax error on line 1", ErrMalformedDocument)

	assert.True(t, errors.Is(wrapped, ErrMalformedDocument))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Contains(t, wrapped.Error(), "malformed document")
}

func TestErrUnsupportedFile_Message(t *testing.T) {
	assert.Equal(t, "only XML files are accepted", ErrUnsupportedFile.Error())
}
