package coerce

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected float64
	}{
		{name: "nil", value: nil, expected: 0},
		{name: "plain integer", value: "700", expected: 700},
		{name: "decimal", value: "5000.50", expected: 5000.50},
		{name: "negative", value: "-250", expected: -250},
		{name: "rupee symbol and grouping", value: "₹12,345.67", expected: 12345.67},
		{name: "surrounding whitespace", value: "  42 \n", expected: 42},
		{name: "no digits", value: "abc", expected: 0},
		{name: "empty string", value: "", expected: 0},
		{name: "two decimal points", value: "1.2.3", expected: 0},
		{name: "dangling minus", value: "-", expected: 0},
		{name: "minus in the middle", value: "10-20", expected: 0},
		{name: "leading dot", value: ".5", expected: 0.5},
		{name: "letters are not exponents", value: "1e5", expected: 15},
		{name: "overflow is not finite", value: strings.Repeat("9", 400), expected: 0},
		{name: "mapping with text", value: map[string]any{"unit": "INR", "_": "1,000"}, expected: 1000},
		{name: "mapping without text", value: map[string]any{"unit": "INR"}, expected: 0},
		{name: "sequence", value: []any{"1", "2"}, expected: 0},
		{name: "float value", value: 12.5, expected: 12.5},
		{name: "int value", value: 3, expected: 3},
		{name: "true", value: true, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Number(tt.value))
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "nil", value: nil, expected: ""},
		{name: "empty", value: "", expected: ""},
		{name: "trimmed", value: "  Test Bank \n", expected: "Test Bank"},
		{name: "zero as text is kept", value: "0", expected: "0"},
		{name: "whitespace only", value: "   ", expected: ""},
		{name: "mapping with text", value: map[string]any{"type": "home", "_": " +91 99 "}, expected: "+91 99"},
		{name: "mapping without text", value: map[string]any{"type": "home"}, expected: ""},
		{name: "sequence", value: []any{"a", "b"}, expected: ""},
		{name: "false", value: false, expected: ""},
		{name: "true", value: true, expected: "true"},
		{name: "zero number", value: float64(0), expected: ""},
		{name: "number", value: 10.5, expected: "10.5"},
		{name: "int", value: 51, expected: "51"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, String(tt.value))
		})
	}
}
