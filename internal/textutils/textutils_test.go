package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases", input: "AMAZON.COM", expected: "amazon.com"},
		{name: "trims", input: "  Starbucks  ", expected: "starbucks"},
		{name: "collapses whitespace", input: "ONLINE\t PAYMENT   THANK YOU", expected: "online payment thank you"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestApplyCleanup(t *testing.T) {
	patterns, err := CompilePatterns([]string{`(?i)continued on next page`, `#\d+`})
	require.NoError(t, err)

	got := ApplyCleanup("STARBUCKS #4521 continued on next page", patterns, true)
	assert.Equal(t, "STARBUCKS", got)
}

func TestCompilePatterns_Invalid(t *testing.T) {
	_, err := CompilePatterns([]string{`valid`, `(`})
	assert.Error(t, err)
}
