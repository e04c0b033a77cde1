package extracterror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecValidationError(t *testing.T) {
	err := &SpecValidationError{
		File:     "chase.yaml",
		Problems: []string{"missing name", "dates.formats must not be empty"},
	}
	assert.Equal(t,
		"invalid extraction spec chase.yaml: missing name; dates.formats must not be empty",
		err.Error())
}

func TestNoExtractorFoundError(t *testing.T) {
	err := &NoExtractorFoundError{Candidates: 3}
	assert.Equal(t, "no extractor found for document (3 candidates checked)", err.Error())
}

func TestAmbiguousColumnError(t *testing.T) {
	err := &AmbiguousColumnError{Role: "date", Tables: 2}
	assert.Contains(t, err.Error(), `"date"`)
	assert.Contains(t, err.Error(), "2 tables")
}

func TestPluginLoadError_Unwrap(t *testing.T) {
	cause := errors.New("yaml: unmarshal error")
	err := &PluginLoadError{Path: "/plugins/bad.yaml", Err: cause}

	assert.Contains(t, err.Error(), "/plugins/bad.yaml")
	assert.True(t, errors.Is(err, cause))
}
