package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDocumentFormat_String verifies the string form used in logs and JSON output.
func TestDocumentFormat_String(t *testing.T) {
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "yaml", FormatYAML.String())
}

// TestDocumentFormat_IsValid checks that only defined formats pass validation.
func TestDocumentFormat_IsValid(t *testing.T) {
	assert.True(t, FormatJSON.IsValid())
	assert.True(t, FormatYAML.IsValid())
	assert.False(t, DocumentFormat("toml").IsValid())
	assert.False(t, DocumentFormat("").IsValid())
}

// TestParseDocumentFormat verifies string-to-format conversion,
// including case normalization and error cases.
func TestParseDocumentFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected DocumentFormat
		hasError bool
	}{
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"JSON", FormatJSON, false},
		{"Yaml", FormatYAML, false},
		{"yml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseDocumentFormat(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestWhitespaceFinding_String(t *testing.T) {
	f := WhitespaceFinding{Path: "docs/README.md", Offset: 42, Line: 3, Column: 7}
	assert.Equal(t, "docs/README.md:3:7", f.String())
}

// TestWordListReport_HasViolations verifies that either kind of violation
// marks the report as failing.
func TestWordListReport_HasViolations(t *testing.T) {
	var empty WordListReport
	assert.False(t, empty.HasViolations())

	withMismatch := WordListReport{
		Mismatches: []OrderMismatch{{Source: "cspell.json", Actual: "b", Expected: "a"}},
	}
	assert.True(t, withMismatch.HasViolations())

	withDuplicate := WordListReport{
		Duplicates: []DuplicateWord{{Source: "cspell.json", Index: 1, Word: "a"}},
	}
	assert.True(t, withDuplicate.HasViolations())
}

// TestExitCodes pins the numeric values CI drivers depend on.
func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, int(ExitSuccess))
	assert.Equal(t, 1, int(ExitViolation))
	assert.Equal(t, 2, int(ExitInternalError))
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitViolation, "trailing whitespace found")
		assert.Equal(t, ExitViolation, err.Code)
		assert.Equal(t, "trailing whitespace found", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("not a git repository")
		err := WrapCLIError(ExitInternalError, "failed to list tracked files", inner)
		assert.Equal(t, ExitInternalError, err.Code)
		assert.Contains(t, err.Error(), "not a git repository")
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.As through fmt wrapping", func(t *testing.T) {
		inner := NewCLIError(ExitViolation, "word lists out of order")
		wrapped := fmt.Errorf("check-word-lists: %w", inner)

		var cliErr *CLIError
		require.True(t, errors.As(wrapped, &cliErr))
		assert.Equal(t, ExitViolation, cliErr.Code)
	})
}
