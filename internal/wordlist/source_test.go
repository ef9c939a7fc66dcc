package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/repolint/internal/model"
)

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected model.DocumentFormat
	}{
		{"cspell.json", model.FormatJSON},
		{"cspell.jsonc", model.FormatJSON},
		{".cspell.json", model.FormatJSON},
		{"cspell.yaml", model.FormatYAML},
		{"cspell.config.yml", model.FormatYAML},
		{"CSPELL.YAML", model.FormatYAML},
		{".cspellrc", model.FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat(tt.path))
		})
	}
}

// TestLoad_JSONC verifies that comments and trailing commas in cspell.json
// are accepted.
func TestLoad_JSONC(t *testing.T) {
	path := writeDoc(t, "cspell.json", `{
  // cspell configuration
  "version": "0.2",
  "language": "en",
  "words": [
    "apple", /* fruit */
    "banana",
  ],
}`)

	list, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, list.Source)
	assert.Equal(t, model.FormatJSON, list.Format)
	assert.Equal(t, []string{"apple", "banana"}, list.Words)
}

func TestLoad_YAML(t *testing.T) {
	path := writeDoc(t, "cspell.yaml", `version: "0.2"
# project dictionary
words:
  - kubectl
  - openslo # spec name
  - "123abc"
`)

	list, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, model.FormatYAML, list.Format)
	assert.Equal(t, []string{"kubectl", "openslo", "123abc"}, list.Words)
}

func TestLoad_EmptyWords(t *testing.T) {
	path := writeDoc(t, "cspell.json", `{"words": []}`)

	list, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, list.Words)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "cspell.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseWords_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  model.DocumentFormat
		noWords bool
	}{
		{"json missing words", `{"version": "0.2"}`, model.FormatJSON, true},
		{"json words not array", `{"words": "apple"}`, model.FormatJSON, false},
		{"json non-string entry", `{"words": ["apple", 3]}`, model.FormatJSON, false},
		{"json top-level array", `["apple"]`, model.FormatJSON, false},
		{"json null document", `null`, model.FormatJSON, false},
		{"json malformed", `{"words": [`, model.FormatJSON, false},
		{"yaml missing words", "version: 1\n", model.FormatYAML, true},
		{"yaml empty document", "", model.FormatYAML, true},
		{"yaml words mapping", "words:\n  a: b\n", model.FormatYAML, false},
		{"yaml null entry", "words:\n  - apple\n  - ~\n", model.FormatYAML, false},
		{"yaml nested entry", "words:\n  - [a, b]\n", model.FormatYAML, false},
		{"yaml top-level sequence", "- apple\n", model.FormatYAML, false},
		{"unknown format", `{}`, model.DocumentFormat("toml"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWords([]byte(tt.data), tt.format)
			require.Error(t, err)
			if tt.noWords {
				assert.ErrorIs(t, err, ErrNoWords)
			}
		})
	}
}

// TestLoadAs_OverridesExtension verifies that an explicit format wins over
// the extension, for rc files without one.
func TestLoadAs_OverridesExtension(t *testing.T) {
	path := writeDoc(t, ".cspellrc", "words:\n  - beta\n  - alpha\n")

	_, err := Load(path)
	require.Error(t, err, "extensionless files are read as JSON by default")

	list, err := LoadAs(path, model.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, model.FormatYAML, list.Format)
	assert.Equal(t, []string{"beta", "alpha"}, list.Words)
}
