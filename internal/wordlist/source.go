package wordlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/repolint/internal/model"
)

// WordsField is the document key holding the word list.
const WordsField = "words"

// ErrNoWords is returned when a document has no top-level words field.
var ErrNoWords = errors.New(`document has no "words" field`)

// List is a word list together with the document it was loaded from.
type List struct {
	// Source is the path of the configuration document.
	Source string

	// Format is the serialization of the document.
	Format model.DocumentFormat

	// Words is the list in document order.
	Words []string
}

// DetectFormat determines the document format from the file extension.
// .json and .jsonc are JSON; .yaml and .yml are YAML. Any other extension
// is treated as JSON, which is what cspell assumes for its rc files.
func DetectFormat(path string) model.DocumentFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return model.FormatYAML
	default:
		return model.FormatJSON
	}
}

// Load reads the document at path and returns its word list. The format
// is detected from the extension.
func Load(path string) (*List, error) {
	return LoadAs(path, DetectFormat(path))
}

// LoadAs is like Load but parses the document as format regardless of its
// extension.
func LoadAs(path string, format model.DocumentFormat) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}

	words, err := ParseWords(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}

	return &List{Source: path, Format: format, Words: words}, nil
}

// ParseWords extracts the words field from a document. Every entry must be
// a string.
func ParseWords(data []byte, format model.DocumentFormat) ([]string, error) {
	switch format {
	case model.FormatJSON:
		doc, err := decodeJSONDocument(data)
		if err != nil {
			return nil, err
		}
		raw, ok := doc[WordsField]
		if !ok {
			return nil, ErrNoWords
		}
		return wordsFromJSON(raw)

	case model.FormatYAML:
		_, seq, err := decodeYAMLDocument(data)
		if err != nil {
			return nil, err
		}
		return wordsFromYAML(seq)

	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
}

// decodeJSONDocument strips JSONC comments and trailing commas and decodes
// the document into a generic map. Numbers are kept as json.Number so
// large integers are not rounded through float64.
func decodeJSONDocument(data []byte) (map[string]interface{}, error) {
	clean := jsonc.ToJSON(data)

	dec := json.NewDecoder(bytes.NewReader(clean))
	dec.UseNumber()

	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("invalid JSON document: top level must be an object")
	}
	return doc, nil
}

func wordsFromJSON(raw interface{}) ([]string, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%q must be an array of strings, got %T", WordsField, raw)
	}

	words := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%q[%d] must be a string, got %T", WordsField, i, item)
		}
		words = append(words, s)
	}
	return words, nil
}

// decodeYAMLDocument parses the document into a node tree and returns the
// document node and the sequence node holding the words.
func decodeYAMLDocument(data []byte) (*yaml.Node, *yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("invalid YAML document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil, ErrNoWords
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("invalid YAML document: top level must be a mapping")
	}

	// Mapping content alternates key, value.
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != WordsField {
			continue
		}
		seq := root.Content[i+1]
		if seq.Kind != yaml.SequenceNode {
			return nil, nil, fmt.Errorf("%q must be a sequence of strings", WordsField)
		}
		return &doc, seq, nil
	}
	return nil, nil, ErrNoWords
}

func wordsFromYAML(seq *yaml.Node) ([]string, error) {
	words := make([]string, 0, len(seq.Content))
	for i, item := range seq.Content {
		if item.Kind != yaml.ScalarNode || item.Tag == "!!null" {
			return nil, fmt.Errorf("%q[%d] must be a string (line %d)", WordsField, i, item.Line)
		}
		words = append(words, item.Value)
	}
	return words, nil
}
