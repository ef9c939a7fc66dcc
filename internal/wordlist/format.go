package wordlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/repolint/internal/model"
)

// indent is the indentation used when re-serializing a document.
const indent = 2

// SortUnique returns words sorted by byte value with duplicates removed.
// The input is not modified.
func SortUnique(words []string) []string {
	// Never nil, so an empty list encodes as [] rather than null.
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.Strings(sorted)
	return slices.Compact(sorted)
}

// Result describes the outcome of formatting one document.
type Result struct {
	// Path is the formatted document.
	Path string

	// Words is the list as written.
	Words []string

	// Removed is the number of duplicate entries dropped.
	Removed int

	// Changed reports whether the file contents were rewritten.
	Changed bool
}

// Format rewrites the words field of a document with SortUnique applied and
// returns the new document bytes and the list as written.
//
// JSON documents keep their key order and every value other than the list
// verbatim; indentation is two spaces, HTML characters are not escaped and
// a trailing newline is added. JSONC comments do not survive.
//
// YAML documents are edited in place on the node tree, so comments and key
// order are kept; each word keeps the node (and any comment) of its first
// occurrence.
func Format(data []byte, format model.DocumentFormat) ([]byte, []string, error) {
	switch format {
	case model.FormatJSON:
		return formatJSON(data)
	case model.FormatYAML:
		return formatYAML(data)
	default:
		return nil, nil, fmt.Errorf("unsupported document format %q", format)
	}
}

func formatJSON(data []byte) ([]byte, []string, error) {
	doc, err := decodeJSONDocument(data)
	if err != nil {
		return nil, nil, err
	}

	raw, ok := doc[WordsField]
	if !ok {
		return nil, nil, ErrNoWords
	}
	words, err := wordsFromJSON(raw)
	if err != nil {
		return nil, nil, err
	}

	members, err := decodeJSONMembers(jsonc.ToJSON(data))
	if err != nil {
		return nil, nil, err
	}

	sorted := SortUnique(words)
	encoded, err := marshalJSON(sorted)
	if err != nil {
		return nil, nil, err
	}
	for i := range members {
		if members[i].key == WordsField {
			members[i].value = encoded
		}
	}

	out, err := encodeJSONMembers(members)
	if err != nil {
		return nil, nil, err
	}
	return out, sorted, nil
}

// jsonMember is one top-level key of a JSON object with its undecoded value.
type jsonMember struct {
	key   string
	value json.RawMessage
}

// decodeJSONMembers splits a JSON object into its top-level members in
// document order. Values are kept as raw bytes so numbers and nested
// objects come back out verbatim. A repeated key keeps its first position
// and its last value.
func decodeJSONMembers(clean []byte) ([]jsonMember, error) {
	dec := json.NewDecoder(bytes.NewReader(clean))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("invalid JSON document: top level must be an object")
	}

	var members []jsonMember
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON document: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid JSON document: unexpected %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid JSON document: %w", err)
		}

		if i, ok := index[key]; ok {
			members[i].value = value
			continue
		}
		index[key] = len(members)
		members = append(members, jsonMember{key: key, value: value})
	}
	return members, nil
}

// encodeJSONMembers writes members back as an object indented by two
// spaces, with a trailing newline.
func encodeJSONMembers(members []jsonMember) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := marshalJSON(m.key)
		if err != nil {
			return nil, err
		}
		compact.Write(key)
		compact.WriteByte(':')
		if err := json.Compact(&compact, m.value); err != nil {
			return nil, fmt.Errorf("failed to serialize document: %w", err)
		}
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// marshalJSON encodes v compactly without escaping HTML characters.
func marshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func formatYAML(data []byte) ([]byte, []string, error) {
	doc, seq, err := decodeYAMLDocument(data)
	if err != nil {
		return nil, nil, err
	}

	words, err := wordsFromYAML(seq)
	if err != nil {
		return nil, nil, err
	}

	// Keep the node of each word's first occurrence.
	first := make(map[string]*yaml.Node, len(seq.Content))
	for _, node := range seq.Content {
		if _, ok := first[node.Value]; !ok {
			first[node.Value] = node
		}
	}

	sorted := SortUnique(words)
	content := make([]*yaml.Node, 0, len(sorted))
	for _, w := range sorted {
		content = append(content, first[w])
	}
	seq.Content = content

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(doc); err != nil {
		return nil, nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, nil, fmt.Errorf("failed to serialize document: %w", err)
	}

	return buf.Bytes(), sorted, nil
}

// FormatFile formats the document at path in place. The file is only
// written when its contents change, and keeps its permission bits. The
// format is detected from the extension.
func FormatFile(path string) (*Result, error) {
	return FormatFileAs(path, DetectFormat(path))
}

// FormatFileAs is like FormatFile but treats the document as format
// regardless of its extension.
func FormatFileAs(path string, format model.DocumentFormat) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	original, err := ParseWords(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	formatted, words, err := Format(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to format %s: %w", path, err)
	}

	result := &Result{
		Path:    path,
		Words:   words,
		Removed: len(original) - len(words),
		Changed: !bytes.Equal(data, formatted),
	}
	if !result.Changed {
		return result, nil
	}

	if err := os.WriteFile(path, formatted, info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return result, nil
}
