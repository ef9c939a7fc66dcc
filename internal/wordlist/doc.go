// Package wordlist loads, checks and formats dictionary word lists stored in
// configuration documents such as cspell.json.
//
// Configuration documents are JSON with comments (JSONC) or YAML, so this
// package uses github.com/tidwall/jsonc to strip comments before parsing
// JSON with the standard encoding/json library, and gopkg.in/yaml.v3 for
// YAML.
//
// Key responsibilities:
//   - Load the top-level `words` field of a document (source.go)
//   - Verify a list is in locale-aware order with no duplicates (order.go)
//   - Rewrite a document with its list sorted and deduplicated (format.go)
//
// The checker collates by locale while the formatter sorts by byte value.
// The formatter logs, but does not resolve, any resulting disagreement.
package wordlist
