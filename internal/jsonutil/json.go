// internal/jsonutil/json.go
package jsonutil

import (
	"encoding/json"
	"io"
)

// EncodePretty writes v as two-space-indented JSON plus a trailing
// newline. HTML escaping is off: probe IDs and chromosome names never
// need it, and escaped bytes would not round-trip cleanly through the
// text tools this output feeds.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
