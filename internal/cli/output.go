package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// render writes v as indented JSON when json output is selected, else the
// styled text produced by text.
func render(w io.Writer, format string, v any, text func() string) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(w, text())
	return err
}
