// Package format renders search output for terminals and chat.
package format

import (
	"encoding/json"
	"fmt"
	"io"
)

const slackFence = "```"

// WriteJSON writes indented JSON to w, optionally wrapped in a slack code
// block. HTML characters in URLs and descriptions are left unescaped.
func WriteJSON(w io.Writer, v any, slackMode bool) error {
	if slackMode {
		fmt.Fprintln(w, slackFence)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	if slackMode {
		fmt.Fprintln(w, slackFence)
	}
	return nil
}
