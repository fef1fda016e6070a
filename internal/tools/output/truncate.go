package output

import "fmt"

// Size limits for rendered output. These are tuned for typical LLM context
// windows and API response sizes.
const (
	// MaxCellChars is the maximum width of a single markdown table cell.
	MaxCellChars = 120

	// MaxResponseBytes is the hard limit on rendered response size (512KB).
	MaxResponseBytes = 512 * 1024
)

// TruncateCell bounds a single cell value for markdown table rendering.
func TruncateCell(s string) string {
	if len(s) <= MaxCellChars {
		return s
	}
	return s[:MaxCellChars-3] + "..."
}

// CapResponse enforces the hard response size limit. Truncation appends a
// visible notice so the model knows the data is incomplete.
func CapResponse(s string) string {
	if len(s) <= MaxResponseBytes {
		return s
	}
	capped := s[:MaxResponseBytes]
	return capped + fmt.Sprintf("\n\n[output truncated at %d bytes; use limit and pageToken to fetch smaller pages]", MaxResponseBytes)
}
