// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"fmt"

	mcp "github.com/mark3labs/mcp-go/mcp"
)

// Pagination bounds for list tools. Out-of-range limits are clamped rather
// than rejected so models do not have to retry over a bad guess.
const (
	DefaultLimit = 25
	MinLimit     = 1
	MaxLimit     = 200
)

// PaginationParams returns the tool options shared by every list tool.
//
// Usage in tool registration:
//
//	opts := []mcp.ToolOption{
//	    mcp.WithDescription("..."),
//	}
//	opts = append(opts, tools.PaginationParams()...)
//	opts = append(opts, /* tool-specific params */...)
//	tool := mcp.NewTool("tool_name", opts...)
func PaginationParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (1-200, default 25)"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Opaque token from a previous response's nextPageToken to fetch the next page"),
		),
	}
}

// FormatParam returns the tool option for the shared output format parameter.
func FormatParam() mcp.ToolOption {
	return mcp.WithString("format",
		mcp.Description("Output format: 'json' (default) or 'markdown'"),
		mcp.Enum("json", "markdown"),
	)
}

// ParseLimit extracts and clamps the limit argument. Absent or non-numeric
// values yield the default.
func ParseLimit(args map[string]any) int {
	raw, ok := args["limit"]
	if !ok {
		return DefaultLimit
	}

	limit := DefaultLimit
	switch v := raw.(type) {
	case float64:
		limit = int(v)
	case int:
		limit = v
	default:
		return DefaultLimit
	}

	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ParseFormat extracts and validates the format argument. Absent means
// json.
func ParseFormat(args map[string]any) (string, error) {
	raw, ok := args["format"]
	if !ok {
		return "json", nil
	}
	format, ok := raw.(string)
	if !ok || format == "" {
		return "json", nil
	}
	switch format {
	case "markdown", "json":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q (options: markdown, json)", format)
	}
}

// StringArg extracts a string argument, returning "" when absent or not a
// string.
func StringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// RequiredStringArg extracts a string argument that must be present and
// non-empty.
func RequiredStringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required parameter: %s", key)
	}
	return v, nil
}

// BoolArg extracts an optional boolean argument. Returns nil when absent so
// callers can distinguish "unset" from an explicit false.
func BoolArg(args map[string]any, key string) *bool {
	v, ok := args[key].(bool)
	if !ok {
		return nil
	}
	return &v
}

// StringListArg extracts an optional list-of-strings argument. Non-string
// elements are skipped.
func StringListArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
