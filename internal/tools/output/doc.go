// Package output renders tool results for MCP clients.
//
// Tool handlers hand this package a plain data value plus the caller's
// chosen format and get back renderable text. JSON output is indented
// MarshalIndent of the value; markdown output is an entity-aware tabular
// rendering tuned for LLM context windows.
//
// # Size Control
//
// Raw API responses can overwhelm an LLM context window. Markdown cell
// values are truncated to a bounded width, and whole responses are capped
// at a hard byte limit with a visible truncation notice, so a pathological
// document can never blow up a conversation.
//
// # Usage Example
//
//	text, err := output.Render(docs, "docs", output.FormatMarkdown)
//	if err != nil {
//		return nil, err
//	}
//	return mcp.NewToolResultText(text), nil
package output
