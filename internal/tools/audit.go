// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-coda/internal/instrumentation"
	"github.com/giantswarm/mcp-coda/internal/server"
)

// ToolHandler is the signature for MCP tool handler functions that take ServerContext.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error)

// WrapWithAuditLogging wraps a tool handler with audit logging, invocation
// metrics, and a tool span:
//   - Tool invocation timing and success/error status
//   - Document and table information from request arguments
//   - An OpenTelemetry server span per invocation, with trace correlation
//     into the audit record
//
// If no instrumentation provider is available, the handler is called
// untouched. Credentials never reach the audit log, metrics, or spans; only
// resource identifiers from the arguments do.
func WrapWithAuditLogging(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		provider := sc.InstrumentationProvider()
		if provider == nil {
			return handler(ctx, request, sc)
		}

		invocation := instrumentation.NewToolInvocation(toolName)

		args := request.GetArguments()
		extractAuditInfoFromArgs(invocation, args)

		ctx, span := instrumentation.StartToolSpan(ctx, toolName,
			instrumentation.NewSpanAttributeBuilder().
				WithDoc(invocation.DocID).
				WithTable(invocation.TableID).
				Build()...)
		defer span.End()
		invocation.WithSpanContext(ctx)

		result, err := handler(ctx, request, sc)

		// Determine success/error status
		if err != nil {
			invocation.CompleteWithError(err)
			instrumentation.SetSpanError(span, err)
		} else if result != nil && result.IsError {
			// MCP tool errors are returned in the result, not as Go errors
			invocation.Complete(false, nil)
			// Try to extract error message from result content
			if len(result.Content) > 0 {
				if textContent, ok := result.Content[0].(mcp.TextContent); ok {
					invocation.Error = textContent.Text
				}
			}
		} else {
			invocation.CompleteSuccess()
		}

		provider.Metrics().RecordToolInvocation(ctx, toolName, invocation.Status(), invocation.Duration)

		// Log the tool invocation (metrics-safe, uses cardinality-controlled values)
		if auditLogger := provider.AuditLogger(); auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		return result, err
	}
}

// extractAuditInfoFromArgs extracts document and table information from
// tool request arguments for audit logging.
func extractAuditInfoFromArgs(invocation *instrumentation.ToolInvocation, args map[string]interface{}) {
	if docID, ok := args["docId"].(string); ok && docID != "" {
		invocation.WithDoc(docID)
	}

	tableID, _ := args["tableIdOrName"].(string)
	resourceName := extractResourceName(args)

	if tableID != "" || resourceName != "" {
		invocation.WithResource(tableID, resourceName)
	}

	// Sharing operations name a principal; the audit record keeps only an
	// anonymized form of it.
	if email, ok := args["principalEmail"].(string); ok && email != "" {
		invocation.WithPrincipal(email)
	}
}

// extractResourceName extracts the resource name from various argument
// patterns. Different tools use different parameter names for the target
// resource.
func extractResourceName(args map[string]interface{}) string {
	// Try common parameter names for the target resource
	nameKeys := []string{
		"rowIdOrName",
		"pageIdOrName",
		"columnIdOrName",
		"formulaIdOrName",
		"controlIdOrName",
		"ruleId",
		"permissionId",
		"requestId",
	}
	for _, key := range nameKeys {
		if name, ok := args[key].(string); ok && name != "" {
			return name
		}
	}
	return ""
}
