package automations

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

// RegisterAutomationTools registers automation tools with the MCP server.
func RegisterAutomationTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	s.AddTool(mcp.NewTool("coda_trigger_automation",
		mcp.WithDescription("Trigger a webhook-invoked automation rule in a Coda doc"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("ruleId",
			mcp.Required(),
			mcp.Description("ID of the automation rule"),
		),
		mcp.WithObject("payload",
			mcp.Description("JSON payload forwarded to the rule as the webhook body"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_trigger_automation", handleTriggerAutomation, sc))

	return nil
}
