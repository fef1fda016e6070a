package formulas

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

// RegisterFormulaTools registers named-formula and control tools with the MCP
// server.
func RegisterFormulaTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listFormulasOpts := []mcp.ToolOption{
		mcp.WithDescription("List the named formulas of a Coda doc"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("sortBy",
			mcp.Description("Sort order, e.g. 'name'"),
		),
	}
	listFormulasOpts = append(listFormulasOpts, tools.PaginationParams()...)
	listFormulasOpts = append(listFormulasOpts, tools.FormatParam())
	s.AddTool(mcp.NewTool("coda_list_formulas", listFormulasOpts...),
		tools.WrapWithAuditLogging("coda_list_formulas", handleListFormulas, sc))

	s.AddTool(mcp.NewTool("coda_get_formula",
		mcp.WithDescription("Get a named formula and its current value"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("formulaIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the formula"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_get_formula", handleGetFormula, sc))

	listControlsOpts := []mcp.ToolOption{
		mcp.WithDescription("List the controls (buttons, sliders, selects) of a Coda doc"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("sortBy",
			mcp.Description("Sort order, e.g. 'name'"),
		),
	}
	listControlsOpts = append(listControlsOpts, tools.PaginationParams()...)
	listControlsOpts = append(listControlsOpts, tools.FormatParam())
	s.AddTool(mcp.NewTool("coda_list_controls", listControlsOpts...),
		tools.WrapWithAuditLogging("coda_list_controls", handleListControls, sc))

	s.AddTool(mcp.NewTool("coda_get_control",
		mcp.WithDescription("Get a control and its current value"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("controlIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the control"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_get_control", handleGetControl, sc))

	return nil
}
