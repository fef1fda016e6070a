package tables

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

// RegisterTableTools registers table and column tools with the MCP server.
func RegisterTableTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listTablesOpts := []mcp.ToolOption{
		mcp.WithDescription("List the tables and views of a Coda doc"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("tableTypes",
			mcp.Description("Comma-separated filter: 'table', 'view' or both"),
		),
		mcp.WithString("sortBy",
			mcp.Description("Sort order, e.g. 'name'"),
		),
	}
	listTablesOpts = append(listTablesOpts, tools.PaginationParams()...)
	listTablesOpts = append(listTablesOpts, tools.FormatParam())
	s.AddTool(mcp.NewTool("coda_list_tables", listTablesOpts...),
		tools.WrapWithAuditLogging("coda_list_tables", handleListTables, sc))

	s.AddTool(mcp.NewTool("coda_get_table",
		mcp.WithDescription("Get metadata for one table or view"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("tableIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the table"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_get_table", handleGetTable, sc))

	listColumnsOpts := []mcp.ToolOption{
		mcp.WithDescription("List the columns of a table"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("tableIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the table"),
		),
		mcp.WithBoolean("visibleOnly",
			mcp.Description("Only columns visible in the table layout"),
		),
	}
	listColumnsOpts = append(listColumnsOpts, tools.PaginationParams()...)
	listColumnsOpts = append(listColumnsOpts, tools.FormatParam())
	s.AddTool(mcp.NewTool("coda_list_columns", listColumnsOpts...),
		tools.WrapWithAuditLogging("coda_list_columns", handleListColumns, sc))

	s.AddTool(mcp.NewTool("coda_get_column",
		mcp.WithDescription("Get metadata for one column of a table"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("tableIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the table"),
		),
		mcp.WithString("columnIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the column"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_get_column", handleGetColumn, sc))

	return nil
}
