package rows

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

// RegisterRowTools registers row read and write tools with the MCP server.
func RegisterRowTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listRowsOpts := []mcp.ToolOption{
		mcp.WithDescription("List the rows of a table, with optional filtering and sorting"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("tableIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the table"),
		),
		mcp.WithString("query",
			mcp.Description("Row filter in the form column:\"value\""),
		),
		mcp.WithString("sortBy",
			mcp.Description("Sort order: 'createdAt', 'natural' or 'updatedAt'"),
			mcp.Enum("createdAt", "natural", "updatedAt"),
		),
		mcp.WithBoolean("useColumnNames",
			mcp.Description("Key row values by column name instead of column ID"),
		),
		mcp.WithString("valueFormat",
			mcp.Description("Cell value shape: 'simple' (default), 'simpleWithArrays' or 'rich'"),
			mcp.Enum("simple", "simpleWithArrays", "rich"),
		),
		mcp.WithBoolean("visibleOnly",
			mcp.Description("Only values of visible columns"),
		),
		mcp.WithString("syncToken",
			mcp.Description("Opaque token from a previous listing; returns only rows changed since"),
		),
	}
	listRowsOpts = append(listRowsOpts, tools.PaginationParams()...)
	listRowsOpts = append(listRowsOpts, tools.FormatParam())
	s.AddTool(mcp.NewTool("coda_list_rows", listRowsOpts...),
		tools.WrapWithAuditLogging("coda_list_rows", handleListRows, sc))

	s.AddTool(mcp.NewTool("coda_get_row",
		mcp.WithDescription("Get one row of a table"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("tableIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the table"),
		),
		mcp.WithString("rowIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the row"),
		),
		mcp.WithBoolean("useColumnNames",
			mcp.Description("Key row values by column name instead of column ID"),
		),
		mcp.WithString("valueFormat",
			mcp.Description("Cell value shape: 'simple' (default), 'simpleWithArrays' or 'rich'"),
			mcp.Enum("simple", "simpleWithArrays", "rich"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_get_row", handleGetRow, sc))

	s.AddTool(mcp.NewTool("coda_upsert_rows",
		mcp.WithDescription("Insert rows into a table, or update matching rows when keyColumns is given"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("tableIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the table"),
		),
		mcp.WithArray("rows",
			mcp.Required(),
			mcp.Description("Rows to write. Each row is an object with a 'cells' array of {column, value} pairs"),
		),
		mcp.WithArray("keyColumns",
			mcp.Description("Column IDs or names to match existing rows on. Matches are updated in place instead of inserted"),
		),
		mcp.WithBoolean("disableParsing",
			mcp.Description("Skip automatic value parsing of cell values"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_upsert_rows", handleUpsertRows, sc))

	s.AddTool(mcp.NewTool("coda_update_row",
		mcp.WithDescription("Update the given cells of one row"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("tableIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the table"),
		),
		mcp.WithString("rowIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the row"),
		),
		mcp.WithObject("row",
			mcp.Required(),
			mcp.Description("Row edit: an object with a 'cells' array of {column, value} pairs"),
		),
		mcp.WithBoolean("disableParsing",
			mcp.Description("Skip automatic value parsing of cell values"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_update_row", handleUpdateRow, sc))

	s.AddTool(mcp.NewTool("coda_delete_row",
		mcp.WithDescription("Delete one row from a table"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("tableIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the table"),
		),
		mcp.WithString("rowIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the row"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_delete_row", handleDeleteRow, sc))

	s.AddTool(mcp.NewTool("coda_delete_rows",
		mcp.WithDescription("Delete multiple rows from a table by ID"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("tableIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the table"),
		),
		mcp.WithArray("rowIds",
			mcp.Required(),
			mcp.Description("IDs of the rows to delete"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_delete_rows", handleDeleteRows, sc))

	s.AddTool(mcp.NewTool("coda_push_button",
		mcp.WithDescription("Push a button cell in a row"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("tableIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the table"),
		),
		mcp.WithString("rowIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the row"),
		),
		mcp.WithString("columnIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the button column"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_push_button", handlePushButton, sc))

	return nil
}
