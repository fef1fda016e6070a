package pages

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

// RegisterPageTools registers page and page-content-export tools with the MCP
// server.
func RegisterPageTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listPagesOpts := []mcp.ToolOption{
		mcp.WithDescription("List the pages of a Coda doc"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
	}
	listPagesOpts = append(listPagesOpts, tools.PaginationParams()...)
	listPagesOpts = append(listPagesOpts, tools.FormatParam())
	s.AddTool(mcp.NewTool("coda_list_pages", listPagesOpts...),
		tools.WrapWithAuditLogging("coda_list_pages", handleListPages, sc))

	s.AddTool(mcp.NewTool("coda_get_page",
		mcp.WithDescription("Get metadata for one page of a Coda doc"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("pageIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the page"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_get_page", handleGetPage, sc))

	s.AddTool(mcp.NewTool("coda_create_page",
		mcp.WithDescription("Create a page in a Coda doc, optionally with initial content"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("name",
			mcp.Description("Name of the new page"),
		),
		mcp.WithString("subtitle",
			mcp.Description("Subtitle of the new page"),
		),
		mcp.WithString("iconName",
			mcp.Description("Icon for the new page"),
		),
		mcp.WithString("parentPageId",
			mcp.Description("Create as a subpage of this page"),
		),
		mcp.WithString("content",
			mcp.Description("Initial page content"),
		),
		mcp.WithString("contentFormat",
			mcp.Description("Markup format of the content: 'markdown' (default) or 'html'"),
			mcp.Enum("markdown", "html"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_create_page", handleCreatePage, sc))

	s.AddTool(mcp.NewTool("coda_update_page",
		mcp.WithDescription("Update a page's properties or content"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("pageIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the page"),
		),
		mcp.WithString("name",
			mcp.Description("New page name"),
		),
		mcp.WithString("subtitle",
			mcp.Description("New subtitle"),
		),
		mcp.WithString("iconName",
			mcp.Description("New icon"),
		),
		mcp.WithBoolean("isHidden",
			mcp.Description("Hide or unhide the page"),
		),
		mcp.WithString("content",
			mcp.Description("Content to write to the page"),
		),
		mcp.WithString("contentFormat",
			mcp.Description("Markup format of the content: 'markdown' (default) or 'html'"),
			mcp.Enum("markdown", "html"),
		),
		mcp.WithString("insertionMode",
			mcp.Description("How to apply the content: 'append' (default) or 'replace'"),
			mcp.Enum("append", "replace"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_update_page", handleUpdatePage, sc))

	s.AddTool(mcp.NewTool("coda_delete_page",
		mcp.WithDescription("Delete a page from a Coda doc"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("pageIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the page"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_delete_page", handleDeletePage, sc))

	s.AddTool(mcp.NewTool("coda_export_page_content",
		mcp.WithDescription("Start an export of a page's content. Returns an export ID to poll with coda_get_page_export_status"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("pageIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the page"),
		),
		mcp.WithString("outputFormat",
			mcp.Description("Export format: 'markdown' (default) or 'html'"),
			mcp.Enum("markdown", "html"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_export_page_content", handleExportPageContent, sc))

	s.AddTool(mcp.NewTool("coda_get_page_export_status",
		mcp.WithDescription("Check a page content export. When complete, the result carries a download link"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("pageIdOrName",
			mcp.Required(),
			mcp.Description("ID or name of the page"),
		),
		mcp.WithString("requestId",
			mcp.Required(),
			mcp.Description("Export ID returned by coda_export_page_content"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_get_page_export_status", handleGetPageExportStatus, sc))

	return nil
}
