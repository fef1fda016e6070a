package docs

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

// RegisterDocTools registers document, account and mutation-status tools with
// the MCP server.
func RegisterDocTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listDocsOpts := []mcp.ToolOption{
		mcp.WithDescription("List Coda docs the API token can access, with optional ownership and workspace filters"),
		mcp.WithString("query",
			mcp.Description("Search term to filter docs by name"),
		),
		mcp.WithBoolean("isOwner",
			mcp.Description("Only docs owned by the token's user"),
		),
		mcp.WithBoolean("isPublished",
			mcp.Description("Only published docs"),
		),
		mcp.WithBoolean("isStarred",
			mcp.Description("Only starred docs"),
		),
		mcp.WithBoolean("inGallery",
			mcp.Description("Only docs in the public gallery"),
		),
		mcp.WithString("sourceDoc",
			mcp.Description("Only docs copied from this source doc ID"),
		),
		mcp.WithString("workspaceId",
			mcp.Description("Only docs in this workspace"),
		),
		mcp.WithString("folderId",
			mcp.Description("Only docs in this folder"),
		),
	}
	listDocsOpts = append(listDocsOpts, tools.PaginationParams()...)
	listDocsOpts = append(listDocsOpts, tools.FormatParam())
	s.AddTool(mcp.NewTool("coda_list_docs", listDocsOpts...),
		tools.WrapWithAuditLogging("coda_list_docs", handleListDocs, sc))

	s.AddTool(mcp.NewTool("coda_get_doc",
		mcp.WithDescription("Get metadata for one Coda doc"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_get_doc", handleGetDoc, sc))

	s.AddTool(mcp.NewTool("coda_create_doc",
		mcp.WithDescription("Create a new Coda doc, optionally copied from a source doc"),
		mcp.WithString("title",
			mcp.Description("Title of the new doc"),
		),
		mcp.WithString("sourceDoc",
			mcp.Description("ID of a doc to copy"),
		),
		mcp.WithString("timezone",
			mcp.Description("IANA timezone for the new doc, e.g. 'Europe/Berlin'"),
		),
		mcp.WithString("folderId",
			mcp.Description("Folder to create the doc in"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_create_doc", handleCreateDoc, sc))

	s.AddTool(mcp.NewTool("coda_update_doc",
		mcp.WithDescription("Update a doc's title or icon"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("iconName",
			mcp.Description("New icon name"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_update_doc", handleUpdateDoc, sc))

	s.AddTool(mcp.NewTool("coda_delete_doc",
		mcp.WithDescription("Delete a Coda doc. This cannot be undone through the API"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_delete_doc", handleDeleteDoc, sc))

	s.AddTool(mcp.NewTool("coda_list_categories",
		mcp.WithDescription("List the publishing categories available in the doc gallery"),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_list_categories", handleListCategories, sc))

	s.AddTool(mcp.NewTool("coda_resolve_browser_link",
		mcp.WithDescription("Resolve a Coda browser URL to its API resource"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Browser URL of a doc, page, table or row"),
		),
		mcp.WithBoolean("degradeGracefully",
			mcp.Description("Resolve to the nearest resolvable resource instead of failing"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_resolve_browser_link", handleResolveBrowserLink, sc))

	s.AddTool(mcp.NewTool("coda_get_mutation_status",
		mcp.WithDescription("Check whether an asynchronous mutation has completed, by its request ID"),
		mcp.WithString("requestId",
			mcp.Required(),
			mcp.Description("Request ID returned by a mutating tool"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_get_mutation_status", handleGetMutationStatus, sc))

	s.AddTool(mcp.NewTool("coda_whoami",
		mcp.WithDescription("Show the user and token the server is authenticated as"),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_whoami", handleWhoAmI, sc))

	s.AddTool(mcp.NewTool("coda_test_connection",
		mcp.WithDescription("Verify that the Coda API is reachable with the current credentials"),
	), tools.WrapWithAuditLogging("coda_test_connection", handleTestConnection, sc))

	return nil
}
