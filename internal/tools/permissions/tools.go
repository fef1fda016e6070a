package permissions

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

// RegisterPermissionTools registers sharing and publishing tools with the MCP
// server.
func RegisterPermissionTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listPermissionsOpts := []mcp.ToolOption{
		mcp.WithDescription("List who a Coda doc is shared with"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
	}
	listPermissionsOpts = append(listPermissionsOpts, tools.PaginationParams()...)
	listPermissionsOpts = append(listPermissionsOpts, tools.FormatParam())
	s.AddTool(mcp.NewTool("coda_list_permissions", listPermissionsOpts...),
		tools.WrapWithAuditLogging("coda_list_permissions", handleListPermissions, sc))

	s.AddTool(mcp.NewTool("coda_add_permission",
		mcp.WithDescription("Share a Coda doc with a person, a domain, or anyone with the link"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("access",
			mcp.Required(),
			mcp.Description("Access level to grant"),
			mcp.Enum("readonly", "write", "comment"),
		),
		mcp.WithString("principalType",
			mcp.Required(),
			mcp.Description("Who to share with: 'email', 'domain' or 'anyone'"),
			mcp.Enum("email", "domain", "anyone"),
		),
		mcp.WithString("principalEmail",
			mcp.Description("Email address, required when principalType is 'email'"),
		),
		mcp.WithString("principalDomain",
			mcp.Description("Domain, required when principalType is 'domain'"),
		),
		mcp.WithBoolean("suppressEmail",
			mcp.Description("Skip the notification email to the grantee"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_add_permission", handleAddPermission, sc))

	s.AddTool(mcp.NewTool("coda_delete_permission",
		mcp.WithDescription("Revoke a sharing entry on a Coda doc"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("permissionId",
			mcp.Required(),
			mcp.Description("ID of the permission entry, from coda_list_permissions"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_delete_permission", handleDeletePermission, sc))

	s.AddTool(mcp.NewTool("coda_search_principals",
		mcp.WithDescription("Search people and groups a doc can be shared with"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("query",
			mcp.Description("Name or email fragment to search for"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_search_principals", handleSearchPrincipals, sc))

	s.AddTool(mcp.NewTool("coda_get_acl_metadata",
		mcp.WithDescription("Show which sharing operations the current token may perform on a doc"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_get_acl_metadata", handleGetACLMetadata, sc))

	s.AddTool(mcp.NewTool("coda_publish_doc",
		mcp.WithDescription("Publish a Coda doc to the public gallery"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		mcp.WithString("slug",
			mcp.Description("URL slug for the published doc"),
		),
		mcp.WithBoolean("discoverable",
			mcp.Description("List the doc in gallery search results"),
		),
		mcp.WithBoolean("earnCredit",
			mcp.Description("Earn referral credit from doc views"),
		),
		mcp.WithArray("categoryNames",
			mcp.Description("Gallery categories to file the doc under, from coda_list_categories"),
		),
		mcp.WithString("mode",
			mcp.Description("Interaction mode for viewers"),
			mcp.Enum("view", "play", "edit"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_publish_doc", handlePublishDoc, sc))

	s.AddTool(mcp.NewTool("coda_unpublish_doc",
		mcp.WithDescription("Remove a Coda doc from the public gallery"),
		mcp.WithString("docId",
			mcp.Required(),
			mcp.Description("ID of the doc"),
		),
		tools.FormatParam(),
	), tools.WrapWithAuditLogging("coda_unpublish_doc", handleUnpublishDoc, sc))

	return nil
}
