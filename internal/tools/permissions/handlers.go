package permissions

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-coda/internal/coda"
	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

func handleListPermissions(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	list, err := client.ListPermissions(ctx, docID, tools.ParseLimit(args), tools.StringArg(args, "pageToken"))
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(list, "permissions", format), nil
}

// parsePrincipal assembles the principal from its type and the matching
// identifier argument. The upstream API rejects mismatched combinations; the
// cases here only catch the ones detectable without a round trip.
func parsePrincipal(args map[string]any) (coda.Principal, error) {
	principalType, err := tools.RequiredStringArg(args, "principalType")
	if err != nil {
		return coda.Principal{}, err
	}

	principal := coda.Principal{Type: principalType}
	switch principalType {
	case "email":
		if principal.Email = tools.StringArg(args, "principalEmail"); principal.Email == "" {
			return coda.Principal{}, fmt.Errorf("principalEmail is required when principalType is 'email'")
		}
	case "domain":
		if principal.Domain = tools.StringArg(args, "principalDomain"); principal.Domain == "" {
			return coda.Principal{}, fmt.Errorf("principalDomain is required when principalType is 'domain'")
		}
	case "anyone":
	default:
		return coda.Principal{}, fmt.Errorf("unknown principalType %q", principalType)
	}
	return principal, nil
}

func handleAddPermission(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "create"); result != nil {
		return result, nil
	}
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	access, err := tools.RequiredStringArg(args, "access")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	principal, err := parsePrincipal(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	result, err := client.AddPermission(ctx, docID, coda.AddPermissionParams{
		Access:        access,
		Principal:     principal,
		SuppressEmail: tools.BoolArg(args, "suppressEmail"),
	})
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}

func handleDeletePermission(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "delete"); result != nil {
		return result, nil
	}
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	permissionID, err := tools.RequiredStringArg(args, "permissionId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	result, err := client.DeletePermission(ctx, docID, permissionID)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}

func handleSearchPrincipals(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	list, err := client.SearchPrincipals(ctx, docID, tools.StringArg(args, "query"))
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(list, "principals", format), nil
}

func handleGetACLMetadata(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	meta, err := client.GetACLMetadata(ctx, docID)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(meta, "acl metadata", format), nil
}

func handlePublishDoc(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "publish"); result != nil {
		return result, nil
	}
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	result, err := client.PublishDoc(ctx, docID, coda.PublishDocParams{
		Slug:          tools.StringArg(args, "slug"),
		Discoverable:  tools.BoolArg(args, "discoverable"),
		EarnCredit:    tools.BoolArg(args, "earnCredit"),
		CategoryNames: tools.StringListArg(args, "categoryNames"),
		Mode:          tools.StringArg(args, "mode"),
	})
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}

func handleUnpublishDoc(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "unpublish"); result != nil {
		return result, nil
	}
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	result, err := client.UnpublishDoc(ctx, docID)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}
