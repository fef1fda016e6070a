package docs

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-coda/internal/coda"
	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

func handleListDocs(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	list, err := client.ListDocs(ctx, coda.ListDocsParams{
		IsOwner:     tools.BoolArg(args, "isOwner"),
		IsPublished: tools.BoolArg(args, "isPublished"),
		IsStarred:   tools.BoolArg(args, "isStarred"),
		InGallery:   tools.BoolArg(args, "inGallery"),
		Query:       tools.StringArg(args, "query"),
		SourceDoc:   tools.StringArg(args, "sourceDoc"),
		WorkspaceID: tools.StringArg(args, "workspaceId"),
		FolderID:    tools.StringArg(args, "folderId"),
		Limit:       tools.ParseLimit(args),
		PageToken:   tools.StringArg(args, "pageToken"),
	})
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(list, "docs", format), nil
}

func handleGetDoc(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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

	doc, err := client.GetDoc(ctx, docID)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(doc, "doc", format), nil
}

func handleCreateDoc(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "create"); result != nil {
		return result, nil
	}
	args := request.GetArguments()

	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	doc, err := client.CreateDoc(ctx, coda.CreateDocParams{
		Title:     tools.StringArg(args, "title"),
		SourceDoc: tools.StringArg(args, "sourceDoc"),
		Timezone:  tools.StringArg(args, "timezone"),
		FolderID:  tools.StringArg(args, "folderId"),
	})
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(doc, "doc", format), nil
}

func handleUpdateDoc(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "update"); result != nil {
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

	result, err := client.UpdateDoc(ctx, docID, coda.UpdateDocParams{
		Title:    tools.StringArg(args, "title"),
		IconName: tools.StringArg(args, "iconName"),
	})
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}

func handleDeleteDoc(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "delete"); result != nil {
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

	result, err := client.DeleteDoc(ctx, docID)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}

func handleListCategories(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	list, err := client.ListCategories(ctx)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(list, "categories", format), nil
}

func handleResolveBrowserLink(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	browserURL, err := tools.RequiredStringArg(args, "url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	degrade := false
	if v := tools.BoolArg(args, "degradeGracefully"); v != nil {
		degrade = *v
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	resolution, err := client.ResolveBrowserLink(ctx, browserURL, degrade)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(resolution, "link", format), nil
}

func handleGetMutationStatus(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	requestID, err := tools.RequiredStringArg(args, "requestId")
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

	status, err := client.MutationStatus(ctx, requestID)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	if status.Completed {
		sc.CompletePendingMutation(requestID)
	}

	return tools.RenderResult(status, "mutation status", format), nil
}

func handleWhoAmI(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	user, err := client.WhoAmI(ctx)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(user, "user", format), nil
}

// connectionStatus is the result shape of coda_test_connection. Failures are
// reported inside the payload, not as tool errors, so the model can branch on
// the boolean.
type connectionStatus struct {
	Connected bool   `json:"connected"`
	User      string `json:"user,omitempty"`
	Error     string `json:"error,omitempty"`
}

func handleTestConnection(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	status := connectionStatus{}

	client, err := tools.GetCodaClient(ctx, sc)
	if err == nil {
		var user *coda.UserInfo
		user, err = client.WhoAmI(ctx)
		if err == nil {
			status.Connected = true
			status.User = user.Name
		}
	}
	if err != nil {
		status.Error = err.Error()
	}

	data, marshalErr := json.MarshalIndent(status, "", "  ")
	if marshalErr != nil {
		return mcp.NewToolResultError(marshalErr.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
