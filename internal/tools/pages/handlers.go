package pages

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-coda/internal/coda"
	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

func handleListPages(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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

	list, err := client.ListPages(ctx, docID, coda.ListPagesParams{
		Limit:     tools.ParseLimit(args),
		PageToken: tools.StringArg(args, "pageToken"),
	})
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(list, "pages", format), nil
}

func handleGetPage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pageIDOrName, err := tools.RequiredStringArg(args, "pageIdOrName")
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

	page, err := client.GetPage(ctx, docID, pageIDOrName)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(page, "page", format), nil
}

// contentFormatOrDefault normalizes the markup format argument; Coda canvases
// accept html and markdown.
func contentFormatOrDefault(args map[string]any) string {
	if format := tools.StringArg(args, "contentFormat"); format != "" {
		return format
	}
	return "markdown"
}

func handleCreatePage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "create"); result != nil {
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

	params := coda.PageEdit{
		Name:         tools.StringArg(args, "name"),
		Subtitle:     tools.StringArg(args, "subtitle"),
		IconName:     tools.StringArg(args, "iconName"),
		ParentPageID: tools.StringArg(args, "parentPageId"),
	}
	if content := tools.StringArg(args, "content"); content != "" {
		params.PageContent = &coda.PageContent{
			Type: "canvas",
			CanvasContent: &coda.CanvasContent{
				Format:  contentFormatOrDefault(args),
				Content: content,
			},
		}
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	result, err := client.CreatePage(ctx, docID, params)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}

func handleUpdatePage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "update"); result != nil {
		return result, nil
	}
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pageIDOrName, err := tools.RequiredStringArg(args, "pageIdOrName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := coda.UpdatePageParams{
		Name:     tools.StringArg(args, "name"),
		Subtitle: tools.StringArg(args, "subtitle"),
		IconName: tools.StringArg(args, "iconName"),
		IsHidden: tools.BoolArg(args, "isHidden"),
	}
	if content := tools.StringArg(args, "content"); content != "" {
		insertionMode := tools.StringArg(args, "insertionMode")
		if insertionMode == "" {
			insertionMode = "append"
		}
		params.ContentUpdate = &coda.ContentUpdate{
			InsertionMode: insertionMode,
			CanvasContent: coda.CanvasContent{
				Format:  contentFormatOrDefault(args),
				Content: content,
			},
		}
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	result, err := client.UpdatePage(ctx, docID, pageIDOrName, params)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}

func handleDeletePage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "delete"); result != nil {
		return result, nil
	}
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pageIDOrName, err := tools.RequiredStringArg(args, "pageIdOrName")
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

	result, err := client.DeletePage(ctx, docID, pageIDOrName)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}

func handleExportPageContent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pageIDOrName, err := tools.RequiredStringArg(args, "pageIdOrName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outputFormat := tools.StringArg(args, "outputFormat")
	if outputFormat == "" {
		outputFormat = "markdown"
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	export, err := client.BeginPageContentExport(ctx, docID, pageIDOrName, outputFormat)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(export, "export", format), nil
}

func handleGetPageExportStatus(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pageIDOrName, err := tools.RequiredStringArg(args, "pageIdOrName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
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

	status, err := client.PageContentExportStatus(ctx, docID, pageIDOrName, requestID)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(status, "export status", format), nil
}
