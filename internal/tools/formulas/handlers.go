package formulas

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

func handleListFormulas(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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

	list, err := client.ListFormulas(ctx, docID,
		tools.StringArg(args, "sortBy"),
		tools.ParseLimit(args),
		tools.StringArg(args, "pageToken"))
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(list, "formulas", format), nil
}

func handleGetFormula(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	formulaIDOrName, err := tools.RequiredStringArg(args, "formulaIdOrName")
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

	formula, err := client.GetFormula(ctx, docID, formulaIDOrName)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(formula, "formula", format), nil
}

func handleListControls(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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

	list, err := client.ListControls(ctx, docID,
		tools.StringArg(args, "sortBy"),
		tools.ParseLimit(args),
		tools.StringArg(args, "pageToken"))
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(list, "controls", format), nil
}

func handleGetControl(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	controlIDOrName, err := tools.RequiredStringArg(args, "controlIdOrName")
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

	control, err := client.GetControl(ctx, docID, controlIDOrName)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(control, "control", format), nil
}
