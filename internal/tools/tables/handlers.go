package tables

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-coda/internal/coda"
	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

func handleListTables(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var tableTypes []string
	if raw := tools.StringArg(args, "tableTypes"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tableTypes = append(tableTypes, t)
			}
		}
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	list, err := client.ListTables(ctx, docID, coda.ListTablesParams{
		TableTypes: tableTypes,
		SortBy:     tools.StringArg(args, "sortBy"),
		Limit:      tools.ParseLimit(args),
		PageToken:  tools.StringArg(args, "pageToken"),
	})
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(list, "tables", format), nil
}

func handleGetTable(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tableIDOrName, err := tools.RequiredStringArg(args, "tableIdOrName")
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

	table, err := client.GetTable(ctx, docID, tableIDOrName)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(table, "table", format), nil
}

func handleListColumns(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tableIDOrName, err := tools.RequiredStringArg(args, "tableIdOrName")
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

	list, err := client.ListColumns(ctx, docID, tableIDOrName, coda.ListColumnsParams{
		VisibleOnly: tools.BoolArg(args, "visibleOnly"),
		Limit:       tools.ParseLimit(args),
		PageToken:   tools.StringArg(args, "pageToken"),
	})
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(list, "columns", format), nil
}

func handleGetColumn(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tableIDOrName, err := tools.RequiredStringArg(args, "tableIdOrName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	columnIDOrName, err := tools.RequiredStringArg(args, "columnIdOrName")
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

	column, err := client.GetColumn(ctx, docID, tableIDOrName, columnIDOrName)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(column, "column", format), nil
}
