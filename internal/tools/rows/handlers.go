package rows

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-coda/internal/coda"
	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

func handleListRows(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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

	list, err := client.ListRows(ctx, docID, tableIDOrName, coda.ListRowsParams{
		Query:          tools.StringArg(args, "query"),
		SortBy:         tools.StringArg(args, "sortBy"),
		UseColumnNames: tools.BoolArg(args, "useColumnNames"),
		ValueFormat:    tools.StringArg(args, "valueFormat"),
		VisibleOnly:    tools.BoolArg(args, "visibleOnly"),
		SyncToken:      tools.StringArg(args, "syncToken"),
		Limit:          tools.ParseLimit(args),
		PageToken:      tools.StringArg(args, "pageToken"),
	})
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(list, "rows", format), nil
}

func handleGetRow(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tableIDOrName, err := tools.RequiredStringArg(args, "tableIdOrName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rowIDOrName, err := tools.RequiredStringArg(args, "rowIdOrName")
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

	row, err := client.GetRow(ctx, docID, tableIDOrName, rowIDOrName, coda.GetRowParams{
		UseColumnNames: tools.BoolArg(args, "useColumnNames"),
		ValueFormat:    tools.StringArg(args, "valueFormat"),
	})
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	return tools.RenderResult(row, "row", format), nil
}

// parseRowEdit converts one row argument, an object with a "cells" array of
// {column, value} pairs, into a RowEdit. Cell values pass through untyped;
// the upstream API interprets them.
func parseRowEdit(v any) (coda.RowEdit, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return coda.RowEdit{}, fmt.Errorf("row must be an object with a 'cells' array")
	}
	cellsRaw, ok := obj["cells"].([]any)
	if !ok || len(cellsRaw) == 0 {
		return coda.RowEdit{}, fmt.Errorf("row must carry a non-empty 'cells' array")
	}

	edit := coda.RowEdit{Cells: make([]coda.CellEdit, 0, len(cellsRaw))}
	for i, cellRaw := range cellsRaw {
		cell, ok := cellRaw.(map[string]any)
		if !ok {
			return coda.RowEdit{}, fmt.Errorf("cell %d must be an object with 'column' and 'value'", i)
		}
		column, ok := cell["column"].(string)
		if !ok || column == "" {
			return coda.RowEdit{}, fmt.Errorf("cell %d is missing its 'column'", i)
		}
		edit.Cells = append(edit.Cells, coda.CellEdit{Column: column, Value: cell["value"]})
	}
	return edit, nil
}

func parseRowEdits(v any) ([]coda.RowEdit, error) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("rows must be a non-empty array of row objects")
	}
	edits := make([]coda.RowEdit, 0, len(items))
	for i, item := range items {
		edit, err := parseRowEdit(item)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		edits = append(edits, edit)
	}
	return edits, nil
}

func handleUpsertRows(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "upsert"); result != nil {
		return result, nil
	}
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

	edits, err := parseRowEdits(args["rows"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	result, err := client.UpsertRows(ctx, docID, tableIDOrName, coda.UpsertRowsParams{
		Rows:           edits,
		KeyColumns:     tools.StringListArg(args, "keyColumns"),
		DisableParsing: tools.BoolArg(args, "disableParsing"),
	})
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}

func handleUpdateRow(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "update"); result != nil {
		return result, nil
	}
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tableIDOrName, err := tools.RequiredStringArg(args, "tableIdOrName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rowIDOrName, err := tools.RequiredStringArg(args, "rowIdOrName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	edit, err := parseRowEdit(args["row"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	result, err := client.UpdateRow(ctx, docID, tableIDOrName, rowIDOrName, coda.UpdateRowParams{
		Row:            edit,
		DisableParsing: tools.BoolArg(args, "disableParsing"),
	})
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}

func handleDeleteRow(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "delete"); result != nil {
		return result, nil
	}
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tableIDOrName, err := tools.RequiredStringArg(args, "tableIdOrName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rowIDOrName, err := tools.RequiredStringArg(args, "rowIdOrName")
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

	result, err := client.DeleteRow(ctx, docID, tableIDOrName, rowIDOrName)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}

func handleDeleteRows(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "delete"); result != nil {
		return result, nil
	}
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

	rowIDs := tools.StringListArg(args, "rowIds")
	if len(rowIDs) == 0 {
		return mcp.NewToolResultError("missing required parameter: rowIds"), nil
	}

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	result, err := client.DeleteRows(ctx, docID, tableIDOrName, rowIDs)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}

func handlePushButton(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "push"); result != nil {
		return result, nil
	}
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tableIDOrName, err := tools.RequiredStringArg(args, "tableIdOrName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rowIDOrName, err := tools.RequiredStringArg(args, "rowIdOrName")
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

	result, err := client.PushButton(ctx, docID, tableIDOrName, rowIDOrName, columnIDOrName)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(result.RequestID)

	return tools.RenderResult(result, "mutation", format), nil
}
