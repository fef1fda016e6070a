package automations

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools"
)

func handleTriggerAutomation(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "trigger"); result != nil {
		return result, nil
	}
	args := request.GetArguments()

	docID, err := tools.RequiredStringArg(args, "docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ruleID, err := tools.RequiredStringArg(args, "ruleId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := tools.ParseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload, _ := args["payload"].(map[string]any)

	client, err := tools.GetCodaClient(ctx, sc)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}

	trigger, err := client.TriggerAutomation(ctx, docID, ruleID, payload)
	if err != nil {
		return tools.NewToolResultFromError(err), nil
	}
	sc.TrackPendingMutation(trigger.RequestID)

	return tools.RenderResult(trigger, "automation", format), nil
}
