package coda

import (
	"context"
	"net/http"
)

// TriggerAutomation invokes a webhook-triggered automation rule
// (POST /docs/{docId}/hooks/automation/{ruleId}, 202). The payload is
// forwarded verbatim as the webhook body; a nil payload sends an empty
// JSON object.
func (c *Client) TriggerAutomation(ctx context.Context, docID, ruleID string, payload map[string]any) (*AutomationTrigger, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	var result AutomationTrigger
	if err := c.do(ctx, http.MethodPost, docPath(docID, "hooks", "automation", ruleID), nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
