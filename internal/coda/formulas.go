package coda

import (
	"context"
	"net/http"
)

// ListFormulas returns the named formulas of a doc
// (GET /docs/{docId}/formulas).
func (c *Client) ListFormulas(ctx context.Context, docID, sortBy string, limit int, pageToken string) (*ListResponse[Formula], error) {
	q := newQueryParams()
	q.SetString("sortBy", sortBy)
	q.SetInt("limit", limit)
	q.SetString("pageToken", pageToken)
	return list[Formula](ctx, c, docPath(docID, "formulas"), q)
}

// GetFormula returns one named formula, including its current computed value
// (GET /docs/{docId}/formulas/{formulaIdOrName}).
func (c *Client) GetFormula(ctx context.Context, docID, formulaIDOrName string) (*Formula, error) {
	var formula Formula
	if err := c.do(ctx, http.MethodGet, docPath(docID, "formulas", formulaIDOrName), nil, nil, &formula); err != nil {
		return nil, err
	}
	return &formula, nil
}

// ListControls returns the controls of a doc (GET /docs/{docId}/controls).
func (c *Client) ListControls(ctx context.Context, docID, sortBy string, limit int, pageToken string) (*ListResponse[Control], error) {
	q := newQueryParams()
	q.SetString("sortBy", sortBy)
	q.SetInt("limit", limit)
	q.SetString("pageToken", pageToken)
	return list[Control](ctx, c, docPath(docID, "controls"), q)
}

// GetControl returns one control and its current value
// (GET /docs/{docId}/controls/{controlIdOrName}).
func (c *Client) GetControl(ctx context.Context, docID, controlIDOrName string) (*Control, error) {
	var control Control
	if err := c.do(ctx, http.MethodGet, docPath(docID, "controls", controlIDOrName), nil, nil, &control); err != nil {
		return nil, err
	}
	return &control, nil
}
