package coda

import (
	"context"
	"net/http"
)

// ListRowsParams filters, sorts and paginates a row listing.
type ListRowsParams struct {
	// Query filters rows by a column value, in the upstream's
	// `column:"value"` syntax. Passed through unmodified.
	Query string
	// SortBy is one of "createdAt", "natural" or "updatedAt".
	SortBy string
	// UseColumnNames keys row values by column name instead of column ID.
	UseColumnNames *bool
	// ValueFormat is one of "simple", "simpleWithArrays" or "rich".
	ValueFormat string
	VisibleOnly *bool
	SyncToken   string
	Limit       int
	PageToken   string
}

// ListRows returns the rows of a table
// (GET /docs/{docId}/tables/{tableIdOrName}/rows).
func (c *Client) ListRows(ctx context.Context, docID, tableIDOrName string, params ListRowsParams) (*ListResponse[Row], error) {
	q := newQueryParams()
	q.SetString("query", params.Query)
	q.SetString("sortBy", params.SortBy)
	q.SetBool("useColumnNames", params.UseColumnNames)
	q.SetString("valueFormat", params.ValueFormat)
	q.SetBool("visibleOnly", params.VisibleOnly)
	q.SetString("syncToken", params.SyncToken)
	q.SetInt("limit", params.Limit)
	q.SetString("pageToken", params.PageToken)
	return list[Row](ctx, c, docPath(docID, "tables", tableIDOrName, "rows"), q)
}

// GetRowParams configures a single-row read.
type GetRowParams struct {
	UseColumnNames *bool
	ValueFormat    string
}

// GetRow returns one row by ID or name
// (GET /docs/{docId}/tables/{tableIdOrName}/rows/{rowIdOrName}).
func (c *Client) GetRow(ctx context.Context, docID, tableIDOrName, rowIDOrName string, params GetRowParams) (*Row, error) {
	q := newQueryParams()
	q.SetBool("useColumnNames", params.UseColumnNames)
	q.SetString("valueFormat", params.ValueFormat)
	var row Row
	if err := c.do(ctx, http.MethodGet, docPath(docID, "tables", tableIDOrName, "rows", rowIDOrName), q, nil, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertRowsParams carries rows to insert or update. When KeyColumns is
// supplied, upstream matches incoming rows against existing rows on those
// columns and updates matches in place; the matching and merge logic is
// entirely upstream and opaque to this client. Without KeyColumns every row
// is an insert.
type UpsertRowsParams struct {
	Rows       []RowEdit `json:"rows"`
	KeyColumns []string  `json:"keyColumns,omitempty"`
	// DisableParsing suppresses the upstream's automatic value parsing (e.g.
	// turning URL-looking strings into link values). Sent as a query
	// parameter, not in the body.
	DisableParsing *bool `json:"-"`
}

// UpsertRows inserts or updates rows
// (POST /docs/{docId}/tables/{tableIdOrName}/rows, 202). The acknowledgment
// carries addedRowIds, and updatedRowIds when key-column matching applied;
// both are upstream-determined and passed through unmodified.
func (c *Client) UpsertRows(ctx context.Context, docID, tableIDOrName string, params UpsertRowsParams) (*MutationResult, error) {
	q := newQueryParams()
	q.SetBool("disableParsing", params.DisableParsing)
	var result MutationResult
	if err := c.do(ctx, http.MethodPost, docPath(docID, "tables", tableIDOrName, "rows"), q, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateRowParams carries a single-row update.
type UpdateRowParams struct {
	Row            RowEdit `json:"row"`
	DisableParsing *bool   `json:"-"`
}

// UpdateRow replaces the given cells of one row
// (PUT /docs/{docId}/tables/{tableIdOrName}/rows/{rowIdOrName}, 202).
func (c *Client) UpdateRow(ctx context.Context, docID, tableIDOrName, rowIDOrName string, params UpdateRowParams) (*MutationResult, error) {
	q := newQueryParams()
	q.SetBool("disableParsing", params.DisableParsing)
	var result MutationResult
	if err := c.do(ctx, http.MethodPut, docPath(docID, "tables", tableIDOrName, "rows", rowIDOrName), q, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteRow deletes one row
// (DELETE /docs/{docId}/tables/{tableIdOrName}/rows/{rowIdOrName}, 202).
func (c *Client) DeleteRow(ctx context.Context, docID, tableIDOrName, rowIDOrName string) (*MutationResult, error) {
	var result MutationResult
	if err := c.do(ctx, http.MethodDelete, docPath(docID, "tables", tableIDOrName, "rows", rowIDOrName), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteRows deletes multiple rows by ID in one call
// (DELETE /docs/{docId}/tables/{tableIdOrName}/rows, 202).
func (c *Client) DeleteRows(ctx context.Context, docID, tableIDOrName string, rowIDs []string) (*MutationResult, error) {
	body := map[string][]string{"rowIds": rowIDs}
	var result MutationResult
	if err := c.do(ctx, http.MethodDelete, docPath(docID, "tables", tableIDOrName, "rows"), nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PushButton pushes a button cell
// (POST /docs/{docId}/tables/{tableIdOrName}/rows/{rowIdOrName}/buttons/{columnIdOrName}, 202).
func (c *Client) PushButton(ctx context.Context, docID, tableIDOrName, rowIDOrName, columnIDOrName string) (*MutationResult, error) {
	var result MutationResult
	if err := c.do(ctx, http.MethodPost, docPath(docID, "tables", tableIDOrName, "rows", rowIDOrName, "buttons", columnIDOrName), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
