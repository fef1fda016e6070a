package coda

import (
	"context"
	"net/http"
)

// ListTablesParams filters and paginates a table listing.
type ListTablesParams struct {
	// TableTypes restricts results, e.g. ["table"] or ["view"]. Emitted as
	// repeated query parameters.
	TableTypes []string
	SortBy     string
	Limit      int
	PageToken  string
}

// ListTables returns the tables and views of a document
// (GET /docs/{docId}/tables).
func (c *Client) ListTables(ctx context.Context, docID string, params ListTablesParams) (*ListResponse[Table], error) {
	q := newQueryParams()
	q.SetList("tableTypes", params.TableTypes)
	q.SetString("sortBy", params.SortBy)
	q.SetInt("limit", params.Limit)
	q.SetString("pageToken", params.PageToken)
	return list[Table](ctx, c, docPath(docID, "tables"), q)
}

// GetTable returns one table or view by ID or name
// (GET /docs/{docId}/tables/{tableIdOrName}).
func (c *Client) GetTable(ctx context.Context, docID, tableIDOrName string) (*Table, error) {
	var table Table
	if err := c.do(ctx, http.MethodGet, docPath(docID, "tables", tableIDOrName), nil, nil, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

// ListColumnsParams filters and paginates a column listing.
type ListColumnsParams struct {
	// VisibleOnly restricts results to columns visible in the table layout.
	VisibleOnly *bool
	Limit       int
	PageToken   string
}

// ListColumns returns the columns of a table
// (GET /docs/{docId}/tables/{tableIdOrName}/columns).
func (c *Client) ListColumns(ctx context.Context, docID, tableIDOrName string, params ListColumnsParams) (*ListResponse[Column], error) {
	q := newQueryParams()
	q.SetBool("visibleOnly", params.VisibleOnly)
	q.SetInt("limit", params.Limit)
	q.SetString("pageToken", params.PageToken)
	return list[Column](ctx, c, docPath(docID, "tables", tableIDOrName, "columns"), q)
}

// GetColumn returns one column by ID or name
// (GET /docs/{docId}/tables/{tableIdOrName}/columns/{columnIdOrName}).
func (c *Client) GetColumn(ctx context.Context, docID, tableIDOrName, columnIDOrName string) (*Column, error) {
	var column Column
	if err := c.do(ctx, http.MethodGet, docPath(docID, "tables", tableIDOrName, "columns", columnIDOrName), nil, nil, &column); err != nil {
		return nil, err
	}
	return &column, nil
}
