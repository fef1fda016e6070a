package coda

import (
	"context"
	"net/http"
)

// ListPagesParams paginates a page listing.
type ListPagesParams struct {
	Limit     int
	PageToken string
}

// ListPages returns the pages of a document (GET /docs/{docId}/pages).
func (c *Client) ListPages(ctx context.Context, docID string, params ListPagesParams) (*ListResponse[Page], error) {
	q := newQueryParams()
	q.SetInt("limit", params.Limit)
	q.SetString("pageToken", params.PageToken)
	return list[Page](ctx, c, docPath(docID, "pages"), q)
}

// GetPage returns one page by ID or name
// (GET /docs/{docId}/pages/{pageIdOrName}).
func (c *Client) GetPage(ctx context.Context, docID, pageIDOrName string) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, docPath(docID, "pages", pageIDOrName), nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PageContent is the initial content of a created page.
type PageContent struct {
	Type          string         `json:"type"`
	CanvasContent *CanvasContent `json:"canvasContent,omitempty"`
}

// CanvasContent is page content in an exportable markup format.
type CanvasContent struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}

// PageEdit carries the writable fields of a page.
type PageEdit struct {
	Name         string       `json:"name,omitempty"`
	Subtitle     string       `json:"subtitle,omitempty"`
	IconName     string       `json:"iconName,omitempty"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	ParentPageID string       `json:"parentPageId,omitempty"`
	PageContent  *PageContent `json:"pageContent,omitempty"`
}

// CreatePage creates a page (POST /docs/{docId}/pages, 202). The
// acknowledgment's ID field carries the new page's ID.
func (c *Client) CreatePage(ctx context.Context, docID string, params PageEdit) (*MutationResult, error) {
	var result MutationResult
	if err := c.do(ctx, http.MethodPost, docPath(docID, "pages"), nil, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdatePageParams carries page updates, including full content replacement.
type UpdatePageParams struct {
	Name          string         `json:"name,omitempty"`
	Subtitle      string         `json:"subtitle,omitempty"`
	IconName      string         `json:"iconName,omitempty"`
	ImageURL      string         `json:"imageUrl,omitempty"`
	IsHidden      *bool          `json:"isHidden,omitempty"`
	ContentUpdate *ContentUpdate `json:"contentUpdate,omitempty"`
}

// ContentUpdate replaces or appends page content.
type ContentUpdate struct {
	InsertionMode string        `json:"insertionMode"`
	CanvasContent CanvasContent `json:"canvasContent"`
}

// UpdatePage updates a page (PUT /docs/{docId}/pages/{pageIdOrName}, 202).
func (c *Client) UpdatePage(ctx context.Context, docID, pageIDOrName string, params UpdatePageParams) (*MutationResult, error) {
	var result MutationResult
	if err := c.do(ctx, http.MethodPut, docPath(docID, "pages", pageIDOrName), nil, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePage deletes a page (DELETE /docs/{docId}/pages/{pageIdOrName}, 202).
func (c *Client) DeletePage(ctx context.Context, docID, pageIDOrName string) (*MutationResult, error) {
	var result MutationResult
	if err := c.do(ctx, http.MethodDelete, docPath(docID, "pages", pageIDOrName), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BeginPageContentExport starts a page-content export
// (POST /docs/{docId}/pages/{pageIdOrName}/export). outputFormat is "html"
// or "markdown". The export runs asynchronously; poll with
// PageContentExportStatus using the returned ID.
func (c *Client) BeginPageContentExport(ctx context.Context, docID, pageIDOrName, outputFormat string) (*PageContentExport, error) {
	body := map[string]string{"outputFormat": outputFormat}
	var export PageContentExport
	if err := c.do(ctx, http.MethodPost, docPath(docID, "pages", pageIDOrName, "export"), nil, body, &export); err != nil {
		return nil, err
	}
	return &export, nil
}

// PageContentExportStatus polls a previously started content export
// (GET /docs/{docId}/pages/{pageIdOrName}/export/{requestId}).
func (c *Client) PageContentExportStatus(ctx context.Context, docID, pageIDOrName, requestID string) (*PageContentExportStatus, error) {
	var status PageContentExportStatus
	if err := c.do(ctx, http.MethodGet, docPath(docID, "pages", pageIDOrName, "export", requestID), nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
