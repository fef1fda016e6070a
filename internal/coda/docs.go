package coda

import (
	"context"
	"net/http"
)

// ListDocsParams filters and paginates a document listing. Zero values are
// omitted from the outbound query.
type ListDocsParams struct {
	IsOwner     *bool
	IsPublished *bool
	IsStarred   *bool
	InGallery   *bool
	Query       string
	SourceDoc   string
	WorkspaceID string
	FolderID    string
	Limit       int
	PageToken   string
}

// ListDocs returns documents the token can access (GET /docs).
func (c *Client) ListDocs(ctx context.Context, params ListDocsParams) (*ListResponse[Doc], error) {
	q := newQueryParams()
	q.SetBool("isOwner", params.IsOwner)
	q.SetBool("isPublished", params.IsPublished)
	q.SetBool("isStarred", params.IsStarred)
	q.SetBool("inGallery", params.InGallery)
	q.SetString("query", params.Query)
	q.SetString("sourceDoc", params.SourceDoc)
	q.SetString("workspaceId", params.WorkspaceID)
	q.SetString("folderId", params.FolderID)
	q.SetInt("limit", params.Limit)
	q.SetString("pageToken", params.PageToken)
	return list[Doc](ctx, c, "/docs", q)
}

// GetDoc returns one document's metadata (GET /docs/{docId}).
func (c *Client) GetDoc(ctx context.Context, docID string) (*Doc, error) {
	var doc Doc
	if err := c.do(ctx, http.MethodGet, docPath(docID), nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateDocParams configures document creation. Only Title is commonly set;
// SourceDoc copies an existing document.
type CreateDocParams struct {
	Title       string    `json:"title,omitempty"`
	SourceDoc   string    `json:"sourceDoc,omitempty"`
	Timezone    string    `json:"timezone,omitempty"`
	FolderID    string    `json:"folderId,omitempty"`
	InitialPage *PageEdit `json:"initialPage,omitempty"`
}

// CreateDoc creates a new document (POST /docs). Doc creation is synchronous
// upstream and returns the new document rather than a mutation acknowledgment.
func (c *Client) CreateDoc(ctx context.Context, params CreateDocParams) (*Doc, error) {
	var doc Doc
	if err := c.do(ctx, http.MethodPost, "/docs", nil, params, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocParams carries partial document settings updates.
type UpdateDocParams struct {
	Title    string `json:"title,omitempty"`
	IconName string `json:"iconName,omitempty"`
}

// UpdateDoc updates document settings (PATCH /docs/{docId}, 202).
func (c *Client) UpdateDoc(ctx context.Context, docID string, params UpdateDocParams) (*MutationResult, error) {
	var result MutationResult
	if err := c.do(ctx, http.MethodPatch, docPath(docID), nil, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteDoc deletes a document (DELETE /docs/{docId}, 202).
func (c *Client) DeleteDoc(ctx context.Context, docID string) (*MutationResult, error) {
	var result MutationResult
	if err := c.do(ctx, http.MethodDelete, docPath(docID), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListCategories returns the available publishing categories
// (GET /categories).
func (c *Client) ListCategories(ctx context.Context) (*ListResponse[DocCategory], error) {
	return list[DocCategory](ctx, c, "/categories", nil)
}

// ResolveBrowserLink maps a user-facing document URL to API resource metadata
// (GET /resolveBrowserLink). With degradeGracefully the upstream resolves to
// the closest addressable parent instead of failing on unaddressable targets.
func (c *Client) ResolveBrowserLink(ctx context.Context, browserURL string, degradeGracefully bool) (*BrowserLinkResolution, error) {
	q := newQueryParams()
	q.SetString("url", browserURL)
	if degradeGracefully {
		v := true
		q.SetBool("degradeGracefully", &v)
	}
	var resolution BrowserLinkResolution
	if err := c.do(ctx, http.MethodGet, "/resolveBrowserLink", q, nil, &resolution); err != nil {
		return nil, err
	}
	return &resolution, nil
}

// MutationStatus polls an asynchronous mutation by the requestId returned in
// its acknowledgment (GET /mutationStatus/{requestId}).
func (c *Client) MutationStatus(ctx context.Context, requestID string) (*MutationStatus, error) {
	var status MutationStatus
	if err := c.do(ctx, http.MethodGet, joinPath("mutationStatus", requestID), nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// WhoAmI returns metadata about the token owner (GET /whoami). Useful as a
// cheap connectivity and credential check.
func (c *Client) WhoAmI(ctx context.Context) (*UserInfo, error) {
	var info UserInfo
	if err := c.do(ctx, http.MethodGet, "/whoami", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
