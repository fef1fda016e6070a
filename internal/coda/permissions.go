package coda

import (
	"context"
	"net/http"
)

// GetACLMetadata reports what sharing actions the requesting token may
// perform on a doc (GET /docs/{docId}/acl/metadata).
func (c *Client) GetACLMetadata(ctx context.Context, docID string) (*ACLMetadata, error) {
	var meta ACLMetadata
	if err := c.do(ctx, http.MethodGet, docPath(docID, "acl", "metadata"), nil, nil, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// ListPermissions returns the sharing entries of a doc
// (GET /docs/{docId}/acl/permissions).
func (c *Client) ListPermissions(ctx context.Context, docID string, limit int, pageToken string) (*ListResponse[Permission], error) {
	q := newQueryParams()
	q.SetInt("limit", limit)
	q.SetString("pageToken", pageToken)
	return list[Permission](ctx, c, docPath(docID, "acl", "permissions"), q)
}

// AddPermissionParams grants access to a principal.
type AddPermissionParams struct {
	Access    string    `json:"access"`
	Principal Principal `json:"principal"`
	// SuppressEmail skips the notification email upstream would otherwise
	// send to the grantee.
	SuppressEmail *bool `json:"suppressEmail,omitempty"`
}

// AddPermission shares a doc with a principal
// (POST /docs/{docId}/acl/permissions).
func (c *Client) AddPermission(ctx context.Context, docID string, params AddPermissionParams) (*MutationResult, error) {
	var result MutationResult
	if err := c.do(ctx, http.MethodPost, docPath(docID, "acl", "permissions"), nil, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePermission revokes a sharing entry by its ID
// (DELETE /docs/{docId}/acl/permissions/{permissionId}).
func (c *Client) DeletePermission(ctx context.Context, docID, permissionID string) (*MutationResult, error) {
	var result MutationResult
	if err := c.do(ctx, http.MethodDelete, docPath(docID, "acl", "permissions", permissionID), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchPrincipals looks up users and groups eligible for sharing a doc
// (GET /docs/{docId}/acl/principals/search).
func (c *Client) SearchPrincipals(ctx context.Context, docID, query string) (*ListResponse[Principal], error) {
	q := newQueryParams()
	q.SetString("query", query)
	return list[Principal](ctx, c, docPath(docID, "acl", "principals", "search"), q)
}

// PublishDocParams configures doc publishing. All fields are optional;
// omitted fields keep their current published settings upstream.
type PublishDocParams struct {
	Slug          string   `json:"slug,omitempty"`
	Discoverable  *bool    `json:"discoverable,omitempty"`
	EarnCredit    *bool    `json:"earnCredit,omitempty"`
	CategoryNames []string `json:"categoryNames,omitempty"`
	Mode          string   `json:"mode,omitempty"`
}

// PublishDoc publishes a doc to the public gallery
// (PUT /docs/{docId}/publish, 202).
func (c *Client) PublishDoc(ctx context.Context, docID string, params PublishDocParams) (*MutationResult, error) {
	var result MutationResult
	if err := c.do(ctx, http.MethodPut, docPath(docID, "publish"), nil, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UnpublishDoc removes a doc from the public gallery
// (DELETE /docs/{docId}/publish).
func (c *Client) UnpublishDoc(ctx context.Context, docID string) (*MutationResult, error) {
	var result MutationResult
	if err := c.do(ctx, http.MethodDelete, docPath(docID, "publish"), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
