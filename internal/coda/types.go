package coda

import (
	"encoding/json"
	"time"
)

// ListResponse is the normalized shape of every paginated listing. Items
// preserve the order returned by the upstream API. HasMore is derived locally
// from the presence of NextPageToken; the upstream payload does not supply it.
type ListResponse[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken,omitempty"`
	NextPageLink  string `json:"nextPageLink,omitempty"`
	TotalCount    *int   `json:"totalCount,omitempty"`
	HasMore       bool   `json:"hasMore"`
}

// listEnvelope mirrors the raw upstream listing payload before normalization.
type listEnvelope[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken"`
	NextPageLink  string `json:"nextPageLink"`
	TotalCount    *int   `json:"totalCount"`
}

func (e listEnvelope[T]) normalize() *ListResponse[T] {
	return &ListResponse[T]{
		Items:         e.Items,
		NextPageToken: e.NextPageToken,
		NextPageLink:  e.NextPageLink,
		TotalCount:    e.TotalCount,
		HasMore:       e.NextPageToken != "",
	}
}

// MutationResult is the immediate acknowledgment of an accepted asynchronous
// write (HTTP 202). Receipt does not guarantee completion; poll with
// Client.MutationStatus using RequestID. Affected-ID fields are populated
// per operation and passed through unmodified from upstream.
type MutationResult struct {
	RequestID     string   `json:"requestId"`
	ID            string   `json:"id,omitempty"`
	AddedRowIDs   []string `json:"addedRowIds,omitempty"`
	UpdatedRowIDs []string `json:"updatedRowIds,omitempty"`
	RowIDs        []string `json:"rowIds,omitempty"`
	RowID         string   `json:"rowId,omitempty"`
	ColumnID      string   `json:"columnId,omitempty"`
}

// MutationStatus reports the state of an asynchronous mutation. Warning is
// best-effort diagnostic text, not a structured error signal.
type MutationStatus struct {
	Completed bool   `json:"completed"`
	Warning   string `json:"warning,omitempty"`
}

// UserInfo describes the authenticated API token owner (GET /whoami).
type UserInfo struct {
	Name        string  `json:"name"`
	LoginID     string  `json:"loginId"`
	Type        string  `json:"type"`
	Scoped      bool    `json:"scoped"`
	TokenName   string  `json:"tokenName"`
	Href        string  `json:"href"`
	PictureLink string  `json:"pictureLink,omitempty"`
	Workspace   *DocRef `json:"workspace,omitempty"`
}

// DocRef is a lightweight reference to another resource.
type DocRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Href string `json:"href,omitempty"`
	Name string `json:"name,omitempty"`
}

// Doc is a Coda document snapshot.
type Doc struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	Href        string        `json:"href"`
	BrowserLink string        `json:"browserLink"`
	Name        string        `json:"name"`
	Owner       string        `json:"owner"`
	OwnerName   string        `json:"ownerName"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	IconName    string        `json:"iconName,omitempty"`
	DocSize     *DocSize      `json:"docSize,omitempty"`
	SourceDoc   *DocRef       `json:"sourceDoc,omitempty"`
	Published   *DocPublished `json:"published,omitempty"`
	Folder      *DocRef       `json:"folder,omitempty"`
	Workspace   *DocRef       `json:"workspace,omitempty"`
	WorkspaceID string        `json:"workspaceId,omitempty"`
	FolderID    string        `json:"folderId,omitempty"`
}

// DocSize summarizes document size limits usage.
type DocSize struct {
	TotalRowCount     int  `json:"totalRowCount"`
	TableAndViewCount int  `json:"tableAndViewCount"`
	PageCount         int  `json:"pageCount"`
	OverApiSizeLimit  bool `json:"overApiSizeLimit"`
}

// DocPublished describes a document's publish state.
type DocPublished struct {
	BrowserLink  string   `json:"browserLink"`
	Discoverable bool     `json:"discoverable"`
	EarnCredit   bool     `json:"earnCredit"`
	Mode         string   `json:"mode"`
	Categories   []string `json:"categories,omitempty"`
	Description  string   `json:"description,omitempty"`
	ImageLink    string   `json:"imageLink,omitempty"`
}

// DocCategory is a publishing category (GET /categories).
type DocCategory struct {
	Name string `json:"name"`
}

// BrowserLinkResolution maps a user-facing document URL to API resource
// metadata (GET /resolveBrowserLink).
type BrowserLinkResolution struct {
	Type     string  `json:"type"`
	Href     string  `json:"href"`
	Resource *DocRef `json:"resource"`
}

// Page is a document page snapshot.
type Page struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Href        string   `json:"href"`
	BrowserLink string   `json:"browserLink"`
	Name        string   `json:"name"`
	Subtitle    string   `json:"subtitle,omitempty"`
	IconName    string   `json:"iconName,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	ContentType string   `json:"contentType,omitempty"`
	IsHidden    bool     `json:"isHidden,omitempty"`
	Parent      *DocRef  `json:"parent,omitempty"`
	Children    []DocRef `json:"children,omitempty"`
}

// PageContentExport is the acknowledgment of a page-content export request.
type PageContentExport struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Href   string `json:"href"`
}

// PageContentExportStatus reports on an in-flight or finished export. The
// DownloadLink is only present once Status is "complete".
type PageContentExportStatus struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Href         string `json:"href"`
	DownloadLink string `json:"downloadLink,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Table is a table or view snapshot.
type Table struct {
	ID            string      `json:"id"`
	Type          string      `json:"type"`
	TableType     string      `json:"tableType"`
	Href          string      `json:"href"`
	BrowserLink   string      `json:"browserLink"`
	Name          string      `json:"name"`
	Parent        *DocRef     `json:"parent,omitempty"`
	ParentTable   *DocRef     `json:"parentTable,omitempty"`
	DisplayColumn *DocRef     `json:"displayColumn,omitempty"`
	RowCount      int         `json:"rowCount"`
	Sorts         []TableSort `json:"sorts,omitempty"`
	Layout        string      `json:"layout,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// TableSort describes one sort applied to a table.
type TableSort struct {
	Column    *DocRef `json:"column"`
	Direction string  `json:"direction"`
}

// Column is a table column snapshot.
type Column struct {
	ID           string        `json:"id"`
	Type         string        `json:"type"`
	Href         string        `json:"href"`
	Name         string        `json:"name"`
	Display      bool          `json:"display,omitempty"`
	Calculated   bool          `json:"calculated,omitempty"`
	Formula      string        `json:"formula,omitempty"`
	DefaultValue string        `json:"defaultValue,omitempty"`
	Format       *ColumnFormat `json:"format,omitempty"`
	Parent       *DocRef       `json:"parent,omitempty"`
}

// ColumnFormat describes a column's value format.
type ColumnFormat struct {
	Type      string `json:"type"`
	IsArray   bool   `json:"isArray,omitempty"`
	Precision int    `json:"precision,omitempty"`
	Currency  string `json:"currencyCode,omitempty"`
}

// Row is a table row snapshot. Values maps column ID (or name, when the
// listing was requested with useColumnNames) to the cell value.
type Row struct {
	ID          string               `json:"id"`
	Type        string               `json:"type"`
	Href        string               `json:"href"`
	Name        string               `json:"name"`
	Index       int                  `json:"index"`
	BrowserLink string               `json:"browserLink"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Values      map[string]CellValue `json:"values"`
	Parent      *DocRef              `json:"parent,omitempty"`
}

// Formula is a named formula snapshot.
type Formula struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Href   string  `json:"href"`
	Name   string  `json:"name"`
	Parent *DocRef `json:"parent,omitempty"`
	Value  any     `json:"value,omitempty"`
}

// Control is a document control (button, slider, etc.) snapshot.
type Control struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Href        string  `json:"href"`
	Name        string  `json:"name"`
	ControlType string  `json:"controlType"`
	Parent      *DocRef `json:"parent,omitempty"`
	Value       any     `json:"value,omitempty"`
}

// AutomationTrigger is the acknowledgment of a triggered automation rule.
type AutomationTrigger struct {
	RequestID string `json:"requestId"`
}

// Principal identifies who a permission applies to. Exactly the fields for
// the given Type are present: email for "email", nothing extra for "anyone",
// domain for "domain".
type Principal struct {
	Type   string `json:"type"`
	Email  string `json:"email,omitempty"`
	Domain string `json:"domain,omitempty"`
}

// Permission is one access-control entry on a document.
type Permission struct {
	ID        string    `json:"id"`
	Access    string    `json:"access"`
	Principal Principal `json:"principal"`
}

// ACLMetadata reports what sharing operations the token may perform.
type ACLMetadata struct {
	CanShare        bool `json:"canShare"`
	CanShareWithOrg bool `json:"canShareWithWorkspace"`
	CanCopy         bool `json:"canCopy"`
}

// CellKind tags the variant carried by a CellValue.
type CellKind string

const (
	CellKindScalar    CellKind = "scalar"
	CellKindNull      CellKind = "null"
	CellKindList      CellKind = "list"
	CellKindLinkedRow CellKind = "linkedRow"
	CellKindPerson    CellKind = "person"
	CellKindCurrency  CellKind = "currency"
	CellKindImage     CellKind = "image"
	CellKindDate      CellKind = "date"
)

// LinkedRowValue references a row in another table.
type LinkedRowValue struct {
	RowID   string `json:"rowId"`
	TableID string `json:"tableId"`
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
}

// PersonValue references a person (workspace member or external email).
type PersonValue struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CurrencyValue is a monetary amount with its currency code.
type CurrencyValue struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// ImageValue references an image cell.
type ImageValue struct {
	URL    string `json:"url"`
	Name   string `json:"name,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// DateValue is a date or datetime cell in the upstream's ISO-8601 text form.
type DateValue struct {
	Value string `json:"value"`
}

// CellValue is the tagged union over everything a table cell can hold. The
// Kind tag determines which variant field is populated; plain scalars carry
// their raw JSON value in Scalar.
type CellValue struct {
	Kind      CellKind        `json:"kind"`
	Scalar    any             `json:"scalar,omitempty"`
	List      []CellValue     `json:"list,omitempty"`
	LinkedRow *LinkedRowValue `json:"linkedRow,omitempty"`
	Person    *PersonValue    `json:"person,omitempty"`
	Currency  *CurrencyValue  `json:"currency,omitempty"`
	Image     *ImageValue     `json:"image,omitempty"`
	Date      *DateValue      `json:"date,omitempty"`
}

// richValue mirrors the upstream rich-value object shape. The @type tag
// determines the variant; see UnmarshalJSON.
type richValue struct {
	Type           string  `json:"@type"`
	AdditionalType string  `json:"additionalType"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Currency       string  `json:"currency"`
	Amount         float64 `json:"amount"`
	URL            string  `json:"url"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	RowID          string  `json:"rowId"`
	TableID        string  `json:"tableId"`
	Value          string  `json:"value"`
}

// UnmarshalJSON decodes an upstream cell value into the tagged union.
// Dispatch is on the @type tag the rich value format carries; values without
// a recognized tag degrade to plain scalars so an upstream format addition
// never fails a row read.
func (v *CellValue) UnmarshalJSON(data []byte) error {
	// Fast paths: null and arrays.
	trimmed := firstNonSpace(data)
	switch trimmed {
	case 'n':
		*v = CellValue{Kind: CellKindNull}
		return nil
	case '[':
		var list []CellValue
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*v = CellValue{Kind: CellKindList, List: list}
		return nil
	case '{':
		var rich richValue
		if err := json.Unmarshal(data, &rich); err == nil {
			if decoded, ok := rich.decode(); ok {
				*v = decoded
				return nil
			}
		}
	}

	var scalar any
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}
	*v = CellValue{Kind: CellKindScalar, Scalar: scalar}
	return nil
}

func (r richValue) decode() (CellValue, bool) {
	switch r.Type {
	case "Person":
		return CellValue{Kind: CellKindPerson, Person: &PersonValue{Name: r.Name, Email: r.Email}}, true
	case "MonetaryAmount":
		return CellValue{Kind: CellKindCurrency, Currency: &CurrencyValue{Currency: r.Currency, Amount: r.Amount}}, true
	case "ImageObject":
		return CellValue{Kind: CellKindImage, Image: &ImageValue{URL: r.URL, Name: r.Name, Width: r.Width, Height: r.Height}}, true
	case "Date", "DateTime":
		return CellValue{Kind: CellKindDate, Date: &DateValue{Value: r.Value}}, true
	case "StructuredValue":
		if r.AdditionalType == "row" || r.RowID != "" {
			return CellValue{Kind: CellKindLinkedRow, LinkedRow: &LinkedRowValue{
				RowID:   r.RowID,
				TableID: r.TableID,
				Name:    r.Name,
				URL:     r.URL,
			}}, true
		}
	}
	return CellValue{}, false
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

// RowEdit is one row in a write operation: the cells to set.
type RowEdit struct {
	Cells []CellEdit `json:"cells"`
}

// CellEdit sets one cell by column ID or name.
type CellEdit struct {
	Column string `json:"column"`
	Value  any    `json:"value"`
}
