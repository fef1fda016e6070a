package output

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-coda/internal/coda"
)

func intPtr(v int) *int { return &v }

func TestRenderJSONDefault(t *testing.T) {
	doc := &coda.Doc{ID: "doc-1", Name: "Roadmap"}

	for _, format := range []Format{FormatJSON, ""} {
		out, err := Render(doc, "doc", format)
		require.NoError(t, err)
		assert.Contains(t, out, `"id": "doc-1"`)
		assert.Contains(t, out, `"name": "Roadmap"`)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(&coda.Doc{}, "doc", Format("yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestRenderDocListMarkdown(t *testing.T) {
	list := &coda.ListResponse[coda.Doc]{
		Items: []coda.Doc{
			{ID: "doc-1", Name: "Roadmap", OwnerName: "Ada", UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
			{ID: "doc-2", Name: "Budget | FY26", OwnerName: "Grace"},
		},
		TotalCount:    intPtr(10),
		HasMore:       true,
		NextPageToken: "tok-abc",
	}

	out, err := Render(list, "docs", FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, out, "## Docs (2 of 10)")
	assert.Contains(t, out, "| doc-1 | Roadmap | Ada | 2026-03-01 12:00 |")
	// pipe inside a cell must not break the table
	assert.Contains(t, out, `Budget \| FY26`)
	assert.Contains(t, out, "pageToken: tok-abc")
}

func TestRenderDocListNoTotal(t *testing.T) {
	list := &coda.ListResponse[coda.Doc]{
		Items: []coda.Doc{{ID: "doc-1", Name: "Roadmap"}},
	}

	out, err := Render(list, "docs", FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, out, "## Docs (1)")
	assert.NotContains(t, out, "More results available")
}

func TestRenderDocMarkdown(t *testing.T) {
	doc := &coda.Doc{
		ID:        "doc-1",
		Name:      "Roadmap",
		Owner:     "ada@example.com",
		OwnerName: "Ada",
		DocSize:   &coda.DocSize{PageCount: 3, TableAndViewCount: 2, TotalRowCount: 150},
	}

	out, err := Render(doc, "doc", FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, out, "## Doc: Roadmap")
	assert.Contains(t, out, "Ada <ada@example.com>")
	assert.Contains(t, out, "| Rows | 150 |")
}

func TestRenderRowListMarkdown(t *testing.T) {
	list := &coda.ListResponse[coda.Row]{
		Items: []coda.Row{
			{
				ID:   "i-1",
				Name: "First",
				Values: map[string]coda.CellValue{
					"c-name":  {Kind: coda.CellKindScalar, Scalar: "widget"},
					"c-count": {Kind: coda.CellKindScalar, Scalar: float64(42)},
				},
			},
			{
				ID:   "i-2",
				Name: "Second",
				Values: map[string]coda.CellValue{
					"c-name": {Kind: coda.CellKindScalar, Scalar: "gadget"},
				},
			},
		},
	}

	out, err := Render(list, "rows", FormatMarkdown)
	require.NoError(t, err)

	// cell keys become sorted columns
	assert.Contains(t, out, "| Row ID | Name | c-count | c-name |")
	assert.Contains(t, out, "| i-1 | First | 42 | widget |")
	assert.Contains(t, out, "| i-2 | Second |  | gadget |")
}

func TestRenderRowMarkdown(t *testing.T) {
	row := &coda.Row{
		ID:    "i-1",
		Name:  "First",
		Index: 3,
		Values: map[string]coda.CellValue{
			"Status": {Kind: coda.CellKindScalar, Scalar: "done"},
		},
	}

	out, err := Render(row, "row", FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, out, "## Row: First")
	assert.Contains(t, out, "### Values")
	assert.Contains(t, out, "| Status | done |")
}

func TestRenderMutationResultMarkdown(t *testing.T) {
	result := &coda.MutationResult{
		RequestID:   "req-123",
		AddedRowIDs: []string{"i-1", "i-2"},
	}

	out, err := Render(result, "mutation", FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, out, "## Mutation Accepted")
	assert.Contains(t, out, "| Request ID | req-123 |")
	assert.Contains(t, out, "i-1, i-2")
	assert.Contains(t, out, "coda_get_mutation_status")
}

func TestRenderMutationStatusMarkdown(t *testing.T) {
	out, err := Render(&coda.MutationStatus{Completed: true}, "status", FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, out, "| Status | completed |")

	out, err = Render(&coda.MutationStatus{Completed: false, Warning: "row skipped"}, "status", FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, out, "| Status | pending |")
	assert.Contains(t, out, "row skipped")
}

func TestRenderUserInfoMarkdown(t *testing.T) {
	user := &coda.UserInfo{
		Name:      "Ada",
		LoginID:   "ada@example.com",
		Type:      "user",
		TokenName: "ci-token",
		Scoped:    false,
	}

	out, err := Render(user, "user", FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, out, "## User: Ada")
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "| Scoped | no |")
}

func TestRenderPermissionListMarkdown(t *testing.T) {
	list := &coda.ListResponse[coda.Permission]{
		Items: []coda.Permission{
			{ID: "p-1", Access: "write", Principal: coda.Principal{Type: "email", Email: "ada@example.com"}},
			{ID: "p-2", Access: "readonly", Principal: coda.Principal{Type: "anyone"}},
			{ID: "p-3", Access: "readonly", Principal: coda.Principal{Type: "domain", Domain: "example.com"}},
		},
	}

	out, err := Render(list, "permissions", FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, out, "| p-1 | write | ada@example.com |")
	assert.Contains(t, out, "anyone with the link")
	assert.Contains(t, out, "domain: example.com")
}

func TestRenderGenericFallback(t *testing.T) {
	out, err := Render(map[string]string{"ok": "true"}, "connection", FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, out, "## connection")
	assert.Contains(t, out, "```json")
	assert.Contains(t, out, `"ok": "true"`)
}

func TestRenderLongCellTruncated(t *testing.T) {
	long := strings.Repeat("x", 500)
	list := &coda.ListResponse[coda.Doc]{
		Items: []coda.Doc{{ID: "doc-1", Name: long}},
	}

	out, err := Render(list, "docs", FormatMarkdown)
	require.NoError(t, err)

	assert.NotContains(t, out, long)
	assert.Contains(t, out, strings.Repeat("x", MaxCellChars-3)+"...")
}

func TestCellString(t *testing.T) {
	tests := []struct {
		name     string
		value    coda.CellValue
		expected string
	}{
		{"null", coda.CellValue{Kind: coda.CellKindNull}, ""},
		{"string scalar", coda.CellValue{Kind: coda.CellKindScalar, Scalar: "hello"}, "hello"},
		{"integer float", coda.CellValue{Kind: coda.CellKindScalar, Scalar: float64(7)}, "7"},
		{"fractional float", coda.CellValue{Kind: coda.CellKindScalar, Scalar: 2.5}, "2.5"},
		{"bool", coda.CellValue{Kind: coda.CellKindScalar, Scalar: true}, "true"},
		{
			"list",
			coda.CellValue{Kind: coda.CellKindList, List: []coda.CellValue{
				{Kind: coda.CellKindScalar, Scalar: "a"},
				{Kind: coda.CellKindScalar, Scalar: "b"},
			}},
			"a, b",
		},
		{
			"linked row with name",
			coda.CellValue{Kind: coda.CellKindLinkedRow, LinkedRow: &coda.LinkedRowValue{RowID: "i-9", Name: "Other"}},
			"Other",
		},
		{
			"linked row without name",
			coda.CellValue{Kind: coda.CellKindLinkedRow, LinkedRow: &coda.LinkedRowValue{RowID: "i-9"}},
			"i-9",
		},
		{
			"person",
			coda.CellValue{Kind: coda.CellKindPerson, Person: &coda.PersonValue{Name: "Ada", Email: "ada@example.com"}},
			"Ada <ada@example.com>",
		},
		{
			"currency",
			coda.CellValue{Kind: coda.CellKindCurrency, Currency: &coda.CurrencyValue{Currency: "USD", Amount: 12.5}},
			"USD 12.50",
		},
		{
			"image with name",
			coda.CellValue{Kind: coda.CellKindImage, Image: &coda.ImageValue{URL: "https://img.example/a.png", Name: "logo"}},
			"logo (https://img.example/a.png)",
		},
		{
			"date",
			coda.CellValue{Kind: coda.CellKindDate, Date: &coda.DateValue{Value: "2026-03-01"}},
			"2026-03-01",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CellString(tc.value))
		})
	}
}
