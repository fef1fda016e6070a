package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/giantswarm/mcp-coda/internal/coda"
)

// Format selects the rendering of a tool result.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Render formats a result value for return to the MCP client. The entity
// tag labels the value in markdown output and in the generic fallback;
// dispatch is on the value's concrete type. Unknown types fall back to a
// fenced JSON block so new result shapes degrade gracefully instead of
// erroring.
func Render(v any, entity string, format Format) (string, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("rendering %s as json: %w", entity, err)
		}
		return CapResponse(string(data)), nil
	case FormatMarkdown:
		return CapResponse(renderMarkdown(v, entity)), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

func renderMarkdown(v any, entity string) string {
	switch val := v.(type) {
	case *coda.ListResponse[coda.Doc]:
		return renderDocList(val)
	case *coda.Doc:
		return renderDoc(val)
	case *coda.ListResponse[coda.Page]:
		return renderPageList(val)
	case *coda.Page:
		return renderPage(val)
	case *coda.ListResponse[coda.Table]:
		return renderTableList(val)
	case *coda.Table:
		return renderTable(val)
	case *coda.ListResponse[coda.Column]:
		return renderColumnList(val)
	case *coda.Column:
		return renderColumn(val)
	case *coda.ListResponse[coda.Row]:
		return renderRowList(val)
	case *coda.Row:
		return renderRow(val)
	case *coda.ListResponse[coda.Formula]:
		return renderFormulaList(val)
	case *coda.Formula:
		return renderFormula(val)
	case *coda.ListResponse[coda.Control]:
		return renderControlList(val)
	case *coda.Control:
		return renderControl(val)
	case *coda.ListResponse[coda.Permission]:
		return renderPermissionList(val)
	case *coda.ListResponse[coda.Principal]:
		return renderPrincipalList(val)
	case *coda.ListResponse[coda.DocCategory]:
		return renderCategoryList(val)
	case *coda.UserInfo:
		return renderUserInfo(val)
	case *coda.MutationResult:
		return renderMutationResult(val)
	case *coda.MutationStatus:
		return renderMutationStatus(val)
	case *coda.ACLMetadata:
		return renderACLMetadata(val)
	case *coda.BrowserLinkResolution:
		return renderBrowserLink(val)
	case *coda.PageContentExport:
		return renderPageExport(val)
	case *coda.PageContentExportStatus:
		return renderPageExportStatus(val)
	case *coda.AutomationTrigger:
		return renderAutomationTrigger(val)
	default:
		return renderGeneric(v, entity)
	}
}

// renderGeneric is the fallback for values without a dedicated markdown
// rendering.
func renderGeneric(v any, entity string) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("## %s\n\n(unrenderable value)", entity)
	}
	return fmt.Sprintf("## %s\n\n```json\n%s\n```", entity, string(data))
}

// mdTable builds a markdown table. Cell values are escaped and width-bounded.
func mdTable(headers []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = escapeCell(TruncateCell(cell))
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// listHeader renders the "N items" line, with the total when upstream
// supplied one.
func listHeader(title string, count int, total *int) string {
	if total != nil && *total > count {
		return fmt.Sprintf("## %s (%d of %d)\n\n", title, count, *total)
	}
	return fmt.Sprintf("## %s (%d)\n\n", title, count)
}

// pageFooter renders the pagination hint when more results exist.
func pageFooter(hasMore bool, token string) string {
	if !hasMore {
		return ""
	}
	return fmt.Sprintf("\nMore results available. Pass `pageToken: %s` to fetch the next page.\n", token)
}

// kvSection renders a two-column field/value detail table, skipping empty
// values.
func kvSection(title string, pairs [][2]string) string {
	var b strings.Builder
	b.WriteString("## " + title + "\n\n")

	rows := make([][]string, 0, len(pairs))
	for _, pair := range pairs {
		if pair[1] == "" {
			continue
		}
		rows = append(rows, []string{pair[0], pair[1]})
	}
	b.WriteString(mdTable([]string{"Field", "Value"}, rows))
	return b.String()
}

// CellString flattens a cell value into display text. Lists join their
// elements; rich values render their most useful field.
func CellString(v coda.CellValue) string {
	switch v.Kind {
	case coda.CellKindNull:
		return ""
	case coda.CellKindScalar:
		if v.Scalar == nil {
			return ""
		}
		if f, ok := v.Scalar.(float64); ok && f == float64(int64(f)) {
			return fmt.Sprintf("%d", int64(f))
		}
		return fmt.Sprintf("%v", v.Scalar)
	case coda.CellKindList:
		parts := make([]string, 0, len(v.List))
		for _, item := range v.List {
			parts = append(parts, CellString(item))
		}
		return strings.Join(parts, ", ")
	case coda.CellKindLinkedRow:
		if v.LinkedRow == nil {
			return ""
		}
		if v.LinkedRow.Name != "" {
			return v.LinkedRow.Name
		}
		return v.LinkedRow.RowID
	case coda.CellKindPerson:
		if v.Person == nil {
			return ""
		}
		if v.Person.Email != "" {
			return fmt.Sprintf("%s <%s>", v.Person.Name, v.Person.Email)
		}
		return v.Person.Name
	case coda.CellKindCurrency:
		if v.Currency == nil {
			return ""
		}
		return fmt.Sprintf("%s %.2f", v.Currency.Currency, v.Currency.Amount)
	case coda.CellKindImage:
		if v.Image == nil {
			return ""
		}
		if v.Image.Name != "" {
			return fmt.Sprintf("%s (%s)", v.Image.Name, v.Image.URL)
		}
		return v.Image.URL
	case coda.CellKindDate:
		if v.Date == nil {
			return ""
		}
		return v.Date.Value
	default:
		return ""
	}
}
