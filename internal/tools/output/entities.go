package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/giantswarm/mcp-coda/internal/coda"
)

const timeFormat = "2006-01-02 15:04"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeFormat)
}

func refName(ref *coda.DocRef) string {
	if ref == nil {
		return ""
	}
	if ref.Name != "" {
		return ref.Name
	}
	return ref.ID
}

func renderDocList(list *coda.ListResponse[coda.Doc]) string {
	rows := make([][]string, 0, len(list.Items))
	for _, doc := range list.Items {
		rows = append(rows, []string{
			doc.ID, doc.Name, doc.OwnerName, formatTime(doc.UpdatedAt), doc.BrowserLink,
		})
	}
	return listHeader("Docs", len(list.Items), list.TotalCount) +
		mdTable([]string{"ID", "Name", "Owner", "Updated", "Link"}, rows) +
		pageFooter(list.HasMore, list.NextPageToken)
}

func renderDoc(doc *coda.Doc) string {
	pairs := [][2]string{
		{"ID", doc.ID},
		{"Name", doc.Name},
		{"Owner", fmt.Sprintf("%s <%s>", doc.OwnerName, doc.Owner)},
		{"Created", formatTime(doc.CreatedAt)},
		{"Updated", formatTime(doc.UpdatedAt)},
		{"Folder", refName(doc.Folder)},
		{"Workspace", refName(doc.Workspace)},
		{"Link", doc.BrowserLink},
	}
	if doc.DocSize != nil {
		pairs = append(pairs,
			[2]string{"Pages", strconv.Itoa(doc.DocSize.PageCount)},
			[2]string{"Tables", strconv.Itoa(doc.DocSize.TableAndViewCount)},
			[2]string{"Rows", strconv.Itoa(doc.DocSize.TotalRowCount)},
		)
	}
	if doc.Published != nil {
		pairs = append(pairs, [2]string{"Published", doc.Published.BrowserLink})
	}
	return kvSection("Doc: "+doc.Name, pairs)
}

func renderPageList(list *coda.ListResponse[coda.Page]) string {
	rows := make([][]string, 0, len(list.Items))
	for _, page := range list.Items {
		rows = append(rows, []string{
			page.ID, page.Name, page.ContentType, refName(page.Parent), page.BrowserLink,
		})
	}
	return listHeader("Pages", len(list.Items), list.TotalCount) +
		mdTable([]string{"ID", "Name", "Content Type", "Parent", "Link"}, rows) +
		pageFooter(list.HasMore, list.NextPageToken)
}

func renderPage(page *coda.Page) string {
	children := make([]string, 0, len(page.Children))
	for i := range page.Children {
		children = append(children, refName(&page.Children[i]))
	}
	return kvSection("Page: "+page.Name, [][2]string{
		{"ID", page.ID},
		{"Name", page.Name},
		{"Subtitle", page.Subtitle},
		{"Content Type", page.ContentType},
		{"Hidden", boolString(page.IsHidden, "yes", "")},
		{"Parent", refName(page.Parent)},
		{"Children", strings.Join(children, ", ")},
		{"Link", page.BrowserLink},
	})
}

func renderTableList(list *coda.ListResponse[coda.Table]) string {
	rows := make([][]string, 0, len(list.Items))
	for _, table := range list.Items {
		rows = append(rows, []string{
			table.ID, table.Name, table.TableType, strconv.Itoa(table.RowCount),
		})
	}
	return listHeader("Tables", len(list.Items), list.TotalCount) +
		mdTable([]string{"ID", "Name", "Type", "Rows"}, rows) +
		pageFooter(list.HasMore, list.NextPageToken)
}

func renderTable(table *coda.Table) string {
	sorts := make([]string, 0, len(table.Sorts))
	for _, s := range table.Sorts {
		sorts = append(sorts, fmt.Sprintf("%s %s", refName(s.Column), s.Direction))
	}
	return kvSection("Table: "+table.Name, [][2]string{
		{"ID", table.ID},
		{"Name", table.Name},
		{"Type", table.TableType},
		{"Rows", strconv.Itoa(table.RowCount)},
		{"Display Column", refName(table.DisplayColumn)},
		{"Sorts", strings.Join(sorts, "; ")},
		{"Layout", table.Layout},
		{"Parent", refName(table.Parent)},
		{"Updated", formatTime(table.UpdatedAt)},
		{"Link", table.BrowserLink},
	})
}

func renderColumnList(list *coda.ListResponse[coda.Column]) string {
	rows := make([][]string, 0, len(list.Items))
	for _, col := range list.Items {
		colType := ""
		if col.Format != nil {
			colType = col.Format.Type
		}
		rows = append(rows, []string{
			col.ID, col.Name, colType,
			boolString(col.Calculated, "yes", ""),
			col.Formula,
		})
	}
	return listHeader("Columns", len(list.Items), list.TotalCount) +
		mdTable([]string{"ID", "Name", "Type", "Calculated", "Formula"}, rows) +
		pageFooter(list.HasMore, list.NextPageToken)
}

func renderColumn(col *coda.Column) string {
	colType := ""
	if col.Format != nil {
		colType = col.Format.Type
		if col.Format.IsArray {
			colType += "[]"
		}
	}
	return kvSection("Column: "+col.Name, [][2]string{
		{"ID", col.ID},
		{"Name", col.Name},
		{"Type", colType},
		{"Display", boolString(col.Display, "yes", "")},
		{"Calculated", boolString(col.Calculated, "yes", "")},
		{"Formula", col.Formula},
		{"Default", col.DefaultValue},
		{"Parent", refName(col.Parent)},
	})
}

// renderRowList renders rows as a real data table: one column per cell key,
// keys sorted for a stable layout.
func renderRowList(list *coda.ListResponse[coda.Row]) string {
	keys := collectCellKeys(list.Items)

	headers := append([]string{"Row ID", "Name"}, keys...)
	rows := make([][]string, 0, len(list.Items))
	for _, row := range list.Items {
		cells := []string{row.ID, row.Name}
		for _, key := range keys {
			cells = append(cells, CellString(row.Values[key]))
		}
		rows = append(rows, cells)
	}

	return listHeader("Rows", len(list.Items), list.TotalCount) +
		mdTable(headers, rows) +
		pageFooter(list.HasMore, list.NextPageToken)
}

func collectCellKeys(rows []coda.Row) []string {
	seen := map[string]bool{}
	keys := []string{}
	for _, row := range rows {
		for key := range row.Values {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func renderRow(row *coda.Row) string {
	keys := make([]string, 0, len(row.Values))
	for key := range row.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := [][2]string{
		{"ID", row.ID},
		{"Name", row.Name},
		{"Index", strconv.Itoa(row.Index)},
		{"Created", formatTime(row.CreatedAt)},
		{"Updated", formatTime(row.UpdatedAt)},
		{"Link", row.BrowserLink},
	}
	out := kvSection("Row: "+row.Name, pairs)

	if len(keys) == 0 {
		return out
	}

	valueRows := make([][]string, 0, len(keys))
	for _, key := range keys {
		valueRows = append(valueRows, []string{key, CellString(row.Values[key])})
	}
	return out + "\n### Values\n\n" + mdTable([]string{"Column", "Value"}, valueRows)
}

func renderFormulaList(list *coda.ListResponse[coda.Formula]) string {
	rows := make([][]string, 0, len(list.Items))
	for _, formula := range list.Items {
		rows = append(rows, []string{formula.ID, formula.Name, refName(formula.Parent)})
	}
	return listHeader("Formulas", len(list.Items), list.TotalCount) +
		mdTable([]string{"ID", "Name", "Parent"}, rows) +
		pageFooter(list.HasMore, list.NextPageToken)
}

func renderFormula(formula *coda.Formula) string {
	return kvSection("Formula: "+formula.Name, [][2]string{
		{"ID", formula.ID},
		{"Name", formula.Name},
		{"Parent", refName(formula.Parent)},
		{"Value", anyString(formula.Value)},
	})
}

func renderControlList(list *coda.ListResponse[coda.Control]) string {
	rows := make([][]string, 0, len(list.Items))
	for _, control := range list.Items {
		rows = append(rows, []string{
			control.ID, control.Name, control.ControlType, anyString(control.Value),
		})
	}
	return listHeader("Controls", len(list.Items), list.TotalCount) +
		mdTable([]string{"ID", "Name", "Type", "Value"}, rows) +
		pageFooter(list.HasMore, list.NextPageToken)
}

func renderControl(control *coda.Control) string {
	return kvSection("Control: "+control.Name, [][2]string{
		{"ID", control.ID},
		{"Name", control.Name},
		{"Type", control.ControlType},
		{"Parent", refName(control.Parent)},
		{"Value", anyString(control.Value)},
	})
}

func renderPermissionList(list *coda.ListResponse[coda.Permission]) string {
	rows := make([][]string, 0, len(list.Items))
	for _, perm := range list.Items {
		rows = append(rows, []string{
			perm.ID, perm.Access, principalString(perm.Principal),
		})
	}
	return listHeader("Permissions", len(list.Items), list.TotalCount) +
		mdTable([]string{"ID", "Access", "Principal"}, rows) +
		pageFooter(list.HasMore, list.NextPageToken)
}

func principalString(p coda.Principal) string {
	switch p.Type {
	case "email":
		return p.Email
	case "domain":
		return "domain: " + p.Domain
	case "anyone":
		return "anyone with the link"
	default:
		return p.Type
	}
}

func renderPrincipalList(list *coda.ListResponse[coda.Principal]) string {
	rows := make([][]string, 0, len(list.Items))
	for _, p := range list.Items {
		rows = append(rows, []string{p.Type, p.Email, p.Domain})
	}
	return listHeader("Principals", len(list.Items), list.TotalCount) +
		mdTable([]string{"Type", "Email", "Domain"}, rows) +
		pageFooter(list.HasMore, list.NextPageToken)
}

func renderCategoryList(list *coda.ListResponse[coda.DocCategory]) string {
	rows := make([][]string, 0, len(list.Items))
	for _, c := range list.Items {
		rows = append(rows, []string{c.Name})
	}
	return listHeader("Categories", len(list.Items), list.TotalCount) +
		mdTable([]string{"Name"}, rows)
}

func renderUserInfo(user *coda.UserInfo) string {
	return kvSection("User: "+user.Name, [][2]string{
		{"Name", user.Name},
		{"Login", user.LoginID},
		{"Type", user.Type},
		{"Token", user.TokenName},
		{"Scoped", boolString(user.Scoped, "yes", "no")},
		{"Workspace", refName(user.Workspace)},
	})
}

func renderMutationResult(result *coda.MutationResult) string {
	pairs := [][2]string{
		{"Request ID", result.RequestID},
		{"ID", result.ID},
		{"Row ID", result.RowID},
		{"Column ID", result.ColumnID},
		{"Added Rows", strings.Join(result.AddedRowIDs, ", ")},
		{"Updated Rows", strings.Join(result.UpdatedRowIDs, ", ")},
		{"Rows", strings.Join(result.RowIDs, ", ")},
	}
	out := kvSection("Mutation Accepted", pairs)
	return out + "\nThe change is applied asynchronously. Check progress with `coda_get_mutation_status` and the request ID above.\n"
}

func renderMutationStatus(status *coda.MutationStatus) string {
	state := "pending"
	if status.Completed {
		state = "completed"
	}
	pairs := [][2]string{
		{"Status", state},
		{"Warning", status.Warning},
	}
	return kvSection("Mutation Status", pairs)
}

func renderACLMetadata(meta *coda.ACLMetadata) string {
	return kvSection("Sharing Capabilities", [][2]string{
		{"Can Share", boolString(meta.CanShare, "yes", "no")},
		{"Can Share With Workspace", boolString(meta.CanShareWithOrg, "yes", "no")},
		{"Can Copy", boolString(meta.CanCopy, "yes", "no")},
	})
}

func renderBrowserLink(res *coda.BrowserLinkResolution) string {
	pairs := [][2]string{
		{"Type", res.Type},
		{"API Href", res.Href},
	}
	if res.Resource != nil {
		pairs = append(pairs,
			[2]string{"Resource ID", res.Resource.ID},
			[2]string{"Resource Type", res.Resource.Type},
			[2]string{"Resource Name", res.Resource.Name},
		)
	}
	return kvSection("Resolved Link", pairs)
}

func renderPageExport(export *coda.PageContentExport) string {
	out := kvSection("Page Export Started", [][2]string{
		{"Export ID", export.ID},
		{"Status", export.Status},
	})
	return out + "\nPoll with `coda_get_page_export_status` and the export ID above until the status is `complete`.\n"
}

func renderPageExportStatus(status *coda.PageContentExportStatus) string {
	return kvSection("Page Export Status", [][2]string{
		{"Export ID", status.ID},
		{"Status", status.Status},
		{"Download Link", status.DownloadLink},
		{"Error", status.Error},
	})
}

func renderAutomationTrigger(trigger *coda.AutomationTrigger) string {
	out := kvSection("Automation Triggered", [][2]string{
		{"Request ID", trigger.RequestID},
	})
	return out + "\nThe rule runs asynchronously; its effects appear in the doc when it finishes.\n"
}

func boolString(v bool, whenTrue, whenFalse string) string {
	if v {
		return whenTrue
	}
	return whenFalse
}

func anyString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
