package instrumentation

import (
	"net/http"
	"strings"
)

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values so metrics stay
// queryable: document, table and row identifiers are unbounded in a
// multi-tenant deployment and must never appear as metric labels. Classify
// API paths into endpoint families and user emails into domains instead.

// EndpointFamily classifies a Coda API path for metrics.
type EndpointFamily string

// Endpoint families for metrics cardinality control.
const (
	EndpointDocs        EndpointFamily = "docs"
	EndpointPages       EndpointFamily = "pages"
	EndpointTables      EndpointFamily = "tables"
	EndpointColumns     EndpointFamily = "columns"
	EndpointRows        EndpointFamily = "rows"
	EndpointFormulas    EndpointFamily = "formulas"
	EndpointControls    EndpointFamily = "controls"
	EndpointAutomations EndpointFamily = "automations"
	EndpointPermissions EndpointFamily = "permissions"
	EndpointPublishing  EndpointFamily = "publishing"
	EndpointMutations   EndpointFamily = "mutations"
	EndpointAccount     EndpointFamily = "account"
	EndpointOther       EndpointFamily = "other"
)

// ClassifyEndpoint maps an API path to its endpoint family. The path may
// contain escaped tenant-supplied identifiers; only the literal structural
// segments decide the family, so the result is a small closed set no matter
// what IDs tenants use.
//
// Deeper segments win over shallower ones: /docs/{d}/tables/{t}/rows
// classifies as rows, not tables or docs.
func ClassifyEndpoint(path string) EndpointFamily {
	segments := strings.Split(strings.Trim(path, "/"), "/")

	// Scan from the tail: the last structural segment names the resource.
	for i := len(segments) - 1; i >= 0; i-- {
		switch segments[i] {
		case "rows", "buttons":
			return EndpointRows
		case "columns":
			return EndpointColumns
		case "tables":
			return EndpointTables
		case "export":
			fallthrough
		case "pages":
			return EndpointPages
		case "formulas":
			return EndpointFormulas
		case "controls":
			return EndpointControls
		case "hooks", "automation":
			return EndpointAutomations
		case "acl", "permissions", "principals":
			return EndpointPermissions
		case "publish", "categories":
			return EndpointPublishing
		case "mutationStatus":
			return EndpointMutations
		case "whoami":
			return EndpointAccount
		}
	}

	if len(segments) > 0 {
		switch segments[0] {
		case "docs", "resolveBrowserLink":
			return EndpointDocs
		}
	}
	return EndpointOther
}

// ClassifyOperation maps an HTTP method and API path to an operation label.
// Like ClassifyEndpoint, only literal structural segments are inspected, so
// the result is a closed set regardless of tenant-supplied identifiers.
func ClassifyOperation(method, path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")

	// Some path shapes name the operation outright, whatever the method.
	for i := len(segments) - 1; i >= 0; i-- {
		switch segments[i] {
		case "buttons":
			return OperationPush
		case "automation":
			return OperationTrigger
		case "publish":
			if method == http.MethodDelete {
				return OperationDelete
			}
			return OperationPublish
		case "export":
			return OperationExport
		case "resolveBrowserLink":
			return OperationResolve
		}
	}

	last := ""
	if len(segments) > 0 {
		last = segments[len(segments)-1]
	}

	switch method {
	case http.MethodGet:
		if isCollectionSegment(last) {
			return OperationList
		}
		return OperationGet
	case http.MethodPost:
		// Row insertion is upsert semantics upstream.
		if last == "rows" {
			return OperationUpsert
		}
		return OperationCreate
	case http.MethodPut, http.MethodPatch:
		return OperationUpdate
	case http.MethodDelete:
		return OperationDelete
	default:
		return strings.ToLower(method)
	}
}

// isCollectionSegment reports whether a trailing path segment names a
// collection, i.e. a GET against it is a listing rather than a fetch.
func isCollectionSegment(segment string) bool {
	switch segment {
	case "docs", "pages", "tables", "columns", "rows", "formulas",
		"controls", "permissions", "categories", "search":
		return true
	}
	return false
}

// ExtractUserDomain extracts the domain from an email address for
// lower-cardinality labeling. Returns "unknown" for malformed addresses.
func ExtractUserDomain(email string) string {
	if email == "" {
		return "unknown"
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[1] == "" {
		return "unknown"
	}
	return parts[1]
}

// NormalizeToolName validates a tool name for use as a metric label. Tool
// names form a small fixed catalog; anything else (which would indicate a
// bug or a forged request) collapses to "unknown".
func NormalizeToolName(name string) string {
	if name == "" || !strings.HasPrefix(name, "coda_") || len(name) > 64 {
		return "unknown"
	}
	return name
}
