package instrumentation

import "testing"

func TestClassifyEndpoint(t *testing.T) {
	tests := []struct {
		path     string
		expected EndpointFamily
	}{
		{"/docs", EndpointDocs},
		{"/docs/AbCdEf1234", EndpointDocs},
		{"/resolveBrowserLink", EndpointDocs},
		{"/docs/d1/pages", EndpointPages},
		{"/docs/d1/pages/canvas-x/export", EndpointPages},
		{"/docs/d1/pages/canvas-x/export/req-1", EndpointPages},
		{"/docs/d1/tables", EndpointTables},
		{"/docs/d1/tables/grid-1", EndpointTables},
		{"/docs/d1/tables/grid-1/columns", EndpointColumns},
		{"/docs/d1/tables/grid-1/columns/c-1", EndpointColumns},
		{"/docs/d1/tables/grid-1/rows", EndpointRows},
		{"/docs/d1/tables/grid-1/rows/r-1", EndpointRows},
		{"/docs/d1/tables/grid-1/rows/r-1/buttons/c-1", EndpointRows},
		{"/docs/d1/formulas", EndpointFormulas},
		{"/docs/d1/controls/ctrl-1", EndpointControls},
		{"/docs/d1/hooks/automation/rule-1", EndpointAutomations},
		{"/docs/d1/acl/metadata", EndpointPermissions},
		{"/docs/d1/acl/permissions/perm-1", EndpointPermissions},
		{"/docs/d1/acl/principals/search", EndpointPermissions},
		{"/docs/d1/publish", EndpointPublishing},
		{"/categories", EndpointPublishing},
		{"/mutationStatus/mut-1", EndpointMutations},
		{"/whoami", EndpointAccount},
		{"/something/else", EndpointOther},
		{"", EndpointOther},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ClassifyEndpoint(tt.path); got != tt.expected {
				t.Errorf("ClassifyEndpoint(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestClassifyOperation(t *testing.T) {
	tests := []struct {
		method   string
		path     string
		expected string
	}{
		{"GET", "/whoami", OperationGet},
		{"GET", "/docs", OperationList},
		{"GET", "/docs/AbCdEf1234", OperationGet},
		{"GET", "/docs/d1/tables/grid-1/rows", OperationList},
		{"GET", "/docs/d1/tables/grid-1/rows/r-1", OperationGet},
		{"GET", "/docs/d1/acl/metadata", OperationGet},
		{"GET", "/docs/d1/acl/permissions", OperationList},
		{"GET", "/docs/d1/acl/principals/search", OperationList},
		{"GET", "/categories", OperationList},
		{"GET", "/mutationStatus/mut-1", OperationGet},
		{"GET", "/resolveBrowserLink", OperationResolve},
		{"GET", "/docs/d1/pages/canvas-x/export/req-1", OperationExport},
		{"POST", "/docs", OperationCreate},
		{"POST", "/docs/d1/tables/grid-1/rows", OperationUpsert},
		{"POST", "/docs/d1/tables/grid-1/rows/r-1/buttons/c-1", OperationPush},
		{"POST", "/docs/d1/hooks/automation/rule-1", OperationTrigger},
		{"POST", "/docs/d1/pages/canvas-x/export", OperationExport},
		{"POST", "/docs/d1/acl/permissions", OperationCreate},
		{"PUT", "/docs/d1/tables/grid-1/rows/r-1", OperationUpdate},
		{"PUT", "/docs/d1/publish", OperationPublish},
		{"PATCH", "/docs/AbCdEf1234", OperationUpdate},
		{"DELETE", "/docs/d1/tables/grid-1/rows/r-1", OperationDelete},
		{"DELETE", "/docs/d1/publish", OperationDelete},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if got := ClassifyOperation(tt.method, tt.path); got != tt.expected {
				t.Errorf("ClassifyOperation(%q, %q) = %q, want %q", tt.method, tt.path, got, tt.expected)
			}
		})
	}
}

func TestExtractUserDomain(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"jane@example.com", "example.com"},
		{"user@mail.example.org", "mail.example.org"},
		{"", "unknown"},
		{"no-at-sign", "unknown"},
		{"trailing@", "unknown"},
		{"a@b@c", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ExtractUserDomain(tt.email); got != tt.expected {
				t.Errorf("ExtractUserDomain(%q) = %q, want %q", tt.email, got, tt.expected)
			}
		})
	}
}

func TestNormalizeToolName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"coda_list_docs", "coda_list_docs"},
		{"coda_upsert_rows", "coda_upsert_rows"},
		{"", "unknown"},
		{"notion_get", "unknown"},
		{"coda_" + string(make([]byte, 100)), "unknown"},
	}

	for _, tt := range tests {
		if got := NormalizeToolName(tt.name); got != tt.expected {
			t.Errorf("NormalizeToolName(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}
