package coda

import (
	"net/url"
	"strconv"
	"strings"
)

// queryParams accumulates query-string parameters for an API call. Absent
// values (empty strings, nil pointers, empty slices) are omitted entirely so
// the upstream API sees only parameters the caller actually supplied.
type queryParams struct {
	values url.Values
}

func newQueryParams() *queryParams {
	return &queryParams{values: url.Values{}}
}

// SetString adds a string parameter. Empty strings are treated as absent.
func (q *queryParams) SetString(key, value string) {
	if value == "" {
		return
	}
	q.values.Set(key, value)
}

// SetInt adds an integer parameter when value is positive.
func (q *queryParams) SetInt(key string, value int) {
	if value <= 0 {
		return
	}
	q.values.Set(key, strconv.Itoa(value))
}

// SetBool adds a boolean parameter. Nil pointers are absent; both true and
// false are emitted when the caller supplied a value.
func (q *queryParams) SetBool(key string, value *bool) {
	if value == nil {
		return
	}
	q.values.Set(key, strconv.FormatBool(*value))
}

// SetList adds one repeated key=value pair per element. The upstream API does
// not accept comma-joined lists.
func (q *queryParams) SetList(key string, values []string) {
	for _, v := range values {
		q.values.Add(key, v)
	}
}

// Encode returns the encoded query string without a leading '?'. An empty
// parameter set encodes to the empty string.
func (q *queryParams) Encode() string {
	return q.values.Encode()
}

// joinPath builds an API path from literal segments and user-supplied
// identifiers. Every identifier is percent-encoded independently so that IDs
// containing '/', spaces or reserved characters cannot alter the path
// structure.
func joinPath(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// docPath returns "/docs/{docId}" followed by optional encoded sub-segments.
func docPath(docID string, sub ...string) string {
	return joinPath(append([]string{"docs", docID}, sub...)...)
}
