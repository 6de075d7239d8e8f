// Package fieldvalue reduces arbitrary issue field values to display strings.
package fieldvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/jiri/internal/core/domain"
)

// displayKeys are probed in order on object values.
var displayKeys = []string{"displayName", "name", "value", "title", "label", "key"}

// Normalise converts a decoded JSON value into a single display string.
// It never fails: values with no recognised shape are rendered as JSON.
func Normalise(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		return normaliseList(v)
	case map[string]any:
		return normaliseObject(v)
	default:
		return raw(v)
	}
}

func normaliseList(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if s := Normalise(item); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func normaliseObject(obj map[string]any) string {
	for _, k := range displayKeys {
		if s, ok := obj[k].(string); ok {
			return s
		}
	}
	// Cascading select values nest the chosen option.
	if child, ok := obj["child"]; ok {
		return Normalise(child)
	}
	if parent, ok := obj["parent"]; ok {
		return Normalise(parent)
	}
	return raw(obj)
}

func raw(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// FromIssue extracts and normalises one column value from an issue.
//
// "key" and "issuekey" (any case) read the issue key, falling back to a
// "key" field. "id" reads the issue id. Every other key is looked up in the
// issue's fields exactly as given.
func FromIssue(issue *domain.Issue, key string) string {
	if issue == nil {
		return ""
	}
	switch strings.ToLower(key) {
	case "key", "issuekey":
		if issue.Key != "" {
			return issue.Key
		}
		s, _ := issue.Field("key").(string)
		return s
	case "id":
		return issue.ID
	}
	return Normalise(issue.Field(key))
}

// Row projects an issue onto the given column keys.
func Row(issue *domain.Issue, keys []string) []string {
	row := make([]string, len(keys))
	for i, k := range keys {
		row[i] = FromIssue(issue, k)
	}
	return row
}

// IsBuiltin reports whether key is read from the issue itself rather than
// its fields.
func IsBuiltin(key string) bool {
	switch strings.ToLower(key) {
	case "key", "issuekey", "id":
		return true
	}
	return false
}
