package secrets

import (
	"fmt"
	"strings"
)

// splitSecretPath splits "name#field" into its parts
func splitSecretPath(path string) (name, field string) {
	if i := strings.LastIndex(path, "#"); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}

// pickField returns the string value stored under field
func pickField(data map[string]interface{}, field string) (string, error) {
	raw, ok := data[field]
	if !ok {
		return "", fmt.Errorf("field %q not found", field)
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", fmt.Errorf("field %q is empty or not a string", field)
	}
	return value, nil
}
