package utils

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidationError names every form field that failed and why. Handlers
// serialize Fields straight back so the client can highlight inputs.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}

// RequireFields checks that every named value is non-blank and returns nil
// when all pass. Whitespace-only values count as blank.
func RequireFields(fields map[string]string) *ValidationError {
	failed := make(map[string]string)
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			failed[name] = name + " is required"
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &ValidationError{Fields: failed}
}
