package schema

import (
	"fmt"
	"strings"
)

type Violation struct {
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Reason
	}
	return v.Field + " " + v.Reason
}

// ValidationError is returned by Validate when the candidate does not match.
type ValidationError struct {
	Schema     string         `json:"schema"`
	Violations []Violation    `json:"violations"`
	Expected   map[string]any `json:"expected"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("does not match %s schema: %s", e.Schema, strings.Join(parts, "; "))
}
