// Package schema checks untyped request input (decoded JSON bodies or query
// string maps) against small, named structural contracts.
//
// A contract is declared as a Definition and compiled once with Compile or
// MustCompile. Compiled schemas are read-only and safe for concurrent use.
// Validation checks required-field presence, primitive type conformance and,
// where declared, enumerated value sets. On failure it returns a
// *ValidationError carrying the list of violations and a description of the
// expected shape that a client can use to correct its request.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
)

// Format narrows a string field. Query string values always arrive as text, so
// numeric query parameters are declared as strings with FormatInteger.
type Format string

const (
	FormatNone    Format = ""
	FormatInteger Format = "integer"
)

var ErrMalformedSchema = errors.New("malformed schema")

type Field struct {
	Name     string
	Type     Type
	Required bool
	Format   Format
	Enum     []string
}

type Definition struct {
	Name   string
	Fields []Field

	// AdditionalProperties allows keys that are not declared in Fields.
	AdditionalProperties bool

	// MinProperties is the minimum number of declared fields that must be present.
	MinProperties int
}

type Schema struct {
	name          string
	fields        []Field
	byName        map[string]Field
	enums         map[string]map[string]struct{}
	additional    bool
	minProperties int
	expected      map[string]any
}

// Compile checks a definition and prepares it for validation.
func Compile(def Definition) (*Schema, error) {
	if def.Name == "" {
		return nil, errors.Wrap(ErrMalformedSchema, "schema name is empty")
	}

	s := &Schema{
		name:          def.Name,
		fields:        make([]Field, 0, len(def.Fields)),
		byName:        make(map[string]Field, len(def.Fields)),
		enums:         make(map[string]map[string]struct{}),
		additional:    def.AdditionalProperties,
		minProperties: def.MinProperties,
	}

	for _, f := range def.Fields {
		if f.Name == "" {
			return nil, errors.Wrapf(ErrMalformedSchema, "%s: field without name", def.Name)
		}
		if _, dup := s.byName[f.Name]; dup {
			return nil, errors.Wrapf(ErrMalformedSchema, "%s: duplicate field %q", def.Name, f.Name)
		}

		switch f.Type {
		case TypeString, TypeNumber, TypeInteger, TypeBoolean:
		default:
			return nil, errors.Wrapf(ErrMalformedSchema, "%s.%s: unknown type %q", def.Name, f.Name, f.Type)
		}

		switch f.Format {
		case FormatNone:
		case FormatInteger:
			if f.Type != TypeString {
				return nil, errors.Wrapf(ErrMalformedSchema, "%s.%s: format %q requires a string field", def.Name, f.Name, f.Format)
			}
		default:
			return nil, errors.Wrapf(ErrMalformedSchema, "%s.%s: unknown format %q", def.Name, f.Name, f.Format)
		}

		if len(f.Enum) > 0 {
			if f.Type != TypeString {
				return nil, errors.Wrapf(ErrMalformedSchema, "%s.%s: enum requires a string field", def.Name, f.Name)
			}
			set := make(map[string]struct{}, len(f.Enum))
			for _, v := range f.Enum {
				set[v] = struct{}{}
			}
			s.enums[f.Name] = set
		}

		s.fields = append(s.fields, f)
		s.byName[f.Name] = f
	}

	if def.MinProperties < 0 || def.MinProperties > len(def.Fields) {
		return nil, errors.Wrapf(ErrMalformedSchema, "%s: minProperties %d out of range", def.Name, def.MinProperties)
	}

	s.expected = s.describe()

	return s, nil
}

// MustCompile is Compile for package-level schema variables. A malformed
// definition is a programming error and stops the process.
func MustCompile(def Definition) *Schema {
	s, err := Compile(def)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string {
	return s.name
}

// Expected returns a JSON-schema-like description of the accepted shape.
func (s *Schema) Expected() map[string]any {
	return s.expected
}

// Validate returns nil when candidate conforms, otherwise a *ValidationError.
// Accepted candidates are JSON objects decoded into map[string]any and query
// string maps (map[string]string or map[string][]string).
func (s *Schema) Validate(candidate any) error {
	values, ok := normalize(candidate)
	if !ok {
		return s.fail([]Violation{{Field: "", Reason: "expected an object"}})
	}

	var violations []Violation

	for _, f := range s.fields {
		v, present := values[f.Name]
		if !present || v == nil {
			if f.Required {
				violations = append(violations, Violation{Field: f.Name, Reason: "is required"})
			}
			continue
		}
		if reason := s.check(f, v); reason != "" {
			violations = append(violations, Violation{Field: f.Name, Reason: reason})
		}
	}

	if !s.additional {
		extra := make([]string, 0)
		for k := range values {
			if _, declared := s.byName[k]; !declared {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		for _, k := range extra {
			violations = append(violations, Violation{Field: k, Reason: "is not allowed"})
		}
	}

	if s.minProperties > 0 {
		present := 0
		for _, f := range s.fields {
			if v, ok := values[f.Name]; ok && v != nil {
				present++
			}
		}
		if present < s.minProperties {
			violations = append(violations, Violation{
				Field:  "",
				Reason: fmt.Sprintf("at least %d of [%s] must be set", s.minProperties, strings.Join(s.fieldNames(), ", ")),
			})
		}
	}

	if len(violations) > 0 {
		return s.fail(violations)
	}
	return nil
}

func (s *Schema) check(f Field, v any) string {
	switch f.Type {
	case TypeString:
		str, ok := v.(string)
		if !ok {
			return "must be a string"
		}
		if f.Format == FormatInteger {
			if _, err := strconv.ParseInt(str, 10, 64); err != nil {
				return "must be an integer encoded as text"
			}
		}
		if set, ok := s.enums[f.Name]; ok {
			if _, ok = set[str]; !ok {
				return fmt.Sprintf("must be one of [%s]", strings.Join(f.Enum, ", "))
			}
		}
	case TypeNumber:
		if _, ok := number(v); !ok {
			return "must be a number"
		}
	case TypeInteger:
		n, ok := number(v)
		if !ok || n != math.Trunc(n) {
			return "must be an integer"
		}
	case TypeBoolean:
		if _, ok := v.(bool); !ok {
			return "must be a boolean"
		}
	}
	return ""
}

func (s *Schema) fail(violations []Violation) *ValidationError {
	return &ValidationError{
		Schema:     s.name,
		Violations: violations,
		Expected:   s.expected,
	}
}

func (s *Schema) fieldNames() []string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		names = append(names, f.Name)
	}
	return names
}

func (s *Schema) describe() map[string]any {
	properties := make(map[string]any, len(s.fields))
	required := make([]string, 0)

	for _, f := range s.fields {
		p := map[string]any{"type": string(f.Type)}
		if f.Format != FormatNone {
			p["format"] = string(f.Format)
		}
		if len(f.Enum) > 0 {
			p["enum"] = append([]string(nil), f.Enum...)
		}
		properties[f.Name] = p
		if f.Required {
			required = append(required, f.Name)
		}
	}

	d := map[string]any{
		"title":                s.name,
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": s.additional,
	}
	if s.minProperties > 0 {
		d["minProperties"] = s.minProperties
	}
	return d
}

func normalize(candidate any) (map[string]any, bool) {
	switch c := candidate.(type) {
	case map[string]any:
		if c == nil {
			return nil, false
		}
		return c, true
	case map[string]string:
		out := make(map[string]any, len(c))
		for k, v := range c {
			out[k] = v
		}
		return out, true
	case map[string][]string:
		out := make(map[string]any, len(c))
		for k, v := range c {
			if len(v) > 0 {
				out[k] = v[0]
			} else {
				out[k] = ""
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
