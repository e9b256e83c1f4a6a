package schema

import "github.com/pkg/errors"

var ErrUnknownSchema = errors.New("unknown schema")

// Registry holds the compiled contracts of the process, keyed by name.
type Registry struct {
	schemas map[string]*Schema
}

func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[string]*Schema, len(schemas))}
	for _, s := range schemas {
		if _, dup := r.schemas[s.Name()]; dup {
			return nil, errors.Wrapf(ErrMalformedSchema, "schema %q registered twice", s.Name())
		}
		r.schemas[s.Name()] = s
	}
	return r, nil
}

func MustNewRegistry(schemas ...*Schema) *Registry {
	r, err := NewRegistry(schemas...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Get(name string) (*Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Validate checks candidate against the schema registered under name.
func (r *Registry) Validate(name string, candidate any) error {
	s, ok := r.schemas[name]
	if !ok {
		return errors.Wrap(ErrUnknownSchema, name)
	}
	return s.Validate(candidate)
}
