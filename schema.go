package flatkey

import (
	"fmt"
	"regexp"
)

// Identifiers in the store's query language are restricted to letters,
// digits and underscore. Map keys double as pseudo-identifiers there, so
// field IDs must satisfy the same grammar.
var identifierRE = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// IsIdentifier returns true if s satisfies the identifier grammar.
func IsIdentifier(s string) bool {
	return identifierRE.MatchString(s)
}

// Field is one component of a composite primary key.
type Field struct {
	// ID is the field identifier, restricted to the identifier grammar.
	ID string

	// Type provides the field's native encode/decode primitives.
	Type FieldType
}

// Schema is the ordered set of fields composing one model's primary key.
// Schemas are immutable after construction and safe for concurrent use.
type Schema struct {
	name   string
	fields []Field
	byID   map[string]int
}

// NewSchema creates a schema from the given key fields, in order.
// Field IDs must be unique and satisfy the identifier grammar.
func NewSchema(name string, fields ...Field) (*Schema, error) {
	if name == "" {
		return nil, fmt.Errorf("schema name must not be empty")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("schema %q must declare at least one key field", name)
	}

	s := &Schema{
		name:   name,
		fields: make([]Field, len(fields)),
		byID:   make(map[string]int, len(fields)),
	}
	copy(s.fields, fields)

	for i, f := range s.fields {
		if !IsIdentifier(f.ID) {
			return nil, fmt.Errorf("schema %q: field ID %q violates the identifier grammar", name, f.ID)
		}
		if f.Type == nil {
			return nil, fmt.Errorf("schema %q: field %q has no type", name, f.ID)
		}
		if _, dup := s.byID[f.ID]; dup {
			return nil, fmt.Errorf("schema %q: duplicate field ID %q", name, f.ID)
		}
		s.byID[f.ID] = i
	}

	return s, nil
}

// Name returns the model name this schema belongs to.
func (s *Schema) Name() string {
	return s.name
}

// Fields returns the key fields in declaration order.
// The returned slice must not be modified.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Field returns the field with the given ID.
func (s *Schema) Field(id string) (Field, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Len returns the number of key fields.
func (s *Schema) Len() int {
	return len(s.fields)
}
