package flatkey

import (
	"context"
	"fmt"
	"sync"
)

// Registry resolves a model name to the schema of its primary key.
//
// Resolution may hit a catalog or network the first time; the codec calls
// Resolve at most once per instance and memoizes the result. Implementations
// must be safe for concurrent use and honor ctx cancellation if they block.
type Registry interface {
	// Resolve returns the key schema for the given model name.
	// Unknown names fail with an error wrapping ErrSchemaResolution.
	Resolve(ctx context.Context, model string) (*Schema, error)
}

// SchemaSet is an in-memory Registry backed by a mutex-guarded map.
type SchemaSet struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewSchemaSet creates an empty SchemaSet.
func NewSchemaSet() *SchemaSet {
	return &SchemaSet{
		schemas: make(map[string]*Schema),
	}
}

// Register adds a schema under its model name.
// Registering the same name twice is an error.
func (s *SchemaSet) Register(schema *Schema) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.schemas[schema.Name()]; exists {
		return fmt.Errorf("schema %q already registered", schema.Name())
	}

	s.schemas[schema.Name()] = schema
	return nil
}

// Resolve implements Registry.
func (s *SchemaSet) Resolve(_ context.Context, model string) (*Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schema, ok := s.schemas[model]
	if !ok {
		return nil, newResolutionError(model, fmt.Errorf("unknown model"))
	}
	return schema, nil
}

// Reset clears all registered schemas.
// This is primarily useful for test isolation.
func (s *SchemaSet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemas = make(map[string]*Schema)
}
