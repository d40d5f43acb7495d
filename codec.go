package flatkey

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Option configures a composite codec at construction.
type Option func(*codecConfig)

type codecConfig struct {
	index bool
}

// WithIndex requests a secondary index over the flattened column.
//
// The request is always rejected with ErrConfiguration: the store does
// support secondary indexes on map columns, but its value matching over
// flattened maps is not strict enough for primary-key semantics. The option
// exists so column definitions can carry the request through to the single
// rejection point.
func WithIndex() Option {
	return func(c *codecConfig) {
		c.index = true
	}
}

// Composite flattens a model's composite primary key into a text mapping
// and reconstructs typed key values from it.
//
// Keys of the mapping are fixed to the identifier grammar and values to
// generic text; both are load-bearing constraints of the storage engine.
//
// A Composite is safe for concurrent use. The referenced schema is resolved
// lazily on first encode or decode and memoized for the codec's lifetime.
type Composite struct {
	reg   Registry
	model string

	// Memoized schema resolution, guarded by mu.
	mu     sync.RWMutex
	schema *Schema
}

// NewComposite creates a codec for the named model's primary key.
//
// Fails with ErrConfiguration if model is empty or WithIndex was requested.
// The schema itself is not resolved here; the first encode or decode
// performs the registry lookup.
func NewComposite(reg Registry, model string, opts ...Option) (*Composite, error) {
	var cfg codecConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.index {
		return nil, newConfigError(model, "index")
	}
	if model == "" {
		return nil, newConfigError("", "model")
	}
	if reg == nil {
		return nil, newConfigError(model, "registry")
	}

	c := &Composite{
		reg:   reg,
		model: model,
	}

	emitCodecCreated(context.Background(), model)
	return c, nil
}

// Model returns the referenced model name.
func (c *Composite) Model() string {
	return c.model
}

// resolve returns the memoized schema, performing the registry lookup at
// most once. Failures are not cached; a later call retries the lookup.
func (c *Composite) resolve(ctx context.Context) (*Schema, error) {
	c.mu.RLock()
	if s := c.schema; s != nil {
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check pattern
	if s := c.schema; s != nil {
		return s, nil
	}

	start := time.Now()
	schema, err := c.reg.Resolve(ctx, c.model)
	if err != nil {
		emitSchemaResolved(ctx, c.model, 0, time.Since(start), err)
		return nil, newResolutionError(c.model, err)
	}

	emitSchemaResolved(ctx, c.model, schema.Len(), time.Since(start), nil)
	c.schema = schema
	return schema, nil
}

// Encode normalizes v into the flat storage mapping.
//
// Accepted shapes:
//   - nil or an empty map: returns an empty mapping (no relation set)
//   - an entity instance (Entity, or a struct with pk tags): its key
//     components are extracted by the resolved schema's field IDs
//   - map[string]string: passed through unchanged (idempotent)
//   - map[string]any: a composite key value, normalized per field
//
// Iteration is schema-driven, never input-driven, so a composite key value
// lacking a declared field fails with ErrMissingField instead of silently
// passing through.
func (c *Composite) Encode(ctx context.Context, v any) (map[string]string, error) {
	start := time.Now()
	emitEncodeStart(ctx, c.model)

	out, err := c.encode(ctx, v)
	emitEncodeComplete(ctx, c.model, len(out), time.Since(start), err)
	return out, err
}

func (c *Composite) encode(ctx context.Context, v any) (map[string]string, error) {
	if v == nil {
		return map[string]string{}, nil
	}

	var key map[string]any
	switch val := v.(type) {
	case map[string]string:
		if len(val) == 0 {
			return map[string]string{}, nil
		}
		return val, nil
	case map[string]any:
		key = val
	default:
		extracted, ok := primaryKeyOf(v)
		if !ok {
			return nil, newCoercionError("", "",
				fmt.Errorf("value of type %T is not an entity, key value, or flat mapping", v))
		}
		key = extracted
	}

	if len(key) == 0 {
		return map[string]string{}, nil
	}

	schema, err := c.resolve(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, schema.Len())
	for _, f := range schema.Fields() {
		fv, ok := key[f.ID]
		if !ok {
			return nil, newFieldError(c.model, f.ID)
		}

		text, present, err := encodeField(f, fv)
		if err != nil {
			return nil, err
		}
		if present {
			out[f.ID] = text
		}
	}

	return out, nil
}

// Decode reconstructs typed key values from a flat storage mapping.
//
// An empty mapping decodes to an empty key value. Otherwise every field the
// schema declares must be present in the mapping; absence fails with
// ErrMissingField. Timestamp fields get the driver-read emulation described
// on the normalizer before their native decode step runs.
func (c *Composite) Decode(ctx context.Context, mapping map[string]string) (map[string]any, error) {
	start := time.Now()
	emitDecodeStart(ctx, c.model)

	out, err := c.decode(ctx, mapping)
	emitDecodeComplete(ctx, c.model, len(out), time.Since(start), err)
	return out, err
}

func (c *Composite) decode(ctx context.Context, mapping map[string]string) (map[string]any, error) {
	if len(mapping) == 0 {
		return map[string]any{}, nil
	}

	schema, err := c.resolve(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, schema.Len())
	for _, f := range schema.Fields() {
		text, ok := mapping[f.ID]
		if !ok {
			return nil, newFieldError(c.model, f.ID)
		}

		v, err := decodeField(f, text)
		if err != nil {
			return nil, err
		}
		out[f.ID] = v
	}

	return out, nil
}
