package flatkey

import (
	"context"

	"github.com/google/uuid"
	"github.com/zoobzio/flatkey/mapcol"
)

// ReferenceColumn is implemented by the relation column variants.
// All variants share the required model configuration and differ only in
// their encode/decode strategy.
type ReferenceColumn interface {
	// Model returns the referenced model name.
	Model() string
}

// Reference points to a row whose primary key is a simple UUID.
type Reference struct {
	model string
}

// NewReference creates a simple UUID reference to the named model.
func NewReference(model string) (*Reference, error) {
	if model == "" {
		return nil, newConfigError("", "model")
	}
	return &Reference{model: model}, nil
}

// Model returns the referenced model name.
func (r *Reference) Model() string {
	return r.model
}

// Encode normalizes a foreign key value to its canonical text form.
// A nil value encodes to the empty string (no relation set).
func (r *Reference) Encode(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	wire, err := UUIDType{}.EncodeNative(v)
	if err != nil {
		return "", newCoercionError("", LogicalUUID, err)
	}
	return wire.(string), nil
}

// Decode reconstructs the foreign key from its stored text form.
func (r *Reference) Decode(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	v, err := UUIDType{}.DecodeNative(s)
	if err != nil {
		return uuid.Nil, newCoercionError("", LogicalUUID, err)
	}
	return v.(uuid.UUID), nil
}

// StringReference points to an externally persisted row with a UUID primary
// key whose query layer does not adapt UUID values. Decode returns the
// canonical string form instead of a uuid.UUID.
type StringReference struct {
	ref Reference
}

// NewStringReference creates a string-coerced UUID reference to the named model.
func NewStringReference(model string) (*StringReference, error) {
	ref, err := NewReference(model)
	if err != nil {
		return nil, err
	}
	return &StringReference{ref: *ref}, nil
}

// Model returns the referenced model name.
func (r *StringReference) Model() string {
	return r.ref.Model()
}

// Encode normalizes a foreign key value to its canonical text form.
func (r *StringReference) Encode(v any) (string, error) {
	return r.ref.Encode(v)
}

// Decode reconstructs the foreign key as its canonical string form.
func (r *StringReference) Decode(s string) (string, error) {
	v, err := r.ref.Decode(s)
	if err != nil {
		return "", err
	}
	if v == uuid.Nil && s == "" {
		return "", nil
	}
	return v.String(), nil
}

// CompositeReference points to a row whose primary key is composed of
// several fields, stored flattened inside a mapping column.
//
// Validation and storage are an explicit two-stage pipeline: Validate
// normalizes any accepted value shape into the flat mapping, and the
// mapping-column primitive marshals that for the wire. Load runs the stages
// in reverse.
type CompositeReference struct {
	codec *Composite
	col   *mapcol.Column
}

// NewCompositeReference creates a composite reference to the named model.
//
// The underlying mapping column is fixed to ASCII identifier keys and text
// values. Requesting an index fails with ErrConfiguration.
func NewCompositeReference(reg Registry, model string, opts ...Option) (*CompositeReference, error) {
	codec, err := NewComposite(reg, model, opts...)
	if err != nil {
		return nil, err
	}

	col, err := mapcol.New(mapcol.KindASCII, mapcol.KindText)
	if err != nil {
		return nil, err
	}

	return &CompositeReference{
		codec: codec,
		col:   col,
	}, nil
}

// Model returns the referenced model name.
func (r *CompositeReference) Model() string {
	return r.codec.Model()
}

// Codec returns the underlying composite key codec.
func (r *CompositeReference) Codec() *Composite {
	return r.codec
}

// Validate normalizes v into a flat mapping acceptable to the column's
// storage-layer validation. Empty values short-circuit to an empty mapping;
// entity instances have their key components extracted; key values and
// already-flat mappings are delegated to the codec's encode step.
func (r *CompositeReference) Validate(ctx context.Context, v any) (map[string]string, error) {
	return r.codec.Encode(ctx, v)
}

// Store normalizes v and marshals the result through the mapping column.
func (r *CompositeReference) Store(ctx context.Context, v any) ([]byte, error) {
	mapping, err := r.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	return r.col.Marshal(mapping)
}

// Load unmarshals stored wire data and reconstructs typed key values.
func (r *CompositeReference) Load(ctx context.Context, data []byte) (map[string]any, error) {
	mapping, err := r.col.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return r.codec.Decode(ctx, mapping)
}
