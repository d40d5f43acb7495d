package flatkey_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/flatkey"
)

// ForeignModel mirrors an entity whose primary key is composed of a
// partition text field, a clustering timestamp, and a clustering UUID.
type ForeignModel struct {
	Organization string    `pk:"organization"`
	StartDate    time.Time `pk:"start_date"`
	Key          uuid.UUID `pk:"key"`
	Info         string
}

func foreignSchema(t *testing.T) *flatkey.Schema {
	t.Helper()
	schema, err := flatkey.NewSchema("ForeignModel",
		flatkey.Field{ID: "organization", Type: flatkey.TextType{}},
		flatkey.Field{ID: "start_date", Type: flatkey.TimestampType{}},
		flatkey.Field{ID: "key", Type: flatkey.UUIDType{}},
	)
	if err != nil {
		t.Fatalf("NewSchema() error: %v", err)
	}
	return schema
}

func foreignRegistry(t *testing.T) *flatkey.SchemaSet {
	t.Helper()
	set := flatkey.NewSchemaSet()
	if err := set.Register(foreignSchema(t)); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	return set
}

// countingRegistry wraps a Registry and counts Resolve calls.
type countingRegistry struct {
	inner    flatkey.Registry
	resolves atomic.Int32
}

func (r *countingRegistry) Resolve(ctx context.Context, model string) (*flatkey.Schema, error) {
	r.resolves.Add(1)
	return r.inner.Resolve(ctx, model)
}

func TestComposite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	codec, err := flatkey.NewComposite(foreignRegistry(t), "ForeignModel")
	if err != nil {
		t.Fatalf("NewComposite() error: %v", err)
	}

	entity := ForeignModel{
		Organization: "Dummy organization",
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 123456000, time.UTC),
		Key:          uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Info:         "not part of the key",
	}

	mapping, err := codec.Encode(ctx, entity)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := map[string]string{
		"organization": "Dummy organization",
		"start_date":   "1704067200123",
		"key":          "550e8400-e29b-41d4-a716-446655440000",
	}
	if len(mapping) != len(want) {
		t.Fatalf("Encode() returned %d entries, want %d", len(mapping), len(want))
	}
	for k, v := range want {
		if mapping[k] != v {
			t.Errorf("Encode()[%q] = %q, want %q", k, mapping[k], v)
		}
	}

	key, err := codec.Decode(ctx, mapping)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if key["organization"] != entity.Organization {
		t.Errorf("organization = %v, want %v", key["organization"], entity.Organization)
	}
	if key["key"] != entity.Key {
		t.Errorf("key = %v, want %v", key["key"], entity.Key)
	}

	// Decode reconstructs the millisecond-truncated instant, not the
	// original microsecond-precision one.
	gotDate, ok := key["start_date"].(time.Time)
	if !ok {
		t.Fatalf("start_date = %T, want time.Time", key["start_date"])
	}
	wantDate := entity.StartDate.Truncate(time.Millisecond)
	if !gotDate.Equal(wantDate) {
		t.Errorf("start_date = %v, want %v", gotDate, wantDate)
	}
	if gotDate.Equal(entity.StartDate) {
		t.Error("start_date should lose sub-millisecond precision")
	}
}

func TestComposite_EncodeKeyValue(t *testing.T) {
	ctx := context.Background()
	codec, _ := flatkey.NewComposite(foreignRegistry(t), "ForeignModel")

	mapping, err := codec.Encode(ctx, map[string]any{
		"organization": "Acme",
		"start_date":   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"key":          uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
	})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if mapping["start_date"] != "1704067200000" {
		t.Errorf("start_date = %q, want %q", mapping["start_date"], "1704067200000")
	}
}

func TestComposite_EncodeIdempotent(t *testing.T) {
	ctx := context.Background()
	codec, _ := flatkey.NewComposite(foreignRegistry(t), "ForeignModel")

	flat := map[string]string{
		"organization": "Acme",
		"start_date":   "1704067200123",
		"key":          "550e8400-e29b-41d4-a716-446655440000",
	}

	again, err := codec.Encode(ctx, flat)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	for k, v := range flat {
		if again[k] != v {
			t.Errorf("Encode()[%q] = %q, want unchanged %q", k, again[k], v)
		}
	}
	if len(again) != len(flat) {
		t.Errorf("Encode() returned %d entries, want %d", len(again), len(flat))
	}
}

func TestComposite_EmptyHandling(t *testing.T) {
	ctx := context.Background()
	codec, _ := flatkey.NewComposite(foreignRegistry(t), "ForeignModel")

	tests := []struct {
		name  string
		value any
	}{
		{"nil", nil},
		{"empty key value", map[string]any{}},
		{"empty flat mapping", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapping, err := codec.Encode(ctx, tt.value)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if mapping == nil || len(mapping) != 0 {
				t.Errorf("Encode() = %v, want empty mapping", mapping)
			}
		})
	}

	key, err := codec.Decode(ctx, map[string]string{})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if key == nil || len(key) != 0 {
		t.Errorf("Decode() = %v, want empty key value", key)
	}
}

func TestComposite_RejectsIndex(t *testing.T) {
	_, err := flatkey.NewComposite(foreignRegistry(t), "ForeignModel", flatkey.WithIndex())
	if !errors.Is(err, flatkey.ErrConfiguration) {
		t.Errorf("NewComposite() should reject index requests with ErrConfiguration, got %v", err)
	}
}

func TestComposite_RejectsEmptyModel(t *testing.T) {
	_, err := flatkey.NewComposite(foreignRegistry(t), "")
	if !errors.Is(err, flatkey.ErrConfiguration) {
		t.Errorf("NewComposite() should reject empty model names, got %v", err)
	}
}

func TestComposite_DecodeMissingField(t *testing.T) {
	ctx := context.Background()
	codec, _ := flatkey.NewComposite(foreignRegistry(t), "ForeignModel")

	_, err := codec.Decode(ctx, map[string]string{"organization": "Acme"})
	if !errors.Is(err, flatkey.ErrMissingField) {
		t.Fatalf("Decode() should fail with ErrMissingField, got %v", err)
	}

	var fieldErr *flatkey.FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("Decode() error should be *FieldError, got %T", err)
	}
	if fieldErr.Field != "start_date" {
		t.Errorf("FieldError.Field = %q, want %q", fieldErr.Field, "start_date")
	}
}

func TestComposite_EncodeMissingField(t *testing.T) {
	ctx := context.Background()
	codec, _ := flatkey.NewComposite(foreignRegistry(t), "ForeignModel")

	_, err := codec.Encode(ctx, map[string]any{"organization": "Acme"})
	if !errors.Is(err, flatkey.ErrMissingField) {
		t.Errorf("Encode() should fail with ErrMissingField, got %v", err)
	}
}

func TestComposite_EncodeUnsupportedValue(t *testing.T) {
	ctx := context.Background()
	codec, _ := flatkey.NewComposite(foreignRegistry(t), "ForeignModel")

	_, err := codec.Encode(ctx, 42)
	if !errors.Is(err, flatkey.ErrTypeCoercion) {
		t.Errorf("Encode() should fail with ErrTypeCoercion for non-entity values, got %v", err)
	}
}

func TestComposite_UnknownModel(t *testing.T) {
	ctx := context.Background()
	codec, err := flatkey.NewComposite(foreignRegistry(t), "Ghost")
	if err != nil {
		t.Fatalf("NewComposite() error: %v", err)
	}

	// Resolution is lazy: construction succeeds, first use fails.
	_, err = codec.Encode(ctx, map[string]any{"key": "x"})
	if !errors.Is(err, flatkey.ErrSchemaResolution) {
		t.Errorf("Encode() should fail with ErrSchemaResolution, got %v", err)
	}
}

func TestComposite_ResolvesOnceUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	reg := &countingRegistry{inner: foreignRegistry(t)}
	codec, err := flatkey.NewComposite(reg, "ForeignModel")
	if err != nil {
		t.Fatalf("NewComposite() error: %v", err)
	}

	entity := ForeignModel{
		Organization: "Acme",
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Key:          uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := codec.Encode(ctx, entity); err != nil {
				t.Errorf("Encode() error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := reg.resolves.Load(); got != 1 {
		t.Errorf("registry resolved %d times, want 1", got)
	}
}
