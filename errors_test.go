package flatkey

import (
	"errors"
	"testing"
)

func TestConfigError_Is(t *testing.T) {
	err := newConfigError("ForeignModel", "index")

	if !errors.Is(err, ErrConfiguration) {
		t.Error("ConfigError should unwrap to ErrConfiguration")
	}

	if errors.Is(err, ErrSchemaResolution) {
		t.Error("ConfigError should not match ErrSchemaResolution")
	}
}

func TestConfigError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "full context",
			err:  newConfigError("ForeignModel", "index"),
			want: `invalid column configuration: option "index" (model ForeignModel)`,
		},
		{
			name: "option only",
			err:  &ConfigError{Err: ErrConfiguration, Option: "model"},
			want: `invalid column configuration: option "model"`,
		},
		{
			name: "model only",
			err:  &ConfigError{Err: ErrConfiguration, Model: "ForeignModel"},
			want: `invalid column configuration (model ForeignModel)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolutionError_Is(t *testing.T) {
	err := newResolutionError("Ghost", errors.New("unknown model"))

	if !errors.Is(err, ErrSchemaResolution) {
		t.Error("ResolutionError should unwrap to ErrSchemaResolution")
	}

	if errors.Is(err, ErrMissingField) {
		t.Error("ResolutionError should not match ErrMissingField")
	}
}

func TestResolutionError_Message(t *testing.T) {
	cause := errors.New("catalog unavailable")
	err := newResolutionError("Ghost", cause)

	want := `schema resolution failed for model "Ghost": catalog unavailable`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFieldError_Is(t *testing.T) {
	err := newFieldError("ForeignModel", "start_date")

	if !errors.Is(err, ErrMissingField) {
		t.Error("FieldError should unwrap to ErrMissingField")
	}

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("error should be *FieldError, got %T", err)
	}
	if fieldErr.Field != "start_date" {
		t.Errorf("FieldError.Field = %q, want %q", fieldErr.Field, "start_date")
	}
}

func TestFieldError_Message(t *testing.T) {
	err := newFieldError("ForeignModel", "start_date")

	want := `missing key field "start_date" (model ForeignModel)`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCoercionError_Is(t *testing.T) {
	err := newCoercionError("key", LogicalUUID, errors.New("invalid UUID length"))

	if !errors.Is(err, ErrTypeCoercion) {
		t.Error("CoercionError should unwrap to ErrTypeCoercion")
	}

	var coercionErr *CoercionError
	if !errors.As(err, &coercionErr) {
		t.Fatalf("error should be *CoercionError, got %T", err)
	}
	if coercionErr.Type != LogicalUUID {
		t.Errorf("CoercionError.Type = %q, want %q", coercionErr.Type, LogicalUUID)
	}
}

func TestCoercionError_Message(t *testing.T) {
	cause := errors.New("invalid UUID length: 5")
	err := newCoercionError("key", LogicalUUID, cause)

	want := `type coercion failed for field "key" (uuid): invalid UUID length: 5`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
