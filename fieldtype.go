package flatkey

import (
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// LogicalType identifies the store-level type of a key field.
// The names match the type identifiers the store's query language uses.
type LogicalType string

const (
	// LogicalText is an unrestricted UTF-8 string.
	LogicalText LogicalType = "text"

	// LogicalASCII is a string restricted to 7-bit ASCII.
	LogicalASCII LogicalType = "ascii"

	// LogicalUUID is a type 1 or type 4 UUID.
	LogicalUUID LogicalType = "uuid"

	// LogicalInteger is a 64-bit signed integer.
	LogicalInteger LogicalType = "bigint"

	// LogicalTimestamp is a millisecond-precision instant. The store accepts
	// integer milliseconds on write but its driver returns float seconds on
	// read; the normalizer compensates for that asymmetry.
	LogicalTimestamp LogicalType = "timestamp"
)

// stringCastable lists the logical types known to round-trip through string
// casting. Encoding a field of any other logical type fails loudly instead
// of attempting a blind cast.
var stringCastable = map[LogicalType]bool{
	LogicalText:      true,
	LogicalASCII:     true,
	LogicalUUID:      true,
	LogicalInteger:   true,
	LogicalTimestamp: true,
}

// IsStringCastable returns true if fields of the given logical type can be
// flattened to text and reconstructed from it.
func IsStringCastable(lt LogicalType) bool {
	return stringCastable[lt]
}

// FieldType provides the native encode/decode primitives for one logical
// type. Implementations must be stateless and safe for concurrent use.
//
// EncodeNative produces the wire representation the store natively accepts
// on write. DecodeNative consumes the representation the store's driver
// natively produces on read.
type FieldType interface {
	// Logical returns the store-level type identifier.
	Logical() LogicalType

	// EncodeNative converts a typed value into its store-wire form.
	EncodeNative(v any) (any, error)

	// DecodeNative converts a store-wire value back into its typed form.
	DecodeNative(v any) (any, error)
}

// TextType stores unrestricted UTF-8 strings.
type TextType struct{}

func (TextType) Logical() LogicalType { return LogicalText }

func (TextType) EncodeNative(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	}
	return nil, fmt.Errorf("text value must be a string, got %T", v)
}

func (TextType) DecodeNative(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	}
	return nil, fmt.Errorf("text value must be a string, got %T", v)
}

// ASCIIType stores strings restricted to 7-bit ASCII.
type ASCIIType struct{}

func (ASCIIType) Logical() LogicalType { return LogicalASCII }

func (ASCIIType) EncodeNative(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("ascii value must be a string, got %T", v)
	}
	if !isASCII(s) {
		return nil, fmt.Errorf("ascii value %q contains non-ASCII characters", s)
	}
	return s, nil
}

func (ASCIIType) DecodeNative(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("ascii value must be a string, got %T", v)
	}
	if !isASCII(s) {
		return nil, fmt.Errorf("ascii value %q contains non-ASCII characters", s)
	}
	return s, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// UUIDType stores type 1 or type 4 UUIDs in canonical form.
type UUIDType struct{}

func (UUIDType) Logical() LogicalType { return LogicalUUID }

func (UUIDType) EncodeNative(v any) (any, error) {
	switch u := v.(type) {
	case uuid.UUID:
		return u.String(), nil
	case string:
		parsed, err := uuid.Parse(u)
		if err != nil {
			return nil, err
		}
		return parsed.String(), nil
	}
	return nil, fmt.Errorf("uuid value must be a uuid.UUID or string, got %T", v)
}

func (UUIDType) DecodeNative(v any) (any, error) {
	switch u := v.(type) {
	case uuid.UUID:
		return u, nil
	case string:
		return uuid.Parse(u)
	case []byte:
		return uuid.FromBytes(u)
	}
	return nil, fmt.Errorf("uuid value must be a uuid.UUID or string, got %T", v)
}

// IntegerType stores 64-bit signed integers.
type IntegerType struct{}

func (IntegerType) Logical() LogicalType { return LogicalInteger }

func (IntegerType) EncodeNative(v any) (any, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	}
	return nil, fmt.Errorf("integer value must be an integer, got %T", v)
}

func (IntegerType) DecodeNative(v any) (any, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	case float64:
		return int64(n), nil
	}
	return nil, fmt.Errorf("integer value must be an integer, got %T", v)
}

// TimestampType stores millisecond-precision instants.
//
// The wire form on write is integer milliseconds since epoch, truncated.
// The driver's read form is float64 seconds since epoch with fractional
// milliseconds; DecodeNative accepts that shape to match what a native
// timestamp column would receive.
type TimestampType struct{}

func (TimestampType) Logical() LogicalType { return LogicalTimestamp }

func (TimestampType) EncodeNative(v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UnixMilli(), nil
	case int64:
		return t, nil
	case float64:
		// Float seconds as produced by a native read; re-truncate to ms.
		return int64(math.Round(t * 1000)), nil
	}
	return nil, fmt.Errorf("timestamp value must be a time.Time, got %T", v)
}

func (TimestampType) DecodeNative(v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case float64:
		return time.UnixMilli(int64(math.Round(t * 1000))).UTC(), nil
	case int64:
		return time.UnixMilli(t).UTC(), nil
	}
	return nil, fmt.Errorf("timestamp value must be a time.Time or driver float, got %T", v)
}
