package flatkey

import (
	"fmt"
	"strconv"
)

// encodeField normalizes one key component into its canonical text form.
//
// Strings pass through untouched: they are assumed to already carry the
// canonical form, matching the store's own text marshaling. Anything else
// goes through the field type's native encode step first, then is stringified.
// Empty results normalize to absent (present=false) rather than an empty
// string, since the flat mapping never holds empty text values.
func encodeField(f Field, v any) (text string, present bool, err error) {
	if s, ok := v.(string); ok {
		if s == "" {
			return "", false, nil
		}
		return s, true, nil
	}

	lt := f.Type.Logical()
	if !IsStringCastable(lt) {
		return "", false, newCoercionError(f.ID, lt,
			fmt.Errorf("logical type %q is not known to round-trip through string casting", lt))
	}

	wire, err := f.Type.EncodeNative(v)
	if err != nil {
		return "", false, newCoercionError(f.ID, lt, err)
	}

	switch w := wire.(type) {
	case nil:
		return "", false, nil
	case string:
		if w == "" {
			return "", false, nil
		}
		return w, true, nil
	case int64:
		// Covers integers and timestamps, whose wire form is integer
		// milliseconds since epoch.
		return strconv.FormatInt(w, 10), true, nil
	default:
		return "", false, newCoercionError(f.ID, lt,
			fmt.Errorf("native encode produced unsupported wire type %T", wire))
	}
}

// decodeField reconstructs one typed key component from its stored text.
//
// Timestamps stored as text carry integer milliseconds, but the field type's
// decode step expects the shape a native read would supply: float seconds
// with fractional milliseconds. The division below emulates that driver
// behavior before delegating. Every other type accepts its own encoded text
// as valid decode input, so the stored value feeds straight through.
func decodeField(f Field, text string) (any, error) {
	lt := f.Type.Logical()

	if lt == LogicalTimestamp {
		ms, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, newCoercionError(f.ID, lt, err)
		}
		v, err := f.Type.DecodeNative(float64(ms) / 1000.0)
		if err != nil {
			return nil, newCoercionError(f.ID, lt, err)
		}
		return v, nil
	}

	v, err := f.Type.DecodeNative(text)
	if err != nil {
		return nil, newCoercionError(f.ID, lt, err)
	}
	return v, nil
}
