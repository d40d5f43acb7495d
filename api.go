// Package flatkey represents multi-field composite primary keys as flat
// text mappings for wide-column stores.
//
// Map columns in such stores only hold primitive key/value types, so a
// reference to a row keyed by several fields cannot be stored as a nested
// structure. flatkey encodes the referenced key as a single
// map[string]string and reconstructs correctly typed field values from it,
// losslessly except for the store's own millisecond truncation of
// timestamps.
//
// # Pipeline
//
// Writing: entity instance or raw key value → Composite.Encode → flat
// mapping → mapcol marshal. Reading: mapcol unmarshal → flat mapping →
// Composite.Decode → typed key values. Both directions iterate the resolved
// schema's field set, so partial or drifted data fails deterministically.
//
// # Basic Usage
//
//	type Event struct {
//	    Organization string    `pk:"organization"`
//	    StartDate    time.Time `pk:"start_date"`
//	    Key          uuid.UUID `pk:"key"`
//	    Info         string
//	}
//
//	schemas, _ := flatkey.LoadSchemas(catalogYAML)
//	codec, _ := flatkey.NewComposite(schemas, "Event")
//
//	// Flatten for storage
//	mapping, _ := codec.Encode(ctx, event)
//
//	// Reconstruct typed key values
//	key, _ := codec.Decode(ctx, mapping)
//
// # Field Types
//
// Key components are typed by LogicalType, each backed by a FieldType with
// the store's native encode/decode primitives:
//
//   - text: unrestricted UTF-8 strings
//   - ascii: 7-bit ASCII strings
//   - uuid: canonical-form UUIDs
//   - bigint: 64-bit signed integers
//   - timestamp: millisecond-precision instants
//
// Only these types are whitelisted for string casting; encoding any other
// logical type fails with ErrTypeCoercion rather than attempting a blind
// cast.
//
// # Timestamp Asymmetry
//
// The store accepts integer milliseconds since epoch on write but its
// driver returns float seconds with fractional milliseconds on read. The
// flattened path bypasses the driver's native marshaling, so Decode
// emulates the read shape (millisecond string ÷ 1000 → float seconds)
// before invoking the timestamp type's own decode step.
//
// # Reference Columns
//
// Three relation-column variants share the required model configuration and
// differ only in encode/decode strategy:
//
//   - Reference: simple UUID foreign key
//   - StringReference: UUID coerced to its string form on decode
//   - CompositeReference: composite key flattened through a Composite codec
//
// Secondary indexes over composite references are rejected at construction:
// the store's equality matching over flattened maps is not strict enough
// for primary-key semantics.
//
// # Errors
//
// All failures wrap one of four sentinels, checked with errors.Is:
// ErrConfiguration (bad column setup, definition time), ErrSchemaResolution
// (unknown model, fatal per call), ErrMissingField (data/schema drift), and
// ErrTypeCoercion (value incompatible with its declared type). The codec
// performs no logging, no retries, and no fallback substitution.
//
// # Signals
//
// Codec lifecycle and encode/decode operations emit capitan signals with
// typed keys (model, field_count, duration, error) for callers that want
// observability hooks. Nothing is logged by default.
package flatkey
