// Package mapcol provides the generic mapping-column primitive that
// flattened composite keys are stored through. A Column carries declared
// key and value kinds and marshals flat text mappings to the wire with
// MessagePack.
package mapcol

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"
)

// Kind declares the store-level type of a column's keys or values.
type Kind string

const (
	// KindASCII restricts strings to the identifier grammar, the character
	// set the store's query language accepts for pseudo-identifiers.
	KindASCII Kind = "ascii"

	// KindText allows any non-empty UTF-8 string.
	KindText Kind = "text"
)

var validKinds = map[Kind]bool{
	KindASCII: true,
	KindText:  true,
}

// Sentinel errors for programmatic error handling.
var (
	// ErrKey indicates a map key violates the column's declared key kind.
	ErrKey = errors.New("invalid map key")

	// ErrValue indicates a map value violates the column's declared value kind.
	ErrValue = errors.New("invalid map value")
)

var identifierRE = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Column is an ordered mapping column with declared key and value kinds.
// Columns are immutable and safe for concurrent use.
type Column struct {
	keys   Kind
	values Kind
}

// New creates a mapping column with the given key and value kinds.
func New(keys, values Kind) (*Column, error) {
	if !validKinds[keys] {
		return nil, fmt.Errorf("unknown key kind %q", keys)
	}
	if !validKinds[values] {
		return nil, fmt.Errorf("unknown value kind %q", values)
	}
	return &Column{keys: keys, values: values}, nil
}

// KeyKind returns the declared key kind.
func (c *Column) KeyKind() Kind { return c.keys }

// ValueKind returns the declared value kind.
func (c *Column) ValueKind() Kind { return c.values }

// Marshal validates the mapping against the declared kinds and encodes it
// for the wire. An empty or nil mapping marshals to an empty map, never nil.
func (c *Column) Marshal(m map[string]string) ([]byte, error) {
	for k, v := range m {
		if err := c.checkKind(c.keys, k); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrKey, k, err)
		}
		if err := c.checkKind(c.values, v); err != nil {
			return nil, fmt.Errorf("%w for key %q: %v", ErrValue, k, err)
		}
	}

	if m == nil {
		m = map[string]string{}
	}
	return msgpack.Marshal(m)
}

// Unmarshal decodes wire data into a flat text mapping.
func (c *Column) Unmarshal(data []byte) (map[string]string, error) {
	var m map[string]string
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

func (c *Column) checkKind(kind Kind, s string) error {
	if s == "" {
		return errors.New("must not be empty")
	}
	switch kind {
	case KindASCII:
		if !identifierRE.MatchString(s) {
			return errors.New("violates the identifier grammar")
		}
	case KindText:
		if !utf8.ValidString(s) {
			return errors.New("not valid UTF-8")
		}
	}
	return nil
}
