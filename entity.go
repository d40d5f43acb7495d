package flatkey

import (
	"reflect"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the pk tag with sentinel
	sentinel.Tag("pk")
}

// Entity bypasses reflection for primary key extraction.
// Implement this to hand the codec the composite key value directly.
type Entity interface {
	// PrimaryKey returns the entity's key components by field ID.
	PrimaryKey() map[string]any
}

// Scan registers the entity type T with sentinel and returns the field IDs
// it declares via pk tags, in struct order. Useful for checking an entity
// type against its schema at startup.
func Scan[T any]() []string {
	spec := sentinel.Scan[T]()

	var ids []string
	for _, field := range spec.Fields {
		if id, ok := field.Tags["pk"]; ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// primaryKeyOf extracts the composite key value from an entity instance.
//
// Types implementing Entity supply the map themselves. Otherwise the value
// must be a struct (or pointer to one) whose key components carry pk tags
// naming their field IDs. Returns false if v is not an entity of either kind.
func primaryKeyOf(v any) (map[string]any, bool) {
	if e, ok := v.(Entity); ok {
		return e.PrimaryKey(), true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	spec := scanEntityType(rv.Type())

	key := make(map[string]any)
	for _, field := range spec.Fields {
		id, ok := field.Tags["pk"]
		if !ok || id == "" {
			continue
		}
		key[id] = rv.FieldByIndex(field.Index).Interface()
	}

	if len(key) == 0 {
		return nil, false
	}
	return key, true
}

// scanEntityType returns field metadata for an entity struct type,
// preferring sentinel's cache over a fresh reflection pass.
func scanEntityType(rt reflect.Type) sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return spec
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		tags := make(map[string]string)
		if val, ok := sf.Tag.Lookup("pk"); ok {
			tags["pk"] = val
		}

		spec.Fields = append(spec.Fields, sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        tags,
		})
	}

	return spec
}
