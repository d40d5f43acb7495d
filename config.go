package flatkey

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// schemaCatalog is the YAML shape of a schema catalog document:
//
//	schemas:
//	  ForeignModel:
//	    - id: organization
//	      type: text
//	    - id: start_date
//	      type: timestamp
//	    - id: key
//	      type: uuid
type schemaCatalog struct {
	Schemas map[string][]catalogField `yaml:"schemas"`
}

type catalogField struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`
}

// builtinTypes maps catalog type names to their field types.
var builtinTypes = map[LogicalType]FieldType{
	LogicalText:      TextType{},
	LogicalASCII:     ASCIIType{},
	LogicalUUID:      UUIDType{},
	LogicalInteger:   IntegerType{},
	LogicalTimestamp: TimestampType{},
}

// TypeFor returns the built-in FieldType for a logical type name.
func TypeFor(lt LogicalType) (FieldType, bool) {
	ft, ok := builtinTypes[lt]
	return ft, ok
}

// LoadSchemas parses a YAML schema catalog into a SchemaSet.
// Field order within each schema is preserved from the document.
func LoadSchemas(data []byte) (*SchemaSet, error) {
	var catalog schemaCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse schema catalog: %w", err)
	}

	set := NewSchemaSet()
	for name, entries := range catalog.Schemas {
		fields := make([]Field, 0, len(entries))
		for _, entry := range entries {
			ft, ok := TypeFor(LogicalType(entry.Type))
			if !ok {
				return nil, fmt.Errorf("schema %q: field %q has unknown type %q", name, entry.ID, entry.Type)
			}
			fields = append(fields, Field{ID: entry.ID, Type: ft})
		}

		schema, err := NewSchema(name, fields...)
		if err != nil {
			return nil, err
		}
		if err := set.Register(schema); err != nil {
			return nil, err
		}
	}

	return set, nil
}
