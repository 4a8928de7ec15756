package component

import (
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"

	"pkg.world.dev/world-engine/entitystore/codec"
)

// Schema names one component table and carries the JSON schema of its value type. Schemas are saved next to
// snapshots so a snapshot taken with one set of component types is not loaded into another.
type Schema struct {
	Name       string           `json:"name"`
	JSONSchema codec.RawMessage `json:"schema"`
}

// SchemaOf reflects the JSON schema of T.
func SchemaOf[T any](name string) (Schema, error) {
	bz, err := jsonschema.Reflect(new(T)).MarshalJSON()
	if err != nil {
		return Schema{}, eris.Wrapf(err, "reflecting schema of component %q", name)
	}
	return Schema{Name: name, JSONSchema: bz}, nil
}

// MustSchemaOf is SchemaOf for generated code, where a failure means the component type cannot be encoded at all.
func MustSchemaOf[T any](name string) Schema {
	s, err := SchemaOf[T](name)
	if err != nil {
		panic(err)
	}
	return s
}

// IsSchemaCompatible reports whether two encoded JSON schemas describe the same document shape.
func IsSchemaCompatible(current, saved []byte) (bool, error) {
	patch, err := jsondiff.CompareJSON(current, saved)
	if err != nil {
		return false, eris.Wrap(err, "")
	}
	return patch.String() == "", nil
}

// CheckSchemas compares the schemas a snapshot was saved with against the ones registered now. Every registered
// component must be present in the saved set with an identical schema, and vice versa.
func CheckSchemas(current, saved []Schema) error {
	if len(current) != len(saved) {
		return eris.Wrapf(ErrSchemaMismatch, "have %d components, saved state has %d", len(current), len(saved))
	}
	byName := make(map[string]Schema, len(saved))
	for _, s := range saved {
		byName[s.Name] = s
	}
	for _, c := range current {
		s, ok := byName[c.Name]
		if !ok {
			return eris.Wrapf(ErrSchemaMismatch, "component %q is not in saved state", c.Name)
		}
		same, err := IsSchemaCompatible(c.JSONSchema, s.JSONSchema)
		if err != nil {
			return err
		}
		if !same {
			return eris.Wrapf(ErrSchemaMismatch, "component %q", c.Name)
		}
	}
	return nil
}
