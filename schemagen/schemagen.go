// Package schemagen generates a component set for the ecs package from a YAML declaration.
//
// A declaration lists the package to generate into, extra imports, and an ordered list of components:
//
//	package: monsters
//	imports:
//	  - pkg.world.dev/world-engine/entitystore/grid
//	components:
//	  - name: position
//	    type: grid.Coord
//	  - name: hit_points
//	    type: int
//
// The generated file holds a Components struct with one component.Table per component, an EntityData struct
// with one pointer field per component, and the bulk operations ecs.ECS needs.
package schemagen

import (
	"bytes"
	_ "embed"
	"go/format"
	"go/token"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidDeclaration = eris.New("invalid component declaration")

	componentName = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)

	// Methods generated on Components and EntityData. Both structs get one field per component, so a component
	// named after any of them would collide with a method.
	reservedGoNames = map[string]bool{
		"Schemas":           true,
		"RemoveEntity":      true,
		"CloneEntityData":   true,
		"RemoveEntityData":  true,
		"InsertEntityData":  true,
		"ComponentEntities": true,
		"Clear":             true,
		"ComponentNames":    true,
	}

	//go:embed components.go.tmpl
	componentsTemplate string

	tmpl = template.Must(template.New("components").Parse(componentsTemplate))
)

type Declaration struct {
	Package    string      `yaml:"package"`
	Imports    []string    `yaml:"imports"`
	Components []Component `yaml:"components"`
}

type Component struct {
	// Name is the snake_case component name used in encoded state.
	Name string `yaml:"name"`
	// Type is the Go type expression of the component value, e.g. "grid.Coord" or "[]string".
	Type string `yaml:"type"`
}

// GoName is the exported field name for the component.
func (c Component) GoName() string {
	var b strings.Builder
	for _, part := range strings.Split(c.Name, "_") {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// Parse decodes and validates a YAML declaration.
func Parse(bz []byte) (Declaration, error) {
	var decl Declaration
	if err := yaml.Unmarshal(bz, &decl); err != nil {
		return Declaration{}, eris.Wrap(err, "decoding component declaration")
	}
	if err := decl.Validate(); err != nil {
		return Declaration{}, err
	}
	return decl, nil
}

func Load(path string) (Declaration, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return Declaration{}, eris.Wrapf(err, "reading %s", path)
	}
	return Parse(bz)
}

func (d Declaration) Validate() error {
	if !token.IsIdentifier(d.Package) {
		return eris.Wrapf(ErrInvalidDeclaration, "package %q is not a valid identifier", d.Package)
	}
	if len(d.Components) == 0 {
		return eris.Wrap(ErrInvalidDeclaration, "at least one component must be declared")
	}
	names := make(map[string]bool, len(d.Components))
	goNames := make(map[string]bool, len(d.Components))
	for _, c := range d.Components {
		if !componentName.MatchString(c.Name) {
			return eris.Wrapf(ErrInvalidDeclaration, "component name %q must be snake_case", c.Name)
		}
		if reservedGoNames[c.GoName()] {
			return eris.Wrapf(ErrInvalidDeclaration, "component name %q is reserved", c.Name)
		}
		if names[c.Name] || goNames[c.GoName()] {
			return eris.Wrapf(ErrInvalidDeclaration, "component %q declared twice", c.Name)
		}
		if strings.TrimSpace(c.Type) == "" {
			return eris.Wrapf(ErrInvalidDeclaration, "component %q has no type", c.Name)
		}
		names[c.Name] = true
		goNames[c.GoName()] = true
	}
	return nil
}

// Generate renders the gofmt-formatted Go source for d.
func Generate(d Declaration) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return nil, eris.Wrap(err, "executing components template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, eris.Wrapf(err, "formatting generated source for package %s", d.Package)
	}
	return src, nil
}

// GenerateFile reads the declaration at schemaPath and writes the generated source to outPath.
func GenerateFile(schemaPath, outPath string) error {
	decl, err := Load(schemaPath)
	if err != nil {
		return err
	}
	src, err := Generate(decl)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, src, 0o644); err != nil { //nolint:gosec // generated source is not secret
		return eris.Wrapf(err, "writing %s", outPath)
	}
	return nil
}
