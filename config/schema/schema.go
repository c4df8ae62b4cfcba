// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package schema describes the config schema of Go struct types.
//
// A schema node is any struct type. Its members are the exported fields
// declared directly on it; embedded fields are not members. Each member is
// addressed in a document by the name given in its `config` struct tag or,
// without a tag, by its Go name with the first letter lower-cased:
//
//	type Drive struct {
//		MaxSpeed float64   `config:"max_speed,required"`
//		Modules  []Module  `config:"modules"`
//		Gearing  *Gearing
//		Internal int       `config:"-"`
//	}
//
// Fields are optional unless the tag carries the required option.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// TagName is the struct tag consulted for field names and markers.
const TagName = "config"

// Field describes a single member of a schema node.
type Field struct {
	// Name is the document key the field is populated from.
	Name string

	// GoName is the name of the struct field.
	GoName string

	// Index is the struct field index for use with [reflect.Value.Field].
	Index int

	Type     *Type
	Required bool
}

// Schema is the ordered set of fields declared on a struct type.
type Schema struct {
	Type   reflect.Type
	Fields []Field
}

// Name returns the qualified name of the struct type e.g. config.Drive.
func (s *Schema) Name() string {
	return s.Type.String()
}

// New returns a pointer to a new zero value of the schema's struct type.
func (s *Schema) New() reflect.Value {
	return reflect.New(s.Type)
}

// Field returns the field populated from the given document key.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ExtensionError occurs when a type which can not be populated is used
// as a schema node or as the declared type of a field.
type ExtensionError struct {
	// Type is the offending type.
	Type reflect.Type

	// Field and DeclaringType are set when the offending type was
	// declared on a struct field.
	Field         string
	DeclaringType reflect.Type

	Reason string
}

// Error implements the [error] interface.
func (e *ExtensionError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is not a supported config type"
	}
	if e.DeclaringType == nil {
		return fmt.Sprintf("%s %s", typeName(e.Type), reason)
	}
	return fmt.Sprintf("%s.%s: %s %s", e.DeclaringType, e.Field, typeName(e.Type), reason)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

var cache sync.Map // map[reflect.Type]*Schema

// Of returns the schema of the struct type t. Pointer types are
// dereferenced. Schemas are built once per type and cached.
func Of(t reflect.Type) (*Schema, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, &ExtensionError{Type: t, Reason: "is not a struct"}
	}

	if s, ok := cache.Load(t); ok {
		return s.(*Schema), nil
	}

	s, err := build(t)
	if err != nil {
		return nil, err
	}
	actual, _ := cache.LoadOrStore(t, s)
	return actual.(*Schema), nil
}

// For returns the schema of T.
func For[T any]() (*Schema, error) {
	return Of(reflect.TypeOf((*T)(nil)).Elem())
}

func build(t reflect.Type) (*Schema, error) {
	s := &Schema{
		Type:   t,
		Fields: make([]Field, 0, t.NumField()),
	}

	seen := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}

		name, opts := parseTag(sf.Tag.Get(TagName))
		if name == "-" && opts == "" {
			continue
		}
		if name == "" {
			name = defaultName(sf.Name)
		}
		if prev, ok := seen[name]; ok {
			return nil, &ExtensionError{
				Type:          sf.Type,
				Field:         sf.Name,
				DeclaringType: t,
				Reason:        fmt.Sprintf("uses config key %q already used by field %s", name, prev),
			}
		}
		seen[name] = sf.Name

		s.Fields = append(s.Fields, Field{
			Name:     name,
			GoName:   sf.Name,
			Index:    i,
			Type:     TypeOf(sf.Type),
			Required: hasOption(opts, "required"),
		})
	}
	return s, nil
}

func parseTag(tag string) (name, opts string) {
	name, opts, _ = strings.Cut(tag, ",")
	return strings.TrimSpace(name), opts
}

func hasOption(opts, option string) bool {
	for opts != "" {
		var cur string
		cur, opts, _ = strings.Cut(opts, ",")
		if strings.TrimSpace(cur) == option {
			return true
		}
	}
	return false
}

func defaultName(goName string) string {
	r, size := utf8.DecodeRuneInString(goName)
	return string(unicode.ToLower(r)) + goName[size:]
}

// Check walks the schema graph rooted at t and reports every type which
// can not be populated. Unlike population, which only fails once it
// reaches an offending field present in a document, Check inspects every
// field so authoring mistakes can be caught in tests.
func Check(t reflect.Type) error {
	var errs []error
	visited := make(map[reflect.Type]bool)

	var walk func(reflect.Type)
	walk = func(t reflect.Type) {
		s, err := Of(t)
		if err != nil {
			errs = append(errs, err)
			return
		}
		if visited[s.Type] {
			return
		}
		visited[s.Type] = true

		for _, f := range s.Fields {
			if bad := f.Type.Invalid(); bad != nil {
				errs = append(errs, &ExtensionError{
					Type:          bad.Go,
					Field:         f.GoName,
					DeclaringType: s.Type,
				})
				continue
			}
			for cur := f.Type; cur != nil; cur = cur.Elem {
				if cur.Kind == KindStruct {
					walk(cur.Struct())
				}
			}
		}
	}
	walk(t)

	return errors.Join(errs...)
}
