// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"reflect"

	"github.com/frc4206/battleaid/config/document"
	"github.com/frc4206/battleaid/config/key"
	"github.com/frc4206/battleaid/config/schema"
)

// Populate assigns every field of the struct pointed to by v from the
// given table. It fails on the first missing required field, mismatched
// value or unsupported field type. Optional fields absent from tbl keep
// whatever value they already had. On error v is left unchanged.
func Populate(v any, tbl *document.Table) error {
	return populateRoot(v, tbl, "")
}

func populateRoot(v any, tbl *document.Table, file string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return &InvalidTargetError{Type: reflect.TypeOf(v)}
	}

	inst := reflect.New(rv.Elem().Type())
	inst.Elem().Set(rv.Elem())

	p := populator{file: file}
	err := p.populate(inst.Elem(), tbl, nil)
	if err != nil {
		return err
	}
	rv.Elem().Set(inst.Elem())
	return nil
}

type populator struct {
	file string
}

// site identifies the schema field a value is being produced for.
type site struct {
	field schema.Field
	owner reflect.Type
}

func (p populator) populate(dst reflect.Value, tbl *document.Table, chain key.Chain) error {
	s, err := schema.Of(dst.Type())
	if err != nil {
		return err
	}

	for _, f := range s.Fields {
		fchain := chain.Append(key.Name(f.Name))

		val, ok := tbl.Get(f.Name)
		if !ok {
			if f.Required {
				return &MissingRequiredFieldError{
					Field:         f.Name,
					DeclaringType: s.Type,
					Key:           fchain,
					File:          p.file,
				}
			}
			continue
		}

		v, err := p.value(site{field: f, owner: s.Type}, f.Type, val, fchain)
		if err != nil {
			return err
		}
		dst.Field(f.Index).Set(v)
	}
	return nil
}

// value produces a new value of type t from val. Nothing is assigned
// to the schema node until the value is complete.
func (p populator) value(at site, t *schema.Type, val document.Value, chain key.Chain) (reflect.Value, error) {
	switch {
	case t.Kind == schema.KindInvalid:
		return reflect.Value{}, &schema.ExtensionError{
			Type:          t.Go,
			Field:         at.field.GoName,
			DeclaringType: at.owner,
		}
	case t.Kind == schema.KindArray:
		return p.array(at, t, val, chain)
	case t.Kind == schema.KindStruct:
		return p.composite(at, t, val, chain)
	}

	out := reflect.New(t.Go).Elem()
	err := setScalar(t.Kind, out, val)
	if err != nil {
		return reflect.Value{}, mismatch(at, t.String(), val, chain, err)
	}
	return out, nil
}

func (p populator) composite(at site, t *schema.Type, val document.Value, chain key.Chain) (reflect.Value, error) {
	tbl, ok := val.(*document.Table)
	if !ok {
		return reflect.Value{}, mismatch(at, "table", val, chain, ErrKindMismatch)
	}

	s, err := schema.Of(t.Struct())
	if err != nil {
		return reflect.Value{}, err
	}

	inst := s.New()
	err = p.populate(inst.Elem(), tbl, chain)
	if err != nil {
		return reflect.Value{}, err
	}
	if t.Pointer() {
		return inst, nil
	}
	return inst.Elem(), nil
}

func mismatch(at site, expected string, val document.Value, chain key.Chain, cause error) *TypeMismatchError {
	return &TypeMismatchError{
		Field:    at.field.Name,
		Key:      chain,
		Expected: expected,
		Actual:   document.KindOf(val),
		Value:    val,
		Cause:    cause,
	}
}
