// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import (
	"fmt"
	"reflect"
)

// Kind classifies the declared type of a schema field.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt64
	KindInt32
	KindInt16
	KindInt8
	KindFloat64
	KindFloat32
	KindBool
	KindChar
	KindString
	KindStruct
	KindArray

	// KindTotal is the number of kinds defined.
	KindTotal = int(iota)
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInt64:   "int64",
	KindInt32:   "int32",
	KindInt16:   "int16",
	KindInt8:    "int8",
	KindFloat64: "float64",
	KindFloat32: "float32",
	KindBool:    "bool",
	KindChar:    "char",
	KindString:  "string",
	KindStruct:  "struct",
	KindArray:   "array",
}

// String implements the [fmt.Stringer] interface.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsScalar reports whether k is one of the primitive kinds.
func (k Kind) IsScalar() bool {
	switch k {
	case KindInt64, KindInt32, KindInt16, KindInt8,
		KindFloat64, KindFloat32, KindBool, KindChar, KindString:
		return true
	default:
		return false
	}
}

// IsInteger reports whether k is one of the integer kinds.
func (k Kind) IsInteger() bool {
	switch k {
	case KindInt64, KindInt32, KindInt16, KindInt8:
		return true
	default:
		return false
	}
}

// IsFloat reports whether k is one of the floating point kinds.
func (k Kind) IsFloat() bool {
	return k == KindFloat64 || k == KindFloat32
}

// Char is a single character. A plain rune is indistinguishable from
// int32, so character fields must be declared with this type.
type Char rune

var charType = reflect.TypeOf(Char(0))

// Type is the classified declared type of a field or array element.
type Type struct {
	Kind Kind

	// Go is the declared Go type e.g. *Nested or []int16.
	Go reflect.Type

	// Elem describes the element type of KindArray.
	Elem *Type
}

// Pointer reports whether a KindStruct value is held by pointer.
func (t *Type) Pointer() bool {
	return t.Kind == KindStruct && t.Go.Kind() == reflect.Pointer
}

// Struct returns the struct type of a KindStruct value.
func (t *Type) Struct() reflect.Type {
	if t.Pointer() {
		return t.Go.Elem()
	}
	return t.Go
}

// Invalid returns the first type within t, t included, which
// cannot be populated, or nil if there is none.
func (t *Type) Invalid() *Type {
	for cur := t; cur != nil; cur = cur.Elem {
		if cur.Kind == KindInvalid {
			return cur
		}
	}
	return nil
}

// String describes the type for diagnostics.
func (t *Type) String() string {
	switch t.Kind {
	case KindArray:
		return "[]" + t.Elem.String()
	case KindStruct, KindInvalid:
		return t.Go.String()
	default:
		return t.Kind.String()
	}
}

// TypeOf classifies rt.
func TypeOf(rt reflect.Type) *Type {
	t := &Type{Go: rt, Kind: classify(rt)}
	if t.Kind == KindArray {
		t.Elem = TypeOf(rt.Elem())
	}
	return t
}

func classify(rt reflect.Type) Kind {
	if rt == charType {
		return KindChar
	}

	switch rt.Kind() {
	case reflect.Int, reflect.Int64:
		return KindInt64
	case reflect.Int32:
		return KindInt32
	case reflect.Int16:
		return KindInt16
	case reflect.Int8:
		return KindInt8
	case reflect.Float64:
		return KindFloat64
	case reflect.Float32:
		return KindFloat32
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindString
	case reflect.Struct:
		return KindStruct
	case reflect.Pointer:
		if rt.Elem().Kind() == reflect.Struct {
			return KindStruct
		}
	case reflect.Slice:
		return KindArray
	}
	return KindInvalid
}
