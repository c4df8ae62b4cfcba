// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package document

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/frc4206/battleaid/config/key"
)

// Source defines valid document sources as those who can
// parse themselves into a top-level [Table].
type Source interface {
	Parse() (*Table, error)
}

// SourceFunc is a functional implementation of the [Source] interface.
type SourceFunc func() (*Table, error)

// Parse implements the [Source] interface.
func (f SourceFunc) Parse() (*Table, error) {
	return f()
}

// Map is an ordinary map[string]any but implements the [Source] interface.
// Keys are added to the resulting table in lexical order.
type Map map[string]any

// Parse implements the [Source] interface. It recursively walks the
// underlying map converting Go values into document values.
func (m Map) Parse() (*Table, error) {
	return walkMap(reflect.ValueOf(map[string]any(m)), nil)
}

// UnsupportedValueError occurs when a [Map] contains a Go value with no
// document representation.
type UnsupportedValueError struct {
	Key   key.Chain
	Value any
}

// Error implements the [error] interface.
func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported document value at %s: %T", e.Key, e.Value)
}

func walkMap(m reflect.Value, chain key.Chain) (*Table, error) {
	keys := m.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(a.String(), b.String())
	})

	t := NewTable()
	for _, k := range keys {
		name := k.String()
		v, err := fromGo(m.MapIndex(k), chain.Append(key.Name(name)))
		if err != nil {
			return nil, err
		}
		t.Set(name, v)
	}
	return t, nil
}

func fromGo(rv reflect.Value, chain key.Chain) (Value, error) {
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, &UnsupportedValueError{Key: chain, Value: nil}
		}
		if v, ok := rv.Interface().(Value); ok {
			return v, nil
		}
		rv = rv.Elem()
	}
	if v, ok := rv.Interface().(Value); ok {
		return v, nil
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		arr := make(Array, rv.Len())
		for i := range arr {
			v, err := fromGo(rv.Index(i), chain.Append(key.Index(i)))
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		return walkMap(rv, chain)
	}
	return nil, &UnsupportedValueError{Key: chain, Value: rv.Interface()}
}
