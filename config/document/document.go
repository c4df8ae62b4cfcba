// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package document provides a format independent model of a parsed config
// document along with sources which build it from TOML, YAML and JSON.
package document

import (
	"fmt"
	"strings"
)

// Kind identifies the representation of a [Value].
type Kind int

const (
	KindInvalid Kind = iota
	KindTable
	KindArray
	KindInteger
	KindFloat
	KindBool
	KindString
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindTable:   "table",
	KindArray:   "array",
	KindInteger: "integer",
	KindFloat:   "float",
	KindBool:    "bool",
	KindString:  "string",
}

// String implements the [fmt.Stringer] interface.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Value is any node of a parsed document. The set of implementations is
// closed: *Table, Array, Integer, Float, Bool and String.
type Value interface {
	Kind() Kind

	value()
}

// KindOf returns the kind of v or KindInvalid if v is nil.
func KindOf(v Value) Kind {
	if v == nil {
		return KindInvalid
	}
	return v.Kind()
}

// Integer is a whole number value.
type Integer int64

// Kind implements the [Value] interface.
func (Integer) Kind() Kind { return KindInteger }

func (Integer) value() {}

// Float is a floating point value.
type Float float64

// Kind implements the [Value] interface.
func (Float) Kind() Kind { return KindFloat }

func (Float) value() {}

// Bool is a boolean value.
type Bool bool

// Kind implements the [Value] interface.
func (Bool) Kind() Kind { return KindBool }

func (Bool) value() {}

// String is a text value.
type String string

// Kind implements the [Value] interface.
func (String) Kind() Kind { return KindString }

func (String) value() {}

// Array is an ordered sequence of values.
type Array []Value

// Kind implements the [Value] interface.
func (Array) Kind() Kind { return KindArray }

func (Array) value() {}

// Len returns the number of elements.
func (a Array) Len() int {
	return len(a)
}

// Get returns the element at index i or nil if i is out of range.
func (a Array) Get(i int) Value {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

// Integer returns the integer at index i.
func (a Array) Integer(i int) (int64, error) {
	v, err := a.lookup(i, KindInteger)
	if err != nil {
		return 0, err
	}
	return int64(v.(Integer)), nil
}

// Float returns the float at index i.
func (a Array) Float(i int) (float64, error) {
	v, err := a.lookup(i, KindFloat)
	if err != nil {
		return 0, err
	}
	return float64(v.(Float)), nil
}

// Bool returns the bool at index i.
func (a Array) Bool(i int) (bool, error) {
	v, err := a.lookup(i, KindBool)
	if err != nil {
		return false, err
	}
	return bool(v.(Bool)), nil
}

// String returns the string at index i.
func (a Array) String(i int) (string, error) {
	v, err := a.lookup(i, KindString)
	if err != nil {
		return "", err
	}
	return string(v.(String)), nil
}

// Table returns the nested table at index i.
func (a Array) Table(i int) (*Table, error) {
	v, err := a.lookup(i, KindTable)
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

// Array returns the nested array at index i.
func (a Array) Array(i int) (Array, error) {
	v, err := a.lookup(i, KindArray)
	if err != nil {
		return nil, err
	}
	return v.(Array), nil
}

func (a Array) lookup(i int, expected Kind) (Value, error) {
	v := a.Get(i)
	if v == nil {
		return nil, &IndexError{Index: i, Len: len(a)}
	}
	if v.Kind() != expected {
		return nil, &TypeError{
			Key:      fmt.Sprintf("[%d]", i),
			Expected: expected,
			Actual:   v.Kind(),
		}
	}
	return v, nil
}

// Table is a mapping of unique keys to values which remembers the order
// keys were first set in.
type Table struct {
	keys   []string
	values map[string]Value
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		values: make(map[string]Value),
	}
}

// Kind implements the [Value] interface.
func (*Table) Kind() Kind { return KindTable }

func (*Table) value() {}

// Set assigns v to k. Setting an existing key replaces its value but keeps
// its original position.
func (t *Table) Set(k string, v Value) {
	if t.values == nil {
		t.values = make(map[string]Value)
	}
	if _, exists := t.values[k]; !exists {
		t.keys = append(t.keys, k)
	}
	t.values[k] = v
}

// Len returns the number of keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the keys in order. The returned slice must not be modified.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return t.keys
}

// Contains reports whether k is present.
func (t *Table) Contains(k string) bool {
	_, ok := t.Get(k)
	return ok
}

// Get returns the value for k.
func (t *Table) Get(k string) (Value, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.values[k]
	return v, ok
}

// IsArray reports whether the value at k is an [Array].
func (t *Table) IsArray(k string) bool {
	v, ok := t.Get(k)
	return ok && v.Kind() == KindArray
}

// IsTable reports whether the value at k is a [Table].
func (t *Table) IsTable(k string) bool {
	v, ok := t.Get(k)
	return ok && v.Kind() == KindTable
}

// Integer returns the integer at k.
func (t *Table) Integer(k string) (int64, error) {
	v, err := t.lookup(k, KindInteger)
	if err != nil {
		return 0, err
	}
	return int64(v.(Integer)), nil
}

// Float returns the float at k.
func (t *Table) Float(k string) (float64, error) {
	v, err := t.lookup(k, KindFloat)
	if err != nil {
		return 0, err
	}
	return float64(v.(Float)), nil
}

// Bool returns the bool at k.
func (t *Table) Bool(k string) (bool, error) {
	v, err := t.lookup(k, KindBool)
	if err != nil {
		return false, err
	}
	return bool(v.(Bool)), nil
}

// String returns the string at k.
func (t *Table) String(k string) (string, error) {
	v, err := t.lookup(k, KindString)
	if err != nil {
		return "", err
	}
	return string(v.(String)), nil
}

// Table returns the nested table at k.
func (t *Table) Table(k string) (*Table, error) {
	v, err := t.lookup(k, KindTable)
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

// Array returns the nested array at k.
func (t *Table) Array(k string) (Array, error) {
	v, err := t.lookup(k, KindArray)
	if err != nil {
		return nil, err
	}
	return v.(Array), nil
}

func (t *Table) lookup(k string, expected Kind) (Value, error) {
	v, ok := t.Get(k)
	if !ok {
		return nil, &KeyNotFoundError{Key: k}
	}
	if v.Kind() != expected {
		return nil, &TypeError{
			Key:      k,
			Expected: expected,
			Actual:   v.Kind(),
		}
	}
	return v, nil
}

// KeyNotFoundError is returned by the typed accessors of [Table] when the
// requested key is absent.
type KeyNotFoundError struct {
	Key string
}

// Error implements the [error] interface.
func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %s", e.Key)
}

// IndexError is returned by the typed accessors of [Array] when the
// requested index is out of range.
type IndexError struct {
	Index int
	Len   int
}

// Error implements the [error] interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for array of length %d", e.Index, e.Len)
}

// TypeError is returned by the typed accessors of [Table] and [Array]
// when the value at the requested key has a different representation.
type TypeError struct {
	Key      string
	Expected Kind
	Actual   Kind
}

// Error implements the [error] interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("expected %s value for key %s but found %s", e.Expected, e.Key, e.Actual)
}

// SyntaxError occurs when a document is not well-formed. It carries one
// message per issue reported by the underlying parser.
type SyntaxError struct {
	File     string
	Messages []string
	Cause    error
}

// Error implements the [error] interface.
func (e *SyntaxError) Error() string {
	name := e.File
	if name == "" {
		name = "document"
	}
	return fmt.Sprintf("encountered issues in %s: %s", name, strings.Join(e.Messages, "; "))
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}
