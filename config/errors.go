// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/frc4206/battleaid/config/document"
	"github.com/frc4206/battleaid/config/key"
)

var (
	// ErrKindMismatch is the cause of a [TypeMismatchError] when the
	// document value has a different representation than the field.
	ErrKindMismatch = errors.New("value representation does not match declared type")

	// ErrEmptyChar is the cause of a [TypeMismatchError] when a
	// character field is given an empty string.
	ErrEmptyChar = errors.New("empty string has no first character")
)

// MissingRequiredFieldError occurs when a required field has no
// corresponding key in the document.
type MissingRequiredFieldError struct {
	// Field is the document key of the missing field.
	Field         string
	DeclaringType reflect.Type

	// Key is the full path of the missing key from the document root.
	Key key.Chain

	// File is the path of the document, if it was loaded from one.
	File string
}

// Error implements the [error] interface.
func (e *MissingRequiredFieldError) Error() string {
	file := e.File
	if file == "" {
		file = "document"
	}
	return fmt.Sprintf("'%s' from %s is not found in '%s' (key: %s)", e.Field, e.DeclaringType, file, e.Key)
}

// TypeMismatchError occurs when a document value can not be assigned to
// a field because of its representation.
type TypeMismatchError struct {
	Field string
	Key   key.Chain

	// Expected describes the declared type e.g. "int32", "array" or "table".
	Expected string
	Actual   document.Kind
	Value    document.Value

	Cause error
}

// Error implements the [error] interface.
func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("'%s' expected %s but found %s at key %s", e.Field, e.Expected, e.Actual, e.Key)
	if e.Cause != nil && e.Cause != ErrKindMismatch {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e *TypeMismatchError) Unwrap() error {
	return e.Cause
}

// InvalidTargetError occurs when the value to populate is not a non-nil
// pointer to a struct.
type InvalidTargetError struct {
	Type reflect.Type
}

// Error implements the [error] interface.
func (e *InvalidTargetError) Error() string {
	if e.Type == nil {
		return "config: populate target must be a non-nil pointer to a struct, got nil"
	}
	return fmt.Sprintf("config: populate target must be a non-nil pointer to a struct, got %s", e.Type)
}

// UnsupportedFormatError occurs when a file's extension does not map to a
// known document format.
type UnsupportedFormatError struct {
	File string
}

// Error implements the [error] interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported config format: %s", e.File)
}

// ReadError occurs when a document file could not be read.
type ReadError struct {
	File  string
	Cause error
}

// Error implements the [error] interface.
func (e ReadError) Error() string {
	return fmt.Sprintf("failed to read config file %s: %s", e.File, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ReadError) Unwrap() error {
	return e.Cause
}
