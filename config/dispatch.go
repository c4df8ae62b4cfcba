// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"reflect"
	"unicode/utf8"

	"github.com/frc4206/battleaid/config/document"
	"github.com/frc4206/battleaid/config/schema"
)

// scalarRule assigns a document value to dst, which is settable and has
// the Go kind matching the rule's schema kind.
type scalarRule func(dst reflect.Value, v document.Value) error

// scalarRules maps every scalar kind to its conversion. Narrower integer
// and float kinds share the rule of their widest kind since SetInt and
// SetFloat truncate to the width of dst without a range check.
var scalarRules = [schema.KindTotal]scalarRule{
	schema.KindInt64:   setInteger,
	schema.KindInt32:   setInteger,
	schema.KindInt16:   setInteger,
	schema.KindInt8:    setInteger,
	schema.KindFloat64: setFloat,
	schema.KindFloat32: setFloat,
	schema.KindBool:    setBool,
	schema.KindChar:    setChar,
	schema.KindString:  setString,
}

func setScalar(k schema.Kind, dst reflect.Value, v document.Value) error {
	if k < 0 || int(k) >= len(scalarRules) || scalarRules[k] == nil {
		return ErrKindMismatch
	}
	return scalarRules[k](dst, v)
}

func setInteger(dst reflect.Value, v document.Value) error {
	i, ok := v.(document.Integer)
	if !ok {
		return ErrKindMismatch
	}
	dst.SetInt(int64(i))
	return nil
}

func setFloat(dst reflect.Value, v document.Value) error {
	f, ok := v.(document.Float)
	if !ok {
		return ErrKindMismatch
	}
	dst.SetFloat(float64(f))
	return nil
}

func setBool(dst reflect.Value, v document.Value) error {
	b, ok := v.(document.Bool)
	if !ok {
		return ErrKindMismatch
	}
	dst.SetBool(bool(b))
	return nil
}

func setChar(dst reflect.Value, v document.Value) error {
	s, ok := v.(document.String)
	if !ok {
		return ErrKindMismatch
	}
	if len(s) == 0 {
		return ErrEmptyChar
	}
	r, _ := utf8.DecodeRuneInString(string(s))
	dst.SetInt(int64(r))
	return nil
}

func setString(dst reflect.Value, v document.Value) error {
	s, ok := v.(document.String)
	if !ok {
		return ErrKindMismatch
	}
	dst.SetString(string(s))
	return nil
}
