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

// array allocates a slice the length of the document array and fills it
// element by element. Any failing element voids the whole slice.
func (p populator) array(at site, t *schema.Type, val document.Value, chain key.Chain) (reflect.Value, error) {
	if bad := t.Invalid(); bad != nil {
		return reflect.Value{}, &schema.ExtensionError{
			Type:          bad.Go,
			Field:         at.field.GoName,
			DeclaringType: at.owner,
		}
	}

	arr, ok := val.(document.Array)
	if !ok {
		return reflect.Value{}, mismatch(at, "array", val, chain, ErrKindMismatch)
	}

	out := reflect.MakeSlice(t.Go, len(arr), len(arr))
	for i, el := range arr {
		v, err := p.value(at, t.Elem, el, chain.Append(key.Index(i)))
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(v)
	}
	return out, nil
}
