// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package key provides types for addressing values within a parsed config document.
package key

import (
	"strconv"
	"strings"
)

// Keyer is a common interface all document key types must implement.
type Keyer interface {
	Key() string
}

// Chain represents nested keys, from the document root down to a value.
type Chain []Keyer

// Key implements the [Keyer] interface. Names are joined with "." and
// indexes are rendered in brackets e.g. "drive.modules[2].offset".
func (k Chain) Key() string {
	var sb strings.Builder
	for i, kr := range k {
		switch x := kr.(type) {
		case Index:
			sb.WriteString(x.Key())
		default:
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(x.Key())
		}
	}
	return sb.String()
}

// String implements the [fmt.Stringer] interface.
func (k Chain) String() string {
	return k.Key()
}

// Append returns a new Chain with the given keys appended. The receiver is
// never modified, so sibling chains never share a backing array.
func (k Chain) Append(keys ...Keyer) Chain {
	c := make(Chain, 0, len(k)+len(keys))
	c = append(c, k...)
	return append(c, keys...)
}

// Name represents a single table key.
type Name string

// Key implements the [Keyer] interface.
func (k Name) Key() string {
	return string(k)
}

// Index represents the position of an element within an array.
type Index int

// Key implements the [Keyer] interface.
func (k Index) Key() string {
	return "[" + strconv.Itoa(int(k)) + "]"
}
