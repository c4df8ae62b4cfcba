// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package printer renders populated config structs as indented text for
// checking what was actually loaded.
//
// The output for a struct lists every schema field by its config key:
//
//	config.Drivetrain {
//	    trackWidth: 0.55
//	    modules: [
//	        config.Module {
//	            name: "fl"
//	        },
//	        config.Module {
//	            name: "fr"
//	        }
//	    ]
//	    gyro: null
//	    ids: [ 1, 2, 3 ]
//	}
package printer

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/frc4206/battleaid/config/schema"
)

// DefaultIndent is the indent unit of a Printer created without [Indent].
const DefaultIndent = "    "

// Option configures a [Printer].
type Option func(*Printer)

// Indent sets the string added once per nesting level.
func Indent(unit string) Option {
	return func(p *Printer) {
		p.indent = unit
	}
}

// Printer renders config structs. A Printer is safe for concurrent use.
type Printer struct {
	indent string
}

// New returns a Printer.
func New(opts ...Option) *Printer {
	p := &Printer{indent: DefaultIndent}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render returns the text form of v, a struct or pointer to a struct,
// terminated by a newline. Every pointer level is followed.
func (p *Printer) Render(v any) (string, error) {
	var sb strings.Builder
	err := p.render(&sb, v)
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Fprint writes the text form of v to w.
func (p *Printer) Fprint(w io.Writer, v any) error {
	s, err := p.Render(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func (p *Printer) render(sb *strings.Builder, v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			if _, err := schema.Of(rv.Type()); err != nil {
				return err
			}
			sb.WriteString("null\n")
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		_, err := schema.Of(reflect.TypeOf(v))
		return err
	}

	err := p.writeStruct(sb, rv, "")
	if err != nil {
		return err
	}
	sb.WriteByte('\n')
	return nil
}

func (p *Printer) writeStruct(sb *strings.Builder, v reflect.Value, indent string) error {
	s, err := schema.Of(v.Type())
	if err != nil {
		return err
	}

	sb.WriteString(s.Name())
	sb.WriteString(" {\n")

	inner := indent + p.indent
	for _, f := range s.Fields {
		sb.WriteString(inner)
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		err := p.writeValue(sb, v.Field(f.Index), f.Type, inner)
		if err != nil {
			return err
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(indent)
	sb.WriteByte('}')
	return nil
}

func (p *Printer) writeValue(sb *strings.Builder, v reflect.Value, t *schema.Type, indent string) error {
	switch t.Kind {
	case schema.KindStruct:
		if t.Pointer() {
			if v.IsNil() {
				sb.WriteString("null")
				return nil
			}
			v = v.Elem()
		}
		return p.writeStruct(sb, v, indent)
	case schema.KindArray:
		return p.writeArray(sb, v, t, indent)
	}
	sb.WriteString(formatScalar(v, t.Kind))
	return nil
}

// writeArray puts arrays of structs or arrays one element per line and
// everything else on a single line.
func (p *Printer) writeArray(sb *strings.Builder, v reflect.Value, t *schema.Type, indent string) error {
	if v.IsNil() {
		sb.WriteString("null")
		return nil
	}

	if t.Elem.Kind == schema.KindStruct || t.Elem.Kind == schema.KindArray {
		inner := indent + p.indent
		sb.WriteString("[\n")
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				sb.WriteString(",\n")
			}
			sb.WriteString(inner)
			err := p.writeValue(sb, v.Index(i), t.Elem, inner)
			if err != nil {
				return err
			}
		}
		if v.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(indent)
		sb.WriteByte(']')
		return nil
	}

	sb.WriteString("[ ")
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(formatScalar(v.Index(i), t.Elem.Kind))
	}
	if v.Len() > 0 {
		sb.WriteByte(' ')
	}
	sb.WriteByte(']')
	return nil
}

func formatScalar(v reflect.Value, k schema.Kind) string {
	switch k {
	case schema.KindInt64, schema.KindInt32, schema.KindInt16, schema.KindInt8:
		return strconv.FormatInt(v.Int(), 10)
	case schema.KindFloat64:
		return formatFloat(v.Float(), 64)
	case schema.KindFloat32:
		return formatFloat(v.Float(), 32)
	case schema.KindBool:
		return strconv.FormatBool(v.Bool())
	case schema.KindChar:
		return strconv.QuoteRune(rune(v.Int()))
	case schema.KindString:
		return strconv.Quote(v.String())
	}
	return fmt.Sprint(v.Interface())
}

// formatFloat uses the shortest representation which parses back to f
// and keeps a decimal point on whole numbers.
func formatFloat(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}

var std = New()

// SetIndent changes the indent unit used by the package level functions.
// It is not synchronized: call it once at start up, before anything
// renders concurrently. The last call wins.
func SetIndent(unit string) {
	std.indent = unit
}

// Render is like [Printer.Render] using the default printer.
func Render(v any) (string, error) {
	return std.Render(v)
}

// Fprint is like [Printer.Fprint] using the default printer.
func Fprint(w io.Writer, v any) error {
	return std.Fprint(w, v)
}

// Print writes the text form of v to standard output.
func Print(v any) error {
	return std.Fprint(os.Stdout, v)
}
