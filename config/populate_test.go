// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"reflect"
	"testing"

	"github.com/frc4206/battleaid/config/document"
	"github.com/frc4206/battleaid/config/schema"

	"github.com/stretchr/testify/require"
)

type nested struct {
	X float64 `config:"x,required"`
}

type root struct {
	A int    `config:"a,required"`
	B string `config:"b"`
	C nested `config:"c,required"`
}

type primitives struct {
	I64 int64       `config:"i64"`
	I32 int32       `config:"i32"`
	I16 int16       `config:"i16"`
	I8  int8        `config:"i8"`
	F64 float64     `config:"f64"`
	F32 float32     `config:"f32"`
	B   bool        `config:"b"`
	C   schema.Char `config:"c"`
	S   string      `config:"s"`
}

type module struct {
	Name   string  `config:"name,required"`
	Offset float64 `config:"offset,required"`
}

type drivetrain struct {
	Modules []module  `config:"modules"`
	Gyro    *nested   `config:"gyro"`
	Grid    [][]int   `config:"grid"`
	Ids     []int16   `config:"ids"`
	Spares  []*module `config:"spares"`
	Labels  []string  `config:"labels"`
	Tags    map[string]string
}

func table(t *testing.T, m document.Map) *document.Table {
	tbl, err := m.Parse()
	require.Nil(t, err)
	return tbl
}

func TestPopulate(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the target is not a pointer to a struct", func(t *testing.T) {
			tbl := document.NewTable()

			var r root
			var nilRoot *root
			var n int
			targets := []any{nil, r, nilRoot, &n}
			for _, target := range targets {
				err := Populate(target, tbl)

				var ierr *InvalidTargetError
				require.ErrorAs(t, err, &ierr)
				require.NotEmpty(t, ierr.Error())
			}
		})

		t.Run("if a top level required key is missing", func(t *testing.T) {
			tbl := table(t, document.Map{
				"b": "hello",
				"c": map[string]any{"x": 1.5},
			})

			var r root
			err := Populate(&r, tbl)

			var merr *MissingRequiredFieldError
			require.ErrorAs(t, err, &merr)
			require.Equal(t, "a", merr.Field)
			require.Equal(t, reflect.TypeOf(root{}), merr.DeclaringType)
			require.Equal(t, "a", merr.Key.String())
			require.Contains(t, merr.Error(), "'a' from config.root is not found in 'document'")
		})

		t.Run("if a nested required key is missing", func(t *testing.T) {
			tbl := table(t, document.Map{
				"a": 5,
				"c": map[string]any{},
			})

			var r root
			err := Populate(&r, tbl)

			var merr *MissingRequiredFieldError
			require.ErrorAs(t, err, &merr)
			require.Equal(t, "x", merr.Field)
			require.Equal(t, reflect.TypeOf(nested{}), merr.DeclaringType)
			require.Equal(t, "c.x", merr.Key.String())
			require.Zero(t, r.C)
		})

		t.Run("if a composite key holds a scalar", func(t *testing.T) {
			tbl := table(t, document.Map{
				"a": 5,
				"c": 1.5,
			})

			var r root
			err := Populate(&r, tbl)

			var terr *TypeMismatchError
			require.ErrorAs(t, err, &terr)
			require.ErrorIs(t, err, ErrKindMismatch)
			require.Equal(t, "table", terr.Expected)
			require.Equal(t, document.KindFloat, terr.Actual)
		})

		t.Run("and leave the target unchanged if a nested value mismatches", func(t *testing.T) {
			tbl := table(t, document.Map{
				"a": 5,
				"b": "x",
				"c": map[string]any{"x": "bad"},
			})

			r := root{A: 1, B: "keep", C: nested{X: 2.5}}
			err := Populate(&r, tbl)

			var terr *TypeMismatchError
			require.ErrorAs(t, err, &terr)
			require.Equal(t, "c.x", terr.Key.String())
			require.Equal(t, root{A: 1, B: "keep", C: nested{X: 2.5}}, r)
		})

		t.Run("if a char is given an empty string", func(t *testing.T) {
			tbl := table(t, document.Map{"c": ""})

			var p primitives
			err := Populate(&p, tbl)

			var terr *TypeMismatchError
			require.ErrorAs(t, err, &terr)
			require.ErrorIs(t, err, ErrEmptyChar)
			require.Equal(t, "c", terr.Field)
			require.Equal(t, "char", terr.Expected)
			require.Contains(t, terr.Error(), ErrEmptyChar.Error())
		})

		t.Run("if a field has an unsupported type and its key is present", func(t *testing.T) {
			tbl := table(t, document.Map{
				"tags": map[string]any{"a": "b"},
			})

			var d drivetrain
			err := Populate(&d, tbl)

			var eerr *schema.ExtensionError
			require.ErrorAs(t, err, &eerr)
			require.Equal(t, "Tags", eerr.Field)
			require.Equal(t, reflect.TypeOf(drivetrain{}), eerr.DeclaringType)
			require.Equal(t, reflect.TypeOf(map[string]string{}), eerr.Type)
		})
	})

	t.Run("will populate", func(t *testing.T) {
		t.Run("if every required key is present", func(t *testing.T) {
			tbl := table(t, document.Map{
				"a": 5,
				"c": map[string]any{"x": 1.5},
			})

			var r root
			err := Populate(&r, tbl)
			require.Nil(t, err)
			require.Equal(t, root{A: 5, B: "", C: nested{X: 1.5}}, r)
		})

		t.Run("and keep the current value of an absent optional key", func(t *testing.T) {
			tbl := table(t, document.Map{
				"a": 5,
				"c": map[string]any{"x": 1.5},
			})

			r := root{B: "default"}
			err := Populate(&r, tbl)
			require.Nil(t, err)
			require.Equal(t, root{A: 5, B: "default", C: nested{X: 1.5}}, r)
		})

		t.Run("if every primitive kind is given its own representation", func(t *testing.T) {
			tbl := table(t, document.Map{
				"i64": int64(-9000000000),
				"i32": 70000,
				"i16": -300,
				"i8":  100,
				"f64": 0.1,
				"f32": 0.5,
				"b":   true,
				"c":   "xyz",
				"s":   "hello",
			})

			var p primitives
			err := Populate(&p, tbl)
			require.Nil(t, err)
			require.Equal(t, primitives{
				I64: -9000000000,
				I32: 70000,
				I16: -300,
				I8:  100,
				F64: 0.1,
				F32: 0.5,
				B:   true,
				C:   'x',
				S:   "hello",
			}, p)
		})

		t.Run("if an integer overflows a narrow field", func(t *testing.T) {
			tbl := table(t, document.Map{
				"i8":  300,
				"i16": 70000,
				"i32": int64(1) << 33,
			})

			var p primitives
			err := Populate(&p, tbl)
			require.Nil(t, err)
			require.Equal(t, int8(44), p.I8)
			require.Equal(t, int16(4464), p.I16)
			require.Equal(t, int32(0), p.I32)
		})

		t.Run("if a char is given a multibyte string", func(t *testing.T) {
			tbl := table(t, document.Map{"c": "éa"})

			var p primitives
			err := Populate(&p, tbl)
			require.Nil(t, err)
			require.Equal(t, schema.Char('é'), p.C)
		})

		t.Run("if an optional key is absent", func(t *testing.T) {
			tbl := table(t, document.Map{
				"a": 1,
				"c": map[string]any{"x": 2.0},
			})

			r := root{B: "kept"}
			err := Populate(&r, tbl)
			require.Nil(t, err)
			require.Equal(t, "kept", r.B)
		})

		t.Run("if a pointer to struct field is present", func(t *testing.T) {
			tbl := table(t, document.Map{
				"gyro": map[string]any{"x": 3.0},
			})

			var d drivetrain
			err := Populate(&d, tbl)
			require.Nil(t, err)
			require.NotNil(t, d.Gyro)
			require.Equal(t, 3.0, d.Gyro.X)
			require.Nil(t, d.Modules)
		})

		t.Run("if a field has an unsupported type but its key is absent", func(t *testing.T) {
			var d drivetrain
			err := Populate(&d, document.NewTable())
			require.Nil(t, err)
		})

		t.Run("if two instances are populated from one table", func(t *testing.T) {
			tbl := table(t, document.Map{
				"a": 1,
				"c": map[string]any{"x": 2.0},
			})

			var r1, r2 root
			require.Nil(t, Populate(&r1, tbl))
			require.Nil(t, Populate(&r2, tbl))

			r1.C.X = 10
			require.Equal(t, 2.0, r2.C.X)
		})
	})
}

func TestPopulate_TypeMismatch(t *testing.T) {
	values := map[document.Kind]any{
		document.KindInteger: 1,
		document.KindFloat:   1.5,
		document.KindBool:    true,
		document.KindString:  "s",
		document.KindArray:   []any{1},
		document.KindTable:   map[string]any{},
	}
	accepts := map[string]document.Kind{
		"i64": document.KindInteger,
		"i32": document.KindInteger,
		"i16": document.KindInteger,
		"i8":  document.KindInteger,
		"f64": document.KindFloat,
		"f32": document.KindFloat,
		"b":   document.KindBool,
		"c":   document.KindString,
		"s":   document.KindString,
	}

	for field, accepted := range accepts {
		for kind, value := range values {
			if kind == accepted {
				continue
			}

			t.Run("will return an error if "+field+" is given "+kind.String(), func(t *testing.T) {
				tbl := table(t, document.Map{field: value})

				var p primitives
				err := Populate(&p, tbl)

				var terr *TypeMismatchError
				require.ErrorAs(t, err, &terr)
				require.ErrorIs(t, err, ErrKindMismatch)
				require.Equal(t, field, terr.Field)
				require.Equal(t, field, terr.Key.String())
				require.Equal(t, kind, terr.Actual)
				require.Equal(t, primitives{}, p)
			})
		}
	}
}
