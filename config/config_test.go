// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/frc4206/battleaid/config/document"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func mapFS(files map[string]string) fstest.MapFS {
	fsys := make(fstest.MapFS, len(files))
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fsys
}

func TestLoader_Load(t *testing.T) {
	t.Run("will populate", func(t *testing.T) {
		testCases := []struct {
			Name string
			File string
			Data string
		}{
			{
				Name: "toml",
				File: "robot.toml",
				Data: "a = 5\nb = \"hi\"\n[c]\nx = 1.5\n",
			},
			{
				Name: "yaml",
				File: "robot.yaml",
				Data: "a: 5\nb: hi\nc:\n  x: 1.5\n",
			},
			{
				Name: "yml",
				File: "nested/robot.YML",
				Data: "a: 5\nb: hi\nc: {x: 1.5}\n",
			},
			{
				Name: "json",
				File: "robot.json",
				Data: `{"a": 5, "b": "hi", "c": {"x": 1.5}}`,
			},
		}

		for _, testCase := range testCases {
			t.Run("if the file is "+testCase.Name, func(t *testing.T) {
				l := NewLoader(FS(mapFS(map[string]string{testCase.File: testCase.Data})))

				var r root
				err := l.Load(context.Background(), &r, testCase.File)
				require.Nil(t, err)
				require.Equal(t, root{A: 5, B: "hi", C: nested{X: 1.5}}, r)
			})
		}

		t.Run("if the file is found in the directory named by the environment", func(t *testing.T) {
			dir := t.TempDir()
			err := os.WriteFile(filepath.Join(dir, "robot.toml"), []byte("a = 1\n[c]\nx = 2.0\n"), 0o600)
			require.Nil(t, err)

			t.Setenv(DirEnv, dir)

			var r root
			err = Load(&r, "robot.toml")
			require.Nil(t, err)
			require.Equal(t, 1, r.A)
		})

		t.Run("if the file is rendered as a template", func(t *testing.T) {
			t.Setenv("BATTLEAID_TEST_A", "42")

			fsys := mapFS(map[string]string{
				"robot.toml": `a = {{ env "BATTLEAID_TEST_A" }}
b = "{{ env "BATTLEAID_TEST_UNSET" | default "fallback" }}"
[c]
x = 1.0
`,
			})
			l := NewLoader(FS(fsys), Template())

			var r root
			err := l.Load(context.Background(), &r, "robot.toml")
			require.Nil(t, err)
			require.Equal(t, 42, r.A)
			require.Equal(t, "fallback", r.B)
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the file extension is not supported", func(t *testing.T) {
			l := NewLoader(FS(mapFS(map[string]string{"robot.ini": "a=1"})))

			var r root
			err := l.Load(context.Background(), &r, "robot.ini")

			var uerr *UnsupportedFormatError
			require.ErrorAs(t, err, &uerr)
			require.Equal(t, "robot.ini", uerr.File)
		})

		t.Run("if the file does not exist", func(t *testing.T) {
			l := NewLoader(FS(mapFS(nil)))

			var r root
			err := l.Load(context.Background(), &r, "robot.toml")

			var rerr ReadError
			require.ErrorAs(t, err, &rerr)
			require.ErrorIs(t, err, fs.ErrNotExist)
			require.Equal(t, "robot.toml", rerr.File)
		})

		t.Run("if the file is not well formed", func(t *testing.T) {
			l := NewLoader(FS(mapFS(map[string]string{"robot.json": `{"a": `})))

			var r root
			err := l.Load(context.Background(), &r, "robot.json")

			var serr *document.SyntaxError
			require.ErrorAs(t, err, &serr)
			require.Equal(t, "robot.json", serr.File)
			require.NotEmpty(t, serr.Messages)
		})

		t.Run("with the full path if the file is in a directory", func(t *testing.T) {
			dir := t.TempDir()
			err := os.WriteFile(filepath.Join(dir, "robot.yaml"), []byte("b: hi\n"), 0o600)
			require.Nil(t, err)

			l := NewLoader(Dir(dir))

			var r root
			err = l.Load(context.Background(), &r, "robot.yaml")

			var merr *MissingRequiredFieldError
			require.ErrorAs(t, err, &merr)
			require.Equal(t, filepath.Join(dir, "robot.yaml"), merr.File)
			require.Contains(t, merr.Error(), filepath.Join(dir, "robot.yaml"))
		})

		t.Run("if the template is invalid", func(t *testing.T) {
			l := NewLoader(FS(mapFS(map[string]string{"robot.toml": "a = {{ env"})), Template())

			var r root
			err := l.Load(context.Background(), &r, "robot.toml")

			var perr TemplateParseError
			require.ErrorAs(t, err, &perr)
		})
	})

	t.Run("will record a span", func(t *testing.T) {
		t.Run("with an error status if loading fails", func(t *testing.T) {
			sr := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

			l := NewLoader(FS(mapFS(nil)), TracerProvider(tp))

			var r root
			err := l.Load(context.Background(), &r, "robot.toml")
			require.Error(t, err)

			spans := sr.Ended()
			require.Len(t, spans, 1)
			require.Equal(t, "Loader.Load", spans[0].Name())
			require.Equal(t, codes.Error, spans[0].Status().Code)
			require.Len(t, spans[0].Events(), 1)
		})

		t.Run("with the file name if loading succeeds", func(t *testing.T) {
			sr := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

			l := NewLoader(
				FS(mapFS(map[string]string{"robot.toml": "a = 1\n[c]\nx = 1.0\n"})),
				TracerProvider(tp),
			)

			var r root
			err := l.Load(context.Background(), &r, "robot.toml")
			require.Nil(t, err)

			spans := sr.Ended()
			require.Len(t, spans, 1)
			require.Equal(t, codes.Unset, spans[0].Status().Code)

			attrs := map[string]string{}
			for _, kv := range spans[0].Attributes() {
				attrs[string(kv.Key)] = kv.Value.Emit()
			}
			require.Equal(t, "robot.toml", attrs["config.file"])
			require.Equal(t, "2", attrs["config.keys"])
		})
	})
}

func TestLoader_Document(t *testing.T) {
	t.Run("will parse without populating", func(t *testing.T) {
		sr := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

		l := NewLoader(
			FS(mapFS(map[string]string{"robot.yaml": "z: 1\na: [x, y]\n"})),
			TracerProvider(tp),
		)

		tbl, err := l.Document(context.Background(), "robot.yaml")
		require.Nil(t, err)
		require.Equal(t, []string{"z", "a"}, tbl.Keys())

		spans := sr.Ended()
		require.Len(t, spans, 1)
		require.Equal(t, "Loader.Document", spans[0].Name())
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("with the document location if it is not well formed", func(t *testing.T) {
			dir := t.TempDir()
			err := os.WriteFile(filepath.Join(dir, "robot.toml"), []byte("a = = 1"), 0o600)
			require.Nil(t, err)

			_, err = NewLoader(Dir(dir)).Document(context.Background(), "robot.toml")

			var serr *document.SyntaxError
			require.ErrorAs(t, err, &serr)
			require.Equal(t, filepath.Join(dir, "robot.toml"), serr.File)
		})
	})
}

func TestLoader_MustLoad(t *testing.T) {
	t.Run("will exit with code 1", func(t *testing.T) {
		t.Run("and log one line per syntax issue", func(t *testing.T) {
			var buf bytes.Buffer
			code := -1
			l := NewLoader(
				FS(mapFS(map[string]string{"robot.yaml": "a: [1, null, ~]\n"})),
				LogHandler(slog.NewJSONHandler(&buf, nil)),
				Exit(func(c int) { code = c }),
			)

			var r root
			l.MustLoad(context.Background(), &r, "robot.yaml")
			require.Equal(t, 1, code)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, 2)
			for _, line := range lines {
				require.Contains(t, line, `"file":"robot.yaml"`)
				require.Contains(t, line, "null")
			}
		})

		t.Run("if a required key is missing", func(t *testing.T) {
			var buf bytes.Buffer
			code := -1

			r := MustLoad(
				new(root),
				"robot.toml",
				FS(mapFS(map[string]string{"robot.toml": "b = \"hi\"\n"})),
				LogHandler(slog.NewTextHandler(&buf, nil)),
				Exit(func(c int) { code = c }),
			)
			require.Equal(t, 1, code)
			require.NotNil(t, r)
			require.Contains(t, buf.String(), "is not found in")
		})
	})

	t.Run("will not exit", func(t *testing.T) {
		t.Run("if the file loads", func(t *testing.T) {
			exited := false

			r := MustLoad(
				new(root),
				"robot.toml",
				FS(mapFS(map[string]string{"robot.toml": "a = 3\n[c]\nx = 1.0\n"})),
				Exit(func(int) { exited = true }),
			)
			require.False(t, exited)
			require.Equal(t, 3, r.A)
		})
	})
}

func TestParse(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the name has no extension", func(t *testing.T) {
			_, err := Parse("robot", strings.NewReader(""))

			var uerr *UnsupportedFormatError
			require.ErrorAs(t, err, &uerr)
		})

		t.Run("naming the document if it is not well formed", func(t *testing.T) {
			_, err := Parse("robot.toml", strings.NewReader("a = "))

			var serr *document.SyntaxError
			require.ErrorAs(t, err, &serr)
			require.Equal(t, "robot.toml", serr.File)
			require.Contains(t, serr.Error(), "robot.toml")
		})
	})

	t.Run("will parse", func(t *testing.T) {
		t.Run("if the extension is upper case", func(t *testing.T) {
			tbl, err := Parse("ROBOT.JSON", strings.NewReader(`{"a": 1}`))
			require.Nil(t, err)

			a, err := tbl.Integer("a")
			require.Nil(t, err)
			require.Equal(t, int64(1), a)
		})
	})
}
