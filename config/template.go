// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"
	"text/template"

	"github.com/frc4206/battleaid/internal/try"
)

// TemplateOption configures a [TemplateRenderer].
type TemplateOption func(*TemplateRenderer)

// TemplateFunc registers f under name for use in config templates. It
// may replace the builtin env and default functions.
func TemplateFunc(name string, f any) TemplateOption {
	return func(tr *TemplateRenderer) {
		tr.funcs[name] = f
	}
}

// TemplateDelims sets the action delimiters. An empty delimiter stands
// for the corresponding default: {{ or }}.
func TemplateDelims(left, right string) TemplateOption {
	return func(tr *TemplateRenderer) {
		tr.leftDelim = left
		tr.rightDelim = right
	}
}

// TemplateRenderer is an io.Reader which renders the text/template read
// from another io.Reader. Two functions are always available:
//
//	{{ env "TEAM_NUMBER" }}           value of an environment variable or ""
//	{{ env "MODE" | default "comp" }} def when the piped value is empty
type TemplateRenderer struct {
	r io.Reader

	leftDelim  string
	rightDelim string
	funcs      template.FuncMap

	renderOnce sync.Once
	renderErr  error
	buf        bytes.Buffer
}

// RenderTemplate configures a TemplateRenderer over r.
func RenderTemplate(r io.Reader, opts ...TemplateOption) *TemplateRenderer {
	tr := &TemplateRenderer{
		r: r,
		funcs: template.FuncMap{
			"env":     templateEnv,
			"default": templateDefault,
		},
	}
	for _, opt := range opts {
		opt(tr)
	}
	return tr
}

// TemplateParseError occurs when a config template fails to be parsed.
type TemplateParseError struct {
	Cause error
}

// Error implements the error interface.
func (e TemplateParseError) Error() string {
	return fmt.Sprintf("failed to parse config template: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TemplateParseError) Unwrap() error {
	return e.Cause
}

// TemplateExecError occurs when a template fails to execute, most likely
// because a template function returned an error or panicked.
type TemplateExecError struct {
	Cause error
}

// Error implements the error interface.
func (e TemplateExecError) Error() string {
	return fmt.Sprintf("failed to exec config template: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TemplateExecError) Unwrap() error {
	return e.Cause
}

// Read implements the io.Reader interface.
func (tr *TemplateRenderer) Read(b []byte) (int, error) {
	tr.renderOnce.Do(func() {
		tr.renderErr = tr.render()
	})
	if tr.renderErr != nil {
		return 0, tr.renderErr
	}
	return tr.buf.Read(b)
}

func (tr *TemplateRenderer) render() error {
	src, err := try.ReadAll(tr.r)
	if err != nil {
		return err
	}

	tmpl, err := template.New("config").
		Delims(tr.leftDelim, tr.rightDelim).
		Funcs(tr.funcs).
		Parse(string(src))
	if err != nil {
		return TemplateParseError{Cause: err}
	}

	err = tmpl.Execute(&tr.buf, nil)
	if err != nil {
		return TemplateExecError{Cause: err}
	}
	return nil
}

func templateEnv(key string) string {
	return os.Getenv(key)
}

func templateDefault(def, v any) any {
	if v == nil {
		return def
	}
	if reflect.ValueOf(v).IsZero() {
		return def
	}
	return v
}
