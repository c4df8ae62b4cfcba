// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/frc4206/battleaid/config/document"
	"github.com/frc4206/battleaid/internal/noop"
	"github.com/frc4206/battleaid/internal/slogfield"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultDir is where robot code expects its deployed config files.
const DefaultDir = "/home/lvuser/deploy/config"

// DirEnv overrides [DefaultDir] when set.
const DirEnv = "BATTLEAID_CONFIG_DIR"

const tracerName = "github.com/frc4206/battleaid/config"

// Option configures a [Loader].
type Option func(*Loader)

// FS sets the file system config files are resolved in. It takes
// precedence over [Dir].
func FS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

// Dir sets the directory config files are resolved in.
func Dir(dir string) Option {
	return func(l *Loader) {
		l.dir = dir
	}
}

// LogHandler sets the handler used for diagnostics. By default nothing
// is logged.
func LogHandler(h slog.Handler) Option {
	return func(l *Loader) {
		l.log = slog.New(h)
	}
}

// TracerProvider sets where load spans are recorded. Defaults to the
// global provider.
func TracerProvider(tp trace.TracerProvider) Option {
	return func(l *Loader) {
		l.tracer = tp.Tracer(tracerName)
	}
}

// Template renders every file as a text/template before it is parsed.
func Template(opts ...TemplateOption) Option {
	return func(l *Loader) {
		l.template = true
		l.templateOpts = append(l.templateOpts, opts...)
	}
}

// Exit sets the function [Loader.MustLoad] terminates with. Defaults to os.Exit.
func Exit(f func(int)) Option {
	return func(l *Loader) {
		l.exit = f
	}
}

// Loader reads config files into schema nodes.
type Loader struct {
	fsys         fs.FS
	dir          string
	root         string
	log          *slog.Logger
	tracer       trace.Tracer
	template     bool
	templateOpts []TemplateOption
	exit         func(int)
}

// NewLoader returns a Loader resolving files in [DefaultDir], or the
// directory named by [DirEnv], unless configured otherwise.
func NewLoader(opts ...Option) *Loader {
	dir := os.Getenv(DirEnv)
	if dir == "" {
		dir = DefaultDir
	}

	l := &Loader{
		dir:    dir,
		log:    slog.New(noop.LogHandler{}),
		tracer: otel.GetTracerProvider().Tracer(tracerName),
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fsys == nil {
		l.fsys = os.DirFS(l.dir)
		l.root = l.dir
	}
	return l
}

// Load parses filename and populates v, a non-nil pointer to a struct,
// from it. The parser is chosen by the file extension.
func (l *Loader) Load(ctx context.Context, v any, filename string) (err error) {
	ctx, span := l.start(ctx, "Loader.Load", filename)
	defer endSpan(span, &err)

	tbl, err := l.read(ctx, filename)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("config.keys", tbl.Len()))

	return populateRoot(v, tbl, l.path(filename))
}

// Document parses filename without populating anything.
func (l *Loader) Document(ctx context.Context, filename string) (_ *document.Table, err error) {
	ctx, span := l.start(ctx, "Loader.Document", filename)
	defer endSpan(span, &err)

	return l.read(ctx, filename)
}

func (l *Loader) start(ctx context.Context, name, filename string) (context.Context, trace.Span) {
	return l.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("config.file", filename),
	))
}

func endSpan(span trace.Span, err *error) {
	if *err != nil {
		span.RecordError(*err)
		span.SetStatus(codes.Error, (*err).Error())
	}
	span.End()
}

func (l *Loader) read(ctx context.Context, filename string) (*document.Table, error) {
	file := l.path(filename)

	var r io.Reader = NewFileReader(l.fsys, filename)
	if l.template {
		r = RenderTemplate(r, l.templateOpts...)
	}

	tbl, err := Parse(filename, r)
	if err != nil {
		var serr *document.SyntaxError
		if errors.As(err, &serr) {
			serr.File = file
		}
		return nil, err
	}

	l.log.DebugContext(ctx, "parsed config file", slogfield.File(file), slogfield.Strings("keys", tbl.Keys()))
	return tbl, nil
}

// MustLoad is like [Loader.Load] but logs every error and exits with
// code 1 on failure.
func (l *Loader) MustLoad(ctx context.Context, v any, filename string) {
	err := l.Load(ctx, v, filename)
	if err == nil {
		return
	}
	l.logError(ctx, l.path(filename), err)
	l.exit(1)
}

func (l *Loader) logError(ctx context.Context, file string, err error) {
	var serr *document.SyntaxError
	if errors.As(err, &serr) {
		for _, msg := range serr.Messages {
			l.log.ErrorContext(ctx, "config syntax error", slogfield.File(file), slogfield.String("issue", msg))
		}
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			l.logError(ctx, file, e)
		}
		return
	}
	l.log.ErrorContext(ctx, "failed to load config", slogfield.File(file), slogfield.Error(err))
}

// path is the human readable location of filename used in errors.
func (l *Loader) path(filename string) string {
	if l.root == "" {
		return filename
	}
	return filepath.Join(l.root, filepath.FromSlash(filename))
}

// Load populates v from filename using a Loader configured with opts.
func Load(v any, filename string, opts ...Option) error {
	return NewLoader(opts...).Load(context.Background(), v, filename)
}

// MustLoad populates v from filename and returns it. On failure every
// error is logged to stderr, unless another [LogHandler] is given, and
// the process exits.
func MustLoad[T any](v *T, filename string, opts ...Option) *T {
	opts = append([]Option{LogHandler(slog.NewTextHandler(os.Stderr, nil))}, opts...)
	NewLoader(opts...).MustLoad(context.Background(), v, filename)
	return v
}

// Parse reads a document from r using the parser registered for the
// extension of name: .toml, .yaml, .yml or .json.
func Parse(name string, r io.Reader) (*document.Table, error) {
	var src document.Source
	switch strings.ToLower(path.Ext(name)) {
	case ".toml":
		src = document.FromToml(r)
	case ".yaml", ".yml":
		src = document.FromYaml(r)
	case ".json":
		src = document.FromJson(r)
	default:
		return nil, &UnsupportedFormatError{File: name}
	}

	tbl, err := src.Parse()
	if err != nil {
		var serr *document.SyntaxError
		if errors.As(err, &serr) && serr.File == "" {
			serr.File = name
		}
		return nil, err
	}
	return tbl, nil
}
