// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package command implements the battleaid command line tool.
package command

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/frc4206/battleaid/config"
	"github.com/frc4206/battleaid/internal/otelslog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/frc4206/battleaid/internal/command"

// Option configures an [App].
type Option func(*App)

// Stdout sets where command output is written.
func Stdout(w io.Writer) Option {
	return func(app *App) {
		app.stdout = w
	}
}

// Stderr sets where logs and traces are written.
func Stderr(w io.Writer) Option {
	return func(app *App) {
		app.stderr = w
	}
}

// App is the battleaid command line tool.
type App struct {
	stdout io.Writer
	stderr io.Writer

	v        *viper.Viper
	log      *slog.Logger
	tp       trace.TracerProvider
	shutdown func(context.Context) error
}

// New configures an App.
func New(opts ...Option) *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
		v:      viper.New(),
	}
	for _, opt := range opts {
		opt(app)
	}

	app.v.SetEnvPrefix("BATTLEAID")
	app.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	app.v.AutomaticEnv()
	return app
}

// Run executes the command line given by args.
func (app *App) Run(ctx context.Context, args ...string) error {
	cmd := app.buildCmd()
	cmd.SetArgs(args)
	cmd.SetOut(app.stdout)
	cmd.SetErr(app.stderr)

	err := cmd.ExecuteContext(ctx)
	if app.shutdown != nil {
		err = errors.Join(err, app.shutdown(context.Background()))
	}
	return err
}

func (app *App) buildCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "battleaid",
		Short:         "Validate and inspect robot config files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config-dir", config.DefaultDir, "directory config files are resolved in (env BATTLEAID_CONFIG_DIR)")
	flags.String("log-level", "info", "minimum log level: debug, info, warn or error")
	flags.Bool("trace", false, "write OpenTelemetry spans to stderr")
	flags.Bool("template", false, "render config files as text/template before parsing")

	// BindPFlags only fails for a nil flag set.
	_ = app.v.BindPFlags(flags)

	root.AddCommand(
		app.checkCmd(),
		app.dumpCmd(),
		app.joystickCmd(),
	)
	return root
}

func (app *App) setup() error {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(app.v.GetString("log-level")))
	if err != nil {
		return err
	}
	app.log = slog.New(otelslog.NewHandler(slog.NewTextHandler(app.stderr, &slog.HandlerOptions{
		Level: lvl,
	})))

	app.tp = otel.GetTracerProvider()
	if !app.v.GetBool("trace") {
		return nil
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(app.stderr),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	app.tp = tp
	app.shutdown = tp.Shutdown
	return nil
}

func (app *App) tracer() trace.Tracer {
	return app.tp.Tracer(tracerName)
}

func (app *App) loader() *config.Loader {
	opts := []config.Option{
		config.Dir(app.v.GetString("config-dir")),
		config.LogHandler(app.log.Handler()),
		config.TracerProvider(app.tp),
	}
	if app.v.GetBool("template") {
		opts = append(opts, config.Template())
	}
	return config.NewLoader(opts...)
}
