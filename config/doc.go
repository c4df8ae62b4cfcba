// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config materializes config documents into Go structs.
//
// A struct describes the expected shape of a document. Each exported
// field is a key; the key name and whether it must be present are set
// with the config struct tag:
//
//	type Drivetrain struct {
//		TrackWidth float64   `config:"trackWidth,required"`
//		Inverted   bool      `config:"inverted"`
//		Modules    []Module  `config:"modules,required"`
//		Gyro       *Gyro     `config:"gyro"`
//		Notes      string    `config:"-"`
//	}
//
// Supported field types are int, int64, int32, int16, int8, float64,
// float32, bool, [schema.Char], string, structs, pointers to structs and
// slices of any of these.
//
// # Loading
//
// Files are resolved in [DefaultDir] and parsed according to their
// extension:
//
//	var dt Drivetrain
//	err := config.Load(&dt, "drivetrain.toml")
//
// Robot code usually has nothing useful to do without its config, so
// [MustLoad] logs the problems and exits instead:
//
//	dt := config.MustLoad(new(Drivetrain), "drivetrain.toml")
//
// A document which has already been parsed can be applied with [Populate].
//
// # Errors
//
// Loading stops at the first problem. Malformed documents produce a
// [*document.SyntaxError], absent required keys a [*MissingRequiredFieldError]
// and values of the wrong representation a [*TypeMismatchError]. Fields
// of unsupported Go types produce a [*schema.ExtensionError]; use
// [schema.Check] in tests to catch them before deploying.
package config
