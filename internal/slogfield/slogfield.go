// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package slogfield provides typed constructors for the log attributes
// used across battleaid.
package slogfield

import "log/slog"

// Error returns an slog.Attr for an error under the "error" key.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// File returns an slog.Attr naming a config file.
func File(path string) slog.Attr {
	return slog.String("file", path)
}

// String returns an slog.Attr for a string.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Strings returns an slog.Attr for a slice of strings.
func Strings(key string, values []string) slog.Attr {
	return slog.Any(key, values)
}

// Int returns an slog.Attr for an int.
func Int(key string, n int) slog.Attr {
	return slog.Int(key, n)
}
