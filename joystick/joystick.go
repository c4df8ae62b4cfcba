// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package joystick shapes raw controller stick input with a deadzone and
// a response curve.
//
//	tuned, err := joystick.FromConfig(xbox, cfg)
//	if err != nil {
//		return err
//	}
//	forward := tuned.LeftY()
package joystick

import (
	"fmt"
	"math"
	"strings"
)

// DefaultDeadzone is used when no [Deadzone] option is given.
const DefaultDeadzone = 0.1

// Controller provides raw stick positions in [-1, 1].
type Controller interface {
	LeftX() float64
	LeftY() float64
	RightX() float64
	RightY() float64
}

// ResponseCurve maps a deadzoned stick magnitude in [0, 1] back onto [0, 1].
type ResponseCurve int

const (
	Linear ResponseCurve = iota
	VerySoft
	Soft
	Quadratic
	Cubic
)

var curves = [...]struct {
	name     string
	exponent float64
}{
	Linear:    {"linear", 1.0},
	VerySoft:  {"verysoft", 1.48},
	Soft:      {"soft", 1.64},
	Quadratic: {"quadratic", 2.0},
	Cubic:     {"cubic", 3.0},
}

// UnknownCurveError is returned by [ParseResponseCurve].
type UnknownCurveError struct {
	Name string
}

// Error implements the [error] interface.
func (e *UnknownCurveError) Error() string {
	return fmt.Sprintf("unknown response curve: %q", e.Name)
}

// ParseResponseCurve returns the curve with the given case insensitive name.
func ParseResponseCurve(name string) (ResponseCurve, error) {
	for i, c := range curves {
		if strings.EqualFold(c.name, name) {
			return ResponseCurve(i), nil
		}
	}
	return Linear, &UnknownCurveError{Name: name}
}

// String implements the [fmt.Stringer] interface.
func (rc ResponseCurve) String() string {
	if rc < 0 || int(rc) >= len(curves) {
		return fmt.Sprintf("ResponseCurve(%d)", int(rc))
	}
	return curves[rc].name
}

// Exponent returns the power the curve raises its input to.
func (rc ResponseCurve) Exponent() float64 {
	if rc < 0 || int(rc) >= len(curves) {
		return 1
	}
	return curves[rc].exponent
}

// Apply raises v to the curve's exponent. v must not be negative since
// fractional and even exponents do not preserve sign.
func (rc ResponseCurve) Apply(v float64) float64 {
	return math.Pow(v, rc.Exponent())
}

// Map linearly rescales v from [inMin, inMax] to [outMin, outMax],
// clamping values outside the input range.
func Map(v, inMin, inMax, outMin, outMax float64) float64 {
	if v < inMin {
		return outMin
	}
	if v > inMax {
		return outMax
	}
	return (v-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// Option configures a [Tuned] controller.
type Option func(*Tuned)

// Deadzone sets the magnitude below which input is treated as zero.
// The sign of d is ignored.
func Deadzone(d float64) Option {
	return func(t *Tuned) {
		t.deadzone = math.Abs(d)
	}
}

// Curve sets the response curve. The default is [Linear].
func Curve(rc ResponseCurve) Option {
	return func(t *Tuned) {
		t.curve = rc
	}
}

// Tuned is a Controller whose stick positions have been shaped.
type Tuned struct {
	c        Controller
	deadzone float64
	curve    ResponseCurve
}

// New wraps c.
func New(c Controller, opts ...Option) *Tuned {
	t := &Tuned{
		c:        c,
		deadzone: DefaultDeadzone,
		curve:    Linear,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Deadzone returns the configured deadzone.
func (t *Tuned) Deadzone() float64 {
	return t.deadzone
}

// Curve returns the configured response curve.
func (t *Tuned) Curve() ResponseCurve {
	return t.curve
}

// Tune shapes a single axis value. The deadzone is applied to the
// magnitude first so the curve always starts from zero at its edge.
func (t *Tuned) Tune(v float64) float64 {
	out := t.curve.Apply(t.applyDeadzone(math.Abs(v)))
	if v >= 0 {
		return out
	}
	return -out
}

// applyDeadzone implements a square deadzone; a circular one would need
// both axes of the stick.
func (t *Tuned) applyDeadzone(v float64) float64 {
	if v <= t.deadzone {
		return 0
	}
	return Map(v, t.deadzone, 1, 0, 1)
}

// LeftX implements the [Controller] interface.
func (t *Tuned) LeftX() float64 { return t.Tune(t.c.LeftX()) }

// LeftY implements the [Controller] interface.
func (t *Tuned) LeftY() float64 { return t.Tune(t.c.LeftY()) }

// RightX implements the [Controller] interface.
func (t *Tuned) RightX() float64 { return t.Tune(t.c.RightX()) }

// RightY implements the [Controller] interface.
func (t *Tuned) RightY() float64 { return t.Tune(t.c.RightY()) }
