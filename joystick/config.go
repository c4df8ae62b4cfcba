// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package joystick

// Config is the loadable form of a [Tuned] controller's settings.
type Config struct {
	Deadzone float64 `config:"deadzone,required"`

	// Curve is the name of a [ResponseCurve]. Empty means linear.
	Curve string `config:"curve"`
}

// Options converts cfg into options for [New].
func (cfg Config) Options() ([]Option, error) {
	opts := []Option{Deadzone(cfg.Deadzone)}
	if cfg.Curve == "" {
		return opts, nil
	}

	rc, err := ParseResponseCurve(cfg.Curve)
	if err != nil {
		return nil, err
	}
	return append(opts, Curve(rc)), nil
}

// FromConfig wraps c with the settings from cfg.
func FromConfig(c Controller, cfg Config) (*Tuned, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return New(c, opts...), nil
}
