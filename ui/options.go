package ui

import (
	"arc/device"
	"arc/frame"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidOption = errors.New("invalid option")

// Options is the user-facing style of a ProgressBar. Colors are hex strings
// ("#rgb" or "#rrggbb"); Timer is the number of seconds a 0 to 100 sweep
// takes at Rate frames per second.
type Options struct {
	Stroke        string  `mapstructure:"stroke"`
	Width         float64 `mapstructure:"width"`
	Cap           string  `mapstructure:"cap"`
	GradientStart string  `mapstructure:"gradientStart"`
	GradientEnd   string  `mapstructure:"gradientEnd"`
	Timer         float64 `mapstructure:"timer"`
}

func DefaultOptions() Options {
	return Options{
		Stroke:        "#000",
		Width:         3,
		Cap:           "butt",
		GradientStart: "#f1c40f",
		GradientEnd:   "#e89e05",
		Timer:         10,
	}
}

// OptionsFromMap starts from DefaultOptions and overrides every key present
// in values. Unknown keys are ignored.
func OptionsFromMap(values map[string]any) (Options, error) {
	opts := DefaultOptions()
	for key, value := range values {
		var err error
		switch key {
		case "stroke":
			opts.Stroke, err = asString(key, value)
		case "width":
			opts.Width, err = asFloat(key, value)
		case "cap":
			opts.Cap, err = asString(key, value)
		case "gradientStart":
			opts.GradientStart, err = asString(key, value)
		case "gradientEnd":
			opts.GradientEnd, err = asString(key, value)
		case "timer":
			opts.Timer, err = asFloat(key, value)
		}
		if err != nil {
			return Options{}, err
		}
	}
	return opts, nil
}

func asString(key string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidOption, key, value)
	}
	return s, nil
}

func asFloat(key string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case uint:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidOption, key, value)
}

// style is Options parsed into drawing values.
type style struct {
	stroke        color.Color
	width         float64
	cap           device.LineCap
	gradientStart color.Color
	gradientEnd   color.Color
	timer         float64
}

func (o Options) Validate() error {
	_, err := o.resolve()
	return err
}

func (o Options) resolve() (style, error) {
	var s style
	var err error
	if s.stroke, err = parseColor("stroke", o.Stroke); err != nil {
		return style{}, err
	}
	if s.gradientStart, err = parseColor("gradientStart", o.GradientStart); err != nil {
		return style{}, err
	}
	if s.gradientEnd, err = parseColor("gradientEnd", o.GradientEnd); err != nil {
		return style{}, err
	}
	if s.cap, err = device.ParseLineCap(o.Cap); err != nil {
		return style{}, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}
	if !positive(o.Width) {
		return style{}, fmt.Errorf("%w: width must be positive, got %v", ErrInvalidOption, o.Width)
	}
	if !positive(o.Timer) {
		return style{}, fmt.Errorf("%w: timer must be positive, got %v", ErrInvalidOption, o.Timer)
	}
	s.width = o.Width
	s.timer = o.Timer
	return s, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func parseColor(key, hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %w", ErrInvalidOption, key, hex, err)
	}
	return c, nil
}

type settings struct {
	options   Options
	scheduler frame.Scheduler
}

type Option func(*settings)

func WithOptions(opts Options) Option {
	return func(s *settings) { s.options = opts }
}

func WithStroke(hex string) Option {
	return func(s *settings) { s.options.Stroke = hex }
}

func WithWidth(width float64) Option {
	return func(s *settings) { s.options.Width = width }
}

func WithCap(lineCap string) Option {
	return func(s *settings) { s.options.Cap = lineCap }
}

func WithGradient(start, end string) Option {
	return func(s *settings) {
		s.options.GradientStart = start
		s.options.GradientEnd = end
	}
}

func WithTimer(seconds float64) Option {
	return func(s *settings) { s.options.Timer = seconds }
}

// WithScheduler replaces the default frame.Timer scheduler.
func WithScheduler(scheduler frame.Scheduler) Option {
	return func(s *settings) { s.scheduler = scheduler }
}
