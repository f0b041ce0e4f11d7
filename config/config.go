// Package config loads widget options from defaults, an optional file and the
// environment.
package config

import (
	"arc/ui"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "RING"

// Config is everything cmd/ring needs to draw.
type Config struct {
	Progress ui.Options `mapstructure:"progress"`
	Value    float64    `mapstructure:"value"`
	Width    int        `mapstructure:"width"`
	Height   int        `mapstructure:"height"`
	FPS      int        `mapstructure:"fps"`
}

func New() *viper.Viper {
	v := viper.New()
	defaults := ui.DefaultOptions()
	v.SetDefault("progress.stroke", defaults.Stroke)
	v.SetDefault("progress.width", defaults.Width)
	v.SetDefault("progress.cap", defaults.Cap)
	v.SetDefault("progress.gradientStart", defaults.GradientStart)
	v.SetDefault("progress.gradientEnd", defaults.GradientEnd)
	v.SetDefault("progress.timer", defaults.Timer)
	v.SetDefault("value", 100)
	v.SetDefault("width", 200)
	v.SetDefault("height", 200)
	v.SetDefault("fps", 60)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (if not empty) on top of the defaults, binds flags when
// given and validates the progress options. The file type follows its
// extension.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := New()
	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return Config{}, err
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(strings.TrimPrefix(filepath.Ext(path), "."))
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return decode(v)
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"stroke":         "progress.stroke",
	"line-width":     "progress.width",
	"cap":            "progress.cap",
	"gradient-start": "progress.gradientStart",
	"gradient-end":   "progress.gradientEnd",
	"timer":          "progress.timer",
	"value":          "value",
	"width":          "width",
	"height":         "height",
	"fps":            "fps",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Progress.Validate(); err != nil {
		return Config{}, err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return Config{}, fmt.Errorf("%w: size %dx%d", ui.ErrInvalidOption, c.Width, c.Height)
	}
	return c, nil
}
