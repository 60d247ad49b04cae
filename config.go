package spread

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"github.com/tanema/gween/ease"
)

// Config holds the engine tunables. Start from DefaultConfig or LoadConfig
// and override what you need; New normalizes whatever it receives.
type Config struct {
	// Spacing is the gap between grid slots and against the workarea
	// edges, in output pixels.
	Spacing int `mapstructure:"spacing"`

	// Interactive leaves input routing with the windows instead of
	// grabbing it. Clicking a window then only moves the emphasis; the
	// overview stays up.
	Interactive bool `mapstructure:"interactive"`

	// MiddleClickClose makes a middle click on a window close it.
	MiddleClickClose bool `mapstructure:"middle_click_close"`

	// InactiveAlpha is the opacity unfocused windows fade to, in (0, 1].
	InactiveAlpha float64 `mapstructure:"inactive_alpha"`

	// AllowZoom lets windows scale above their natural size to fill
	// their slot.
	AllowZoom bool `mapstructure:"allow_zoom"`

	// MaxChildScale caps a child window at this multiple of its
	// parent's scale while AllowZoom is off. Zero or negative disables
	// the cap.
	MaxChildScale float64 `mapstructure:"max_child_scale"`

	// Duration of the scale/translation animation.
	Duration time.Duration `mapstructure:"duration"`

	// FadeDuration of the opacity animation.
	FadeDuration time.Duration `mapstructure:"fade_duration"`

	// Easing shapes every animation. In config files it is selected by
	// name via the "easing" key (e.g. "out-cubic", "linear").
	Easing ease.TweenFunc `mapstructure:"-"`

	// Logger receives debug records on lifecycle transitions. Nil means
	// no logging.
	Logger *slog.Logger `mapstructure:"-"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Spacing:       50,
		InactiveAlpha: 0.75,
		MaxChildScale: 1.0,
		Duration:      750 * time.Millisecond,
		FadeDuration:  time.Second,
		Easing:        ease.OutCubic,
	}
}

// normalize replaces unusable fields with defaults. Durations must end up
// positive because the tween math divides by them.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.Spacing < 0 {
		c.Spacing = def.Spacing
	}
	if c.InactiveAlpha <= 0 || c.InactiveAlpha > 1 {
		c.InactiveAlpha = def.InactiveAlpha
	}
	if c.Duration <= 0 {
		c.Duration = def.Duration
	}
	if c.FadeDuration <= 0 {
		c.FadeDuration = def.FadeDuration
	}
	if c.Easing == nil {
		c.Easing = def.Easing
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// LoadConfig reads a config file (any format viper understands, chosen by
// extension) with defaults applied for absent keys.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return unmarshalConfig(v)
}

// WatchConfig re-reads path whenever it changes on disk and hands the
// freshly parsed Config to apply. A revision that fails to parse is
// skipped, keeping the previous one in effect.
//
// apply runs on the watcher's goroutine. Hosts must forward the value
// into their frame loop before touching the engine with it.
func WatchConfig(path string, apply func(Config)) error {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config from %s: %w", path, err)
	}
	v.OnConfigChange(func(fsnotify.Event) {
		cfg, err := unmarshalConfig(v)
		if err != nil {
			return
		}
		apply(cfg)
	})
	v.WatchConfig()
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("spacing", 50)
	v.SetDefault("interactive", false)
	v.SetDefault("middle_click_close", false)
	v.SetDefault("inactive_alpha", 0.75)
	v.SetDefault("allow_zoom", false)
	v.SetDefault("max_child_scale", 1.0)
	v.SetDefault("duration", "750ms")
	v.SetDefault("fade_duration", "1s")
	v.SetDefault("easing", "out-cubic")
}

func unmarshalConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	fn, err := easingByName(v.GetString("easing"))
	if err != nil {
		return Config{}, err
	}
	cfg.Easing = fn
	return cfg, nil
}

// easingByName resolves the easing names accepted in config files.
func easingByName(name string) (ease.TweenFunc, error) {
	switch strings.ToLower(name) {
	case "", "out-cubic":
		return ease.OutCubic, nil
	case "linear":
		return ease.Linear, nil
	case "in-cubic":
		return ease.InCubic, nil
	case "in-out-cubic":
		return ease.InOutCubic, nil
	case "in-quad":
		return ease.InQuad, nil
	case "out-quad":
		return ease.OutQuad, nil
	case "in-out-quad":
		return ease.InOutQuad, nil
	case "out-expo":
		return ease.OutExpo, nil
	case "out-back":
		return ease.OutBack, nil
	case "out-elastic":
		return ease.OutElastic, nil
	default:
		return nil, fmt.Errorf("unknown easing %q", name)
	}
}
