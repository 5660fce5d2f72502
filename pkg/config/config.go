// Package config provides configuration types, defaults, and loading for
// tedit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/fivemoreminix/tedit/pkg/clipboard"
	"github.com/fivemoreminix/tedit/pkg/log"
	"github.com/fivemoreminix/tedit/ui/buffer"
)

// Indent mode names.
const (
	IndentText = "text"
	IndentCpp  = "cpp"
	IndentNone = "none"
)

// LocalConfigFile is looked up in the current directory before the user
// config.
const LocalConfigFile = ".tedit.yaml"

// ViewportConfig is the screen area assumed for wrapping when no terminal is
// attached.
type ViewportConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// Config holds all configuration options for tedit.
type Config struct {
	TabSize    int            `mapstructure:"tab_size" yaml:"tab_size"`
	HardTabs   bool           `mapstructure:"hard_tabs" yaml:"hard_tabs"`
	Indent     string         `mapstructure:"indent" yaml:"indent"` // "text" (default), "cpp" or "none"
	WordChars  string         `mapstructure:"word_chars" yaml:"word_chars"`
	Viewport   ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	Clipboard  string         `mapstructure:"clipboard" yaml:"clipboard"` // "external" (default) or "internal"
	IgnoreCase bool           `mapstructure:"ignore_case" yaml:"ignore_case"`
	LogPath    string         `mapstructure:"log_path" yaml:"log_path"`
	Debug      bool           `mapstructure:"debug" yaml:"debug"`
}

// Defaults returns a Config with every option at its default.
func Defaults() Config {
	return Config{
		TabSize:   4,
		Indent:    IndentText,
		WordChars: buffer.DefaultWordChars,
		Viewport: ViewportConfig{
			Width:  buffer.DefaultViewport.Width,
			Height: buffer.DefaultViewport.Height,
		},
		Clipboard: clipboard.External.String(),
		LogPath:   "tedit.log",
	}
}

// Validate checks the option values.
func (c Config) Validate() error {
	var errs []error
	if c.TabSize < 1 {
		errs = append(errs, fmt.Errorf("tab_size must be at least 1, got %d", c.TabSize))
	}
	switch c.Indent {
	case IndentText, IndentCpp, IndentNone:
	default:
		errs = append(errs, fmt.Errorf("indent must be %q, %q or %q, got %q", IndentText, IndentCpp, IndentNone, c.Indent))
	}
	if c.Viewport.Width < 1 || c.Viewport.Height < 1 {
		errs = append(errs, fmt.Errorf("viewport must be at least 1x1, got %dx%d", c.Viewport.Width, c.Viewport.Height))
	}
	if _, err := clipboard.ParseMethod(c.Clipboard); err != nil {
		errs = append(errs, fmt.Errorf("clipboard: %w", err))
	}
	return errors.Join(errs...)
}

// IndentPolicy returns the buffer indent policy named by Indent. Unknown names
// get the text policy.
func (c Config) IndentPolicy() buffer.IndentPolicy {
	switch c.Indent {
	case IndentCpp:
		return buffer.CppIndent
	case IndentNone:
		return buffer.NoIndent
	}
	return buffer.TextIndent
}

// ClipboardMethod returns the clipboard method named by Clipboard, falling
// back to the internal one for unknown names.
func (c Config) ClipboardMethod() clipboard.Method {
	m, err := clipboard.ParseMethod(c.Clipboard)
	if err != nil {
		return clipboard.Internal
	}
	return m
}

// Options returns the buffer options this configuration implies.
func (c Config) Options() []buffer.Option {
	return []buffer.Option{
		buffer.WithIndentPolicy(c.IndentPolicy()),
		buffer.WithWordChars(c.WordChars),
		buffer.WithViewport(buffer.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height}),
	}
}

// SetDefaults registers every default with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("tab_size", d.TabSize)
	v.SetDefault("hard_tabs", d.HardTabs)
	v.SetDefault("indent", d.Indent)
	v.SetDefault("word_chars", d.WordChars)
	v.SetDefault("viewport.width", d.Viewport.Width)
	v.SetDefault("viewport.height", d.Viewport.Height)
	v.SetDefault("clipboard", d.Clipboard)
	v.SetDefault("ignore_case", d.IgnoreCase)
	v.SetDefault("log_path", d.LogPath)
	v.SetDefault("debug", d.Debug)
}

// DefaultConfigPath returns the user config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "tedit", "config.yaml")
	}
	return filepath.Join(home, ".config", "tedit", "config.yaml")
}

// Load reads the configuration into v and decodes it.
//
// Config lookup order:
//  1. path, when not empty (it must exist)
//  2. .tedit.yaml in the current directory
//  3. ~/.config/tedit/config.yaml
//
// Finding no config file is not an error; the defaults are used.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else if _, err := os.Stat(LocalConfigFile); err == nil {
		v.SetConfigFile(LocalConfigFile)
	} else {
		v.SetConfigFile(DefaultConfigPath())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), path == "" && errors.Is(err, os.ErrNotExist):
			log.Debug(log.CatConfig, "no config file, using defaults")
		default:
			log.ErrorErr(log.CatConfig, "Failed to read config", err, "path", v.ConfigFileUsed())
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", v.ConfigFileUsed(), err)
	}
	log.Debug(log.CatConfig, "config loaded", "file", v.ConfigFileUsed(), "indent", cfg.Indent, "clipboard", cfg.Clipboard)
	return cfg, nil
}
