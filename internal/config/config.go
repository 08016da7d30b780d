package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Media    MediaConfig    `toml:"media"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// DatabaseConfig holds sqlite settings for the clip history.
type DatabaseConfig struct {
	Path string `toml:"path"`
	// Keep is how many clips survive the startup prune. Zero disables pruning.
	Keep int    `toml:"keep"`
}

// MediaConfig holds external tool settings.
type MediaConfig struct {
	FFmpeg          string `toml:"ffmpeg"`
	FFprobe         string `toml:"ffprobe"`
	OutputDir       string `toml:"output_dir" mapstructure:"output_dir"`
	AvoidNegativeTS bool   `toml:"avoid_negative_ts" mapstructure:"avoid_negative_ts"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	SliderWidth   int `toml:"slider_width" mapstructure:"slider_width"`
	HandleRadius  int `toml:"handle_radius" mapstructure:"handle_radius"`
	MaxNameLength int `toml:"max_name_length" mapstructure:"max_name_length"`
	RecentLimit   int `toml:"recent_limit" mapstructure:"recent_limit"`
}

// LogConfig holds the default log destination. Flags override it.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

func dataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, "clipper")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "clipper")
}

// Path returns the config file location. CLIPPER_CONFIG overrides it.
func Path() string {
	if p := os.Getenv("CLIPPER_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "clipper", "config.toml")
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dataDir(), "history.db"),
			Keep: 500,
		},
		Media: MediaConfig{
			FFmpeg:          "ffmpeg",
			FFprobe:         "ffprobe",
			AvoidNegativeTS: true,
		},
		UI: UIConfig{
			SliderWidth:   72,
			HandleRadius:  2,
			MaxNameLength: 50,
			RecentLimit:   5,
		},
		Log: LogConfig{
			File:  filepath.Join(dataDir(), "clipper.log"),
			Level: "info",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.keep", d.Database.Keep)
	v.SetDefault("media.ffmpeg", d.Media.FFmpeg)
	v.SetDefault("media.ffprobe", d.Media.FFprobe)
	v.SetDefault("media.output_dir", d.Media.OutputDir)
	v.SetDefault("media.avoid_negative_ts", d.Media.AvoidNegativeTS)
	v.SetDefault("ui.slider_width", d.UI.SliderWidth)
	v.SetDefault("ui.handle_radius", d.UI.HandleRadius)
	v.SetDefault("ui.max_name_length", d.UI.MaxNameLength)
	v.SetDefault("ui.recent_limit", d.UI.RecentLimit)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// Load reads configuration from file and env. Env var overrides use prefix CLIPPER_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("CLIPPER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs *multierror.Error
	if strings.TrimSpace(c.Database.Path) == "" {
		errs = multierror.Append(errs, errors.New("database.path is empty"))
	}
	if c.Database.Keep < 0 {
		errs = multierror.Append(errs, fmt.Errorf("database.keep must not be negative, got %d", c.Database.Keep))
	}
	if strings.TrimSpace(c.Media.FFmpeg) == "" {
		errs = multierror.Append(errs, errors.New("media.ffmpeg is empty"))
	}
	if strings.TrimSpace(c.Media.FFprobe) == "" {
		errs = multierror.Append(errs, errors.New("media.ffprobe is empty"))
	}
	if c.UI.HandleRadius < 1 {
		errs = multierror.Append(errs, fmt.Errorf("ui.handle_radius must be at least 1, got %d", c.UI.HandleRadius))
	}
	if c.UI.SliderWidth <= 2*c.UI.HandleRadius+1 {
		errs = multierror.Append(errs, fmt.Errorf("ui.slider_width %d too small for handle radius %d", c.UI.SliderWidth, c.UI.HandleRadius))
	}
	if c.UI.MaxNameLength < 8 {
		errs = multierror.Append(errs, fmt.Errorf("ui.max_name_length must be at least 8, got %d", c.UI.MaxNameLength))
	}
	if c.UI.RecentLimit < 0 {
		errs = multierror.Append(errs, fmt.Errorf("ui.recent_limit must not be negative, got %d", c.UI.RecentLimit))
	}
	return errs.ErrorOrNil()
}

// WriteDefault creates the config file with built-in defaults unless one
// already exists. It reports whether a file was written.
func WriteDefault() (bool, error) {
	path := Path()
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config: %w", err)
	}
	if err := Save(Defaults()); err != nil {
		return false, err
	}
	return true, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("# clipper configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
