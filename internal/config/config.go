package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
	_ "time/tzdata" // timezone lookups must work on hosts without zoneinfo

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

type Config struct {
	Source SourceConfig `mapstructure:"source" toml:"source"`
	Images ImageConfig  `mapstructure:"images" toml:"images"`
	Locale LocaleConfig `mapstructure:"locale" toml:"locale"`
	UI     UIConfig     `mapstructure:"ui" toml:"ui"`
	Media  MediaConfig  `mapstructure:"media" toml:"media"`
	Log    LogConfig    `mapstructure:"log" toml:"log"`
}

// SourceConfig says where the static feed files live. Location is either an
// http(s) base URL or a local directory.
type SourceConfig struct {
	Location    string        `mapstructure:"location" toml:"location"`
	Manifest    string        `mapstructure:"manifest" toml:"manifest"`
	ArticleDir  string        `mapstructure:"article_dir" toml:"article_dir"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout" toml:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent" toml:"user_agent"`
	AllowLocal  bool          `mapstructure:"allow_local" toml:"allow_local"`
}

type ImageConfig struct {
	Placeholder     string `mapstructure:"placeholder" toml:"placeholder"`
	LegacyPrefix    string `mapstructure:"legacy_prefix" toml:"legacy_prefix"`
	CanonicalPrefix string `mapstructure:"canonical_prefix" toml:"canonical_prefix"`
}

type LocaleConfig struct {
	Timezone string `mapstructure:"timezone" toml:"timezone"`
}

type UIConfig struct {
	Topics  []string      `mapstructure:"topics" toml:"topics"`
	Colors  UIColors      `mapstructure:"colors" toml:"colors"`
	Article ArticleConfig `mapstructure:"article" toml:"article"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary" toml:"primary"`
	Secondary string `mapstructure:"secondary" toml:"secondary"`
	Accent    string `mapstructure:"accent" toml:"accent"`
	Text      string `mapstructure:"text" toml:"text"`
	Muted     string `mapstructure:"muted" toml:"muted"`
	Error     string `mapstructure:"error" toml:"error"`
}

type ArticleConfig struct {
	WordWrapMaxWidth int `mapstructure:"word_wrap_max_width" toml:"word_wrap_max_width"`
	WordWrapMinWidth int `mapstructure:"word_wrap_min_width" toml:"word_wrap_min_width"`
}

type MediaConfig struct {
	Darwin        []string `mapstructure:"darwin" toml:"darwin"`
	Linux         []string `mapstructure:"linux" toml:"linux"`
	Windows       []string `mapstructure:"windows" toml:"windows"`
	DefaultOpener string   `mapstructure:"default_opener" toml:"default_opener"`
}

type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	File  string `mapstructure:"file" toml:"file"`
}

func defaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Location:    ".",
			Manifest:    "posts/index.json",
			ArticleDir:  "posts",
			HTTPTimeout: 15 * time.Second,
			UserAgent:   "relampago/1.0 (https://github.com/pders01/relampago)",
			AllowLocal:  true,
		},
		Images: ImageConfig{
			Placeholder:     "public/placeholder.jpg",
			LegacyPrefix:    "public/img/",
			CanonicalPrefix: "public/",
		},
		Locale: LocaleConfig{
			Timezone: "America/Sao_Paulo",
		},
		UI: UIConfig{
			Topics: []string{"Brasil", "Mundo", "Política", "Economia", "Tech", "Esportes", "Cultura"},
			Colors: UIColors{
				Primary:   "#FFD400",
				Secondary: "#4ECDC4",
				Accent:    "#FF6B6B",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#F87171",
			},
			Article: ArticleConfig{
				WordWrapMaxWidth: 100,
				WordWrapMinWidth: 40,
			},
		},
		Media: MediaConfig{
			Darwin:        []string{"open"},
			Linux:         []string{"feh", "eog", "sxiv", "xdg-open"},
			Windows:       []string{"start"},
			DefaultOpener: getDefaultOpener(),
		},
		Log: LogConfig{
			Level: "off",
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

// DefaultPath is where Load looks when no explicit file is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "relampago", "config.toml")
}

// setDefaults registers every leaf key so a file that sets only some keys of a
// table keeps the defaults for the rest, and so env overrides can find them.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("source.location", cfg.Source.Location)
	v.SetDefault("source.manifest", cfg.Source.Manifest)
	v.SetDefault("source.article_dir", cfg.Source.ArticleDir)
	v.SetDefault("source.http_timeout", cfg.Source.HTTPTimeout)
	v.SetDefault("source.user_agent", cfg.Source.UserAgent)
	v.SetDefault("source.allow_local", cfg.Source.AllowLocal)

	v.SetDefault("images.placeholder", cfg.Images.Placeholder)
	v.SetDefault("images.legacy_prefix", cfg.Images.LegacyPrefix)
	v.SetDefault("images.canonical_prefix", cfg.Images.CanonicalPrefix)

	v.SetDefault("locale.timezone", cfg.Locale.Timezone)

	v.SetDefault("ui.topics", cfg.UI.Topics)
	v.SetDefault("ui.colors.primary", cfg.UI.Colors.Primary)
	v.SetDefault("ui.colors.secondary", cfg.UI.Colors.Secondary)
	v.SetDefault("ui.colors.accent", cfg.UI.Colors.Accent)
	v.SetDefault("ui.colors.text", cfg.UI.Colors.Text)
	v.SetDefault("ui.colors.muted", cfg.UI.Colors.Muted)
	v.SetDefault("ui.colors.error", cfg.UI.Colors.Error)
	v.SetDefault("ui.article.word_wrap_max_width", cfg.UI.Article.WordWrapMaxWidth)
	v.SetDefault("ui.article.word_wrap_min_width", cfg.UI.Article.WordWrapMinWidth)

	v.SetDefault("media.darwin", cfg.Media.Darwin)
	v.SetDefault("media.linux", cfg.Media.Linux)
	v.SetDefault("media.windows", cfg.Media.Windows)
	v.SetDefault("media.default_opener", cfg.Media.DefaultOpener)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("RELAMPAGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the loader and renderer cannot work with.
func (c *Config) Validate() error {
	if c.Source.Manifest == "" {
		return fmt.Errorf("source.manifest cannot be empty")
	}
	if c.Source.HTTPTimeout <= 0 {
		return fmt.Errorf("source.http_timeout must be positive")
	}
	if c.Images.Placeholder == "" {
		return fmt.Errorf("images.placeholder cannot be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone used for date display.
func (c *Config) Location() (*time.Location, error) {
	if c.Locale.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Locale.Timezone)
	if err != nil {
		return nil, fmt.Errorf("locale.timezone: %w", err)
	}
	return loc, nil
}

// fileConfig mirrors Config with durations as strings so the TOML stays readable.
type fileConfig struct {
	Source fileSource   `toml:"source"`
	Images ImageConfig  `toml:"images"`
	Locale LocaleConfig `toml:"locale"`
	UI     UIConfig     `toml:"ui"`
	Media  MediaConfig  `toml:"media"`
	Log    LogConfig    `toml:"log"`
}

type fileSource struct {
	Location    string `toml:"location"`
	Manifest    string `toml:"manifest"`
	ArticleDir  string `toml:"article_dir"`
	HTTPTimeout string `toml:"http_timeout"`
	UserAgent   string `toml:"user_agent"`
	AllowLocal  bool   `toml:"allow_local"`
}

func Save(config *Config, path string) error {
	fc := fileConfig{
		Source: fileSource{
			Location:    config.Source.Location,
			Manifest:    config.Source.Manifest,
			ArticleDir:  config.Source.ArticleDir,
			HTTPTimeout: config.Source.HTTPTimeout.String(),
			UserAgent:   config.Source.UserAgent,
			AllowLocal:  config.Source.AllowLocal,
		},
	}
	fc.Images = config.Images
	fc.Locale = config.Locale
	fc.UI = config.UI
	fc.Media = config.Media
	fc.Log = config.Log

	data, err := toml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
