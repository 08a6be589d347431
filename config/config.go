package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

func (l LogLevel) ToSlog() slog.Level {
	switch LogLevel(strings.ToUpper(string(l))) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type LogFormat string

const (
	LogFormatPlaintext LogFormat = "plaintext"
	LogFormatJSON      LogFormat = "json"
	// Colored output for terminals, meant for local development.
	LogFormatPretty LogFormat = "pretty"
)

type AppEnv string

const (
	AppEnvDev        AppEnv = "dev"
	AppEnvProduction AppEnv = "production"
)

type Config struct {
	App      AppConfig
	Content  ContentConfig
	Markdown MarkdownConfig
	Log      LogConfig
	Sentry   SentryConfig
}

type AppConfig struct {
	Debug           bool
	Host            string
	Port            uint32
	Name            string
	Env             AppEnv
	Version         string
	ShutdownTimeout int32 // in seconds
	// Watch the content root and report broken documents or templates as they change.
	Watch bool
}

// ContentConfig describes where the site's files live. All paths are relative to Root, except Root
// itself which is relative to the working directory.
type ContentConfig struct {
	Root         string
	Homepage     string
	BlogDir      string
	ViewsDir     string
	HomeTemplate string
	BlogTemplate string
	StylesDir    string
	Extension    string
}

type MarkdownConfig struct {
	HighlightStyle string
	LineNumbers    bool
}

type SentryConfig struct {
	Enabled    bool
	DSN        string
	SampleRate float64
	TracesRate float64
}

type LogConfig struct {
	Format  LogFormat
	Level   LogLevel
	Verbose bool
}

// Keys use "_" as delimiter, so every key can be overridden by its uppercase environment variable,
// e.g. APP_PORT or CONTENT_ROOT.
var defaults = map[string]any{
	"app_debug":           false,
	"app_host":            "",
	"app_port":            3000,
	"app_name":            "mdxpress-blog",
	"app_env":             string(AppEnvProduction),
	"app_version":         "",
	"app_shutdowntimeout": 2,
	"app_watch":           false,

	"content_root":         "public",
	"content_homepage":     "md/index.md",
	"content_blogdir":      "blogs",
	"content_viewsdir":     "views",
	"content_hometemplate": "home.html",
	"content_blogtemplate": "blog.html",
	"content_stylesdir":    "styles",
	"content_extension":    ".md",

	"markdown_highlightstyle": "github",
	"markdown_linenumbers":    false,

	"log_format":  string(LogFormatPlaintext),
	"log_level":   string(LogLevelInfo),
	"log_verbose": false,

	"sentry_enabled":    false,
	"sentry_dsn":        "",
	"sentry_samplerate": 1.0,
	"sentry_tracesrate": 1.0,
}

func newReader() *viper.Viper {
	reader := viper.NewWithOptions(viper.KeyDelimiter("_"))
	reader.SetConfigType("toml")
	for key, value := range defaults {
		reader.SetDefault(key, value)
	}
	return reader
}

// Default returns the configuration that is used when no config file or environment is present.
func Default() *Config {
	var config Config
	if err := newReader().Unmarshal(&config); err != nil {
		panic(fmt.Sprintf("invalid default configuration: %v", err))
	}
	return &config
}

// Addr returns the address the HTTP server listens on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.App.Host, strconv.FormatUint(uint64(c.App.Port), 10))
}

// BaseURL returns the URL under which the site can be reached locally.
func (c Config) BaseURL() string {
	host := c.App.Host
	if len(host) == 0 {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, strconv.FormatUint(uint64(c.App.Port), 10)))
}

func (c *Config) IsTest() bool {
	return flag.Lookup("test.v") != nil || strings.HasSuffix(os.Args[0], ".test") ||
		strings.Contains(os.Args[0], "/_test/")
}

// Load the configuration from the specified filesystem.
// A "config.toml" file in configFS is optional; every value has a default and can be overridden
// by environment variables. You can specify additional .env files to load, by default this only
// checks for ".env" in the current working directory.
func Load(configFS fs.FS, dotenvFiles ...string) (*Config, error) {
	reader := newReader()

	if configFS != nil {
		file, err := configFS.Open("config.toml")
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Info("No config.toml found, using defaults")
		case err != nil:
			return nil, fmt.Errorf("could not open config.toml: %w", err)
		default:
			defer file.Close()
			if err = reader.ReadConfig(file); err != nil {
				return nil, fmt.Errorf("could not load the app configuration: %w", err)
			}
		}
	}

	// Environment override
	err := godotenv.Load(dotenvFiles...)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("No .env file found, continuing...")
	} else if err != nil {
		return nil, fmt.Errorf(".env file found, but could not load it: %w", err)
	}
	reader.AutomaticEnv()
	// PORT is the conventional variable on most hosting platforms
	if err := reader.BindEnv("app_port", "APP_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("cannot bind port environment: %w", err)
	}

	var config Config
	if err := reader.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("invalid config format: %w", err)
	}

	if config.App.Debug && !config.IsTest() {
		slog.Warn("APP_DEBUG is turned on, do not run this mode in production!")
	}

	return &config, nil
}
