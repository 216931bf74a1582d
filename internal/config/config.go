package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Places   PlacesConfig
	Search   SearchConfig
	Location LocationConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         int           `validate:"min=1,max=65535"`
	GinMode      string        `validate:"oneof=debug release test"`
	AwaitTimeout time.Duration `validate:"gt=0"` // how long POST /place waits for a result
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// PlacesConfig holds Google Places API configuration
type PlacesConfig struct {
	APIKey         string
	BaseURL        string        `validate:"required,url"`
	PlaceType      string        `validate:"required"`
	PhotoMaxWidth  int           `validate:"min=1,max=1600"`
	PhotoMaxHeight int           `validate:"min=1,max=1600"`
	Timeout        time.Duration `validate:"gt=0"`
}

// SearchConfig holds the bounds of the radius slider
type SearchConfig struct {
	MinRadius     int    `validate:"min=1"`
	MaxRadius     int    `validate:"gtefield=MinRadius"`
	DefaultRadius int    `validate:"gtefield=MinRadius,ltefield=MaxRadius"`
	UnitMeters    int    `validate:"min=1"` // meters per slider unit
	Chooser       string `validate:"oneof=first random rotate"`
}

// LocationConfig selects where device fixes come from
type LocationConfig struct {
	Source          string        `validate:"oneof=device static ipapi"`
	FixTimeout      time.Duration `validate:"gt=0"`
	StaticLatitude  float64       `validate:"min=-90,max=90"`
	StaticLongitude float64       `validate:"min=-180,max=180"`
	IPAPIURL        string        `validate:"required,url"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// A missing .env is fine, the environment may already be set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// Set config file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.lets-eat")

	SetDefaults(viper.GetViper())

	// Read from environment variables, e.g. LETS_EAT_PLACES_APIKEY
	viper.SetEnvPrefix("LETS_EAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SetDefaults registers a default for every key so that environment
// variables are picked up by Unmarshal even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.awaittimeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("places.apikey", "")
	v.SetDefault("places.baseurl", "https://maps.googleapis.com/maps/api/place")
	v.SetDefault("places.placetype", "restaurant")
	v.SetDefault("places.photomaxwidth", 400)
	v.SetDefault("places.photomaxheight", 400)
	v.SetDefault("places.timeout", 8*time.Second)
	v.SetDefault("search.minradius", 1)
	v.SetDefault("search.maxradius", 50)
	v.SetDefault("search.defaultradius", 5)
	v.SetDefault("search.unitmeters", 1609)
	v.SetDefault("search.chooser", "random")
	v.SetDefault("location.source", "device")
	v.SetDefault("location.fixtimeout", 5*time.Second)
	v.SetDefault("location.staticlatitude", 0.0)
	v.SetDefault("location.staticlongitude", 0.0)
	v.SetDefault("location.ipapiurl", "http://ip-api.com/json")
}

// Validate checks field constraints. The Places API key is only optional in gin test mode.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Places.APIKey == "" && c.Server.GinMode != "test" {
		return errors.New("invalid config: places.apiKey is required")
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
