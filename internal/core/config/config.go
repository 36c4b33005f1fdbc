package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// API holds the upstream shipping API configuration.
	API APIConfig `mapstructure:",squash"`

	// Retry holds the retry policy applied to every upstream call.
	Retry RetryConfig `mapstructure:",squash"`

	// Connectivity selects and tunes the network reachability probe.
	Connectivity ConnectivityConfig `mapstructure:",squash"`

	// Cache holds the optional Redis cache for location lookups.
	Cache CacheConfig `mapstructure:",squash"`

	// Proxy holds the optional outbound HTTP proxy.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// APIConfig holds the connection details of the upstream shipping API.
type APIConfig struct {
	// BaseURL is the root every endpoint path is resolved against.
	BaseURL string `mapstructure:"API_BASE_URL" required:"true"`
	// Timeout bounds a single HTTP request.
	Timeout time.Duration `mapstructure:"API_TIMEOUT" default:"30s"`
	// UserAgent identifies this client to the upstream.
	UserAgent string `mapstructure:"API_USER_AGENT" default:"Golek-Ongkir-App/1.0.0"`
}

// RetryConfig controls how transient upstream failures are retried.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first one.
	MaxAttempts int `mapstructure:"RETRY_MAX_ATTEMPTS" default:"3"`
	// Delay is the fixed pause between attempts.
	Delay time.Duration `mapstructure:"RETRY_DELAY" default:"2s"`
}

// ConnectivityConfig selects the reachability probe.
type ConnectivityConfig struct {
	// ProbeAddr is a host:port dialed to decide reachability. Empty uses the interface probe.
	ProbeAddr string `mapstructure:"CONNECTIVITY_PROBE_ADDR"`
	// ProbeTimeout bounds a single dial probe.
	ProbeTimeout time.Duration `mapstructure:"CONNECTIVITY_PROBE_TIMEOUT" default:"3s"`
}

// CacheConfig holds the Redis cache settings.
type CacheConfig struct {
	// RedisURL enables the location cache when set (redis://[:password@]host[:port][/db]).
	RedisURL string `mapstructure:"REDIS_URL"`
	// LocationTTL is how long province/city/district lists stay cached.
	LocationTTL time.Duration `mapstructure:"LOCATION_CACHE_TTL" default:"24h"`
}

// ProxyConfig holds the outbound proxy settings.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"PROXY_ENABLED"`
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	Port     int    `mapstructure:"PROXY_PORT"`
	Username string `mapstructure:"PROXY_USERNAME"`
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// ConfigurationError reports a configuration value that is missing or unusable.
// It is fatal at startup.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("missing required configuration: %s", e.Key)
	}
	return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Reason)
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if err := config.API.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c APIConfig) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return &ConfigurationError{Key: "API_BASE_URL", Reason: err.Error()}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigurationError{Key: "API_BASE_URL", Reason: "must be an absolute http(s) URL"}
	}
	return nil
}

// processTags iterates over the struct fields, binds env keys and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}

		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env %s: %w", key, err)
		}

		if defaultValue := field.Tag.Get("default"); defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return &ConfigurationError{Key: field.Tag.Get("mapstructure")}
		}
	}
	return nil
}
