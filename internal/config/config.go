// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables and
// an optional JSON config file.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// placeholderSecret is the well-known insecure default shipped in example
// env files. The server must never run with it.
const placeholderSecret = "your-secret-key-change-in-production"

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string `json:"address"`

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string `json:"database_dsn"`

	// SecretKey is the HMAC secret used to sign session tokens.
	SecretKey string `json:"secret_key"`

	// TokenTTLMinutes is the session token lifetime in minutes.
	TokenTTLMinutes int `json:"token_ttl_minutes"`

	// SecureCookies controls the Secure flag on the session cookie.
	SecureCookies bool `json:"secure_cookies"`

	// CORSOrigins lists the allowed cross-origin callers.
	CORSOrigins []string `json:"cors_origins"`

	// LogLevel sets the logging verbosity.
	LogLevel string `json:"log_level"`

	// Config is the path to the config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{
	TokenTTLMinutes: 1440, // one day
	SecureCookies:   true,
	LogLevel:        "info",
}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.SecretKey, "s", "", "token signing secret")
	flag.IntVar(&options.TokenTTLMinutes, "ttl", 1440, "session token lifetime in minutes")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the optional config file and the
// environment variables to set configuration values, then validates the
// result. It returns a pointer to the Options struct containing the parsed
// configuration values.
func Parse() (*Options, error) {
	flag.Parse()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	applyEnv(options)

	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}

// applyEnv overrides values with environment variables if set.
func applyEnv(o *Options) {
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		o.Address = serverAddress
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		o.DatabaseDSN = dsn
	}
	if secret := os.Getenv("COOKIE_SECRET_KEY"); secret != "" {
		o.SecretKey = secret
	}
	if ttl := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); ttl != "" {
		if minutes, err := strconv.Atoi(ttl); err == nil {
			o.TokenTTLMinutes = minutes
		}
	}
	if secure := os.Getenv("SECURE_COOKIES"); secure != "" {
		if b, err := strconv.ParseBool(secure); err == nil {
			o.SecureCookies = b
		}
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		o.CORSOrigins = o.CORSOrigins[:0]
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				o.CORSOrigins = append(o.CORSOrigins, origin)
			}
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		o.LogLevel = level
	}
}

// Validate enforces the startup invariants. In particular the process must
// refuse to run with a missing or placeholder signing secret.
func (o *Options) Validate() error {
	if o.SecretKey == "" {
		return errors.New("config: token signing secret is not set")
	}
	if o.SecretKey == placeholderSecret {
		return errors.New("config: token signing secret equals the placeholder value, set a secure random string")
	}
	if o.TokenTTLMinutes <= 0 {
		return errors.New("config: token TTL must be positive")
	}
	return nil
}

// TokenTTL returns the configured session token lifetime.
func (o *Options) TokenTTL() time.Duration {
	return time.Duration(o.TokenTTLMinutes) * time.Minute
}
