// Package config provides layered configuration loading for the Vanish
// frontend. It merges struct defaults, an optional YAML file, and
// environment variables (highest precedence), then validates the result.
// Values are resolved once at startup and treated as immutable afterwards.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	yamlparser "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces all environment variables, e.g. VANISH_ADDR.
const envPrefix = "VANISH_"

// configFileEnv names the optional YAML config file location.
const configFileEnv = "VANISH_CONFIG"

// Config holds the merged runtime configuration.
// Precedence (lowest to highest): defaults -> YAML file -> environment.
type Config struct {
	Addr            string        `koanf:"addr" validate:"required,ip_port"`                // listen address, e.g. ":8080"
	BasePath        string        `koanf:"base_path" validate:"omitempty,base_path"`        // optional mount path, e.g. "/vanish"
	UpstreamURL     string        `koanf:"upstream_url" validate:"required,http_url"`       // secrets API base URL
	UpstreamTimeout time.Duration `koanf:"upstream_timeout" validate:"required,gt=0"`       // outbound request timeout
	DataDir         string        `koanf:"data_dir" validate:"required,safe_path"`          // directory for the metrics database
	MaxSecretBytes  int64         `koanf:"max_secret_bytes" validate:"required,gt=0"`       // local cap before POSTing
	MinTTL          time.Duration `koanf:"min_ttl" validate:"required,gt=0"`                // shortest accepted expiry distance
	MaxTTL          time.Duration `koanf:"max_ttl" validate:"required,gt=0"`                // longest accepted expiry distance
	DefaultLocale   string        `koanf:"default_locale" validate:"required,bcp47_language_tag"`
	DefaultTheme    Theme         `koanf:"default_theme"`
	MetricsToken    string        `koanf:"metrics_token"`                             // bearer token for /metrics; empty disables auth
	MetricsFlush    time.Duration `koanf:"metrics_flush" validate:"required,gt=0"`    // metrics flush cadence
}

// DefaultAppConfig carries the built-in defaults.
var DefaultAppConfig = Config{
	Addr:            ":8080",
	BasePath:        "",
	UpstreamURL:     "http://127.0.0.1:9090/api/secrets",
	UpstreamTimeout: 10 * time.Second,
	DataDir:         "./data",
	MaxSecretBytes:  128 << 10, // 128 KiB
	MinTTL:          1 * time.Minute,
	MaxTTL:          7 * 24 * time.Hour,
	DefaultLocale:   "en",
	DefaultTheme:    ThemeAuto,
	MetricsToken:    "",
	MetricsFlush:    5 * time.Second,
}

// Loader funcs are package-level vars so tests can inject failures.
var (
	defaultLoader = func(k *koanf.Koanf) error {
		return k.Load(structs.Provider(DefaultAppConfig, "koanf"), nil)
	}
	fileLoader = func(k *koanf.Koanf) error {
		path := os.Getenv(configFileEnv)
		if path == "" {
			return nil
		}
		err := k.Load(file.Provider(path), yamlparser.Parser())
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	envLoader = func(k *koanf.Koanf) error {
		return k.Load(env.Provider(".", env.Opt{
			Prefix: envPrefix,
			TransformFunc: func(key, value string) (string, any) {
				key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
				return key, value
			},
		}), nil)
	}
	registerValidators = func(v *validator.Validate) error {
		if err := v.RegisterValidation("ip_port", validIPPort); err != nil {
			return err
		}
		if err := v.RegisterValidation("base_path", validBasePath); err != nil {
			return err
		}
		return v.RegisterValidation("safe_path", validSafePath)
	}
)

// Load assembles and validates the configuration.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := fileLoader(k); err != nil {
		return nil, fmt.Errorf("load config file: %w", err)
	}
	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				StringToTheme(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	v := validator.New()
	if err := registerValidators(v); err != nil {
		return nil, err
	}
	if err := v.Struct(&cfg); err != nil {
		return nil, err
	}
	if cfg.MinTTL >= cfg.MaxTTL {
		return nil, errors.New("min_ttl must be less than max_ttl")
	}
	cfg.UpstreamURL = strings.TrimRight(cfg.UpstreamURL, "/")
	return &cfg, nil
}

// SQLiteDSN returns the DSN for the metrics database inside DataDir.
func (c *Config) SQLiteDSN() string {
	dir := c.DataDir
	if dir != "" && dir[len(dir)-1] != '/' {
		dir += "/"
	}
	return "file:" + dir + "vanish.db?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000&_synchronous=FULL"
}

// validIPPort accepts "host:port" where host is empty or a literal IP
// (bracketed for IPv6) and port is numeric in 1..65535.
func validIPPort(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || s != strings.TrimSpace(s) || strings.ContainsAny(s, " \t") {
		return false
	}
	host, port, err := net.SplitHostPort(s)
	if err != nil {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return false
	}
	if host != "" && net.ParseIP(host) == nil {
		return false
	}
	return true
}

// validBasePath is only consulted for non-empty values (omitempty) and
// requires a leading slash, no trailing slash, and no traversal or whitespace.
func validBasePath(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	if !strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/") {
		return false
	}
	if strings.Contains(p, "..") || strings.ContainsAny(p, " \t") {
		return false
	}
	return true
}

// validSafePath rejects empty, root, and traversal-bearing directory paths.
func validSafePath(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	if p == "" || strings.Contains(p, "..") {
		return false
	}
	clean := path.Clean(filepath.ToSlash(p))
	if clean == "." || clean == "/" || clean == "" {
		return false
	}
	return true
}
