package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bassista/go_sitework/internal/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the production backend.
const DefaultBaseURL = "https://management-backend-kgyd.onrender.com"

// Config is the full runtime configuration.
type Config struct {
	API    APIConfig
	Server ServerConfig
	Data   DataConfig
	Misc   MiscConfig
}

// APIConfig describes the remote backend.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables
	Token     string
}

// ServerConfig configures the local bridge started by `sitework serve`.
type ServerConfig struct {
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutDownTimeout    time.Duration
	RequestTimeout     time.Duration
	CORSAllowedOrigins string
}

// DataConfig locates the store snapshot file.
type DataConfig struct {
	FilePath        string
	PersistInterval time.Duration
	// RefreshInterval re-fetches the list stores while serving; 0 disables.
	RefreshInterval time.Duration
}

type MiscConfig struct {
	LogLevel string
	GinMode  string
}

// LoadConfig reads config.yaml (from SITEWORK_CONFIG_PATH, . or ./config),
// .env and SITEWORK_* environment variables, applies defaults and validates
// the result. The snapshot file is created as "{}" when missing.
func LoadConfig() (*Config, error) {
	log := logger.WithComponent("config")
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded .env file")
	}

	viper.Reset()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if p := os.Getenv("SITEWORK_CONFIG_PATH"); p != "" {
		viper.AddConfigPath(p)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	// SITEWORK_API_BASE_URL overrides api.base_url and so on
	viper.SetEnvPrefix("SITEWORK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
		log.Debug("no config file found, using defaults and env vars")
	}

	port, err := getEnvOrViperPort("PORT", "server.port")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:   strings.TrimRight(viper.GetString("api.base_url"), "/"),
			Timeout:   viper.GetDuration("api.timeout"),
			RateLimit: viper.GetFloat64("api.rate_limit"),
			Token:     strings.TrimSpace(viper.GetString("api.token")),
		},
		Server: ServerConfig{
			Port:               port,
			ReadTimeout:        viper.GetDuration("server.read_timeout"),
			WriteTimeout:       viper.GetDuration("server.write_timeout"),
			IdleTimeout:        viper.GetDuration("server.idle_timeout"),
			ShutDownTimeout:    viper.GetDuration("server.shutdown_timeout"),
			RequestTimeout:     viper.GetDuration("server.request_timeout"),
			CORSAllowedOrigins: viper.GetString("server.cors_allowed_origins"),
		},
		Data: DataConfig{
			FilePath:        viper.GetString("data.file_path"),
			PersistInterval: viper.GetDuration("data.persist_interval"),
			RefreshInterval: viper.GetDuration("data.refresh_interval"),
		},
		Misc: MiscConfig{
			LogLevel: getEnvOrDefault("LOG_LEVEL", viper.GetString("misc.log_level")),
			GinMode:  getEnvOrDefault("GIN_MODE", viper.GetString("misc.gin_mode")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := ensureDataFile(cfg.Data.FilePath); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", DefaultBaseURL)
	viper.SetDefault("api.timeout", 30*time.Second)
	viper.SetDefault("api.rate_limit", 0)
	viper.SetDefault("api.token", "")

	viper.SetDefault("server.port", 8087)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 35*time.Second)
	viper.SetDefault("server.idle_timeout", 120*time.Second)
	viper.SetDefault("server.shutdown_timeout", 5*time.Second)
	viper.SetDefault("server.request_timeout", 30*time.Second)
	viper.SetDefault("server.cors_allowed_origins", "")

	viper.SetDefault("data.file_path", defaultDataFile())
	viper.SetDefault("data.persist_interval", 5*time.Second)
	viper.SetDefault("data.refresh_interval", 0)

	viper.SetDefault("misc.log_level", "warn")
	viper.SetDefault("misc.gin_mode", "release")
}

func defaultDataFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "./data/state.json"
	}
	return filepath.Join(dir, "sitework", "state.json")
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if c.API.BaseURL == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if c.API.RateLimit < 0 {
		return errors.New("api.rate_limit must not be negative")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 || c.Server.ShutDownTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("server.request_timeout must be positive")
	}

	if c.Data.FilePath == "" {
		return errors.New("data.file_path is required")
	}
	if c.Data.PersistInterval <= 0 {
		return errors.New("data.persist_interval must be positive")
	}
	if c.Data.RefreshInterval < 0 {
		return errors.New("data.refresh_interval must not be negative")
	}

	if c.Misc.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.Misc.LogLevel); err != nil {
			return fmt.Errorf("invalid misc.log_level %q", c.Misc.LogLevel)
		}
	}
	switch c.Misc.GinMode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("invalid misc.gin_mode %q", c.Misc.GinMode)
	}
	return nil
}

func ensureDataFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat data file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		return fmt.Errorf("create data file: %w", err)
	}
	logger.WithComponent("config").Infof("created empty data file %s", path)
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvOrViperPort(envKey, viperKey string) (int, error) {
	if v := os.Getenv(envKey); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", envKey, v, err)
		}
		return port, nil
	}
	return viper.GetInt(viperKey), nil
}
