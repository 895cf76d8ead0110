package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPath    = "./config/config.yaml"
	DefaultBaseURL = "http://127.0.0.1:5000/api"
)

// Path is the location of the yaml config file, set from the -config flag.
type Path string

type Config struct {
	Server  Server  `yaml:"server"`
	API     API     `yaml:"api"`
	Session Session `yaml:"session"`
	Redis   Redis   `yaml:"redis"`
	Log     Log     `yaml:"log"`
}

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type API struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	JWTSecret      string `yaml:"jwt_secret"`
}

type Session struct {
	Store           string `yaml:"store"`
	LifetimeMinutes int    `yaml:"lifetime_minutes"`
	CookieName      string `yaml:"cookie_name"`
	SecureCookie    bool   `yaml:"secure_cookie"`
	FilePath        string `yaml:"file_path"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

func Default() *Config {
	return &Config{
		Server: Server{
			Host: "localhost",
			Port: 8123,
		},
		API: API{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: 15,
		},
		Session: Session{
			Store:           StoreMemory,
			LifetimeMinutes: 180,
			CookieName:      "plsfundme_session",
			FilePath:        "./data/sessions.json",
		},
		Redis: Redis{
			Addr:   "127.0.0.1:6379",
			Prefix: "plsfundme:session:",
		},
		Log: Log{
			Level:       "info",
			Development: true,
		},
	}
}

// New layers the yaml file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func New(path Path) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	p := string(path)
	if p == "" {
		p = getEnv("PLSFUNDME_CONFIG", DefaultPath)
	}
	if err := readFile(p, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Session.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("unknown session store %q", c.Session.Store)
	}
	if c.Session.Store == StoreFile && c.Session.FilePath == "" {
		return errMissingFilePath
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (a API) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

func (s Session) Lifetime() time.Duration {
	if s.LifetimeMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.LifetimeMinutes) * time.Minute
}

func applyEnv(cfg *Config) {
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvAsInt("SERVER_PORT", cfg.Server.Port)

	cfg.API.BaseURL = getEnv("API_BASE_URL", cfg.API.BaseURL)
	cfg.API.TimeoutSeconds = getEnvAsInt("API_TIMEOUT_SECONDS", cfg.API.TimeoutSeconds)
	cfg.API.JWTSecret = getEnv("API_JWT_SECRET", cfg.API.JWTSecret)

	cfg.Session.Store = getEnv("SESSION_STORE", cfg.Session.Store)
	cfg.Session.LifetimeMinutes = getEnvAsInt("SESSION_LIFETIME_MINUTES", cfg.Session.LifetimeMinutes)
	cfg.Session.SecureCookie = getEnvAsBool("SESSION_SECURE_COOKIE", cfg.Session.SecureCookie)
	cfg.Session.FilePath = getEnv("SESSION_FILE_PATH", cfg.Session.FilePath)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Development = getEnvAsBool("LOG_DEVELOPMENT", cfg.Log.Development)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
