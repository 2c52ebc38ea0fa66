package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Trading   TradingConfig   `yaml:"trading"`
	Seed      SeedConfig      `yaml:"seed"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Mode            string        `yaml:"mode"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	MaxOpen  int    `yaml:"max_open_conns"`
	MaxIdle  int    `yaml:"max_idle_conns"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

type LogConfig struct {
	Dir string `yaml:"dir"`
}

type SimulatorConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Interval    time.Duration `yaml:"interval"`
	Volatility  float64       `yaml:"volatility"`
	MinPrice    float64       `yaml:"min_price"`
	HistorySize int           `yaml:"history_size"`
	Workers     int           `yaml:"workers"`
}

type TradingConfig struct {
	InitialBalance float64       `yaml:"initial_balance"`
	Timeout        time.Duration `yaml:"timeout"`
}

type SeedConfig struct {
	OnStartup bool `yaml:"on_startup"`
}

// Default returns the configuration used when no file overrides a value
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Mode:            "debug",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			DBName:  "stocktrade",
			SSLMode: "disable",
			MaxOpen: 25,
			MaxIdle: 5,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		JWT: JWTConfig{
			ExpireHours: 24,
		},
		Log: LogConfig{
			Dir: "logs",
		},
		Simulator: SimulatorConfig{
			Enabled:     true,
			Interval:    5 * time.Second,
			Volatility:  0.005,
			MinPrice:    0.1,
			HistorySize: 50,
			Workers:     8,
		},
		Trading: TradingConfig{
			InitialBalance: 100000,
			Timeout:        5 * time.Second,
		},
		Seed: SeedConfig{
			OnStartup: true,
		},
	}
}

// Load loads configuration from file and environment variables.
// A .env file in the working directory is read first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// Override with environment variables if present
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFromEnv() {
	// Server
	if v := os.Getenv("SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("SERVER_MODE"); v != "" {
		c.Server.Mode = v
	}

	// Database
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.DBName = v
	}

	// Redis
	if v := os.Getenv("REDIS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Redis.Enabled = enabled
		}
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Redis.Port = port
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}

	// JWT
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
	if v := os.Getenv("JWT_EXPIRE_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil {
			c.JWT.ExpireHours = hours
		}
	}

	// Log
	if v := os.Getenv("LOG_DIR"); v != "" {
		c.Log.Dir = v
	}

	// Simulator
	if v := os.Getenv("SIMULATOR_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Simulator.Enabled = enabled
		}
	}
	if v := os.Getenv("SIMULATOR_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Simulator.Interval = d
		}
	}
	if v := os.Getenv("SIMULATOR_VOLATILITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Simulator.Volatility = f
		}
	}

	// Trading
	if v := os.Getenv("INITIAL_BALANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Trading.InitialBalance = f
		}
	}

	// Seed
	if v := os.Getenv("SEED_ON_STARTUP"); v != "" {
		if seed, err := strconv.ParseBool(v); err == nil {
			c.Seed.OnStartup = seed
		}
	}
}

// Validate reports configuration values the service cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		errs = append(errs, errors.New("jwt.secret must be at least 32 characters in release mode"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.JWT.ExpireHours <= 0 {
		errs = append(errs, errors.New("jwt.expire_hours must be positive"))
	}
	if c.Simulator.Interval <= 0 {
		errs = append(errs, errors.New("simulator.interval must be positive"))
	}
	if c.Simulator.Volatility <= 0 || c.Simulator.Volatility >= 1 {
		errs = append(errs, errors.New("simulator.volatility must be between 0 and 1"))
	}
	if c.Simulator.MinPrice <= 0 {
		errs = append(errs, errors.New("simulator.min_price must be positive"))
	}
	if c.Simulator.HistorySize <= 0 {
		errs = append(errs, errors.New("simulator.history_size must be positive"))
	}
	if c.Simulator.Workers <= 0 {
		errs = append(errs, errors.New("simulator.workers must be positive"))
	}
	if c.Trading.InitialBalance < 0 {
		errs = append(errs, errors.New("trading.initial_balance must not be negative"))
	}

	return errors.Join(errs...)
}

// Addr returns the listen address of the HTTP server
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Addr returns the Redis address
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode +
		" TimeZone=UTC"
}
