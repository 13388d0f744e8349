package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"nba-props-go/logging"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `json:"server"`

	// Database configuration
	Database DatabaseConfig `json:"database"`

	// Logging configuration
	Logging LoggingConfig `json:"logging"`

	// Authentication configuration
	Auth AuthConfig `json:"auth"`

	// Stat source (stats.nba.com) configuration
	Stats StatsConfig `json:"stats"`

	// Odds source (The Odds API) configuration
	Odds OddsConfig `json:"odds"`

	// Prediction pipeline configuration
	Prediction PredictionConfig `json:"prediction"`

	// Background refresh configuration
	Refresh RefreshConfig `json:"refresh"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string `json:"port"`
	Host        string `json:"host"`
	Environment string `json:"environment"`
}

// DatabaseConfig holds MongoDB configuration
type DatabaseConfig struct {
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Username string        `json:"username"`
	Password string        `json:"password"`
	Database string        `json:"database"`
	Timeout  time.Duration `json:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `json:"level"`
	Prefix      string `json:"prefix"`
	EnableColor bool   `json:"enable_color"`
}

// AuthConfig holds credentials for the admin/refresh surface.
// AdminKeyHash is a bcrypt hash of the key the scheduled invoker
// exchanges for a JWT.
type AuthConfig struct {
	JWTSecret    string        `json:"jwt_secret"`
	AdminKeyHash string        `json:"admin_key_hash"`
	TokenExpiry  time.Duration `json:"token_expiry"`
}

// StatsConfig holds stat source configuration
type StatsConfig struct {
	BaseURL         string        `json:"base_url"`
	Timeout         time.Duration `json:"timeout"`
	RequestInterval time.Duration `json:"request_interval"`
	GameLogTTL      time.Duration `json:"game_log_ttl"`
	PlayerIndexTTL  time.Duration `json:"player_index_ttl"`
	ScoreboardTTL   time.Duration `json:"scoreboard_ttl"`
	CurrentSeason   string        `json:"current_season"`
	PreviousSeason  string        `json:"previous_season"`
}

// OddsConfig holds odds source configuration
type OddsConfig struct {
	APIKey   string        `json:"api_key"`
	BaseURL  string        `json:"base_url"`
	Timeout  time.Duration `json:"timeout"`
	CacheTTL time.Duration `json:"cache_ttl"`
	Regions  string        `json:"regions"`
}

// PredictionConfig holds prediction pipeline tuning
type PredictionConfig struct {
	WindowSize     int     `json:"window_size"`
	MinGames       int     `json:"min_games"`
	DefaultMinEdge float64 `json:"default_min_edge"`
	MaxConcurrency int     `json:"max_concurrency"`
	SmartEnabled   bool    `json:"smart_enabled"`
	InjuriesOn     bool    `json:"injuries_enabled"`
}

// RefreshConfig holds daily background refresh configuration
type RefreshConfig struct {
	Enabled  bool          `json:"enabled"`
	Interval time.Duration `json:"interval"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Don't treat missing .env as an error
		logging.Warnf("Could not load .env file: %v", err)
	}

	environment := getEnv("ENVIRONMENT", "development")

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Environment: environment,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", "nbaprops"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "nba_props"),
			Timeout:  getDurationEnv("DB_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Prefix:      getEnv("LOG_PREFIX", "nba-props"),
			EnableColor: getBoolEnv("LOG_COLOR", true),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", "change-me-in-production"),
			AdminKeyHash: getEnv("ADMIN_KEY_HASH", ""),
			TokenExpiry:  getDurationEnv("TOKEN_EXPIRY", 24*time.Hour),
		},
		Stats: StatsConfig{
			BaseURL:         getEnv("NBA_STATS_URL", "https://stats.nba.com/stats"),
			Timeout:         getDurationEnv("NBA_STATS_TIMEOUT", 60*time.Second),
			RequestInterval: getDurationEnv("NBA_STATS_INTERVAL", 600*time.Millisecond),
			GameLogTTL:      getDurationEnv("GAME_LOG_TTL", 2*time.Hour),
			PlayerIndexTTL:  getDurationEnv("PLAYER_INDEX_TTL", 168*time.Hour),
			ScoreboardTTL:   getDurationEnv("SCOREBOARD_TTL", time.Hour),
			CurrentSeason:   getEnv("CURRENT_SEASON", "2025-26"),
			PreviousSeason:  getEnv("PREVIOUS_SEASON", "2024-25"),
		},
		Odds: OddsConfig{
			APIKey:   getEnv("ODDS_API_KEY", ""),
			BaseURL:  getEnv("ODDS_API_URL", "https://api.the-odds-api.com/v4"),
			Timeout:  getDurationEnv("ODDS_API_TIMEOUT", 30*time.Second),
			CacheTTL: getDurationEnv("ODDS_CACHE_TTL", 30*time.Minute),
			Regions:  getEnv("ODDS_REGIONS", "us"),
		},
		Prediction: PredictionConfig{
			WindowSize:     getIntEnv("PREDICTION_WINDOW", 5),
			MinGames:       getIntEnv("PREDICTION_MIN_GAMES", 3),
			DefaultMinEdge: getFloatEnv("DEFAULT_MIN_EDGE", 2.0),
			MaxConcurrency: getIntEnv("RANKER_CONCURRENCY", 4),
			SmartEnabled:   getBoolEnv("SMART_PREDICTIONS", true),
			InjuriesOn:     getBoolEnv("INJURY_DATA", true),
		},
		Refresh: RefreshConfig{
			Enabled:  getBoolEnv("REFRESH_ENABLED", true),
			Interval: getDurationEnv("REFRESH_INTERVAL", 24*time.Hour),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields and sensible values
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("database port is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Auth.JWTSecret == "change-me-in-production" && !c.IsDevelopment() {
		return fmt.Errorf("JWT secret must be changed in production")
	}

	if c.Prediction.WindowSize < 1 || c.Prediction.WindowSize > 20 {
		return fmt.Errorf("prediction window must be between 1 and 20, got: %d", c.Prediction.WindowSize)
	}
	if c.Prediction.MinGames < 1 || c.Prediction.MinGames > c.Prediction.WindowSize {
		return fmt.Errorf("minimum games must be between 1 and the window size, got: %d", c.Prediction.MinGames)
	}
	if c.Prediction.DefaultMinEdge < 0 {
		return fmt.Errorf("default min edge must not be negative, got: %g", c.Prediction.DefaultMinEdge)
	}
	if c.Prediction.MaxConcurrency < 1 {
		return fmt.Errorf("ranker concurrency must be at least 1, got: %d", c.Prediction.MaxConcurrency)
	}

	return nil
}

// IsDevelopment returns true when running in development mode
func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.Server.Environment) == "development"
}

// IsOddsConfigured returns true if The Odds API key is set
func (c *Config) IsOddsConfigured() bool {
	return c.Odds.APIKey != ""
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// ToLoggingConfig converts Config to logging.Config
func (c *Config) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:       c.Logging.Level,
		Output:      os.Stdout,
		Prefix:      c.Logging.Prefix,
		EnableColor: c.Logging.EnableColor,
	}
}

// LogConfiguration logs the current configuration (without sensitive data)
func (c *Config) LogConfiguration() {
	logging.Info("=== Application Configuration ===")
	logging.Infof("Server: %s (Environment: %s)", c.GetServerAddress(), c.Server.Environment)
	logging.Infof("Database: %s:%s/%s (Username: %s, Auth: %t)",
		c.Database.Host, c.Database.Port, c.Database.Database,
		c.Database.Username, c.Database.Password != "")
	logging.Infof("Logging: Level=%s, Prefix=%s, Color=%t",
		c.Logging.Level, c.Logging.Prefix, c.Logging.EnableColor)
	logging.Infof("Stats: Season=%s, GameLogTTL=%v, Interval=%v",
		c.Stats.CurrentSeason, c.Stats.GameLogTTL, c.Stats.RequestInterval)
	logging.Infof("Odds: Configured=%t, CacheTTL=%v, Regions=%s",
		c.IsOddsConfigured(), c.Odds.CacheTTL, c.Odds.Regions)
	logging.Infof("Prediction: Window=%d, MinGames=%d, MinEdge=%g, Concurrency=%d, Smart=%t, Injuries=%t",
		c.Prediction.WindowSize, c.Prediction.MinGames, c.Prediction.DefaultMinEdge,
		c.Prediction.MaxConcurrency, c.Prediction.SmartEnabled, c.Prediction.InjuriesOn)
	logging.Infof("Refresh: Enabled=%t, Interval=%v", c.Refresh.Enabled, c.Refresh.Interval)
	logging.Info("================================")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
