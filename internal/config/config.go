package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"translator/internal/domain"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	VocabDir         string        `yaml:"vocab_dir"`
	MaxEntries       int           `yaml:"max_entries"`
	MaxTranslations  int           `yaml:"max_translations"`
	CaseInsensitive  bool          `yaml:"case_insensitive"`
	Storage          string        `yaml:"storage"`
	MigrationsPath   string        `yaml:"migrations_path"`
	LogFile          string        `yaml:"log_file"`
	LogLevel         string        `yaml:"log_level"`
	AutosaveInterval time.Duration `yaml:"autosave_interval"`

	BotToken      string `yaml:"bot_token"`
	BotPassword   string `yaml:"bot_password"`
	BotVocabulary string `yaml:"bot_vocabulary"`

	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		VocabDir:         ".",
		MaxEntries:       domain.DefaultCapacity,
		MaxTranslations:  domain.DefaultTranslationCapacity,
		Storage:          StorageFile,
		MigrationsPath:   "migrations",
		LogFile:          "translator.log",
		LogLevel:         "info",
		AutosaveInterval: 5 * time.Minute,
		BotVocabulary:    "shared",
		Database: DatabaseConfig{
			Host: "localhost",
			Port: "5432",
			Name: "translator",
			User: "translator",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (or CONFIG_FILE when path is empty), then environment variables and .env.
func Load(path string) (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	var err error

	c.VocabDir = getEnv("VOCAB_DIR", c.VocabDir)
	c.Storage = getEnv("STORAGE", c.Storage)
	c.MigrationsPath = getEnv("MIGRATIONS_PATH", c.MigrationsPath)
	c.LogFile = getEnv("LOG_FILE", c.LogFile)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.BotToken = getEnv("BOT_TOKEN", c.BotToken)
	c.BotPassword = getEnv("BOT_PASSWORD", c.BotPassword)
	c.BotVocabulary = getEnv("BOT_VOCABULARY", c.BotVocabulary)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)

	if c.MaxEntries, err = getEnvInt("MAX_ENTRIES", c.MaxEntries); err != nil {
		return err
	}
	if c.MaxTranslations, err = getEnvInt("MAX_TRANSLATIONS", c.MaxTranslations); err != nil {
		return err
	}
	if c.CaseInsensitive, err = getEnvBool("CASE_INSENSITIVE", c.CaseInsensitive); err != nil {
		return err
	}
	if c.AutosaveInterval, err = getEnvDuration("AUTOSAVE_INTERVAL", c.AutosaveInterval); err != nil {
		return err
	}

	return nil
}

// Validate checks the settings every binary needs
func (c *Config) Validate() error {
	if c.MaxEntries <= 0 {
		return fmt.Errorf("MAX_ENTRIES must be positive, got %d", c.MaxEntries)
	}
	if c.MaxTranslations <= 0 {
		return fmt.Errorf("MAX_TRANSLATIONS must be positive, got %d", c.MaxTranslations)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	switch c.Storage {
	case StorageFile:
		if c.VocabDir == "" {
			return fmt.Errorf("VOCAB_DIR is required")
		}
	case StoragePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	default:
		return fmt.Errorf("STORAGE must be %q or %q, got %q", StorageFile, StoragePostgres, c.Storage)
	}

	return nil
}

// ValidateBot checks the settings the Telegram bot needs
func (c *Config) ValidateBot() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.BotPassword == "" {
		return fmt.Errorf("BOT_PASSWORD is required")
	}
	if _, err := domain.FileName(c.BotVocabulary); err != nil {
		return fmt.Errorf("BOT_VOCABULARY is invalid: %w", err)
	}
	if c.AutosaveInterval <= 0 {
		return fmt.Errorf("AUTOSAVE_INTERVAL must be positive, got %s", c.AutosaveInterval)
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// StoreOptions returns the entry store limits and matching mode
func (c *Config) StoreOptions() []domain.StoreOption {
	opts := []domain.StoreOption{
		domain.WithCapacity(c.MaxEntries),
		domain.WithTranslationCapacity(c.MaxTranslations),
	}
	if c.CaseInsensitive {
		opts = append(opts, domain.WithCaseFolding())
	}
	return opts
}

// NewLogger builds a production logger at LOG_LEVEL. When LOG_FILE is set
// every log line goes there instead of stderr.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if c.LogFile != "" {
		zapCfg.OutputPaths = []string{c.LogFile}
		zapCfg.ErrorOutputPaths = []string{c.LogFile}
	}
	return zapCfg.Build()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
