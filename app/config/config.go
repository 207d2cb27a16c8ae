package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendNeo4j  = "neo4j"
)

// Config holds application configuration.
type Config struct {
	Addr     string
	Backend  string
	FilePath string
	LogLevel string
	SQLite   SQLiteConfig
	Neo4j    Neo4jConfig
}

// SQLiteConfig locates the SQLite database.
type SQLiteConfig struct {
	Path string
}

// Neo4jConfig holds the Neo4j connection settings.
type Neo4jConfig struct {
	URI      string
	Username string
	Password string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.path", "icando.json")
	v.SetDefault("sqlite.path", "icando.db")
	v.SetDefault("neo4j.uri", "neo4j://neo4j:7687")
	v.SetDefault("neo4j.username", "neo4j")
	v.SetDefault("neo4j.password", "password")
	v.SetDefault("log.level", "warn")
}

// New returns a viper instance reading cfgFile, or ./icando.yaml when cfgFile
// is empty, with ICANDO_* environment overrides.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("ICANDO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		return v, nil
	}

	v.AddConfigPath(".")
	v.SetConfigName("icando")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load builds a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Addr:     v.GetString("server.addr"),
		Backend:  strings.ToLower(v.GetString("storage.backend")),
		FilePath: v.GetString("storage.path"),
		LogLevel: v.GetString("log.level"),
		SQLite: SQLiteConfig{
			Path: v.GetString("sqlite.path"),
		},
		Neo4j: Neo4jConfig{
			URI:      v.GetString("neo4j.uri"),
			Username: v.GetString("neo4j.username"),
			Password: v.GetString("neo4j.password"),
		},
	}

	switch cfg.Backend {
	case BackendMemory, BackendFile, BackendSQLite, BackendNeo4j:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return cfg, nil
}

// NewLogger returns a stderr logger at the configured level.
func NewLogger(cfg *Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}
