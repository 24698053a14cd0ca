package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the tmmi configuration
type Config struct {
	Catalog        string       `mapstructure:"catalog"`
	Format         string       `mapstructure:"format"`
	Output         string       `mapstructure:"output"`
	LevelThreshold float64      `mapstructure:"levelThreshold"`
	LogMode        string       `mapstructure:"logMode"`
	Quiet          bool         `mapstructure:"quiet"`
	Verbose        bool         `mapstructure:"verbose"`
	FollowSymlinks bool         `mapstructure:"followSymlinks"`
	Exclude        []string     `mapstructure:"exclude"`
	Gaps           GapsConfig   `mapstructure:"gaps"`
	Server         ServerConfig `mapstructure:"server"`
}

// GapsConfig controls the gaps command
type GapsConfig struct {
	Enhanced bool   `mapstructure:"enhanced"`
	Limit    int    `mapstructure:"limit"`
	Baseline string `mapstructure:"baseline"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	ReadTimeout    time.Duration `mapstructure:"readTimeout"`
	WriteTimeout   time.Duration `mapstructure:"writeTimeout"`
}

// LoadConfig loads configuration from various sources
func LoadConfig(catalogPath string) (*Config, error) {
	viper.SetDefault("catalog", "data/tmmi_questions.json")
	viper.SetDefault("format", "console")
	viper.SetDefault("levelThreshold", 80.0)
	viper.SetDefault("logMode", "development")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("followSymlinks", false)
	viper.SetDefault("exclude", []string{})
	viper.SetDefault("gaps.enhanced", false)
	viper.SetDefault("gaps.limit", 10)
	viper.SetDefault("gaps.baseline", "")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.allowedOrigins", []string{"*"})
	viper.SetDefault("server.readTimeout", 10*time.Second)
	viper.SetDefault("server.writeTimeout", 30*time.Second)

	// Config file locations
	configPaths := []string{".tmmirc.json", ".tmmirc.yaml", ".tmmirc.yml"}
	for _, path := range configPaths {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	// Environment variables: TMMI_FORMAT, TMMI_SERVER_ADDR, ...
	viper.SetEnvPrefix("TMMI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if catalogPath != "" {
		config.Catalog = catalogPath
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Format != "console" && config.Format != "json" {
		return fmt.Errorf("invalid format: %s. Must be 'console' or 'json'", config.Format)
	}

	if config.LevelThreshold <= 0 || config.LevelThreshold > 100 {
		return fmt.Errorf("levelThreshold must be in (0, 100], got %g", config.LevelThreshold)
	}

	if config.LogMode != "development" && config.LogMode != "production" {
		return fmt.Errorf("invalid logMode: %s. Must be 'development' or 'production'", config.LogMode)
	}

	if config.Gaps.Limit < 0 {
		return fmt.Errorf("gaps.limit must not be negative")
	}

	if config.Catalog == "" {
		return fmt.Errorf("catalog path is required")
	}

	return nil
}
