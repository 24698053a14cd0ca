package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty temp dir so only the config files it writes are found.
func chdirTemp(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
	})
	return tmpDir
}

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)

	config, err := LoadConfig("")
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "data/tmmi_questions.json", config.Catalog)
	assert.Equal(t, "console", config.Format)
	assert.Equal(t, 80.0, config.LevelThreshold)
	assert.Equal(t, "development", config.LogMode)
	assert.False(t, config.Quiet)
	assert.False(t, config.FollowSymlinks)
	assert.Empty(t, config.Exclude)
	assert.False(t, config.Gaps.Enhanced)
	assert.Equal(t, 10, config.Gaps.Limit)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, []string{"*"}, config.Server.AllowedOrigins)
	assert.Equal(t, 10*time.Second, config.Server.ReadTimeout)
}

func TestLoadConfigFromJSON(t *testing.T) {
	chdirTemp(t)

	configData := map[string]any{
		"catalog":        "catalogs/custom.yaml",
		"format":         "json",
		"output":         "report.json",
		"levelThreshold": 75,
		"logMode":        "production",
		"exclude":        []string{"archive/**"},
		"gaps": map[string]any{
			"enhanced": true,
			"limit":    0,
			"baseline": ".tmmibaseline.json",
		},
		"server": map[string]any{
			"addr":           "127.0.0.1:9090",
			"allowedOrigins": []string{"https://dashboard.example"},
			"readTimeout":    "5s",
		},
	}
	jsonData, err := json.MarshalIndent(configData, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(".tmmirc.json", jsonData, 0644))

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "catalogs/custom.yaml", config.Catalog)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "report.json", config.Output)
	assert.Equal(t, 75.0, config.LevelThreshold)
	assert.Equal(t, "production", config.LogMode)
	assert.Equal(t, []string{"archive/**"}, config.Exclude)
	assert.True(t, config.Gaps.Enhanced)
	assert.Equal(t, 0, config.Gaps.Limit)
	assert.Equal(t, ".tmmibaseline.json", config.Gaps.Baseline)
	assert.Equal(t, "127.0.0.1:9090", config.Server.Addr)
	assert.Equal(t, []string{"https://dashboard.example"}, config.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, config.Server.ReadTimeout)
}

func TestLoadConfigFromYAML(t *testing.T) {
	chdirTemp(t)

	yamlData := `
format: json
levelThreshold: 90
gaps:
  limit: 25
`
	require.NoError(t, os.WriteFile(".tmmirc.yaml", []byte(yamlData), 0644))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, 90.0, config.LevelThreshold)
	assert.Equal(t, 25, config.Gaps.Limit)
	assert.Equal(t, ":8080", config.Server.Addr)
}

func TestLoadConfigCatalogOverride(t *testing.T) {
	chdirTemp(t)

	config, err := LoadConfig("/tmp/questions.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/questions.json", config.Catalog)
}

func TestLoadConfigFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TMMI_FORMAT", "json")
	t.Setenv("TMMI_SERVER_ADDR", ":7070")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, ":7070", config.Server.Addr)
}

func TestValidateConfig(t *testing.T) {
	valid := func() Config {
		return Config{
			Catalog:        "questions.json",
			Format:         "console",
			LevelThreshold: 80,
			LogMode:        "development",
			Gaps:           GapsConfig{Limit: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"threshold of 100 is allowed", func(c *Config) { c.LevelThreshold = 100 }, ""},
		{"markdown format", func(c *Config) { c.Format = "markdown" }, "invalid format"},
		{"zero threshold", func(c *Config) { c.LevelThreshold = 0 }, "levelThreshold"},
		{"threshold above 100", func(c *Config) { c.LevelThreshold = 100.5 }, "levelThreshold"},
		{"unknown log mode", func(c *Config) { c.LogMode = "verbose" }, "invalid logMode"},
		{"negative limit", func(c *Config) { c.Gaps.Limit = -1 }, "gaps.limit"},
		{"no catalog", func(c *Config) { c.Catalog = "" }, "catalog path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := validateConfig(&c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile(".tmmirc.json", []byte(`{"format": "xml"}`), 0644))

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
