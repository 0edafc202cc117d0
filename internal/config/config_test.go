package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { os.Chdir(originalDir) })
	return tempDir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "data/raw", cfg.OutputDir)
	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, "postgresql", cfg.Database.Provider)
	assert.Equal(t, "DATABASE_URL", cfg.Database.URLEnv)
	assert.Equal(t, 2000, cfg.Generation.Counts.FinanceOrders)
	assert.Equal(t, 0.19, cfg.Generation.Rates.Tax)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesOnlySetKeys(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.SetConfigType("json")
	body := `{"seed": 7, "format": "json", "generation": {"counts": {"leads": 10}, "rates": {"mql": 0.9}}}`
	require.NoError(t, viper.ReadConfig(strings.NewReader(body)))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 10, cfg.Generation.Counts.Leads)
	assert.Equal(t, 0.9, cfg.Generation.Rates.MQL)
	assert.Equal(t, 20000, cfg.Generation.Counts.Sessions)
	assert.Equal(t, 0.3, cfg.Generation.Rates.MQLToCustomer)
	assert.Equal(t, "data/raw", cfg.OutputDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad format", func(c *Config) { c.Format = "parquet" }, "unsupported output format"},
		{"bad provider", func(c *Config) { c.Database.Provider = "oracle" }, "unsupported database provider"},
		{"unknown domain", func(c *Config) { c.Domains = []string{"finance", "hr"} }, "unknown domain: hr"},
		{"zero count", func(c *Config) { c.Generation.Counts.Ads = 0 }, "generation.counts.ads"},
		{"rate above one", func(c *Config) { c.Generation.Rates.Return = 1.5 }, "generation.rates.return"},
		{"empty output", func(c *Config) { c.OutputDir = "" }, "output_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.URLEnv = "DATAFORGE_TEST_DB_URL"

	_, err := cfg.GetDatabaseURL()
	assert.Error(t, err)

	t.Setenv("DATAFORGE_TEST_DB_URL", "sqlite://test.db")
	url, err := cfg.GetDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "sqlite://test.db", url)
}

func TestInitializeProject(t *testing.T) {
	tempDir := chdirTemp(t)

	assert.False(t, IsInitialized())
	require.NoError(t, InitializeProject())
	assert.True(t, IsInitialized())

	_, err := os.Stat(filepath.Join(tempDir, FileName))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(tempDir, "data", "raw"))
	assert.NoError(t, err)

	assert.Error(t, InitializeProject(), "second initialization must fail")
}
