package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
)

const FileName = "dataforge.config.json"

type Config struct {
	Seed        uint64     `json:"seed" mapstructure:"seed"`
	OutputDir   string     `json:"output_dir" mapstructure:"output_dir"`
	Format      string     `json:"format" mapstructure:"format"`
	Domains     []string   `json:"domains,omitempty" mapstructure:"domains"`
	MetricsFile string     `json:"metrics_file,omitempty" mapstructure:"metrics_file"`
	Generation  Generation `json:"generation" mapstructure:"generation"`
	Database    Database   `json:"database" mapstructure:"database"`
	Storage     Storage    `json:"storage" mapstructure:"storage"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

type Storage struct {
	S3 S3 `json:"s3" mapstructure:"s3"`
}

type S3 struct {
	Bucket    string `json:"bucket" mapstructure:"bucket"`
	Region    string `json:"region" mapstructure:"region"`
	Endpoint  string `json:"endpoint,omitempty" mapstructure:"endpoint"`
	Prefix    string `json:"prefix,omitempty" mapstructure:"prefix"`
	PathStyle bool   `json:"path_style,omitempty" mapstructure:"path_style"`
}

type Generation struct {
	Counts Counts `json:"counts" mapstructure:"counts"`
	Rates  Rates  `json:"rates" mapstructure:"rates"`
}

// Counts sizes the header tables each domain synthesizes itself.
type Counts struct {
	Vendors       int `json:"vendors" mapstructure:"vendors"`
	FinanceOrders int `json:"finance_orders" mapstructure:"finance_orders"`
	Expenses      int `json:"expenses" mapstructure:"expenses"`
	Products      int `json:"products" mapstructure:"products"`
	Campaigns     int `json:"campaigns" mapstructure:"campaigns"`
	AdGroups      int `json:"ad_groups" mapstructure:"ad_groups"`
	Ads           int `json:"ads" mapstructure:"ads"`
	Leads         int `json:"leads" mapstructure:"leads"`
	Sessions      int `json:"sessions" mapstructure:"sessions"`
}

// Rates are the probabilities that gate generation.
type Rates struct {
	MQL             float64 `json:"mql" mapstructure:"mql"`
	MQLToCustomer   float64 `json:"mql_to_customer" mapstructure:"mql_to_customer"`
	CustomerToBuyer float64 `json:"customer_to_buyer" mapstructure:"customer_to_buyer"`
	Return          float64 `json:"return" mapstructure:"return"`
	Consent         float64 `json:"consent" mapstructure:"consent"`
	Tax             float64 `json:"tax" mapstructure:"tax"`
}

var (
	SupportedFormats   = []string{"csv", "json", "sqlite"}
	SupportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	KnownDomains       = []string{"finance", "ecommerce", "marketing", "web", "crm"}
)

func DefaultGeneration() Generation {
	return Generation{
		Counts: Counts{
			Vendors:       50,
			FinanceOrders: 2000,
			Expenses:      1000,
			Products:      500,
			Campaigns:     60,
			AdGroups:      200,
			Ads:           700,
			Leads:         20000,
			Sessions:      20000,
		},
		Rates: Rates{
			MQL:             0.5,
			MQLToCustomer:   0.3,
			CustomerToBuyer: 0.6,
			Return:          0.1,
			Consent:         0.8,
			Tax:             0.19,
		},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Seed:       42,
		OutputDir:  "data/raw",
		Format:     "csv",
		Generation: DefaultGeneration(),
		Database: Database{
			Provider: "postgresql",
			URLEnv:   "DATABASE_URL",
		},
	}
}

// Load unmarshals the viper settings over DefaultConfig, so keys missing
// from the config file keep their defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "data/raw"
	}
	if cfg.Format == "" {
		cfg.Format = "csv"
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	return cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(SupportedFormats, c.Format) {
		return fmt.Errorf("unsupported output format: %s. Supported formats: %v", c.Format, SupportedFormats)
	}
	if !slices.Contains(SupportedProviders, c.Database.Provider) {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, SupportedProviders)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	for _, d := range c.Domains {
		if !slices.Contains(KnownDomains, d) {
			return fmt.Errorf("unknown domain: %s. Known domains: %v", d, KnownDomains)
		}
	}
	return c.Generation.Validate()
}

func (g Generation) Validate() error {
	counts := map[string]int{
		"vendors":        g.Counts.Vendors,
		"finance_orders": g.Counts.FinanceOrders,
		"expenses":       g.Counts.Expenses,
		"products":       g.Counts.Products,
		"campaigns":      g.Counts.Campaigns,
		"ad_groups":      g.Counts.AdGroups,
		"ads":            g.Counts.Ads,
		"leads":          g.Counts.Leads,
		"sessions":       g.Counts.Sessions,
	}
	for _, name := range sortedKeys(counts) {
		if counts[name] < 1 {
			return fmt.Errorf("generation.counts.%s must be at least 1, got %d", name, counts[name])
		}
	}

	rates := map[string]float64{
		"mql":               g.Rates.MQL,
		"mql_to_customer":   g.Rates.MQLToCustomer,
		"customer_to_buyer": g.Rates.CustomerToBuyer,
		"return":            g.Rates.Return,
		"consent":           g.Rates.Consent,
		"tax":               g.Rates.Tax,
	}
	for _, name := range sortedKeys(rates) {
		if r := rates[name]; r < 0 || r > 1 {
			return fmt.Errorf("generation.rates.%s must be within [0, 1], got %g", name, r)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func IsInitialized() bool {
	_, err := os.Stat(FileName)
	return err == nil
}

// InitializeProject writes a config file with the default settings into
// the working directory and creates the output directory.
func InitializeProject() error {
	if IsInitialized() {
		return fmt.Errorf("%s already exists", FileName)
	}

	cfg := DefaultConfig()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(FileName, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	return cfg.EnsureDirectories()
}

func (c *Config) EnsureDirectories() error {
	if c.OutputDir == "" || c.OutputDir == "." {
		return nil
	}
	if err := os.MkdirAll(filepath.Clean(c.OutputDir), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.OutputDir, err)
	}
	return nil
}
