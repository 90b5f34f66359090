package config

import (
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/whseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/whseed/internal/types"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the working directory (any viper-supported extension).
const FileName = "whseed.config"

type Config struct {
	Version  string       `json:"version" yaml:"version" mapstructure:"version"`
	Database Database     `json:"database" yaml:"database" mapstructure:"database"`
	Tables   types.Tables `json:"tables" yaml:"tables" mapstructure:"tables"`
	Seed     Seed         `json:"seed" yaml:"seed" mapstructure:"seed"`
}

type Database struct {
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" yaml:"url_env" mapstructure:"url_env"`
}

type Seed struct {
	Customers        int   `json:"customers" yaml:"customers" mapstructure:"customers"`
	Products         int   `json:"products" yaml:"products" mapstructure:"products"`
	Orders           int   `json:"orders" yaml:"orders" mapstructure:"orders"`
	MaxItemsPerOrder int   `json:"max_items_per_order" yaml:"max_items_per_order" mapstructure:"max_items_per_order"`
	RandomSeed       int64 `json:"random_seed" yaml:"random_seed" mapstructure:"random_seed"` // 0 = seed from clock
}

func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Database: Database{
			Provider: "postgresql",
			URLEnv:   "DATABASE_URL",
		},
		Tables: types.DefaultTables(),
		Seed: Seed{
			Customers:        500,
			Products:         200,
			Orders:           3000,
			MaxItemsPerOrder: 5,
		},
	}
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Version == "" {
		c.Version = def.Version
	}
	if c.Database.Provider == "" {
		c.Database.Provider = def.Database.Provider
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = def.Database.URLEnv
	}

	setDefault(&c.Tables.Customer, def.Tables.Customer)
	setDefault(&c.Tables.Product, def.Tables.Product)
	setDefault(&c.Tables.Channel, def.Tables.Channel)
	setDefault(&c.Tables.Date, def.Tables.Date)
	setDefault(&c.Tables.Order, def.Tables.Order)
	setDefault(&c.Tables.OrderItem, def.Tables.OrderItem)

	if !viper.IsSet("seed.customers") {
		c.Seed.Customers = def.Seed.Customers
	}
	if !viper.IsSet("seed.products") {
		c.Seed.Products = def.Seed.Products
	}
	if !viper.IsSet("seed.orders") {
		c.Seed.Orders = def.Seed.Orders
	}
	if !viper.IsSet("seed.max_items_per_order") {
		c.Seed.MaxItemsPerOrder = def.Seed.MaxItemsPerOrder
	}
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	for _, table := range c.Tables.All() {
		if !common.IsValidIdentifier(table) {
			return fmt.Errorf("invalid table name: %q", table)
		}
	}

	if c.Seed.Customers < 0 || c.Seed.Products < 0 || c.Seed.Orders < 0 {
		return fmt.Errorf("seed counts cannot be negative")
	}
	if c.Seed.MaxItemsPerOrder < 1 {
		return fmt.Errorf("max_items_per_order must be at least 1, got %d", c.Seed.MaxItemsPerOrder)
	}

	return nil
}
