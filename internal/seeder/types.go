package seeder

import (
	"time"
)

type SeedConfig struct {
	Customers        int   // Customers to generate
	Products         int   // Requested products; every taxonomy slot gets at least one
	Orders           int   // Orders to generate
	MaxItemsPerOrder int   // Upper bound of line items per order
	RandomSeed       int64 // Seed recorded in the summary
	Truncate         bool  // Empty generated tables before seeding
}

// RunSummary describes a finished seeding run.
type RunSummary struct {
	RunID      string        `yaml:"run_id"`
	RandomSeed int64         `yaml:"random_seed"`
	Customers  int           `yaml:"customers"`
	Products   int           `yaml:"products"`
	Orders     int           `yaml:"orders"`
	OrderItems int           `yaml:"order_items"`
	StartedAt  time.Time     `yaml:"started_at"`
	Duration   time.Duration `yaml:"duration"`
}

type TableInfo struct {
	Name         string
	Dependencies []string
	Generated    bool // rows are produced by this tool
}
