package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/whseed/internal/config"
	"github.com/Lumos-Labs-HQ/whseed/internal/database"
	"github.com/Lumos-Labs-HQ/whseed/internal/types"
	"github.com/fatih/color"
	"github.com/google/uuid"
)

var ErrMissingTables = errors.New("warehouse tables are missing")

type Seeder struct {
	adapter   database.DatabaseAdapter
	generator *DataGenerator
	tables    types.Tables
	graph     *DependencyGraph
}

// NewSeeder connects to the configured warehouse. The caller owns the
// returned Seeder and must Close it.
func NewSeeder(ctx context.Context, cfg *config.Config, src Source) (*Seeder, error) {
	adapter := database.NewAdapter(cfg.Database.Provider, cfg.Tables)

	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, fmt.Errorf("failed to get database URL: %w", err)
	}

	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return New(adapter, cfg.Tables, src), nil
}

// New wraps an already connected adapter.
func New(adapter database.DatabaseAdapter, tables types.Tables, src Source) *Seeder {
	return &Seeder{
		adapter:   adapter,
		generator: NewDataGenerator(src),
		tables:    tables,
		graph:     NewWarehouseGraph(tables),
	}
}

func (s *Seeder) Close() error {
	return s.adapter.Close()
}

// Run seeds customers, products and then orders with their lines inside one
// transaction. Any failure rolls the whole run back.
func (s *Seeder) Run(ctx context.Context, cfg SeedConfig) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:      uuid.NewString(),
		RandomSeed: cfg.RandomSeed,
		StartedAt:  time.Now(),
	}
	color.Cyan("🌱 Starting warehouse seeding (run %s, seed %d)...", summary.RunID, cfg.RandomSeed)

	if err := s.checkTables(ctx); err != nil {
		return nil, err
	}

	tx, err := s.adapter.Begin(ctx)
	if err != nil {
		return nil, err
	}
	color.Cyan("🔒 Transaction started")

	if seedErr := s.seed(ctx, tx, cfg, summary); seedErr != nil {
		color.Yellow("🔄 Rolling back transaction due to error...")
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return nil, fmt.Errorf("seed failed and rollback failed: %v (original: %w)", rbErr, seedErr)
		}
		color.Yellow("✅ Transaction rolled back")
		return nil, seedErr
	}

	if err := tx.Commit(ctx); err != nil {
		tx.Rollback(ctx)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	color.Cyan("🔓 Transaction committed")

	summary.Duration = time.Since(summary.StartedAt)
	return summary, nil
}

func (s *Seeder) seed(ctx context.Context, tx database.Tx, cfg SeedConfig, summary *RunSummary) error {
	if cfg.Truncate {
		if err := s.truncateTables(ctx, tx); err != nil {
			return err
		}
	}

	color.Cyan("  📝 Seeding %s (%d records)...", s.tables.Customer, cfg.Customers)
	next, err := s.seedCustomers(ctx, tx, cfg.Customers, 1)
	if err != nil {
		return fmt.Errorf("failed to seed table %s: %w", s.tables.Customer, err)
	}
	summary.Customers = next - 1

	color.Cyan("  📝 Seeding %s (%d requested, %d per subcategory)...",
		s.tables.Product, cfg.Products, productsPerSlot(cfg.Products))
	next, err = s.seedProducts(ctx, tx, cfg.Products, 1)
	if err != nil {
		return fmt.Errorf("failed to seed table %s: %w", s.tables.Product, err)
	}
	summary.Products = next - 1

	color.Cyan("  📝 Seeding %s and %s (%d orders, up to %d items each)...",
		s.tables.Order, s.tables.OrderItem, cfg.Orders, cfg.MaxItemsPerOrder)
	next, items, err := s.seedOrders(ctx, tx, cfg.Orders, cfg.MaxItemsPerOrder, 1)
	if err != nil {
		return fmt.Errorf("failed to seed table %s: %w", s.tables.Order, err)
	}
	summary.Orders = next - 1
	summary.OrderItems = items

	color.Green("  ✅ %d customers, %d products, %d orders, %d order items",
		summary.Customers, summary.Products, summary.Orders, summary.OrderItems)
	return nil
}

// checkTables verifies every warehouse table exists before anything is written.
func (s *Seeder) checkTables(ctx context.Context) error {
	var missing []string
	for _, table := range s.tables.All() {
		ok, err := s.adapter.TableExists(ctx, table)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !ok {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingTables, strings.Join(missing, ", "))
	}
	return nil
}

func (s *Seeder) truncateTables(ctx context.Context, tx database.Tx) error {
	order, err := s.graph.TruncationOrder()
	if err != nil {
		return fmt.Errorf("failed to build truncation order: %w", err)
	}

	color.Yellow("🗑️  Truncating %s...", strings.Join(order, ", "))
	for _, table := range order {
		if err := tx.Truncate(ctx, table); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}
