package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Lumos-Labs-HQ/whseed/internal/seeder"
	"github.com/Lumos-Labs-HQ/whseed/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	seedCustomers  int
	seedProducts   int
	seedOrders     int
	seedMaxItems   int
	seedRandomSeed int64
	seedTruncate   bool
	seedForce      bool
	seedSummary    string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate customers, products, orders and order items",
	Long: `
Generate synthetic warehouse data inside a single transaction:

  1. dim_customer   customers with derived emails and segments
  2. dim_product    products across the category taxonomy
  3. fact_order     orders with 1..max-items line items each,
     fact_order_item  totals computed from the lines

Counts default to the config file values and can be overridden by flags.

Examples:
  whseed seed
  whseed seed --customers 50 --products 40 --orders 200 --random-seed 42
  whseed seed --truncate --force --summary run.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("customers") {
			cfg.Seed.Customers = seedCustomers
		}
		if flags.Changed("products") {
			cfg.Seed.Products = seedProducts
		}
		if flags.Changed("orders") {
			cfg.Seed.Orders = seedOrders
		}
		if flags.Changed("max-items") {
			cfg.Seed.MaxItemsPerOrder = seedMaxItems
		}
		if flags.Changed("random-seed") {
			cfg.Seed.RandomSeed = seedRandomSeed
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid seed options: %w", err)
		}

		if seedTruncate {
			input := &utils.InputUtils{In: os.Stdin, Out: os.Stdout}
			if !input.AskConfirmation("⚠️  This will delete all generated customers, products and orders. Continue?", seedForce) {
				color.Yellow("❌ Seeding cancelled")
				return nil
			}
		}

		ctx := context.Background()
		src, seed := seeder.NewSource(cfg.Seed.RandomSeed)

		s, err := seeder.NewSeeder(ctx, cfg, src)
		if err != nil {
			return err
		}
		defer s.Close()

		summary, err := s.Run(ctx, seeder.SeedConfig{
			Customers:        cfg.Seed.Customers,
			Products:         cfg.Seed.Products,
			Orders:           cfg.Seed.Orders,
			MaxItemsPerOrder: cfg.Seed.MaxItemsPerOrder,
			RandomSeed:       seed,
			Truncate:         seedTruncate,
		})
		if err != nil {
			return err
		}

		if seedSummary != "" {
			if err := writeSummary(seedSummary, summary); err != nil {
				return err
			}
			color.Cyan("📄 Summary written to %s", seedSummary)
		}

		color.Green("\n✅ Data generation complete in %s", summary.Duration.Round(time.Millisecond))
		return nil
	},
}

func writeSummary(path string, summary *seeder.RunSummary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntVar(&seedCustomers, "customers", 0, "Number of customers to generate")
	seedCmd.Flags().IntVar(&seedProducts, "products", 0, "Requested number of products (at least one per subcategory)")
	seedCmd.Flags().IntVar(&seedOrders, "orders", 0, "Number of orders to generate")
	seedCmd.Flags().IntVar(&seedMaxItems, "max-items", 0, "Maximum line items per order")
	seedCmd.Flags().Int64Var(&seedRandomSeed, "random-seed", 0, "Seed for reproducible runs (0 = random)")
	seedCmd.Flags().BoolVar(&seedTruncate, "truncate", false, "Empty generated tables before seeding")
	seedCmd.Flags().BoolVarP(&seedForce, "force", "f", false, "Skip the truncate confirmation prompt")
	seedCmd.Flags().StringVar(&seedSummary, "summary", "", "Write a YAML run summary to this file")
}
