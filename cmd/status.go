package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Lumos-Labs-HQ/whseed/internal/database"
	"github.com/Lumos-Labs-HQ/whseed/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts of the warehouse tables",
	Long: `Show whether each warehouse table exists and how many rows it holds.

Use it before seeding to confirm dim_date and dim_channel are populated,
and afterwards to see what a run produced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		ctx := context.Background()
		adapter := database.NewAdapter(cfg.Database.Provider, cfg.Tables)
		if err := adapter.Connect(ctx, dbURL); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer adapter.Close()

		if err := adapter.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		color.Cyan("📊 Warehouse status (%s)", cfg.Database.Provider)
		fmt.Println()

		var rows [][]string
		missing := 0
		for _, table := range cfg.Tables.All() {
			exists, err := adapter.TableExists(ctx, table)
			if err != nil {
				return fmt.Errorf("failed to check table %s: %w", table, err)
			}
			if !exists {
				rows = append(rows, []string{table, "missing"})
				missing++
				continue
			}
			count, err := adapter.CountRows(ctx, table)
			if err != nil {
				return err
			}
			rows = append(rows, []string{table, strconv.FormatInt(count, 10)})
		}
		utils.PrintTable(os.Stdout, []string{"TABLE", "ROWS"}, rows)

		if missing > 0 {
			color.Yellow("\n⚠️  %d table(s) missing; create the warehouse schema before seeding", missing)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
