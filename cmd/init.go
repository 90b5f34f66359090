package cmd

import (
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/whseed/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	initForce    bool
	initProvider string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default whseed.config.yaml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FileName + ".yaml"

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		cfg := config.DefaultConfig()
		cfg.Database.Provider = initProvider
		if err := cfg.Validate(); err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		color.Green("✅ Created %s", path)
		color.Cyan("💡 Set %s and run: whseed status", cfg.Database.URLEnv)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	initCmd.Flags().StringVar(&initProvider, "provider", "postgresql", "Database provider (postgresql, mysql, sqlite)")
}
