package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/orgresolve/internal/model"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage orgresolve configuration",
	Long: `Manage orgresolve configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (ORGRESOLVE_*, e.g. ORGRESOLVE_SUPPLEMENT_WORKERS)
3. Config file (~/.orgresolve/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if f := viper.ConfigFileUsed(); f != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", f)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(data))
		if cfg.LLM.APIKey != "" {
			fmt.Println("# llm api key: set (hidden)")
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := configDir()
		if err != nil {
			return err
		}
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'orgresolve config show' to view it, or delete it first to recreate", path)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}

		data, err := renderDefaultConfig(model.DefaultConfig())
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		fmt.Printf("✓ Created default configuration: %s\n", path)
		fmt.Printf("\nTo view the effective configuration:\n  orgresolve config show\n\n")
		return nil
	},
}

const configHeader = `# orgresolve configuration
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (ORGRESOLVE_*, e.g. ORGRESOLVE_SERVER_ADDR)
#   3. This config file
#   4. Built-in defaults
#
# Durations are Go duration strings ("3s", "10m").
# Registry sources (used when registry.enabled is true):
#   registry:
#     sources:
#       - name: api
#         kind: json      # json or page
#         url: https://registry.example/api/enterprise
#         per_minute: 5
#
# API keys are best set in the environment:
#   export ORGRESOLVE_LLM_API_KEY=sk-...   (or OPENAI_API_KEY)

`

// renderDefaultConfig returns the commented default config file
func renderDefaultConfig(cfg *model.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return append([]byte(configHeader), data...), nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
