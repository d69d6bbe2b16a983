package main

import (
	"fmt"
	"strconv"

	"citefetch/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  cf config                     # Show all config
  cf config mailto              # Get specific value
  cf config mailto me@lab.org   # Set value

Keys:
  api-base     Citation-graph API base URL
  doi-base     DOI content-negotiation base URL
  mailto       Contact address sent in the User-Agent
  oc-token     OpenCitations access token
  cache-path   SQLite metadata cache location
  concurrency  Metadata fetch workers`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("api-base:    %s\n", cfg.APIBase)
			fmt.Printf("doi-base:    %s\n", cfg.DOIBase)
			fmt.Printf("mailto:      %s\n", cfg.Mailto)
			fmt.Printf("oc-token:    %s\n", cfg.OCToken)
			fmt.Printf("cache-path:  %s\n", cfg.CachePath)
			fmt.Printf("concurrency: %d\n", cfg.Concurrency)
			return nil
		}
		return outputJSON(cfg)
	}

	key := args[0]
	if len(args) == 1 {
		value, ok := configValue(cfg, key)
		if !ok {
			exitWithError(ExitError, "unknown configuration key: %s", key)
		}
		if humanOutput {
			fmt.Println(value)
			return nil
		}
		return outputJSON(map[string]string{key: value})
	}

	if err := setConfigValue(cfg, key, args[1]); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, args[1])
		return nil
	}
	return outputJSON(map[string]string{"status": "updated", "key": key, "value": args[1]})
}

func configValue(cfg *config.Config, key string) (string, bool) {
	switch key {
	case "api-base":
		return cfg.APIBase, true
	case "doi-base":
		return cfg.DOIBase, true
	case "mailto":
		return cfg.Mailto, true
	case "oc-token":
		return cfg.OCToken, true
	case "cache-path":
		return cfg.CachePath, true
	case "concurrency":
		return strconv.Itoa(cfg.Concurrency), true
	}
	return "", false
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "api-base":
		cfg.APIBase = value
	case "doi-base":
		cfg.DOIBase = value
	case "mailto":
		cfg.Mailto = value
	case "oc-token":
		cfg.OCToken = value
	case "cache-path":
		cfg.CachePath = value
	case "concurrency":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("concurrency must be a positive integer")
		}
		cfg.Concurrency = n
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
