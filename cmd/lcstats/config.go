package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"lcstats/pkg/config"
	"lcstats/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage lcstats configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (LCSTATS_*)
  - .env files
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as '.lcstats.yaml'
unless a different path is specified with the --config flag.`,
	RunE: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Required fields
  - Export format and log level
  - Path accessibility`,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

const exampleConfig = `# lcstats configuration file
#
# Environment variables prefixed with LCSTATS_ override these values,
# for example LCSTATS_OUTPUT_DIR or LCSTATS_LOG_LEVEL.

# LeetCode API
leetcode:
  endpoint: "https://leetcode.com/graphql"
  base_url: "https://leetcode.com"
  user_agent: "Mozilla/5.0"
  # Per-request timeout, e.g. 10s. 0 means no timeout
  request_timeout: 0s

# Roster spreadsheet layout
input:
  # Worksheet to read. Empty means the first sheet
  sheet: ""
  roll_column: "roll_number"
  profile_column: "leetcode_profile"
  # Rows whose link does not contain this are skipped
  profile_marker: "leetcode.com"

# Export
output:
  directory: "."
  file_name: "leetcode_results.csv"
  # csv or xlsx
  format: "csv"

# Web UI (lcstats serve)
server:
  addr: ":8501"
  max_upload_mb: 10
  read_timeout: 30s
  write_timeout: 15m

# Logging
logging:
  # debug, info, warn, error, disabled
  level: "info"
  # Optional JSON log file
  file: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if configPath == "" {
		configPath = ".lcstats.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists: %s", configPath)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Fprintln(ui.Err, "\nNext steps:")
	fmt.Fprintln(ui.Err, "1. Adjust the column names to match your roster")
	fmt.Fprintln(ui.Err, "2. Run 'lcstats config validate' to check the configuration")
	fmt.Fprintln(ui.Err, "3. Run 'lcstats process <roster.xlsx>'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	fmt.Fprint(ui.Out, string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		ui.PrintInfo("Validating configuration", configFile)
	}

	cfg, err := loadConfig(nil)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if problems := checkPaths(cfg); len(problems) > 0 {
		ui.PrintError("Configuration has errors")
		for _, p := range problems {
			fmt.Fprintf(ui.Err, "  - %s\n", p)
		}
		return fmt.Errorf("%d configuration errors", len(problems))
	}

	ui.PrintSuccess("Configuration is valid")

	fmt.Fprintln(ui.Err, "\nConfiguration summary:")
	fmt.Fprintf(ui.Err, "  Endpoint: %s\n", cfg.LeetCode.Endpoint)
	fmt.Fprintf(ui.Err, "  Columns: %s, %s\n", cfg.Input.RollColumn, cfg.Input.ProfileColumn)
	fmt.Fprintf(ui.Err, "  Output: %s (%s)\n", filepath.Join(cfg.Output.Directory, cfg.Output.FileName), cfg.Output.Format)
	fmt.Fprintf(ui.Err, "  Log level: %s\n", cfg.Logging.Level)
	return nil
}

// checkPaths verifies that the output and log directories can be created
func checkPaths(cfg *config.Config) []string {
	var problems []string

	if cfg.Output.Directory != "" {
		if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
			problems = append(problems, fmt.Sprintf("Cannot create output directory: %v", err))
		}
	}

	if cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err != nil {
			problems = append(problems, fmt.Sprintf("Cannot create log directory: %v", err))
		}
	}

	return problems
}
