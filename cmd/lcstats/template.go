package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"lcstats/pkg/roster"
	"lcstats/pkg/ui"
)

var forceTemplate bool

// templateCmd represents the template command
var templateCmd = &cobra.Command{
	Use:   "template [path]",
	Short: "Write an example roster workbook",
	Long: `Write an example roster workbook with the configured column names and
a few sample rows. The default path is roster-template.xlsx.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().BoolVar(&forceTemplate, "force", false, "overwrite an existing file")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	path := roster.TemplateFileName
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !forceTemplate {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := roster.WriteTemplate(f, &cfg.Input); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	ui.PrintSuccess("Template written to " + path)
	return nil
}
