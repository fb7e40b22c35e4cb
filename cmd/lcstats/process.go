package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"lcstats/pkg/config"
	"lcstats/pkg/export"
	"lcstats/pkg/leetcode"
	"lcstats/pkg/logger"
	"lcstats/pkg/models"
	"lcstats/pkg/processor"
	"lcstats/pkg/roster"
	"lcstats/pkg/storage"
	"lcstats/pkg/ui"
	"lcstats/pkg/ui/tui"
)

var (
	// Process command flags
	outputDir     string
	outputFile    string
	outputFormat  string
	sheetName     string
	endpoint      string
	timeout       time.Duration
	noSave        bool
	useTUI        bool
	notify        bool
	debugProgress bool
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <roster.xlsx|roster.csv>",
	Short: "Look up LeetCode stats for every student in a roster",
	Long: `Read a roster spreadsheet and look up the LeetCode profile of every row.

The first sheet (or --sheet) must have a header row with roll_number and
leetcode_profile columns. Profiles are fetched one at a time in row order.
Rows whose profile link does not point at leetcode.com are skipped. Lookups
that fail are exported with zero counts.

The results table is printed to stdout and saved to the output directory.`,
	Example: `  # Look up a roster and save leetcode_results.csv
  lcstats process class.xlsx

  # Save as Excel into ./exports
  lcstats process class.xlsx --format xlsx --output ./exports

  # Print only, with the interactive progress view
  lcstats process class.csv --no-save --tui`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default: current directory)")
	processCmd.Flags().StringVar(&outputFile, "file-name", "", "output file name (default: leetcode_results.csv)")
	processCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "export format: csv or xlsx")
	processCmd.Flags().StringVar(&sheetName, "sheet", "", "worksheet to read (default: first sheet)")
	processCmd.Flags().StringVar(&endpoint, "endpoint", "", "LeetCode GraphQL endpoint")
	processCmd.Flags().DurationVar(&timeout, "timeout", 0, "per-request timeout (default: none)")
	processCmd.Flags().BoolVar(&noSave, "no-save", false, "print the results without writing a file")
	processCmd.Flags().BoolVar(&useTUI, "tui", false, "use interactive terminal UI with per-row progress")
	processCmd.Flags().BoolVar(&notify, "notify", false, "send a desktop notification when the run finishes")
	processCmd.Flags().BoolVar(&debugProgress, "debug-progress", false, "print one line per row instead of a progress bar")
}

func processFlags() map[string]interface{} {
	flags := make(map[string]interface{})
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if outputFile != "" {
		flags["file-name"] = outputFile
	}
	if outputFormat != "" {
		flags["format"] = outputFormat
	}
	if sheetName != "" {
		flags["sheet"] = sheetName
	}
	if endpoint != "" {
		flags["endpoint"] = endpoint
	}
	if timeout > 0 {
		flags["timeout"] = timeout
	}
	return flags
}

func runProcess(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig(processFlags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	rows, err := roster.NewReader(&cfg.Input, logger.GetLogger()).ReadFile(path)
	if err != nil {
		return err
	}
	ui.PrintInfo("Roster", fmt.Sprintf("%s (%d rows)", path, len(rows)))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var results models.ResultSet
	if useTUI {
		results, err = runWithTUI(ctx, cfg, rows)
	} else {
		results, err = runWithProgress(ctx, cfg, rows)
	}

	cancelled := errors.Is(err, context.Canceled)
	switch {
	case errors.Is(err, processor.ErrNoValidProfiles):
		ui.PrintWarning("No valid LeetCode profiles found.")
		return nil
	case cancelled:
		ui.PrintWarning("Run interrupted", fmt.Sprintf("keeping %d results", len(results)))
	case err != nil:
		return err
	}

	ui.PrintResults(results)

	if noSave || results.Empty() {
		return nil
	}

	path, err = saveResults(cfg, format, results)
	if err != nil {
		return err
	}
	ui.PrintSuccess("Results saved to " + path)
	return nil
}

// runWithProgress runs the processor with the single-line progress display
func runWithProgress(ctx context.Context, cfg *config.Config, rows []models.InputRow) (models.ResultSet, error) {
	log := logger.GetLogger()
	proc := processor.New(leetcode.NewClient(&cfg.LeetCode, log), &cfg.Input, log)

	observers := processor.MultiObserver{ui.NewProgressDisplay(ui.Err, debugProgress)}
	if notify {
		observers = append(observers, ui.NewNotifier())
	}
	proc.SetObserver(observers)

	return proc.Run(ctx, rows)
}

// runWithTUI runs the processor in a worker goroutine while the terminal UI
// owns the main goroutine. Console logs are muted until the UI exits.
func runWithTUI(ctx context.Context, cfg *config.Config, rows []models.InputRow) (models.ResultSet, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Output = io.Discard
	defer func() {
		logger.Output = os.Stderr
		logger.Initialize(&cfg.Logging)
	}()
	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, err
	}
	log := logger.GetLogger()

	terminal := tui.NewTUI(cancel)
	proc := processor.New(leetcode.NewClient(&cfg.LeetCode, log), &cfg.Input, log)

	observers := processor.MultiObserver{terminal}
	if notify {
		observers = append(observers, ui.NewNotifier())
	}
	proc.SetObserver(observers)

	type runResult struct {
		results models.ResultSet
		err     error
	}
	done := make(chan runResult, 1)
	go func() {
		terminal.LogInfo(fmt.Sprintf("Querying %s", cfg.LeetCode.Endpoint))
		rs, err := proc.Run(ctx, rows)
		done <- runResult{rs, err}
	}()

	if err := terminal.Start(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("terminal UI failed: %w", err)
	}

	res := <-done
	return res.results, res.err
}

// saveResults writes results through the storage manager
func saveResults(cfg *config.Config, format export.Format, results models.ResultSet) (string, error) {
	mgr, err := storage.NewManager(cfg.Output.Directory)
	if err != nil {
		return "", err
	}

	name := format.FileName(cfg.Output.FileName)
	if mgr.Exists(name) {
		logger.WithField("file", mgr.Path(name)).Info("Overwriting previous export")
	}

	return mgr.Save(name, func(w io.Writer) error {
		return export.Write(w, format, results)
	})
}
