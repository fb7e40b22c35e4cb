package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"lcstats/pkg/leetcode"
	"lcstats/pkg/logger"
	"lcstats/pkg/ui"
)

var fetchJSON bool

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <username|profile-url>",
	Short: "Look up the stats of a single LeetCode profile",
	Long: `Look up accepted submissions by difficulty for one LeetCode user.

The argument may be a username or a profile link; for links the last path
segment is used as the username.`,
	Example: `  lcstats fetch alice123
  lcstats fetch https://leetcode.com/alice123/ --json`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "print the lookup as JSON")
	fetchCmd.Flags().StringVar(&endpoint, "endpoint", "", "LeetCode GraphQL endpoint")
	fetchCmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout (default: none)")
}

// usernameArg accepts either a bare username or a profile link
func usernameArg(arg string) string {
	arg = strings.TrimSpace(arg)
	if leetcode.IsProfileLink(arg) {
		return leetcode.UsernameFromProfileLink(arg)
	}
	return arg
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(processFlags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	username := usernameArg(args[0])
	if username == "" {
		return fmt.Errorf("no username in %q", args[0])
	}

	client := leetcode.NewClient(&cfg.LeetCode, logger.GetLogger())
	lookup := client.Lookup(contextOf(cmd), username)

	if fetchJSON {
		data, err := json.MarshalIndent(lookup, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(ui.Out, string(data))
		return nil
	}

	fmt.Fprint(ui.Out, ui.RenderLookup(lookup))
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
