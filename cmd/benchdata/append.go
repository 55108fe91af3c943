package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"benchdata/internal/benchmark"
	"benchdata/internal/db"
	"benchdata/internal/git"
	"benchdata/internal/telemetry"
	"benchdata/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	appendInput    string
	appendGoBench  string
	appendEvent    string
	appendRev      string
	appendRepoDir  string
	appendTool     string
	appendMaxItems int
	appendSyncDB   bool
)

var appendCmd = &cobra.Command{
	Use:   "append",
	Short: "Record benchmark results for a commit",
	Long: `Appends one entry to the suite. Measurements come from --input (a JSON
array of {name, value, unit, range, extra}; "-" reads stdin) or --go-bench
(output of 'go test -bench'). The commit is taken from the GitHub event file
(--event, default $GITHUB_EVENT_PATH) or from the local git repository.

The new entry is compared with the previous one. Regressions above the alert
threshold are reported to the configured notifiers.`,
	RunE: runAppend,
}

func init() {
	rootCmd.AddCommand(appendCmd)
	appendCmd.Flags().StringVarP(&appendInput, "input", "i", "", `custom JSON results file ("-" for stdin)`)
	appendCmd.Flags().StringVar(&appendGoBench, "go-bench", "", `'go test -bench' output file ("-" for stdin)`)
	appendCmd.Flags().StringVar(&appendEvent, "event", "", "GitHub event payload (default $GITHUB_EVENT_PATH)")
	appendCmd.Flags().StringVar(&appendRev, "commit", "HEAD", "git revision to record when no event is available")
	appendCmd.Flags().StringVar(&appendRepoDir, "repo-dir", ".", "local git repository")
	appendCmd.Flags().StringVarP(&appendTool, "tool", "t", "", "benchmark tool (default from config, or go with --go-bench)")
	appendCmd.Flags().IntVar(&appendMaxItems, "max-items", -1, "keep at most this many entries in the suite (default from config)")
	appendCmd.Flags().BoolVar(&appendSyncDB, "sync-db", false, "also write the entry to the configured database")
	addAlertFlags(appendCmd)
}

func runAppend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	threshold, err := thresholdFlag(cmd)
	if err != nil {
		return err
	}

	benches, tool, err := readBenches(cmd)
	if err != nil {
		return err
	}

	commit, repoURL, err := resolveCommit(cmd)
	if err != nil {
		return err
	}

	maxItems := appendMaxItems
	if maxItems < 0 {
		maxItems = viper.GetInt("max_items")
	}

	store, err := storeFactory(viper.GetString("data_file"), repoURL)
	if err != nil {
		return err
	}

	suite := viper.GetString("suite")
	entry := benchmark.Entry{
		Commit:  commit,
		Tool:    tool,
		Benches: benches,
	}

	d, err := store.Append(suite, entry, benchmark.AppendOptions{MaxItems: maxItems, Now: now})
	if err != nil {
		return fmt.Errorf("failed to append to suite %q: %w", suite, err)
	}

	curr, _ := d.Latest(suite)
	prev, _ := d.Previous(suite)
	entries, _ := d.Suite(suite)
	fmt.Fprintf(out, "Recorded %s in %q (%d benches, %d entries)\n", curr.Commit.ShortID(), suite, len(curr.Benches), len(entries))
	telemetry.LogInfo("entry appended", "suite", suite, "commit", curr.Commit.ID, "benches", len(curr.Benches))

	if appendSyncDB {
		if err := saveToDB(suite, *curr); err != nil {
			return err
		}
	}

	if prev == nil {
		fmt.Fprintln(out, "No previous entry to compare with.")
		return nil
	}

	comparisons := benchmark.Compare(*prev, *curr)
	fmt.Fprint(out, ui.RenderComparison(*prev, *curr, comparisons, threshold))

	alerts := benchmark.Alerts(comparisons, threshold)
	if len(alerts) == 0 {
		return nil
	}

	msg := benchmark.AlertMarkdown(suite, *prev, *curr, alerts, threshold)
	if err := notifierFactory().Notify(ctx, msg); err != nil {
		// The entry is saved already, a failed alert is only logged.
		telemetry.LogError("failed to send alert", err)
	}

	if failOnAlertFlag(cmd) {
		return fmt.Errorf("performance regression in %d bench(es) exceeding threshold %g", len(alerts), threshold)
	}
	return nil
}

// readBenches parses the measurements and picks the tool.
func readBenches(cmd *cobra.Command) ([]benchmark.Bench, benchmark.Tool, error) {
	if (appendInput == "") == (appendGoBench == "") {
		return nil, "", errors.New("exactly one of --input or --go-bench is required")
	}

	toolName := appendTool
	if toolName == "" {
		toolName = viper.GetString("tool")
		if appendGoBench != "" {
			toolName = string(benchmark.ToolGo)
		}
	}
	tool, err := benchmark.ParseTool(toolName)
	if err != nil {
		return nil, "", err
	}

	var benches []benchmark.Bench
	if appendInput != "" {
		err = withInput(cmd, appendInput, func(r io.Reader) (err error) {
			benches, err = benchmark.ParseCustom(r)
			return err
		})
	} else {
		err = withInput(cmd, appendGoBench, func(r io.Reader) (err error) {
			benches, err = benchmark.ParseGoBench(r)
			return err
		})
	}
	if err != nil {
		return nil, "", err
	}
	return benches, tool, nil
}

func withInput(cmd *cobra.Command, path string, fn func(io.Reader) error) error {
	if path == "-" {
		return fn(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// resolveCommit returns the commit to record and the repository URL. The
// configured repo_url wins over what the event or git remote report.
func resolveCommit(cmd *cobra.Command) (benchmark.Commit, string, error) {
	repoURL := viper.GetString("repo_url")

	eventPath := appendEvent
	if eventPath == "" {
		eventPath = os.Getenv("GITHUB_EVENT_PATH")
	}
	if eventPath != "" {
		c, eventRepo, err := git.ReadEventFile(eventPath)
		if err == nil {
			if repoURL == "" {
				repoURL = eventRepo
			}
			return c, git.SanitizeRepoURL(repoURL), nil
		}
		if !errors.Is(err, git.ErrNoHeadCommit) {
			return benchmark.Commit{}, "", fmt.Errorf("failed to read event %s: %w", eventPath, err)
		}
		telemetry.LogInfo("event has no head commit, falling back to git", "event", eventPath)
	}

	client := gitClientFactory()
	if repoURL == "" {
		if remote, err := client.RemoteURL(cmd.Context(), appendRepoDir); err == nil {
			repoURL = remote
		} else {
			telemetry.LogDebug("no origin remote", "error", err)
		}
	}
	c, err := client.Commit(cmd.Context(), appendRepoDir, appendRev, repoURL)
	if err != nil {
		return benchmark.Commit{}, "", fmt.Errorf("failed to read commit %s: %w", appendRev, err)
	}
	return c, git.SanitizeRepoURL(repoURL), nil
}

func saveToDB(suite string, e benchmark.Entry) error {
	store, err := dbFactory(db.StoreConfig{
		Type:             viper.GetString("db.type"),
		ConnectionString: viper.GetString("db.dsn"),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if _, err := store.SaveEntry(suite, e); err != nil {
		return fmt.Errorf("failed to save entry to database: %w", err)
	}
	return nil
}
