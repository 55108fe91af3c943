package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"benchdata/internal/benchmark"
	"benchdata/internal/notify"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func executeCommand(root *cobra.Command, args ...string) (string, error) {
	resetFlags(root)
	// Mock exit
	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	defer func() { exit = oldExit }()
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(string); ok && strings.HasPrefix(s, "exit-") {
				return
			}
			panic(r)
		}
	}()
	root.SetArgs(args)
	b := new(bytes.Buffer)
	root.SetOut(b)
	root.SetErr(b)
	// Mock Stdin to avoid hanging on interactive prompts
	root.SetIn(bytes.NewBufferString(""))
	err := root.Execute()
	return b.String(), err
}

// resetFlags resets all flags to their default values.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// pushEventFile writes a GitHub push event for commit id.
func pushEventFile(t *testing.T, dir, id, message string) string {
	t.Helper()
	return writeFile(t, filepath.Join(dir, "event-"+id+".json"), fmt.Sprintf(`{
  "head_commit": {
    "author": {"email": "npequeux@users.noreply.github.com", "name": "Nicolas Pequeux", "username": "npequeux"},
    "committer": {"email": "noreply@github.com", "name": "GitHub", "username": "web-flow"},
    "distinct": true,
    "id": %q,
    "message": %q,
    "timestamp": "2026-02-04T21:20:01+01:00",
    "tree_id": "4f7b5ad5a8cbd3d6d4c1e1e3a0d9c8b7a6f5e4d3",
    "url": "https://github.com/npequeux/rtop/commit/%s"
  },
  "repository": {"html_url": "https://github.com/npequeux/rtop"}
}`, id, message, id))
}

func resultsFile(t *testing.T, dir, name string, buildTime float64) string {
	t.Helper()
	return writeFile(t, filepath.Join(dir, name), fmt.Sprintf(`[
  {"name": "Binary Size (bytes)", "value": 1916928, "unit": "bytes"},
  {"name": "Build Time", "value": %g, "unit": "seconds"}
]`, buildTime))
}

// withClock pins now to ms for the duration of the test.
func withClock(t *testing.T, ms int64) {
	t.Helper()
	orig := now
	now = func() time.Time { return time.UnixMilli(ms) }
	t.Cleanup(func() { now = orig })
}

type recordingNotifier struct {
	messages []string
	err      error
}

func (r *recordingNotifier) Notify(ctx context.Context, message string) error {
	r.messages = append(r.messages, message)
	return r.err
}

func withNotifier(t *testing.T, n notify.Notifier) {
	t.Helper()
	orig := notifierFactory
	notifierFactory = func() notify.Notifier { return n }
	t.Cleanup(func() { notifierFactory = orig })
}

type fakeGit struct {
	commit benchmark.Commit
	remote string
	err    error
}

func (f *fakeGit) Commit(ctx context.Context, dir, rev, repoURL string) (benchmark.Commit, error) {
	if f.err != nil {
		return benchmark.Commit{}, f.err
	}
	c := f.commit
	if c.URL == "" && repoURL != "" {
		c.URL = repoURL + "/commit/" + c.ID
	}
	return c, nil
}

func (f *fakeGit) RemoteURL(ctx context.Context, dir string) (string, error) {
	if f.remote == "" {
		return "", fmt.Errorf("no remote")
	}
	return f.remote, nil
}

func withGit(t *testing.T, g commitReader) {
	t.Helper()
	orig := gitClientFactory
	gitClientFactory = func() commitReader { return g }
	t.Cleanup(func() { gitClientFactory = orig })
}

// seedDataset records two entries into a fresh data file and returns its path.
// The second entry regresses Build Time from 10s to 55.21s.
func seedDataset(t *testing.T) string {
	t.Helper()
	t.Setenv("GITHUB_EVENT_PATH", "")
	withNotifier(t, &recordingNotifier{})

	dir := t.TempDir()
	dataFile := filepath.Join(dir, "dev", "bench", "data.js")

	withClock(t, 1770236612331)
	_, err := executeCommand(rootCmd, "append", "--file", dataFile,
		"--input", resultsFile(t, dir, "first.json", 10),
		"--event", pushEventFile(t, dir, "1bb6b5495ca49bfbf0ae", "fix: Pre-fetch gh-pages branch"))
	require.NoError(t, err)

	now = func() time.Time { return time.UnixMilli(1770237000000) }
	_, err = executeCommand(rootCmd, "append", "--file", dataFile,
		"--input", resultsFile(t, dir, "second.json", 55.21),
		"--event", pushEventFile(t, dir, "90414c91773873000dd5", "feat: slower build"))
	require.NoError(t, err)

	return dataFile
}
