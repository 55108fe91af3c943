package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"benchdata/internal/benchmark"
)

// Client reads commit metadata from a local repository.
type Client struct {
	// Binary is the git executable, "git" when empty.
	Binary string
}

// NewClient creates a new Git client.
func NewClient() *Client {
	return &Client{Binary: "git"}
}

var (
	reGitHubPAT = regexp.MustCompile(`https://[^@:/]+@github\.com`)
	reBasicAuth = regexp.MustCompile(`https://[^:/]+:[^@/]+@`)
	// git@host:owner/repo
	reSCPLike = regexp.MustCompile(`^[^@/:]+@([^:/]+):(.+)$`)
	// ssh://git@host:22/owner/repo
	reSSH = regexp.MustCompile(`^(?:git\+)?ssh://(?:[^@/]+@)?([^:/]+)(?::\d+)?/(.+)$`)
)

// SanitizeRepoURL turns a remote URL into the web URL published in the
// dataset: SSH remotes become https, credentials and a trailing ".git" are
// removed.
func SanitizeRepoURL(u string) string {
	u = strings.TrimSpace(u)
	if m := reSSH.FindStringSubmatch(u); m != nil {
		u = "https://" + m[1] + "/" + m[2]
	} else if m := reSCPLike.FindStringSubmatch(u); m != nil {
		u = "https://" + m[1] + "/" + strings.TrimPrefix(m[2], "/")
	}
	u = reGitHubPAT.ReplaceAllString(u, "https://github.com")
	u = reBasicAuth.ReplaceAllString(u, "https://")
	u = strings.TrimSuffix(strings.TrimSuffix(u, "/"), ".git")
	return u
}

// CommitURL returns the web URL of a commit in repoURL.
func CommitURL(repoURL, id string) string {
	if repoURL == "" || id == "" {
		return ""
	}
	return SanitizeRepoURL(repoURL) + "/commit/" + id
}

func (c *Client) run(ctx context.Context, dir string, args ...string) (string, error) {
	bin := c.Binary
	if bin == "" {
		bin = "git"
	}
	var outBuf, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	// Enforce no prompting
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\nStderr: %s", args[0], err, errBuf.String())
	}
	return outBuf.String(), nil
}

// Fields of showFormat are NUL separated; the message comes last because it
// may contain anything but NUL.
const showFormat = "--format=%H%x00%T%x00%an%x00%ae%x00%cn%x00%ce%x00%cI%x00%B"

// Commit reads the metadata of rev in dir.
func (c *Client) Commit(ctx context.Context, dir, rev, repoURL string) (benchmark.Commit, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	out, err := c.run(ctx, dir, "show", "-s", showFormat, rev)
	if err != nil {
		return benchmark.Commit{}, err
	}

	fields := strings.SplitN(out, "\x00", 8)
	if len(fields) != 8 {
		return benchmark.Commit{}, fmt.Errorf("unexpected git show output for %s", rev)
	}

	id := strings.TrimSpace(fields[0])
	return benchmark.Commit{
		Author:    benchmark.User{Name: fields[2], Email: fields[3]},
		Committer: benchmark.User{Name: fields[4], Email: fields[5]},
		Distinct:  true,
		ID:        id,
		Message:   strings.TrimRight(fields[7], "\n"),
		Timestamp: fields[6],
		TreeID:    fields[1],
		URL:       CommitURL(repoURL, id),
	}, nil
}

// HeadCommit reads the metadata of HEAD in dir.
func (c *Client) HeadCommit(ctx context.Context, dir, repoURL string) (benchmark.Commit, error) {
	return c.Commit(ctx, dir, "HEAD", repoURL)
}

// RemoteURL returns the fetch URL of the origin remote with credentials
// removed.
func (c *Client) RemoteURL(ctx context.Context, dir string) (string, error) {
	out, err := c.run(ctx, dir, "remote", "get-url", "origin")
	if err != nil {
		return "", err
	}
	return SanitizeRepoURL(strings.TrimSpace(out)), nil
}
