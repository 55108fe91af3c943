package git

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"benchdata/internal/benchmark"
)

// ErrNoHeadCommit is returned for events without a head commit, such as
// branch deletions.
var ErrNoHeadCommit = errors.New("event has no head_commit")

// pushEvent models just the fields we rely on from a GitHub event payload.
type pushEvent struct {
	HeadCommit *benchmark.Commit `json:"head_commit"`
	Repository struct {
		HTMLURL string `json:"html_url"`
	} `json:"repository"`
	PullRequest *struct {
		Head struct {
			SHA string `json:"sha"`
		} `json:"head"`
		Title   string `json:"title"`
		HTMLURL string `json:"html_url"`
		User    struct {
			Login string `json:"login"`
		} `json:"user"`
	} `json:"pull_request"`
}

// CommitFromEvent extracts commit metadata from a GitHub event payload.
// Push events carry head_commit in exactly the dataset's shape; pull request
// events only provide the head SHA, title and author login.
func CommitFromEvent(r io.Reader) (benchmark.Commit, string, error) {
	var ev pushEvent
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return benchmark.Commit{}, "", fmt.Errorf("failed to decode event: %w", err)
	}
	repoURL := ev.Repository.HTMLURL

	if ev.HeadCommit != nil && ev.HeadCommit.ID != "" {
		c := *ev.HeadCommit
		if c.URL == "" {
			c.URL = CommitURL(repoURL, c.ID)
		}
		return c, repoURL, nil
	}

	if pr := ev.PullRequest; pr != nil && pr.Head.SHA != "" {
		author := benchmark.User{Username: pr.User.Login}
		return benchmark.Commit{
			Author:    author,
			Committer: author,
			ID:        pr.Head.SHA,
			Message:   pr.Title,
			URL:       pr.HTMLURL,
		}, repoURL, nil
	}

	return benchmark.Commit{}, repoURL, ErrNoHeadCommit
}

// ReadEventFile reads a GitHub event payload from path, typically
// $GITHUB_EVENT_PATH.
func ReadEventFile(path string) (benchmark.Commit, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return benchmark.Commit{}, "", err
	}
	defer f.Close()
	return CommitFromEvent(f)
}
