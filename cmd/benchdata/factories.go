package main

import (
	"context"
	"time"

	"benchdata/internal/benchmark"
	"benchdata/internal/db"
	"benchdata/internal/git"
	"benchdata/internal/notify"
	"benchdata/internal/web"
)

// commitReader is the part of git.Client used by append and init.
type commitReader interface {
	Commit(ctx context.Context, dir, rev, repoURL string) (benchmark.Commit, error)
	RemoteURL(ctx context.Context, dir string) (string, error)
}

// Package-level factories, swapped in tests.
var (
	storeFactory = func(path, repoURL string) (benchmark.Store, error) {
		return benchmark.NewFileStore(path, repoURL)
	}

	dbFactory = func(cfg db.StoreConfig) (db.Store, error) {
		return db.NewStore(cfg)
	}

	gitClientFactory = func() commitReader {
		return git.NewClient()
	}

	notifierFactory = func() notify.Notifier {
		return notify.FromConfig()
	}

	runServer = func(ctx context.Context, s *web.Server) error {
		return s.Start(ctx)
	}

	now = time.Now
)
