//go:build ignore

package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	"benchdata/internal/benchmark"
	"benchdata/internal/db"
	"benchdata/internal/web"
)

const goBenchOutput = `goos: linux
goarch: amd64
BenchmarkEncode-8   	  500000	      2400 ns/op	     512 B/op	       6 allocs/op
BenchmarkDecode-8   	  300000	      4100 ns/op	     896 B/op	      11 allocs/op
PASS
`

func main() {
	fmt.Println("Starting End-to-End Smoke Test...")
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Println("Smoke Test Complete.")
}

// run performs every smoke step in a temporary workspace.
func run() error {
	tmpDir, err := os.MkdirTemp("", "benchdata-smoke-test")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)
	fmt.Printf("Workspace: %s\n", tmpDir)

	store, err := benchmark.NewFileStore(filepath.Join(tmpDir, "dev", "bench", "data.js"), "https://github.com/example/smoke")
	if err != nil {
		return fmt.Errorf("store failed: %w", err)
	}

	// Two runs, the second slower, so the comparison has something to flag.
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, scale := range []string{"", "0"} {
		benches, err := benchmark.ParseGoBench(strings.NewReader(strings.ReplaceAll(goBenchOutput, " ns/op", scale+" ns/op")))
		if err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}
		entry := benchmark.Entry{
			Commit:  benchmark.Commit{ID: fmt.Sprintf("%040d", i+1), Message: "smoke run"},
			Tool:    benchmark.ToolGo,
			Benches: benches,
		}
		at := clock.Add(time.Duration(i) * time.Hour)
		if _, err := store.Append("Smoke", entry, benchmark.AppendOptions{Now: func() time.Time { return at }}); err != nil {
			return fmt.Errorf("append failed: %w", err)
		}
	}

	d, err := store.Load()
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	if err := benchmark.Validate(d); err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}
	prev, _ := d.Previous("Smoke")
	curr, _ := d.Latest("Smoke")
	alerts := benchmark.Alerts(benchmark.Compare(*prev, *curr), benchmark.DefaultAlertThreshold)
	fmt.Printf("Alerts over %g: %d\n", benchmark.DefaultAlertThreshold, len(alerts))

	mirror, err := db.NewStore(db.StoreConfig{Type: "sqlite", ConnectionString: filepath.Join(tmpDir, "smoke.db")})
	if err != nil {
		return fmt.Errorf("db failed: %w", err)
	}
	defer mirror.Close()
	n, err := db.Sync(mirror, d)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	fmt.Printf("Synced %d entries\n", n)

	srv := web.NewServer(store, nil, 0)
	if err := srv.Reload(); err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/data.js")
	if err != nil {
		return fmt.Errorf("GET /data.js failed: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(string(body), "window.BENCHMARK_DATA = ") {
		return fmt.Errorf("GET /data.js failed: unexpected response %d", resp.StatusCode)
	}
	return nil
}
