package scenario

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/jsclass/runtime"
)

type Result int

const (
	Pass Result = iota
	Fail
	Skip
	Error
)

func (r Result) String() string {
	switch r {
	case Pass:
		return "PASS"
	case Fail:
		return "FAIL"
	case Skip:
		return "SKIP"
	case Error:
		return "ERROR"
	}
	return "UNKNOWN"
}

type TestResult struct {
	Path    string
	Result  Result
	Message string
	Elapsed time.Duration
}

type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Errors  int
	Elapsed time.Duration
}

// RunConfig selects and bounds a fixture run.
type RunConfig struct {
	Dir     string
	Filter  string
	Limit   int
	Timeout time.Duration
	Verbose bool
	// Progress receives one line per fixture when Verbose is set.
	Progress io.Writer
	Realm    runtime.RealmConfig
	Logger   *slog.Logger
}

const defaultTimeout = 5 * time.Second

// Run discovers *.yaml fixtures under cfg.Dir and checks each one.
func Run(cfg RunConfig) ([]TestResult, Summary, error) {
	files, err := discover(cfg.Dir, cfg.Filter)
	if err != nil {
		return nil, Summary{}, err
	}
	if cfg.Limit > 0 && len(files) > cfg.Limit {
		files = files[:cfg.Limit]
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Progress == nil {
		cfg.Progress = os.Stdout
	}

	start := time.Now()
	var results []TestResult
	summary := Summary{Total: len(files)}
	for _, path := range files {
		rel, _ := filepath.Rel(cfg.Dir, path)
		tr := runSingle(path, rel, cfg)
		results = append(results, tr)

		switch tr.Result {
		case Pass:
			summary.Passed++
		case Fail:
			summary.Failed++
		case Skip:
			summary.Skipped++
		case Error:
			summary.Errors++
		}

		if cfg.Verbose {
			msg := ""
			if tr.Message != "" {
				msg = " " + tr.Message
			}
			fmt.Fprintf(cfg.Progress, "%s %s%s\n", tr.Result, rel, msg)
		}
	}
	summary.Elapsed = time.Since(start)
	return results, summary, nil
}

func discover(dir, filter string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !(strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			return nil
		}
		if filter != "" {
			rel, _ := filepath.Rel(dir, path)
			if !strings.Contains(rel, filter) {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fixture: scan %s: %w", dir, err)
	}
	return files, nil
}

func runSingle(path, rel string, cfg RunConfig) TestResult {
	f, err := LoadFixture(path)
	if err != nil {
		return TestResult{Path: rel, Result: Error, Message: err.Error()}
	}
	if f.Skip != "" {
		return TestResult{Path: rel, Result: Skip, Message: f.Skip}
	}

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- f.Check(Config{Realm: cfg.Realm, Logger: cfg.Logger})
	}()

	select {
	case err = <-done:
	case <-time.After(cfg.Timeout):
		return TestResult{
			Path:    rel,
			Result:  Error,
			Message: fmt.Sprintf("timeout (%s)", cfg.Timeout),
			Elapsed: time.Since(start),
		}
	}

	elapsed := time.Since(start)
	if err != nil {
		return TestResult{Path: rel, Result: Fail, Message: err.Error(), Elapsed: elapsed}
	}
	return TestResult{Path: rel, Result: Pass, Elapsed: elapsed}
}
