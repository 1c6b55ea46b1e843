package session

import (
	"context"
	"fmt"
	"os"

	"github.com/gitrdm/lambdapi/internal/parallel"
)

// FileResult is the outcome of checking one source file.
type FileResult struct {
	Path    string
	Results []Result
	Err     error
}

// CheckFiles runs every file in its own fresh Session, up to cfg.Workers at
// a time, and reports in the order the paths were given.
func CheckFiles(ctx context.Context, cfg Config, paths []string) ([]FileResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pool := parallel.NewWorkerPool(min(cfg.Workers, max(len(paths), 1)))
	defer pool.Shutdown()

	return parallel.Map(ctx, pool, paths, func(ctx context.Context, path string) FileResult {
		return CheckFile(ctx, cfg, path)
	})
}

// CheckFile checks one source file in a fresh Session.
func CheckFile(ctx context.Context, cfg Config, path string) FileResult {
	res := FileResult{Path: path}
	src, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("check: %w", err)
		return res
	}
	s, err := New(cfg)
	if err != nil {
		res.Err = err
		return res
	}
	res.Results, res.Err = s.Run(ctx, path, string(src))
	return res
}
