package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nathoo/actioncore/engine"
	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/scenario"
)

// BatchResult holds the answers for one scenario file.
type BatchResult struct {
	Path     string
	Scenario string
	Answers  []Answer
	Err      error // the file could not be loaded
}

// Pass reports whether the file loaded and every answer passed.
func (r BatchResult) Pass() bool {
	if r.Err != nil {
		return false
	}
	for _, a := range r.Answers {
		if !a.Pass() {
			return false
		}
	}
	return true
}

// Batch answers the queries of every scenario file against rs, at most
// workers files at a time. Results keep the order of paths. A file that
// fails to load is reported in its result and does not stop the batch.
func Batch(ctx context.Context, rs *ruleset.Ruleset, paths []string, workers int, log *zap.Logger) ([]BatchResult, error) {
	if rs == nil {
		return nil, fmt.Errorf("batch: no ruleset")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	eng := engine.New(rs, engine.WithLogger(log))
	results := make([]BatchResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := BatchResult{Path: path}
			sc, err := scenario.Load(path)
			if err != nil {
				res.Err = err
			} else {
				res.Scenario = sc.Name
				res.Answers = AskAll(eng, sc)
			}
			results[i] = res
			log.Debug("scenario answered", zap.String("path", path), zap.Bool("pass", res.Pass()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// WriteBatch prints results and returns the number of failed files.
func WriteBatch(w io.Writer, results []BatchResult) int {
	failed := 0
	for _, r := range results {
		status := "PASS"
		if !r.Pass() {
			status = "FAIL"
			failed++
		}
		name := r.Scenario
		if name == "" {
			name = r.Path
		}
		fmt.Fprintf(w, "%s %s\n", status, name)
		if r.Err != nil {
			fmt.Fprintf(w, "  %v\n", r.Err)
			continue
		}
		for _, a := range r.Answers {
			mark := "ok  "
			if !a.Pass() {
				mark = "FAIL"
			}
			fmt.Fprintf(w, "  %s %s\n", mark, a)
			for _, m := range a.Mismatch {
				fmt.Fprintf(w, "       %s\n", m)
			}
		}
	}
	fmt.Fprintf(w, "%d scenario(s), %d failed\n", len(results), failed)
	return failed
}
