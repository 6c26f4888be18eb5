package util

import (
	"bytes"
	"context"
	"runtime"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// BatchOptions controls FormatFiles.
type BatchOptions struct {
	Format FormatOptions
	// Check only reports files needing update and never writes them.
	Check bool
	// Jobs limits the files processed at once, 0 means GOMAXPROCS.
	Jobs int
}

// FormatFiles formats files concurrently. It returns one result per path,
// in the order of paths. A failing file does not stop the others.
func FormatFiles(ctx context.Context, paths []string, opts BatchOptions) []FileResult {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one slot of results, no mutex needed.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FileResult{Path: path, Status: StatusError, Err: err}
				return nil
			}
			results[i] = FormatFile(path, opts)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// FormatFile formats one file. In check mode the rendered diff is kept in
// the result instead of writing the file.
func FormatFile(path string, opts BatchOptions) FileResult {
	result := FileResult{Path: path}

	source, err := ReadSource(path)
	if err != nil {
		result.Status = StatusError
		result.Err = err
		return result
	}
	changed, err := source.Fix(opts.Format)
	if err != nil {
		log.Debugf("fail to format %s: %s", path, err)
		result.Status = StatusError
		result.Err = err
		return result
	}
	if !changed {
		result.Status = StatusUnchanged
		return result
	}
	if opts.Check {
		var buf bytes.Buffer

		source.ShowDiff(&buf)
		result.Status = StatusChanged
		result.Diff = buf.String()
		return result
	}
	if err := source.Write(path); err != nil {
		result.Status = StatusError
		result.Err = err
		return result
	}
	result.Status = StatusUpdated
	return result
}
