// Package fileproc provides concurrent file processing utilities.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/deadprop/deadprop/pkg/parser"
)

// ProcessingError represents an error that occurred while processing a file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects multiple file processing errors.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for worker count.
// 2x is optimal for mixed I/O and CGO workloads.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// FileResult pairs a per-file result with the path it came from, so callers
// that need deterministic ordering can sort by path.
type FileResult[T any] struct {
	Path   string
	Result T
}

// MapFiles processes files in parallel, calling fn for each file with a
// dedicated parser. Results are collected in arbitrary order. Individual file
// failures are collected rather than aborting the run; the context cancels
// outstanding work.
func MapFiles[T any](ctx context.Context, files []string, fn func(*parser.Parser, string) (T, error)) ([]FileResult[T], *ProcessingErrors) {
	return MapFilesWithProgress(ctx, files, fn, nil)
}

// MapFilesWithProgress processes files in parallel with an optional progress
// callback invoked once per file, success or failure.
func MapFilesWithProgress[T any](ctx context.Context, files []string, fn func(*parser.Parser, string) (T, error), onProgress ProgressFunc) ([]FileResult[T], *ProcessingErrors) {
	if len(files) == 0 {
		return nil, nil
	}

	maxWorkers := runtime.NumCPU() * DefaultWorkerMultiplier
	results := make([]FileResult[T], 0, len(files))
	errs := &ProcessingErrors{}
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers).WithContext(ctx)
	for _, path := range files {
		p.Go(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				errs.Add(path, ctx.Err())
				if onProgress != nil {
					onProgress()
				}
				return ctx.Err()
			default:
			}

			psr := parser.New()
			defer psr.Close()

			result, err := fn(psr, path)

			if onProgress != nil {
				onProgress()
			}

			if err != nil {
				errs.Add(path, err)
				return nil // individual file errors don't stop the pool
			}

			mu.Lock()
			results = append(results, FileResult[T]{Path: path, Result: result})
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait() // context errors are already captured in errs

	if !errs.HasErrors() {
		return results, nil
	}
	return results, errs
}

// ForEachFile processes files in parallel without a parser; use this for
// operations that read files directly.
func ForEachFile[T any](ctx context.Context, files []string, fn func(string) (T, error)) ([]FileResult[T], *ProcessingErrors) {
	if len(files) == 0 {
		return nil, nil
	}

	maxWorkers := runtime.NumCPU() * DefaultWorkerMultiplier
	results := make([]FileResult[T], 0, len(files))
	errs := &ProcessingErrors{}
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers).WithContext(ctx)
	for _, path := range files {
		p.Go(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				errs.Add(path, ctx.Err())
				return ctx.Err()
			default:
			}

			result, err := fn(path)
			if err != nil {
				errs.Add(path, err)
				return nil
			}

			mu.Lock()
			results = append(results, FileResult[T]{Path: path, Result: result})
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait()

	if !errs.HasErrors() {
		return results, nil
	}
	return results, errs
}
