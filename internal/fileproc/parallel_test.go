package fileproc

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/deadprop/deadprop/internal/testutil"
	"github.com/deadprop/deadprop/pkg/parser"
)

func sourceFiles(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	files := make([]string, 0, n)
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("f%02d.js", i))
		testutil.WriteFile(t, path, "class C {}")
		files = append(files, path)
	}
	return files
}

func TestMapFilesCollectsAllResults(t *testing.T) {
	files := sourceFiles(t, 8)

	results, errs := MapFiles(context.Background(), files, func(psr *parser.Parser, path string) (string, error) {
		res, err := psr.ParseFile(path)
		if err != nil {
			return "", err
		}
		defer res.Tree.Close()
		return path, nil
	})
	if errs != nil && errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}

	got := make([]string, 0, len(results))
	for _, r := range results {
		got = append(got, r.Path)
	}
	sort.Strings(got)
	sort.Strings(files)
	for i := range files {
		if got[i] != files[i] {
			t.Errorf("result %d: got %s, want %s", i, got[i], files[i])
		}
	}
}

func TestMapFilesCollectsPerFileErrors(t *testing.T) {
	files := sourceFiles(t, 4)
	bad := files[1]

	results, errs := MapFiles(context.Background(), files, func(psr *parser.Parser, path string) (int, error) {
		if path == bad {
			return 0, errors.New("boom")
		}
		return 1, nil
	})
	if errs == nil || !errs.HasErrors() {
		t.Fatal("expected errors for the failing file")
	}
	if len(errs.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs.Errors))
	}
	if errs.Errors[0].Path != bad {
		t.Errorf("error path = %s, want %s", errs.Errors[0].Path, bad)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want 3", len(results))
	}
}

func TestMapFilesWithProgressTicksPerFile(t *testing.T) {
	files := sourceFiles(t, 6)

	var ticks atomic.Int64
	_, errs := MapFilesWithProgress(context.Background(), files, func(psr *parser.Parser, path string) (struct{}, error) {
		return struct{}{}, nil
	}, func() { ticks.Add(1) })
	if errs != nil && errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := ticks.Load(); got != int64(len(files)) {
		t.Errorf("progress ticks = %d, want %d", got, len(files))
	}
}

func TestMapFilesCanceledContext(t *testing.T) {
	files := sourceFiles(t, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, errs := MapFiles(ctx, files, func(psr *parser.Parser, path string) (int, error) {
		return 1, nil
	})
	if len(results) != 0 {
		t.Errorf("got %d results after cancellation, want 0", len(results))
	}
	if errs == nil || !errs.HasErrors() {
		t.Error("expected context errors")
	}
}

func TestMapFilesEmptyInput(t *testing.T) {
	results, errs := MapFiles(context.Background(), nil, func(psr *parser.Parser, path string) (int, error) {
		return 1, nil
	})
	if results != nil || errs != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", results, errs)
	}
}

func TestProcessingErrorsMessage(t *testing.T) {
	errs := &ProcessingErrors{}
	errs.Add("a.js", errors.New("bad parse"))
	if got := errs.Error(); got != "a.js: bad parse" {
		t.Errorf("single error message = %q", got)
	}

	errs.Add("b.js", errors.New("too big"))
	if got := errs.Error(); got == "" {
		t.Error("multi error message should not be empty")
	}
}

func TestForEachFileSkipsParser(t *testing.T) {
	files := sourceFiles(t, 3)

	results, errs := ForEachFile(context.Background(), files, func(path string) (string, error) {
		return filepath.Base(path), nil
	})
	if errs != nil && errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
}
