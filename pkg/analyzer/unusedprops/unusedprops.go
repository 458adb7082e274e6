// Package unusedprops detects class properties and methods that are declared
// private but never read anywhere in their file. Writes alone do not keep a
// property alive; a private field that is only ever assigned is dead weight
// that can be deleted along with every store to it.
package unusedprops

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/deadprop/deadprop/internal/cache"
	"github.com/deadprop/deadprop/internal/fileproc"
	"github.com/deadprop/deadprop/pkg/analyzer"
	"github.com/deadprop/deadprop/pkg/convention"
	"github.com/deadprop/deadprop/pkg/parser"
)

// Analyzer detects unused private properties in JavaScript and TypeScript
// sources.
type Analyzer struct {
	parser *parser.Parser
	conv   *convention.Convention

	scope       RegistryScope
	maxFileSize int64
	cache       *cache.Cache
}

// Compile-time check that Analyzer implements analyzer.FileAnalyzer[*Analysis]
var _ analyzer.FileAnalyzer[*Analysis] = (*Analyzer)(nil)

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithRegistryScope sets where constructor and interface registrations are
// visible. The default is per-file.
func WithRegistryScope(scope RegistryScope) Option {
	return func(a *Analyzer) {
		if scope != "" {
			a.scope = scope
		}
	}
}

// WithRenameFunctions replaces the default set of property-reflection
// functions whose string-literal first argument counts as a read.
func WithRenameFunctions(fns []string) Option {
	return func(a *Analyzer) {
		a.conv = convention.New(fns)
	}
}

// WithMaxFileSize sets the maximum file size to analyze (0 = no limit).
func WithMaxFileSize(maxSize int64) Option {
	return func(a *Analyzer) {
		a.maxFileSize = maxSize
	}
}

// WithCache enables caching of per-file findings keyed by content hash.
func WithCache(c *cache.Cache) Option {
	return func(a *Analyzer) {
		a.cache = c
	}
}

// New creates a new unused private property analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		parser: parser.New(),
		conv:   convention.New(nil),
		scope:  ScopePerFile,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze checks every file and returns the combined findings. Files that
// fail to read or parse are skipped; the remaining files are still checked.
// In whole-compilation scope a registration pass over all files runs first
// and the check pass sees the frozen merged registry.
func (a *Analyzer) Analyze(ctx context.Context, files []string) (*Analysis, error) {
	return a.AnalyzeWithProgress(ctx, files, nil)
}

// AnalyzeWithProgress is Analyze with a callback invoked after each file in
// the check pass, for progress reporting.
func (a *Analyzer) AnalyzeWithProgress(ctx context.Context, files []string, onProgress fileproc.ProgressFunc) (*Analysis, error) {
	analysis := &Analysis{
		Findings: make([]Finding, 0),
		Summary:  NewSummary(),
	}
	if len(files) == 0 {
		return analysis, nil
	}

	var frozen map[string]bool
	if a.scope == ScopeWholeCompilation {
		regs, _ := fileproc.MapFiles(ctx, files, func(psr *parser.Parser, path string) (map[string]bool, error) {
			return a.registerFile(psr, path)
		})
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frozen = make(map[string]bool)
		for _, r := range regs {
			for name := range r.Result {
				frozen[name] = true
			}
		}
	}

	results, errs := fileproc.MapFilesWithProgress(ctx, files, func(psr *parser.Parser, path string) ([]Finding, error) {
		return a.checkFile(psr, path, frozen)
	}, onProgress)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Per-file errors don't abort the run.
	_ = errs

	for _, r := range results {
		analysis.Summary.TotalFilesAnalyzed++
		for _, f := range r.Result {
			analysis.Findings = append(analysis.Findings, f)
			analysis.Summary.Add(f)
		}
	}
	analysis.Sort()

	return analysis, nil
}

// AnalyzeFile checks a single file with the analyzer's own parser.
func (a *Analyzer) AnalyzeFile(path string) ([]Finding, error) {
	return a.checkFile(a.parser, path, nil)
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}

func (a *Analyzer) readFile(path string) ([]byte, parser.Language, error) {
	lang := parser.DetectLanguage(path)
	if lang == parser.LangUnknown {
		return nil, lang, fmt.Errorf("unsupported file type: %s", path)
	}

	if a.maxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, lang, err
		}
		if info.Size() > a.maxFileSize {
			return nil, lang, fmt.Errorf("file too large: %d bytes (limit: %d)", info.Size(), a.maxFileSize)
		}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, lang, err
	}
	return source, lang, nil
}

// registerFile runs the registration-only pass of whole-compilation scope,
// collecting the constructor and interface names a file declares.
func (a *Analyzer) registerFile(psr *parser.Parser, path string) (map[string]bool, error) {
	source, lang, err := a.readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := psr.Parse(source, lang, path)
	if err != nil {
		return nil, err
	}
	defer result.Tree.Close()

	fc := newFileCheck(path, source, a.conv, nil, false)
	parser.Traverse(result.Tree.RootNode(), parser.Hooks{
		Enter: func(n *sitter.Node) bool {
			switch classify(n) {
			case kindFunction:
				fc.handleFunction(n)
			case kindClass:
				fc.handleClass(n)
			}
			return true
		},
	})
	return fc.registry, nil
}

// checkFile analyzes one file. A non-nil registry switches the traversal to
// whole-compilation semantics: the registry is read-only and registration is
// skipped.
func (a *Analyzer) checkFile(psr *parser.Parser, path string, registry map[string]bool) ([]Finding, error) {
	source, lang, err := a.readFile(path)
	if err != nil {
		return nil, err
	}

	// The cache is only valid in per-file scope: with a shared registry a
	// file's findings can change when other files change.
	useCache := a.cache != nil && registry == nil
	var hash string
	if useCache {
		hash = cache.HashBytes(source)
		if data, ok := a.cache.GetWithHash(cacheKey(path), hash); ok {
			var findings []Finding
			if err := json.Unmarshal(data, &findings); err == nil {
				return findings, nil
			}
		}
	}

	result, err := psr.Parse(source, lang, path)
	if err != nil {
		return nil, err
	}
	defer result.Tree.Close()

	fc := newFileCheck(path, source, a.conv, registry, registry != nil)
	fc.run(result.Tree.RootNode())
	findings := fc.report()

	if useCache {
		if data, err := json.Marshal(findings); err == nil {
			_ = a.cache.SetWithHash(cacheKey(path), hash, data)
		}
	}
	return findings, nil
}

func cacheKey(path string) string {
	return CheckID + ":" + path
}
