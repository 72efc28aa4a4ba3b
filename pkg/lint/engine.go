// Package lint orchestrates the full pipeline: compile proto sources,
// extract HTTP bindings, and check them, producing per-file diagnostic
// results.
package lint

import (
	"context"
	"errors"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/platinummonkey/httplint/pkg/binding"
	"github.com/platinummonkey/httplint/pkg/compiler"
	"github.com/platinummonkey/httplint/pkg/diag"
	"github.com/platinummonkey/httplint/pkg/httprule"
	"github.com/platinummonkey/httplint/pkg/model"
)

// Result contains the diagnostics for a single file
type Result struct {
	File        string            `json:"file"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

// Engine runs HTTP binding validation over proto file sets
type Engine struct {
	config   *Config
	compiler *compiler.Compiler
}

// NewEngine creates an engine. A nil config uses defaults.
func NewEngine(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{
		config:   config,
		compiler: compiler.New(config.Lint.ImportPaths...),
	}
}

// Config returns the engine's configuration
func (e *Engine) Config() *Config {
	return e.config
}

// SelfCheck verifies the engine's compiler can compile a known-good
// source. Readiness probes use it to confirm the descriptor registry is
// intact.
func (e *Engine) SelfCheck(ctx context.Context) error {
	return e.compiler.SelfCheck(ctx)
}

// LintFiles compiles the given .proto files from disk and validates every
// method's HTTP bindings. Results come back in compile order; the error
// is non-nil only for environment failures, never for diagnostics.
func (e *Engine) LintFiles(ctx context.Context, paths []string) ([]Result, diag.Summary, error) {
	compileDiags := diag.NewCollector()
	descriptors, err := e.compiler.CompileFiles(ctx, compileDiags, paths...)
	return e.finish(ctx, paths, descriptors, compileDiags, err)
}

// LintSources compiles in-memory sources keyed by filename and validates
// every method's HTTP bindings. Results come back in sorted filename
// order.
func (e *Engine) LintSources(ctx context.Context, sources map[string]string) ([]Result, diag.Summary, error) {
	paths := make([]string, 0, len(sources))
	for name := range sources {
		paths = append(paths, name)
	}
	sort.Strings(paths)
	compileDiags := diag.NewCollector()
	descriptors, err := e.compiler.CompileSources(ctx, compileDiags, sources)
	return e.finish(ctx, paths, descriptors, compileDiags, err)
}

func (e *Engine) finish(ctx context.Context, paths []string, descriptors []protoreflect.FileDescriptor, compileDiags *diag.Collector, err error) ([]Result, diag.Summary, error) {
	if err != nil {
		if !errors.Is(err, compiler.ErrCompileFailed) {
			return nil, diag.Summary{}, err
		}
		// Sources did not link; the compile diagnostics are the result.
		results := groupByFile(paths, compileDiags.Diagnostics(), e.config)
		return results, summarize(results), nil
	}

	results, err := e.checkAll(descriptors, compileDiags.Diagnostics())
	if err != nil {
		return nil, diag.Summary{}, err
	}
	return results, summarize(results), nil
}

// checkAll validates each compiled file in its own worker. Every worker
// writes to its own collector, so merge order is deterministic no matter
// how the workers interleave.
func (e *Engine) checkAll(descriptors []protoreflect.FileDescriptor, compileDiags []diag.Diagnostic) ([]Result, error) {
	diagsByFile := make(map[string][]diag.Diagnostic)
	for _, d := range compileDiags {
		diagsByFile[d.File] = append(diagsByFile[d.File], d)
	}

	concurrency := e.config.Lint.MaxConcurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	results := make([]Result, len(descriptors))
	var group errgroup.Group
	group.SetLimit(concurrency)
	for i, fd := range descriptors {
		group.Go(func() error {
			collector := diag.NewCollector()
			checkFile(fd, collector)
			diags := append(diagsByFile[fd.Path()], collector.Diagnostics()...)
			results[i] = Result{
				File:        fd.Path(),
				Diagnostics: e.applyConfig(diags),
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkFile validates every method of every service in one file
func checkFile(fd protoreflect.FileDescriptor, collector *diag.Collector) {
	extractor := binding.NewExtractor(collector)
	checker := httprule.NewChecker(collector)

	services := fd.Services()
	for i := 0; i < services.Len(); i++ {
		methods := services.Get(i).Methods()
		for j := 0; j < methods.Len(); j++ {
			method := model.NewMethod(methods.Get(j))
			checker.CheckMethod(method, extractor.FromMethod(method))
		}
	}
}

// applyConfig drops disabled kinds and rewrites severities
func (e *Engine) applyConfig(diags []diag.Diagnostic) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if e.config.Disabled(d.Kind) {
			continue
		}
		d.Severity = e.config.SeverityFor(d.Kind, d.Severity)
		out = append(out, d)
	}
	return out
}

// groupByFile builds one result per input path from a flat diagnostic
// list. Diagnostics for files outside the input set, such as imports,
// attach to the path that pulled them in only via their own file entry.
func groupByFile(paths []string, diags []diag.Diagnostic, config *Config) []Result {
	byFile := make(map[string][]diag.Diagnostic)
	for _, d := range diags {
		byFile[d.File] = append(byFile[d.File], d)
	}

	seen := make(map[string]bool, len(paths))
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		seen[path] = true
		results = append(results, Result{File: path, Diagnostics: byFile[path]})
	}
	// Keep diagnostics that point at files nobody listed, like a broken
	// import, rather than dropping them silently.
	extras := make([]string, 0)
	for file := range byFile {
		if !seen[file] {
			extras = append(extras, file)
		}
	}
	sort.Strings(extras)
	for _, file := range extras {
		results = append(results, Result{File: file, Diagnostics: byFile[file]})
	}

	for i := range results {
		filtered := make([]diag.Diagnostic, 0, len(results[i].Diagnostics))
		for _, d := range results[i].Diagnostics {
			if config.Disabled(d.Kind) {
				continue
			}
			d.Severity = config.SeverityFor(d.Kind, d.Severity)
			filtered = append(filtered, d)
		}
		results[i].Diagnostics = filtered
	}
	return results
}

func summarize(results []Result) diag.Summary {
	summary := diag.Summary{TotalFiles: len(results)}
	for _, result := range results {
		summary.Merge(diag.Summarize(result.Diagnostics))
	}
	return summary
}
