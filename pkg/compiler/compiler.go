// Package compiler wraps protocompile to turn proto sources into linked
// file descriptors with source positions. Compile failures surface as
// diagnostics rather than bare errors so a broken file does not abort a
// multi-file run.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bufbuild/protocompile"
	"github.com/bufbuild/protocompile/reporter"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	// Registers google/api/annotations.proto, http.proto, and
	// httpbody.proto in the global registry for import resolution.
	_ "google.golang.org/genproto/googleapis/api/annotations"
	_ "google.golang.org/genproto/googleapis/api/httpbody"

	"github.com/platinummonkey/httplint/pkg/diag"
)

// ErrCompileFailed indicates one or more sources failed to compile; the
// details were reported as diagnostics.
var ErrCompileFailed = errors.New("compiler: proto compilation failed")

// Compiler compiles proto files against a set of import paths. The zero
// value compiles relative to the current directory.
type Compiler struct {
	importPaths []string
}

// New creates a compiler searching the given import paths in order
func New(importPaths ...string) *Compiler {
	return &Compiler{importPaths: importPaths}
}

// CompileFiles compiles .proto files from disk. Imports resolve against
// the compiler's import paths, then the process-global descriptor
// registry, which covers the well-known types and the google.api
// annotation protos.
func (c *Compiler) CompileFiles(ctx context.Context, sink diag.Reporter, filenames ...string) ([]protoreflect.FileDescriptor, error) {
	resolver := &protocompile.SourceResolver{
		ImportPaths: c.importPaths,
	}
	return c.compile(ctx, sink, resolver, filenames)
}

// CompileSources compiles in-memory sources keyed by filename. Files are
// compiled in sorted filename order for deterministic diagnostics.
func (c *Compiler) CompileSources(ctx context.Context, sink diag.Reporter, sources map[string]string) ([]protoreflect.FileDescriptor, error) {
	filenames := make([]string, 0, len(sources))
	for name := range sources {
		filenames = append(filenames, name)
	}
	sort.Strings(filenames)

	resolver := &protocompile.SourceResolver{
		ImportPaths: c.importPaths,
		Accessor:    protocompile.SourceAccessorFromMap(sources),
	}
	return c.compile(ctx, sink, resolver, filenames)
}

func (c *Compiler) compile(ctx context.Context, sink diag.Reporter, source *protocompile.SourceResolver, filenames []string) ([]protoreflect.FileDescriptor, error) {
	if len(filenames) == 0 {
		return nil, nil
	}

	resolver := protocompile.CompositeResolver{
		source,
		protocompile.ResolverFunc(globalRegistryResolver),
	}

	compiler := protocompile.Compiler{
		Resolver:       protocompile.WithStandardImports(resolver),
		SourceInfoMode: protocompile.SourceInfoStandard,
		Reporter:       diagnosticReporter(sink),
	}

	files, err := compiler.Compile(ctx, filenames...)
	if err != nil {
		// Handled errors were already reported as diagnostics; anything
		// else is an environment problem the caller must see.
		if errors.Is(err, reporter.ErrInvalidSource) {
			return nil, ErrCompileFailed
		}
		return nil, fmt.Errorf("compiler: %w", err)
	}

	descriptors := make([]protoreflect.FileDescriptor, 0, len(files))
	for _, file := range files {
		descriptors = append(descriptors, file)
	}
	return descriptors, nil
}

// globalRegistryResolver serves imports from descriptors linked into the
// binary, letting sources import google/api annotations without vendored
// proto files.
func globalRegistryResolver(path string) (protocompile.SearchResult, error) {
	fd, err := protoregistry.GlobalFiles.FindFileByPath(path)
	if err != nil {
		return protocompile.SearchResult{}, err
	}
	return protocompile.SearchResult{Desc: fd}, nil
}

// diagnosticReporter adapts the protocompile reporter to the diagnostic
// sink. Errors do not stop compilation, so one pass collects everything.
func diagnosticReporter(sink diag.Reporter) reporter.Reporter {
	return reporter.NewReporter(
		func(errWithPos reporter.ErrorWithPos) error {
			pos := errWithPos.GetPosition()
			sink.Report(diag.Diagnostic{
				Kind:     diag.KindCompileError,
				Severity: diag.SeverityError,
				Message:  errWithPos.Unwrap().Error(),
				File:     pos.Filename,
				Line:     pos.Line,
				Column:   pos.Col,
			})
			return nil
		},
		func(errWithPos reporter.ErrorWithPos) {
			pos := errWithPos.GetPosition()
			sink.Report(diag.Diagnostic{
				Kind:     diag.KindCompileError,
				Severity: diag.SeverityWarning,
				Message:  errWithPos.Unwrap().Error(),
				File:     pos.Filename,
				Line:     pos.Line,
				Column:   pos.Col,
			})
		},
	)
}

// SelfCheck compiles a minimal source with a google.api import to verify
// the toolchain and import resolution are intact. Used by health probes.
func (c *Compiler) SelfCheck(ctx context.Context) error {
	const probe = `syntax = "proto3";
package httplint.probe;
import "google/api/annotations.proto";
message Ping {}
service Probe {
  rpc Check(Ping) returns (Ping) {
    option (google.api.http) = { get: "/v1/ping" };
  }
}
`
	collector := diag.NewCollector()
	sources := map[string]string{"httplint_probe.proto": probe}
	if _, err := c.CompileSources(ctx, collector, sources); err != nil {
		return err
	}
	if collector.HasErrors() {
		return fmt.Errorf("compiler: self check reported %d diagnostics", collector.Len())
	}
	return nil
}
