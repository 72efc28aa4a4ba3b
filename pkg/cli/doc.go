// Package cli provides the httplint command-line interface.
//
// # Overview
//
// This package implements the `httplint` CLI tool for validating
// google.api.http bindings on protobuf service definitions from the
// terminal or CI.
//
// # Commands
//
// lint: Validate HTTP bindings in proto files
//
//	httplint lint \
//		--dir ./proto \
//		--format text \
//		--fail-on-error
//
// Watch mode re-lints on every change:
//
//	httplint lint --dir ./proto --watch
//
// CI annotation output:
//
//	httplint lint --dir ./proto --format github
//
// rules: List every diagnostic kind the linter can emit
//
//	httplint rules
//
// version: Print the httplint version
//
//	httplint version
//
// # Configuration
//
// The lint command reads httplint.yaml (or .httplint.yaml) from the
// target directory:
//
//	version: v1
//	lint:
//	  disable:
//	    - RESPONSE_NOT_JSON_OBJECT
//	  severity:
//	    MAP_PARAM: warning
//	  ignore:
//	    - vendor/**
//	  import_paths:
//	    - third_party/googleapis
//
// # Related Packages
//
//   - pkg/lint: Compiles and validates proto files
//   - pkg/diag: Diagnostic kinds and severities
package cli
