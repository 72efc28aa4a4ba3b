package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/platinummonkey/httplint/pkg/diag"
	"github.com/platinummonkey/httplint/pkg/lint"
)

// newLintCommand creates a new lint command
func newLintCommand() *Command {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)

	var (
		dir           = fs.String("dir", ".", "Directory containing proto files")
		configFile    = fs.String("config", "", "Path to config file (httplint.yaml)")
		format        = fs.String("format", "text", "Output format: text, json, github")
		importPaths   = fs.String("import-path", "", "Comma-separated extra proto import directories")
		failOnError   = fs.Bool("fail-on-error", true, "Exit with error code on lint errors")
		failOnWarning = fs.Bool("fail-on-warning", false, "Exit with error code on lint warnings")
		verbose       = fs.Bool("verbose", false, "Verbose output")
		watch         = fs.Bool("watch", false, "Re-lint whenever proto files change")
	)

	return &Command{
		Name:        "lint",
		Description: "Validate google.api.http bindings in proto files",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			opts := lintOptions{
				dir:           *dir,
				configFile:    *configFile,
				format:        *format,
				importPaths:   splitList(*importPaths),
				failOnError:   *failOnError,
				failOnWarning: *failOnWarning,
				verbose:       *verbose,
			}
			if *watch {
				return runWatch(opts)
			}
			return runLint(opts)
		},
	}
}

type lintOptions struct {
	dir           string
	configFile    string
	format        string
	importPaths   []string
	failOnError   bool
	failOnWarning bool
	verbose       bool
}

func runLint(opts lintOptions) error {
	// Load configuration
	var config *lint.Config
	var err error
	if opts.configFile != "" {
		config, err = lint.LoadConfig(opts.configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		config, err = lint.LoadConfigFromDir(opts.dir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Proto files are compiled relative to the lint directory; extra
	// import paths from the config or the flag resolve against it too.
	paths := []string{opts.dir}
	for _, p := range append(config.Lint.ImportPaths, opts.importPaths...) {
		if !filepath.IsAbs(p) {
			p = filepath.Join(opts.dir, p)
		}
		paths = append(paths, p)
	}
	config.Lint.ImportPaths = paths

	engine := lint.NewEngine(config)

	// Find proto files
	protoFiles, err := lintFindProtoFiles(opts.dir, config)
	if err != nil {
		return fmt.Errorf("failed to find proto files: %w", err)
	}

	if len(protoFiles) == 0 {
		fmt.Printf("No proto files found in %s\n", opts.dir)
		return nil
	}

	if opts.verbose {
		fmt.Printf("Linting %d proto files...\n", len(protoFiles))
	}

	results, summary, err := engine.LintFiles(context.Background(), protoFiles)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	// Output results
	switch opts.format {
	case "json":
		return lintOutputJSON(results, summary)
	case "github":
		return lintOutputGitHub(results)
	default:
		return lintOutputText(results, summary, opts.verbose, opts.failOnError, opts.failOnWarning)
	}
}

// lintFindProtoFiles walks the directory and returns proto file paths
// relative to it, skipping hidden, vendor, and third_party directories
// plus anything the config ignores.
func lintFindProtoFiles(dir string, config *lint.Config) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := info.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "vendor" || name == "third_party") {
				return filepath.SkipDir
			}
			return nil
		}

		// Only include .proto files
		if filepath.Ext(path) != ".proto" {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if config.Ignored(rel) {
			return nil
		}

		files = append(files, rel)
		return nil
	})

	return files, err
}

func lintOutputText(results []lint.Result, summary diag.Summary, verbose, failOnError, failOnWarning bool) error {
	hasFindings := false

	for _, result := range results {
		if len(result.Diagnostics) == 0 {
			continue
		}

		hasFindings = true
		fmt.Printf("\n%s:\n", result.File)

		for _, d := range result.Diagnostics {
			fmt.Printf("  %s:%d:%d: [%s] %s (%s)\n",
				result.File,
				d.Line,
				d.Column,
				d.Severity,
				d.Message,
				d.Kind,
			)

			if verbose && d.Method != "" {
				fmt.Printf("    Method: %s\n", d.Method)
			}
		}
	}

	// Print summary
	fmt.Printf("\n")
	fmt.Printf("Summary:\n")
	fmt.Printf("  Files:       %d\n", summary.TotalFiles)
	fmt.Printf("  Diagnostics: %d\n", summary.TotalDiagnostics)
	fmt.Printf("  Errors:      %d\n", summary.Errors)
	fmt.Printf("  Warnings:    %d\n", summary.Warnings)
	fmt.Printf("  Infos:       %d\n", summary.Infos)

	// Exit with error if needed
	if failOnError && summary.Errors > 0 {
		return fmt.Errorf("lint failed with %d errors", summary.Errors)
	}

	if failOnWarning && summary.Warnings > 0 {
		return fmt.Errorf("lint failed with %d warnings", summary.Warnings)
	}

	if !hasFindings {
		fmt.Println("\n✓ All HTTP bindings passed")
	}

	return nil
}

func lintOutputJSON(results []lint.Result, summary diag.Summary) error {
	output := struct {
		Results []lint.Result `json:"results"`
		Summary diag.Summary  `json:"summary"`
	}{
		Results: results,
		Summary: summary,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func lintOutputGitHub(results []lint.Result) error {
	// GitHub Actions annotation format
	// ::error file={name},line={line},col={col}::{message}
	for _, result := range results {
		for _, d := range result.Diagnostics {
			level := "error"
			if d.Severity == diag.SeverityWarning {
				level = "warning"
			} else if d.Severity == diag.SeverityInfo {
				level = "notice"
			}

			fmt.Printf("::%s file=%s,line=%d,col=%d::[%s] %s\n",
				level,
				result.File,
				d.Line,
				d.Column,
				d.Kind,
				d.Message,
			)
		}
	}

	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
