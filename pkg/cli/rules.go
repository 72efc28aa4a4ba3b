package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/platinummonkey/httplint/pkg/diag"
)

// newRulesCommand creates a new rules command
func newRulesCommand() *Command {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)
	format := fs.String("format", "text", "Output format: text, json")

	return &Command{
		Name:        "rules",
		Description: "List the HTTP binding checks and their default severities",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}
			if *format == "json" {
				return rulesListJSON()
			}
			return rulesList()
		},
	}
}

func rulesList() error {
	kinds := diag.Kinds()

	fmt.Printf("Available checks (%d):\n\n", len(kinds))

	for _, info := range kinds {
		fmt.Printf("  - %-30s [%s]\n    %s\n",
			info.Kind,
			info.DefaultSeverity,
			info.Description,
		)
	}
	fmt.Println()

	return nil
}

func rulesListJSON() error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(diag.Kinds())
}
