package cli

import "fmt"

// Version is stamped at build time via -ldflags.
var Version = "dev"

// newVersionCommand creates a new version command
func newVersionCommand() *Command {
	return &Command{
		Name:        "version",
		Description: "Print the httplint version",
		Run: func(args []string) error {
			fmt.Printf("httplint %s\n", Version)
			return nil
		},
	}
}
