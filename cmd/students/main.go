// main is the entry point of the students tool.
//
// STARTUP SEQUENCE:
//  1. Parse flags and pick the subcommand (no subcommand = "menu")
//  2. Load configuration (YAML file and/or environment)
//  3. Initialise the logger
//  4. Open the student store and make sure the table exists
//  5. Parse the HTML templates
//  6. Run the subcommand until it finishes
//  7. Close the store
//
// Ctrl+C is left to its default behaviour (terminate): the menu spends
// its time blocked on stdin, and every store write is a single
// statement that SQLite/PostgreSQL commit atomically.
//
// RUNNING:
//
//	go run ./cmd/students                       # interactive menu
//	go run ./cmd/students -config=config/local.yaml list
//	go run ./cmd/students add -id 1 -name Alice -age 20 -grades 90,85
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&menuCmd{}, "students")
	commander.Register(&addCmd{}, "students")
	commander.Register(&removeCmd{}, "students")
	commander.Register(&listCmd{}, "students")
	commander.Register(&renderCmd{}, "students")

	flag.Parse()

	ctx := context.Background()

	var status subcommands.ExitStatus
	if flag.NArg() == 0 {
		// Historical behaviour: starting the tool without arguments opens
		// the menu.
		status = (&menuCmd{}).Execute(ctx, flag.CommandLine)
	} else {
		status = commander.Execute(ctx)
	}

	os.Exit(int(status))
}
