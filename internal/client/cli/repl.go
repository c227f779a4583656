package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Reveal(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	React(ctx context.Context, args []string) error
	Next(ctx context.Context, args []string) error
	ShowProfile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ShowSettings(ctx context.Context) error
	Set(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Backup(ctx context.Context) error
	Restore(ctx context.Context, args []string) error
	Reset(ctx context.Context) error
}

const helpText = `Available commands:
  reveal [period]               open the seal of a period (daily by default)
  today | show [period]         show the current fortune without revealing
  history [period] [all]        recent fortunes, newest first
  react <period> <reaction>     positive, neutral or none
  next [period]                 time left until the next seal
  profile | setprofile          show or edit name, birthdate and honorific
  settings | set <key> <value>  sound, motion, theme, consent
  export [file] | import <file> local backup file
  backup | restore <key>        remote backup through the server
  reset                         erase everything
  exit | quit                   leave the program
Periods: daily, weekly, monthly, yearly`

// runREPL starts a simple read–eval–print loop for the fortune seal CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. Unknown commands are reported back to the user. The loop exits
// on scanner EOF, when ctx is done, or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("seal %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var err error
		switch cmd {
		case "help", "?":
			printlnFn(helpText)

		case "reveal", "r":
			err = a.Reveal(ctx, args)

		case "today":
			err = a.Show(ctx, nil)

		case "show":
			err = a.Show(ctx, args)

		case "history", "h":
			err = a.History(ctx, args)

		case "react":
			err = a.React(ctx, args)

		case "next":
			err = a.Next(ctx, args)

		case "profile":
			err = a.ShowProfile(ctx)

		case "setprofile":
			err = a.EditProfile(ctx)

		case "settings":
			err = a.ShowSettings(ctx)

		case "set":
			err = a.Set(ctx, args)

		case "export":
			err = a.Export(ctx, args)

		case "import":
			err = a.Import(ctx, args)

		case "backup":
			err = a.Backup(ctx)

		case "restore":
			err = a.Restore(ctx, args)

		case "reset":
			err = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(describeError(err))
		}
	}
}
