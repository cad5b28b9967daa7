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
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Show(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Select(ctx context.Context, id string) error
	SelectAll(ctx context.Context) error
	ClearSelection(ctx context.Context) error
	BulkDelete(ctx context.Context) error
	Undo(ctx context.Context) error
	Status(ctx context.Context, id, status string) error
	Search(ctx context.Context, text string) error
	Filter(ctx context.Context, filter string) error
	Sort(ctx context.Context, key string) error
}

// runREPL starts a simple read–eval–print loop for the pubkeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, context cancellation, or
// when the user types "exit" or "quit".
//
// Command handlers report their own failures through notifications or their
// returned error; the loop prints returned errors and keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("pk %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, edit <id>, show <id>, delete <id>,")
				printlnFn("  select <id>, selectall, clearsel, bulkdelete, undo,")
				printlnFn("  status <id> <draft|published>, search [text], filter <all|draft|published>,")
				printlnFn("  sort <newest|oldest|title>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, exit")
			}

		case "login":
			err = a.Login(ctx)

		case "signup":
			err = a.Signup(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.Whoami(ctx)

		case "l", "list":
			err = a.List(ctx)

		case "add":
			err = a.Add(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			err = a.Edit(ctx, args[0])

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			err = a.Show(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			err = a.Delete(ctx, args[0])

		case "select":
			if len(args) == 0 {
				printlnFn("Usage: select <id>")
				continue
			}
			err = a.Select(ctx, args[0])

		case "selectall":
			err = a.SelectAll(ctx)

		case "clearsel":
			err = a.ClearSelection(ctx)

		case "bulkdelete":
			err = a.BulkDelete(ctx)

		case "undo":
			err = a.Undo(ctx)

		case "status":
			if len(args) < 2 {
				printlnFn("Usage: status <id> <draft|published>")
				continue
			}
			err = a.Status(ctx, args[0], args[1])

		case "search":
			err = a.Search(ctx, strings.Join(args, " "))

		case "filter":
			if len(args) == 0 {
				printlnFn("Usage: filter <all|draft|published>")
				continue
			}
			err = a.Filter(ctx, args[0])

		case "sort":
			if len(args) == 0 {
				printlnFn("Usage: sort <newest|oldest|title>")
				continue
			}
			err = a.Sort(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
