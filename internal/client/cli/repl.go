package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Signup(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Write(ctx context.Context) error
	History(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Calm(ctx context.Context) error
	Theme(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a until EOF,
// "exit" or "quit". Commands prompt through the same reader, so input is
// never buffered away from them. Command errors are already reported by the view, so the
// loop ignores them.
//
//	Not logged in: help, signup, register, login, calm, theme, status, exit
//	Logged in:     help, write, history [remote [n]], stats, calm, theme,
//	               status, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mj %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: (w)rite, (h)istory [remote [n]], stats, calm, theme, status, logout, exit")
			} else {
				printlnFn("Available commands: signup, register, login, calm, theme, status, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "w", "write":
			_ = a.Write(ctx)

		case "h", "history":
			_ = a.History(ctx, args)

		case "stats":
			_ = a.Stats(ctx)

		case "calm":
			_ = a.Calm(ctx)

		case "theme":
			_ = a.Theme(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
