package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
)

// command is one REPL verb. Commands with auth set are only offered to a
// signed-in user.
type command struct {
	name  string
	usage string
	auth  bool
	run   func(ctx context.Context, args []string) error
}

// execIface is the surface the REPL needs. The real App satisfies it; tests
// can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	commands() []command
}

// runREPL reads lines from scanner, splits them with splitArgs and dispatches
// the first word to the matching command. Command errors are printed and the
// loop goes on. It returns on EOF, "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	byName := make(map[string]command)
	for _, c := range a.commands() {
		byName[c.name] = c
	}

	for {
		fmt.Fprintf(w, "vm %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := splitArgs(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "help":
			printHelp(w, a)
			continue
		}

		c, ok := byName[name]
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if c.auth && !a.isLoggedIn() {
			fmt.Fprintln(w, "Please login first")
			continue
		}
		if err := c.run(ctx, args); err != nil {
			fmt.Fprintln(w, "Error:", err)
		}
	}
}

func printHelp(w io.Writer, a execIface) {
	cmds := a.commands()
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].name < cmds[j].name })

	loggedIn := a.isLoggedIn()
	fmt.Fprintln(w, "Available commands:")
	for _, c := range cmds {
		if c.auth && !loggedIn {
			continue
		}
		fmt.Fprintf(w, "  %-14s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(w, "  %-14s %s\n", "exit", "leave the program")
}
