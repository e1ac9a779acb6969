package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// command runs one REPL command with the words after its name.
type command func(ctx context.Context, args []string) error

// execIface is the command surface the REPL drives. App implements it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Libs(ctx context.Context, args []string) error
	NewLib(ctx context.Context, args []string) error
	ShowLib(ctx context.Context, args []string) error
	EditLib(ctx context.Context, args []string) error
	DelLib(ctx context.Context, args []string) error
	AddPaper(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Paper(ctx context.Context, args []string) error
	Color(ctx context.Context, args []string) error
	DelPaper(ctx context.Context, args []string) error
	Summarize(ctx context.Context, args []string) error
	Notes(ctx context.Context, args []string) error
	Layout(ctx context.Context, args []string) error
}

type usage struct {
	name  string
	nargs int
	help  string
	run   func(execIface) command
}

var (
	guestCommands = []usage{
		{"register", 0, "register", func(e execIface) command { return e.Register }},
		{"login", 0, "login", func(e execIface) command { return e.Login }},
	}
	userCommands = []usage{
		{"libs", 0, "libs", func(e execIface) command { return e.Libs }},
		{"newlib", 0, "newlib", func(e execIface) command { return e.NewLib }},
		{"showlib", 1, "showlib <id>", func(e execIface) command { return e.ShowLib }},
		{"editlib", 1, "editlib <id>", func(e execIface) command { return e.EditLib }},
		{"dellib", 1, "dellib <id>", func(e execIface) command { return e.DelLib }},
		{"addpaper", 2, "addpaper <libId> <url>", func(e execIface) command { return e.AddPaper }},
		{"upload", 2, "upload <libId> <file>", func(e execIface) command { return e.Upload }},
		{"paper", 1, "paper <id>", func(e execIface) command { return e.Paper }},
		{"color", 2, "color <paperId> <color>", func(e execIface) command { return e.Color }},
		{"delpaper", 1, "delpaper <id>", func(e execIface) command { return e.DelPaper }},
		{"summarize", 3, "summarize <paperId> <page> <textfile>", func(e execIface) command { return e.Summarize }},
		{"notes", 2, "notes <paperId> <jsonfile>", func(e execIface) command { return e.Notes }},
		{"layout", 0, "layout [<pdf%> [<notes%>] | reset]", func(e execIface) command { return e.Layout }},
		{"logout", 0, "logout", func(e execIface) command { return e.Logout }},
	}
)

func helpLine(cmds []usage) string {
	names := make([]string, 0, len(cmds)+1)
	for _, c := range cmds {
		names = append(names, c.help)
	}
	names = append(names, "exit")
	return "Available commands: " + strings.Join(names, ", ")
}

func lookup(cmds []usage, name string) (usage, bool) {
	for _, c := range cmds {
		if c.name == name {
			return c, true
		}
	}
	return usage{}, false
}

// runREPL reads commands from reader until EOF, "exit" or "quit". Commands
// for signed-in users are refused while logged out. Command errors are
// printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pk %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLine(userCommands))
			} else {
				printlnFn(helpLine(guestCommands))
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := lookup(guestCommands, name)
		if !ok {
			c, ok = lookup(userCommands, name)
			if ok && !a.isLoggedIn() {
				printlnFn("Please log in first.")
				continue
			}
		}
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if len(args) < c.nargs {
			printlnFn("Usage:", c.help)
			continue
		}

		if err := c.run(a)(ctx, args); err != nil {
			printlnFn("Error:", describe(err))
		}
	}
}
