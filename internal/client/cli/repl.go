package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/planningpoker/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	mode() session.Mode
	Show(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Tables(ctx context.Context) error
	Create(ctx context.Context) error
	Join(ctx context.Context, tableID int64) error
	Invite(ctx context.Context, ref string) error
	View(ctx context.Context, tableID int64) error
	Vote(ctx context.Context, value int32) error
	Reset(ctx context.Context) error
	CloseTable(ctx context.Context) error
	Stories(ctx context.Context) error
	AddStory(ctx context.Context) error
	Edit(ctx context.Context, storyID int64) error
	Cancel(ctx context.Context) error
	Delete(ctx context.Context, storyID int64) error
	Export(ctx context.Context) error
	Archive(ctx context.Context, tableID int64) error
	Back(ctx context.Context) error
	Retry(ctx context.Context) error
}

// helpText lists the commands that make sense in mode m.
func helpText(m session.Mode) string {
	switch m {
	case session.ModeAuth:
		return "register, login, exit"
	case session.ModeInitial:
		return "tables, create, join <id>, invite <ref>, view <id>, archive <id>, show, logout, exit"
	case session.ModeOnTable:
		return "show, vote <n>, reset, close, stories, addstory, edit <id>, cancel, delete <id>, export, archive <id>, back, logout, exit"
	case session.ModeViewOnly:
		return "show, stories, export, archive <id>, back, logout, exit"
	case session.ModeError:
		return "retry, exit"
	default:
		return "show, exit"
	}
}

// runREPL starts a simple read–eval–print loop for the planning poker CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Commands that take an argument are checked
// here and answered with a usage line when it is missing or malformed. The
// loop exits on EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own outcome. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("poker %s> ", statusFn()))
		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands:", helpText(a.mode()))

		case "show":
			_ = a.Show(ctx)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "tables":
			_ = a.Tables(ctx)

		case "create":
			_ = a.Create(ctx)

		case "join":
			if id, ok := idArg(cmd, args); ok {
				_ = a.Join(ctx, id)
			}

		case "invite":
			if len(args) == 0 {
				printlnFn("Usage: invite <table id or invite link>")
				continue
			}
			_ = a.Invite(ctx, args[0])

		case "view":
			if id, ok := idArg(cmd, args); ok {
				_ = a.View(ctx, id)
			}

		case "vote":
			if len(args) == 0 {
				printlnFn("Usage: vote <n>")
				continue
			}
			v, err := parseVote(args[0])
			if err != nil {
				printlnFn(err.Error())
				continue
			}
			_ = a.Vote(ctx, v)

		case "reset":
			_ = a.Reset(ctx)

		case "close":
			_ = a.CloseTable(ctx)

		case "stories":
			_ = a.Stories(ctx)

		case "addstory":
			_ = a.AddStory(ctx)

		case "edit":
			if id, ok := idArg(cmd, args); ok {
				_ = a.Edit(ctx, id)
			}

		case "cancel":
			_ = a.Cancel(ctx)

		case "delete":
			if id, ok := idArg(cmd, args); ok {
				_ = a.Delete(ctx, id)
			}

		case "export":
			_ = a.Export(ctx)

		case "archive":
			if id, ok := idArg(cmd, args); ok {
				_ = a.Archive(ctx, id)
			}

		case "back":
			_ = a.Back(ctx)

		case "retry":
			_ = a.Retry(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if readErr != nil {
			return
		}
	}
}

func idArg(cmd string, args []string) (int64, bool) {
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return 0, false
	}
	id, err := parseID(args[0])
	if err != nil {
		printlnFn(err.Error())
		return 0, false
	}
	return id, true
}
