package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// printFn writes the prompt without a trailing newline.
var printFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Go(ctx context.Context, route string) error
	AddMeal(ctx context.Context) error
	EditMeal(ctx context.Context, id string) error
	DeleteMeal(ctx context.Context, id string) error
	AddExercise(ctx context.Context) error
	EditExercise(ctx context.Context, id string) error
	DeleteExercise(ctx context.Context, id string) error
	AddBlog(ctx context.Context) error
	EditBlog(ctx context.Context, id string) error
	DeleteBlog(ctx context.Context, id string) error
	Comment(ctx context.Context, kind, id string) error
	EditProfileComment(ctx context.Context, profileID, commentID string) error
	AddPhoto(ctx context.Context, path string) error
	report(err error)
}

const (
	helpSignedOut = "Available commands: signup, login, go <route>, help, exit"
	helpSignedIn  = "Available commands: meals, meal <id>, addmeal, editmeal <id>, delmeal <id>, " +
		"exercises, exercise <id>, addexercise, editexercise <id>, delexercise <id>, " +
		"blogs, blog <id>, addblog, editblog <id>, delblog <id>, profiles, profile <id>, " +
		"comment <meal|exercise|blog> <id>, editcomment <profile id> <comment id>, photo <file>, " +
		"go <route>, whoami, passwd, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the fitlog CLI.
//
// It reads a line from reader, parses the first token as the command and
// the rest as arguments, and dispatches to methods on a. The loop exits on
// EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are reported and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(prompt(statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if errors.Is(err, io.EOF) {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			a.report(err)
		}
	}
}

var errUsage = errors.New("usage")

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpSignedIn)
		} else {
			printlnFn(helpSignedOut)
		}
		return nil

	case "signup", "register":
		return a.Signup(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "passwd":
		return a.ChangePassword(ctx)

	case "go":
		if arg(0) == "" {
			return usage("go <route>")
		}
		return a.Go(ctx, arg(0))

	case "meals", "exercises", "blogs", "profiles":
		return a.Go(ctx, "/"+cmd)

	case "meal", "exercise", "blog", "profile":
		if arg(0) == "" {
			return usage(cmd + " <id>")
		}
		if cmd == "profile" {
			return a.Go(ctx, "/profile/"+arg(0))
		}
		return a.Go(ctx, "/"+cmd+"s/"+arg(0))

	case "addmeal":
		return a.AddMeal(ctx)
	case "addexercise":
		return a.AddExercise(ctx)
	case "addblog":
		return a.AddBlog(ctx)

	case "editmeal", "editexercise", "editblog", "delmeal", "delexercise", "delblog":
		id := arg(0)
		if id == "" {
			return usage(cmd + " <id>")
		}
		switch cmd {
		case "editmeal":
			return a.EditMeal(ctx, id)
		case "editexercise":
			return a.EditExercise(ctx, id)
		case "editblog":
			return a.EditBlog(ctx, id)
		case "delmeal":
			return a.DeleteMeal(ctx, id)
		case "delexercise":
			return a.DeleteExercise(ctx, id)
		default:
			return a.DeleteBlog(ctx, id)
		}

	case "comment":
		if arg(1) == "" {
			return usage("comment <meal|exercise|blog> <id>")
		}
		return a.Comment(ctx, arg(0), arg(1))

	case "editcomment":
		if arg(1) == "" {
			return usage("editcomment <profile id> <comment id>")
		}
		return a.EditProfileComment(ctx, arg(0), arg(1))

	case "photo":
		if arg(0) == "" {
			return usage("photo <file>")
		}
		return a.AddPhoto(ctx, arg(0))

	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
