package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/fitlog/internal/client/api"
	"github.com/dmitrijs2005/fitlog/internal/client/config"
	"github.com/dmitrijs2005/fitlog/internal/client/services"
	"github.com/dmitrijs2005/fitlog/internal/client/shell"
	"github.com/dmitrijs2005/fitlog/internal/client/storage"
	"github.com/dmitrijs2005/fitlog/internal/client/tokenstore"
	"github.com/dmitrijs2005/fitlog/internal/logging"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	authService services.AuthService
	resources   *api.Resources
	shell       *shell.Shell
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp opens the local database at c.DBPath and wires every layer on top
// of it. Logs go to stderr so they do not interleave with rendered views.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(c.LogLevel, os.Stderr)

	db, err := storage.Open(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "err", err)
		return nil, err
	}

	return newApp(c, db, log, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, db *sql.DB, log logging.Logger, in io.Reader, out io.Writer) *App {
	store := tokenstore.New(db, tokenstore.WithLogger(log))
	client := api.New(c.ServerURL, store, api.WithTimeout(c.RequestTimeout), api.WithLogger(log))
	res := api.NewResources(client)
	auth := services.NewAuthService(res.Auth, store, log)

	sh := shell.New(auth, shell.Clients{
		Meals:     res.Meals,
		Exercises: res.Exercises,
		Blogs:     res.Blogs,
		Profiles:  res.Profiles,
	}, log)

	return &App{
		config:      c,
		db:          db,
		authService: auth,
		resources:   res,
		shell:       sh,
		log:         log,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

// Run loads the stored session and blocks in the REPL until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, titleStyle.Render("fitlog")+" (type 'help' for commands)")

	if err := a.shell.Start(ctx); err != nil {
		a.report(err)
	}
	if u := a.shell.User(); u != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", u.Email)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing database", "err", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.shell.User() != nil
}

func (a *App) getStatus() string {
	name := "guest"
	if u := a.shell.User(); u != nil {
		name = u.Name
	}
	return fmt.Sprintf("(%s %s)", name, a.shell.Route())
}

// render draws the current view followed by its inline notice, if any.
func (a *App) render(ctx context.Context) error {
	if err := a.shell.Render(ctx, a.out); err != nil {
		return err
	}
	a.printNotice()
	return nil
}

func (a *App) printNotice() {
	if n := a.shell.Notice(); n != nil {
		fmt.Fprintln(a.out, noticeStyle.Render(n.String()))
	}
}

// report prints err and the notice the shell derived from it.
func (a *App) report(err error) {
	fmt.Fprintln(a.out, errorStyle.Render("error: "+err.Error()))
	a.printNotice()
}

// Go navigates to route and renders it.
func (a *App) Go(ctx context.Context, route string) error {
	if err := a.shell.Navigate(ctx, route); err != nil {
		return err
	}
	return a.render(ctx)
}
