// Package gate decides whether a protected view may render.
//
// The gate is advisory: it only stops rendering. Resource clients never
// consult it and the server remains the authority on every request.
package gate

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/fitlog/internal/client/models"
)

// LandingRoute is where unauthorized renders are sent.
const LandingRoute = "/"

type State int

const (
	Unauthorized State = iota
	Authorized
)

func (s State) String() string {
	if s == Authorized {
		return "authorized"
	}
	return "unauthorized"
}

// Session is the identity source the gate checks against.
type Session interface {
	GetUser(ctx context.Context) *models.Identity
}

// View renders one screen.
type View interface {
	Render(ctx context.Context, w io.Writer) error
}

// ViewFunc adapts a function to View.
type ViewFunc func(ctx context.Context, w io.Writer) error

func (f ViewFunc) Render(ctx context.Context, w io.Writer) error { return f(ctx, w) }

// Redirect is returned by a guarded view instead of rendering it.
type Redirect struct {
	To string
}

func (r *Redirect) Error() string { return fmt.Sprintf("redirect to %s", r.To) }

type Gate struct {
	session Session
	landing string
}

func New(session Session) *Gate {
	return &Gate{session: session, landing: LandingRoute}
}

// Check re-evaluates the session. Nothing is cached between calls.
func (g *Gate) Check(ctx context.Context) State {
	if g.session.GetUser(ctx) != nil {
		return Authorized
	}
	return Unauthorized
}

// Guard wraps child so that it renders only while the gate is Authorized.
// Otherwise the child is never called and a *Redirect to the landing route
// is returned.
func (g *Gate) Guard(child View) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		if g.Check(ctx) != Authorized {
			return &Redirect{To: g.landing}
		}
		return child.Render(ctx, w)
	})
}
