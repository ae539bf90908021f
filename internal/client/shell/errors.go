package shell

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitlog/internal/client/api"
)

var (
	// ErrStale is returned when a response arrives after the view or
	// session that asked for it has gone. State is left untouched.
	ErrStale = errors.New("response discarded: view no longer active")

	ErrUnknownRoute = errors.New("unknown route")
)

// Notice is an inline error shown on the current view.
type Notice struct {
	Message   string
	Retryable bool
}

func (n Notice) String() string {
	if n.Retryable {
		return n.Message + " (try again)"
	}
	return n.Message
}

// fail decides what a failed call does to the shell: stale results are
// dropped, unauthenticated ones forget the user and send them to the login view, and the
// rest become an inline notice.
func (s *Shell) fail(sc *scope, op string, err error) error {
	if sc.done() {
		return ErrStale
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch api.KindOf(err) {
	case api.KindUnauthenticated:
		s.log.Warn(sc.ctx, "session rejected by server", "op", op)
		s.user = nil
		s.notice = &Notice{Message: "please log in again"}
		s.navigateLocked(LoginRoute)
	case api.KindUnavailable:
		s.notice = &Notice{Message: "server unavailable", Retryable: true}
	case api.KindForbidden:
		s.notice = &Notice{Message: "not allowed: " + message(err)}
	case api.KindCanceled:
		return fmt.Errorf("%s: %w", op, err)
	default:
		s.notice = &Notice{Message: message(err)}
	}
	s.log.Debug(sc.ctx, "call failed", "op", op, "kind", api.KindOf(err).String(), "err", err)

	return fmt.Errorf("%s: %w", op, err)
}

func message(err error) string {
	var e *api.Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
