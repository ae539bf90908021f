package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/fitlog/internal/client/gate"
)

const (
	LandingRoute = "/"
	LoginRoute   = "/login"
	SignupRoute  = "/signup"
)

type params map[string]string

type route struct {
	pattern string
	gated   bool
	view    func(s *Shell, sc *scope, p params) gate.View
}

// routes is matched in order; literal segments must precede parameters
// that would also match them ("/meals/new" before "/meals/:id").
// It is filled in init because views navigate, and navigation reads routes.
var routes []route

func init() {
	routes = []route{
		{pattern: "/", view: (*Shell).landingView},
		{pattern: "/login", view: formView("Log in", "email", "password")},
		{pattern: "/signup", view: formView("Sign up", "name", "email", "password")},
		{pattern: "/profiles", gated: true, view: (*Shell).profilesView},
		{pattern: "/profile/:id", gated: true, view: (*Shell).profileView},
		{pattern: "/blogs", gated: true, view: (*Shell).blogsView},
		{pattern: "/blogs/:id", gated: true, view: (*Shell).blogView},
		{pattern: "/meals", gated: true, view: (*Shell).mealsView},
		{pattern: "/meals/new", gated: true, view: formView("New meal", "name", "description", "calories", "category")},
		{pattern: "/meals/:id", gated: true, view: (*Shell).mealView},
		{pattern: "/meals/:id/edit", gated: true, view: (*Shell).editMealView},
		{pattern: "/exercises", gated: true, view: (*Shell).exercisesView},
		{pattern: "/exercises/:id", gated: true, view: (*Shell).exerciseView},
	}
}

func match(pattern, path string) (params, bool) {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return nil, false
	}
	p := params{}
	for i, seg := range ps {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if xs[i] == "" {
				return nil, false
			}
			p[name] = xs[i]
			continue
		}
		if seg != xs[i] {
			return nil, false
		}
	}
	return p, true
}

func lookup(path string) (route, params, bool) {
	for _, r := range routes {
		if p, ok := match(r.pattern, path); ok {
			return r, p, true
		}
	}
	return route{}, nil, false
}

// Gated reports whether path requires a signed-in user.
func Gated(path string) bool {
	r, _, ok := lookup(path)
	return ok && r.gated
}

// Navigate leaves the current view, canceling whatever it still has in
// flight, and enters path.
func (s *Shell) Navigate(ctx context.Context, path string) error {
	if _, _, ok := lookup(path); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = nil
	s.navigateLocked(path)
	s.log.Debug(ctx, "navigate", "route", path)
	return nil
}

func (s *Shell) navigateLocked(path string) {
	_, p, _ := lookup(path)
	s.view.cancel()
	s.view = newScope()
	s.route = path
	s.params = p
}

// Render draws the current view into w. A gated view rendered without a
// session follows the gate's redirect and draws the landing view instead.
func (s *Shell) Render(ctx context.Context, w io.Writer) error {
	for range 2 {
		s.mu.Lock()
		path, p, sc := s.route, s.params, s.view
		s.mu.Unlock()

		r, _, _ := lookup(path)
		v := r.view(s, sc, p)
		if r.gated {
			v = s.gate.Guard(v)
		}

		err := v.Render(ctx, w)
		var redirect *gate.Redirect
		if !errors.As(err, &redirect) {
			return err
		}
		s.log.Debug(ctx, "gate redirect", "from", path, "to", redirect.To)
		s.mu.Lock()
		if s.view == sc {
			s.navigateLocked(redirect.To)
		}
		s.mu.Unlock()
	}
	return nil
}
