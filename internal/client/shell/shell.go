// Package shell owns the client's in-memory state: the signed-in identity,
// one collection per resource kind, the current route and any inline
// notice. Every mutation goes through a handler defined here exactly once.
//
// Work is bound to scopes. Fetches made while rendering a view belong to
// that view and are discarded once the user navigates away. Fetch-alls and
// mutations belong to the session and are discarded once it ends.
package shell

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/fitlog/internal/client/gate"
	"github.com/dmitrijs2005/fitlog/internal/client/models"
	"github.com/dmitrijs2005/fitlog/internal/logging"
)

// Session is the part of the auth service the shell needs.
type Session interface {
	GetUser(ctx context.Context) *models.Identity
	Logout(ctx context.Context) error
}

// Resource is a per-kind resource client.
type Resource[T models.Record] interface {
	Index(ctx context.Context) ([]T, error)
	Show(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, data T) (T, error)
	Update(ctx context.Context, data T) (T, error)
	Delete(ctx context.Context, id string) (T, error)
	CreateComment(ctx context.Context, parentID string, data models.Comment) (models.Comment, error)
	UpdateComment(ctx context.Context, parentID, commentID string, data models.Comment) (models.Comment, error)
}

type Clients struct {
	Meals     Resource[models.Meal]
	Exercises Resource[models.Exercise]
	Blogs     Resource[models.Blog]
	Profiles  Resource[models.Profile]
}

// kind is one resource collection and the client that feeds it.
type kind[T models.Record] struct {
	name     string
	list     string
	client   Resource[T]
	items    []T
	comments func(*T) *[]models.Comment
}

func (k *kind[T]) find(id string) (T, bool) {
	i := slices.IndexFunc(k.items, func(r T) bool { return r.GetID() == id })
	if i < 0 {
		var zero T
		return zero, false
	}
	return k.items[i], true
}

type Shell struct {
	mu sync.Mutex

	session Session
	gate    *gate.Gate
	log     logging.Logger

	user    *models.Identity
	route   string
	params  map[string]string
	notice  *Notice
	view    *scope
	account *scope

	meals     *kind[models.Meal]
	exercises *kind[models.Exercise]
	blogs     *kind[models.Blog]
	profiles  *kind[models.Profile]
}

func New(session Session, clients Clients, log logging.Logger) *Shell {
	s := &Shell{
		session: session,
		gate:    gate.New(session),
		log:     log,
		route:   LandingRoute,
		view:    newScope(),
		account: newScope(),
		meals: &kind[models.Meal]{
			name: "meals", list: "/meals", client: clients.Meals,
			comments: func(m *models.Meal) *[]models.Comment { return &m.Comments },
		},
		exercises: &kind[models.Exercise]{
			name: "exercises", list: "/exercises", client: clients.Exercises,
			comments: func(e *models.Exercise) *[]models.Comment { return &e.Comments },
		},
		blogs: &kind[models.Blog]{
			name: "blogs", list: "/blogs", client: clients.Blogs,
			comments: func(b *models.Blog) *[]models.Comment { return &b.Comments },
		},
		profiles: &kind[models.Profile]{
			name: "profiles", list: "/profiles", client: clients.Profiles,
			comments: func(p *models.Profile) *[]models.Comment { return &p.Comments },
		},
	}
	return s
}

// Start reads the session and, if someone is signed in, loads every
// collection once.
func (s *Shell) Start(ctx context.Context) error {
	user := s.session.GetUser(ctx)

	s.mu.Lock()
	s.user = user
	sc := s.account
	s.mu.Unlock()

	if user == nil {
		return nil
	}
	return s.fetchAll(ctx, sc)
}

// SignedIn is called after a login or signup succeeded. It re-reads the
// session; whenever the signed-in account changed, work for the previous
// account is dropped and every collection is loaded again.
func (s *Shell) SignedIn(ctx context.Context) error {
	user := s.session.GetUser(ctx)

	s.mu.Lock()
	prev := s.user
	s.user = user
	s.notice = nil
	var sc *scope
	if switched(prev, user) {
		s.account.cancel()
		s.account = newScope()
		s.meals.items = nil
		s.exercises.items = nil
		s.blogs.items = nil
		s.profiles.items = nil
		if user != nil {
			sc = s.account
		}
	}
	s.navigateLocked(LandingRoute)
	s.mu.Unlock()

	if sc == nil {
		return nil
	}
	return s.fetchAll(ctx, sc)
}

func switched(prev, user *models.Identity) bool {
	return prev == nil || user == nil || prev.ID != user.ID
}

// Logout erases the session, drops every collection and returns to the
// landing view. Work still in flight for the old session is discarded.
func (s *Shell) Logout(ctx context.Context) error {
	if err := s.session.Logout(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.account.cancel()
	s.account = newScope()
	s.user = nil
	s.notice = nil
	s.meals.items = nil
	s.exercises.items = nil
	s.blogs.items = nil
	s.profiles.items = nil
	s.navigateLocked(LandingRoute)
	return nil
}

func (s *Shell) fetchAll(ctx context.Context, sc *scope) error {
	s.log.Debug(ctx, "loading collections")
	return errors.Join(
		fetch(ctx, s, sc, s.meals),
		fetch(ctx, s, sc, s.exercises),
		fetch(ctx, s, sc, s.blogs),
		fetch(ctx, s, sc, s.profiles),
	)
}

func fetch[T models.Record](ctx context.Context, s *Shell, sc *scope, k *kind[T]) error {
	rctx, done := bind(ctx, sc)
	defer done()

	items, err := k.client.Index(rctx)
	if err != nil {
		return s.fail(sc, "load "+k.name, err)
	}
	return s.commit(sc, func() { k.items = slices.Clone(items) })
}

// commit applies patch unless sc has ended.
func (s *Shell) commit(sc *scope, patch func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sc.done() {
		return ErrStale
	}
	patch()
	return nil
}

func (s *Shell) User() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Shell) Route() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

// Notice returns the inline error of the current view, if any.
func (s *Shell) Notice() *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

func (s *Shell) Meals() []models.Meal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.meals.items)
}

func (s *Shell) Exercises() []models.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.exercises.items)
}

func (s *Shell) Blogs() []models.Blog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.blogs.items)
}

func (s *Shell) Profiles() []models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.profiles.items)
}
