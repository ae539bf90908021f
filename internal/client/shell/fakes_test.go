package shell

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fitlog/internal/client/models"
	"github.com/dmitrijs2005/fitlog/internal/logging"
)

type fakeSession struct {
	mu      sync.Mutex
	user    *models.Identity
	logouts int
}

func (f *fakeSession) GetUser(context.Context) *models.Identity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

func (f *fakeSession) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.user = nil
	return nil
}

func (f *fakeSession) signIn(u *models.Identity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = u
}

type fakeResource[T models.Record] struct {
	mu         sync.Mutex
	indexCalls int

	IndexRet []T
	IndexErr error

	ShowFn          func(ctx context.Context, id string) (T, error)
	CreateFn        func(data T) (T, error)
	UpdateFn        func(data T) (T, error)
	DeleteFn        func(id string) (T, error)
	CreateCommentFn func(parentID string, c models.Comment) (models.Comment, error)
	UpdateCommentFn func(parentID, commentID string, c models.Comment) (models.Comment, error)
}

func (f *fakeResource[T]) Index(context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexCalls++
	return f.IndexRet, f.IndexErr
}

func (f *fakeResource[T]) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.indexCalls
}

func (f *fakeResource[T]) Show(ctx context.Context, id string) (T, error) {
	if f.ShowFn != nil {
		return f.ShowFn(ctx, id)
	}
	var zero T
	return zero, nil
}

func (f *fakeResource[T]) Create(_ context.Context, data T) (T, error) {
	if f.CreateFn != nil {
		return f.CreateFn(data)
	}
	return data, nil
}

func (f *fakeResource[T]) Update(_ context.Context, data T) (T, error) {
	if f.UpdateFn != nil {
		return f.UpdateFn(data)
	}
	return data, nil
}

func (f *fakeResource[T]) Delete(_ context.Context, id string) (T, error) {
	if f.DeleteFn != nil {
		return f.DeleteFn(id)
	}
	var zero T
	return zero, nil
}

func (f *fakeResource[T]) CreateComment(_ context.Context, parentID string, c models.Comment) (models.Comment, error) {
	if f.CreateCommentFn != nil {
		return f.CreateCommentFn(parentID, c)
	}
	return c, nil
}

func (f *fakeResource[T]) UpdateComment(_ context.Context, parentID, commentID string, c models.Comment) (models.Comment, error) {
	if f.UpdateCommentFn != nil {
		return f.UpdateCommentFn(parentID, commentID, c)
	}
	return c, nil
}

type fixture struct {
	session   *fakeSession
	meals     *fakeResource[models.Meal]
	exercises *fakeResource[models.Exercise]
	blogs     *fakeResource[models.Blog]
	profiles  *fakeResource[models.Profile]
	shell     *Shell
}

var ann = &models.Identity{ID: "u1", Name: "Ann", Email: "a@b.com", Profile: "p1"}

func newFixture(user *models.Identity) *fixture {
	f := &fixture{
		session:   &fakeSession{user: user},
		meals:     &fakeResource[models.Meal]{},
		exercises: &fakeResource[models.Exercise]{},
		blogs:     &fakeResource[models.Blog]{},
		profiles:  &fakeResource[models.Profile]{},
	}
	f.shell = New(f.session, Clients{
		Meals:     f.meals,
		Exercises: f.exercises,
		Blogs:     f.blogs,
		Profiles:  f.profiles,
	}, logging.Discard())
	return f
}
