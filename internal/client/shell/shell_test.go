package shell

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/fitlog/internal/client/api"
	"github.com/dmitrijs2005/fitlog/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_SignedOut_FetchesNothing(t *testing.T) {
	f := newFixture(nil)
	require.NoError(t, f.shell.Start(context.Background()))

	assert.Zero(t, f.meals.calls())
	assert.Zero(t, f.profiles.calls())
	assert.Nil(t, f.shell.User())
}

func TestStart_SignedIn_FetchesEachKindOnce(t *testing.T) {
	f := newFixture(ann)
	f.meals.IndexRet = []models.Meal{{ID: "1", Name: "Oats"}}
	f.blogs.IndexRet = []models.Blog{{ID: "b1", Title: "Day 1"}}

	require.NoError(t, f.shell.Start(context.Background()))

	assert.Equal(t, 1, f.meals.calls())
	assert.Equal(t, 1, f.exercises.calls())
	assert.Equal(t, 1, f.blogs.calls())
	assert.Equal(t, 1, f.profiles.calls())
	assert.Equal(t, f.meals.IndexRet, f.shell.Meals())
	assert.Equal(t, f.blogs.IndexRet, f.shell.Blogs())
}

func TestSignedIn_AbsentToPresent_FetchesOnce(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))

	f.session.signIn(ann)
	require.NoError(t, f.shell.SignedIn(ctx))
	require.NoError(t, f.shell.SignedIn(ctx))

	assert.Equal(t, 1, f.meals.calls())
	assert.Equal(t, 1, f.exercises.calls())
	assert.Equal(t, ann, f.shell.User())
	assert.Equal(t, LandingRoute, f.shell.Route())
}

func TestSignedIn_DifferentAccount_Refetches(t *testing.T) {
	f := newFixture(ann)
	f.meals.IndexRet = []models.Meal{{ID: "m1", Name: "annmeal"}}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))
	require.Equal(t, "annmeal", f.shell.Meals()[0].Name)

	bob := &models.Identity{ID: "u2", Name: "Bob", Email: "b@b.com", Profile: "p2"}
	f.session.signIn(bob)
	f.meals.IndexRet = []models.Meal{{ID: "m2", Name: "bobmeal"}}
	f.blogs.IndexRet = nil
	require.NoError(t, f.shell.SignedIn(ctx))

	assert.Equal(t, 2, f.meals.calls())
	assert.Equal(t, 2, f.profiles.calls())
	assert.Equal(t, bob, f.shell.User())
	require.Len(t, f.shell.Meals(), 1)
	assert.Equal(t, "bobmeal", f.shell.Meals()[0].Name)
}

func TestLogout_ClearsStateAndGoesHome(t *testing.T) {
	f := newFixture(ann)
	f.meals.IndexRet = []models.Meal{{ID: "1"}}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))
	require.NoError(t, f.shell.Navigate(ctx, "/meals"))

	require.NoError(t, f.shell.Logout(ctx))

	assert.Equal(t, 1, f.session.logouts)
	assert.Nil(t, f.shell.User())
	assert.Empty(t, f.shell.Meals())
	assert.Equal(t, LandingRoute, f.shell.Route())
}

func TestUpdateMeal_ReconcilesWithServerEcho(t *testing.T) {
	f := newFixture(ann)
	f.meals.IndexRet = []models.Meal{{ID: "7", Name: "Toast"}, {ID: "42", Name: "Porridge"}}
	f.meals.UpdateFn = func(m models.Meal) (models.Meal, error) {
		return models.Meal{ID: m.ID, Name: m.Name, Calories: 350, Author: models.Author{ID: "p1"}}, nil
	}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))
	require.NoError(t, f.shell.Navigate(ctx, "/meals/42/edit"))

	got, err := f.shell.UpdateMeal(ctx, models.Meal{ID: "42", Name: "Oats"})
	require.NoError(t, err)

	want := models.Meal{ID: "42", Name: "Oats", Calories: 350, Author: models.Author{ID: "p1"}}
	assert.Equal(t, want, got)
	assert.Equal(t, []models.Meal{{ID: "7", Name: "Toast"}, want}, f.shell.Meals())
	assert.Equal(t, "/meals", f.shell.Route())
}

func TestAddMeal_PrependsServerRecord(t *testing.T) {
	f := newFixture(ann)
	f.meals.IndexRet = []models.Meal{{ID: "1", Name: "Toast"}}
	f.meals.CreateFn = func(m models.Meal) (models.Meal, error) {
		m.ID = "2"
		return m, nil
	}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))

	_, err := f.shell.AddMeal(ctx, models.Meal{Name: "Oats"})
	require.NoError(t, err)

	meals := f.shell.Meals()
	require.Len(t, meals, 2)
	assert.Equal(t, "2", meals[0].ID)
	assert.Equal(t, "/meals", f.shell.Route())
}

func TestDelete_FiltersByEchoedID(t *testing.T) {
	f := newFixture(ann)
	f.exercises.IndexRet = []models.Exercise{{ID: "a"}, {ID: "b"}}
	f.exercises.DeleteFn = func(id string) (models.Exercise, error) {
		return models.Exercise{ID: id, Title: "gone"}, nil
	}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))

	deleted, err := f.shell.DeleteExercise(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "gone", deleted.Title)
	assert.Equal(t, []models.Exercise{{ID: "b"}}, f.shell.Exercises())
	assert.Equal(t, "/exercises", f.shell.Route())
}

func TestDelete_EmptyEcho_UsesRequestedID(t *testing.T) {
	f := newFixture(ann)
	f.blogs.IndexRet = []models.Blog{{ID: "a"}, {ID: "b"}}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))

	_, err := f.shell.DeleteBlog(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []models.Blog{{ID: "a"}}, f.shell.Blogs())
}

func TestAddMealComment_AppendsToParent(t *testing.T) {
	f := newFixture(ann)
	f.meals.IndexRet = []models.Meal{{ID: "m1", Comments: []models.Comment{{ID: "c1", Text: "first"}}}}
	f.meals.CreateCommentFn = func(parentID string, c models.Comment) (models.Comment, error) {
		c.ID = "c2"
		return c, nil
	}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))
	require.NoError(t, f.shell.Navigate(ctx, "/meals/m1"))

	_, err := f.shell.AddMealComment(ctx, "m1", models.Comment{Text: "yum"})
	require.NoError(t, err)

	cs := f.shell.Meals()[0].Comments
	require.Len(t, cs, 2)
	assert.Equal(t, "c2", cs[1].ID)
	assert.Equal(t, "/meals/m1", f.shell.Route())
	// the slice handed out before the comment was added is not mutated
	assert.Len(t, f.meals.IndexRet[0].Comments, 1)
}

func TestUpdateProfileComment_ReplacesComment(t *testing.T) {
	f := newFixture(ann)
	f.profiles.IndexRet = []models.Profile{{ID: "p1", Comments: []models.Comment{{ID: "c1", Text: "old"}, {ID: "c2", Text: "keep"}}}}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))

	_, err := f.shell.UpdateProfileComment(ctx, "p1", "c1", models.Comment{ID: "c1", Text: "new"})
	require.NoError(t, err)

	cs := f.shell.Profiles()[0].Comments
	assert.Equal(t, "new", cs[0].Text)
	assert.Equal(t, "keep", cs[1].Text)
}

func TestAddExerciseAndBlogComments(t *testing.T) {
	f := newFixture(ann)
	f.exercises.IndexRet = []models.Exercise{{ID: "e1"}}
	f.blogs.IndexRet = []models.Blog{{ID: "b1"}}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))

	_, err := f.shell.AddExerciseComment(ctx, "e1", models.Comment{Text: "nice"})
	require.NoError(t, err)
	_, err = f.shell.AddBlogComment(ctx, "b1", models.Comment{Text: "great"})
	require.NoError(t, err)

	assert.Len(t, f.shell.Exercises()[0].Comments, 1)
	assert.Len(t, f.shell.Blogs()[0].Comments, 1)
}

func TestFailure_Unauthenticated_RedirectsToLogin(t *testing.T) {
	f := newFixture(ann)
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))
	require.NoError(t, f.shell.Navigate(ctx, "/meals/new"))
	f.meals.CreateFn = func(models.Meal) (models.Meal, error) {
		return models.Meal{}, &api.Error{Kind: api.KindUnauthenticated, StatusCode: http.StatusUnauthorized}
	}

	_, err := f.shell.AddMeal(ctx, models.Meal{Name: "Oats"})
	require.ErrorIs(t, err, api.ErrUnauthenticated)
	assert.Equal(t, LoginRoute, f.shell.Route())
	assert.Empty(t, f.shell.Meals())
	// the stored session is not touched
	assert.Zero(t, f.session.logouts)
}

func TestFailure_Unauthenticated_ForgetsUserAndNextLoginRefetches(t *testing.T) {
	f := newFixture(ann)
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))
	require.NoError(t, f.shell.Navigate(ctx, "/meals/new"))
	f.meals.CreateFn = func(models.Meal) (models.Meal, error) {
		return models.Meal{}, &api.Error{Kind: api.KindUnauthenticated, StatusCode: http.StatusUnauthorized}
	}

	_, err := f.shell.AddMeal(ctx, models.Meal{Name: "Oats"})
	require.ErrorIs(t, err, api.ErrUnauthenticated)
	assert.Nil(t, f.shell.User())

	f.meals.IndexRet = []models.Meal{{ID: "1", Name: "Oats"}}
	require.NoError(t, f.shell.SignedIn(ctx))

	assert.Equal(t, 2, f.meals.calls())
	assert.Equal(t, ann, f.shell.User())
	assert.Equal(t, f.meals.IndexRet, f.shell.Meals())
	assert.Equal(t, LandingRoute, f.shell.Route())
}

func TestFailure_Unavailable_IsInlineAndRetryable(t *testing.T) {
	f := newFixture(ann)
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))
	require.NoError(t, f.shell.Navigate(ctx, "/meals/new"))
	f.meals.CreateFn = func(models.Meal) (models.Meal, error) {
		return models.Meal{}, &api.Error{Kind: api.KindUnavailable, Err: errors.New("connection refused")}
	}

	_, err := f.shell.AddMeal(ctx, models.Meal{Name: "Oats"})
	require.ErrorIs(t, err, api.ErrUnavailable)
	assert.Equal(t, "/meals/new", f.shell.Route())
	n := f.shell.Notice()
	require.NotNil(t, n)
	assert.True(t, n.Retryable)
}

func TestFailure_Forbidden_KeepsRecordAndShowsServerMessage(t *testing.T) {
	f := newFixture(ann)
	f.meals.IndexRet = []models.Meal{{ID: "1"}}
	f.meals.DeleteFn = func(string) (models.Meal, error) {
		return models.Meal{}, &api.Error{Kind: api.KindForbidden, StatusCode: http.StatusForbidden, Message: "not yours"}
	}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))

	_, err := f.shell.DeleteMeal(ctx, "1")
	require.ErrorIs(t, err, api.ErrForbidden)
	assert.Len(t, f.shell.Meals(), 1)
	require.NotNil(t, f.shell.Notice())
	assert.Contains(t, f.shell.Notice().String(), "not yours")
}

func TestFetchAll_PartialFailureKeepsOtherKinds(t *testing.T) {
	f := newFixture(ann)
	f.meals.IndexRet = []models.Meal{{ID: "1"}}
	f.blogs.IndexErr = &api.Error{Kind: api.KindUnavailable}

	err := f.shell.Start(context.Background())
	require.ErrorIs(t, err, api.ErrUnavailable)
	assert.Len(t, f.shell.Meals(), 1)
	assert.Equal(t, 1, f.profiles.calls())
}

func TestDetailView_LeftBeforeResponse_IsStale(t *testing.T) {
	f := newFixture(ann)
	f.meals.IndexRet = []models.Meal{{ID: "42", Name: "Porridge"}}
	started := make(chan struct{})
	release := make(chan struct{})
	f.meals.ShowFn = func(_ context.Context, id string) (models.Meal, error) {
		close(started)
		<-release
		return models.Meal{ID: id, Name: "Oats"}, nil
	}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))
	require.NoError(t, f.shell.Navigate(ctx, "/meals/42"))

	errc := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		errc <- f.shell.Render(ctx, &buf)
	}()

	<-started
	require.NoError(t, f.shell.Navigate(ctx, "/meals"))
	close(release)

	require.ErrorIs(t, <-errc, ErrStale)
	assert.Equal(t, "Porridge", f.shell.Meals()[0].Name)
	assert.Equal(t, "/meals", f.shell.Route())
}

func TestMutation_SessionEndedBeforeResponse_IsStale(t *testing.T) {
	f := newFixture(ann)
	started := make(chan struct{})
	release := make(chan struct{})
	f.meals.CreateFn = func(m models.Meal) (models.Meal, error) {
		close(started)
		<-release
		m.ID = "1"
		return m, nil
	}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))

	errc := make(chan error, 1)
	go func() {
		_, err := f.shell.AddMeal(ctx, models.Meal{Name: "Oats"})
		errc <- err
	}()

	<-started
	require.NoError(t, f.shell.Logout(ctx))
	close(release)

	require.ErrorIs(t, <-errc, ErrStale)
	assert.Empty(t, f.shell.Meals())
	assert.Equal(t, LandingRoute, f.shell.Route())
}

func TestDetailView_RefreshesCollectionCopy(t *testing.T) {
	f := newFixture(ann)
	f.meals.IndexRet = []models.Meal{{ID: "42", Name: "Porridge"}}
	f.meals.ShowFn = func(_ context.Context, id string) (models.Meal, error) {
		return models.Meal{ID: id, Name: "Oats", Calories: 300, Comments: []models.Comment{{Text: "tasty", Author: models.Author{Name: "Bob"}}}}, nil
	}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))
	require.NoError(t, f.shell.Navigate(ctx, "/meals/42"))

	var buf bytes.Buffer
	require.NoError(t, f.shell.Render(ctx, &buf))
	assert.Contains(t, buf.String(), "Oats (300 kcal)")
	assert.Contains(t, buf.String(), "Bob: tasty")
	assert.Equal(t, "Oats", f.shell.Meals()[0].Name)
}
