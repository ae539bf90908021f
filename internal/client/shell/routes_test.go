package shell

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/fitlog/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern, path string
		want          params
		ok            bool
	}{
		{"/", "/", params{}, true},
		{"/meals", "/meals", params{}, true},
		{"/meals", "/meals/", params{}, true},
		{"/meals/:id", "/meals/42", params{"id": "42"}, true},
		{"/meals/:id/edit", "/meals/42/edit", params{"id": "42"}, true},
		{"/meals/:id", "/meals", nil, false},
		{"/meals/:id", "/blogs/42", nil, false},
		{"/meals/:id", "/meals/42/edit", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			got, ok := match(tt.pattern, tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGated(t *testing.T) {
	open := []string{"/", "/login", "/signup"}
	gated := []string{"/profiles", "/blogs", "/blogs/1", "/meals", "/meals/new", "/meals/1",
		"/meals/1/edit", "/exercises", "/exercises/1", "/profile/1"}

	for _, p := range open {
		assert.False(t, Gated(p), p)
	}
	for _, p := range gated {
		assert.True(t, Gated(p), p)
	}
}

func TestMealsNew_IsNotTakenAsID(t *testing.T) {
	r, p, ok := lookup("/meals/new")
	require.True(t, ok)
	assert.Equal(t, "/meals/new", r.pattern)
	assert.Empty(t, p)
}

func TestNavigate_UnknownRoute(t *testing.T) {
	f := newFixture(ann)
	err := f.shell.Navigate(context.Background(), "/nowhere")
	require.ErrorIs(t, err, ErrUnknownRoute)
	assert.Equal(t, LandingRoute, f.shell.Route())
}

func TestRender_GatedWithoutSession_ShowsLanding(t *testing.T) {
	f := newFixture(nil)
	f.meals.IndexRet = []models.Meal{{ID: "1", Name: "secret"}}
	ctx := context.Background()
	require.NoError(t, f.shell.Navigate(ctx, "/meals"))

	var buf bytes.Buffer
	require.NoError(t, f.shell.Render(ctx, &buf))

	assert.Equal(t, "Hello, friend\n", buf.String())
	assert.Equal(t, LandingRoute, f.shell.Route())
	assert.Zero(t, f.meals.calls())
}

func TestRender_MealsList(t *testing.T) {
	f := newFixture(ann)
	f.meals.IndexRet = []models.Meal{{ID: "1", Name: "Oats", Calories: 300, Category: "breakfast"}}
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))
	require.NoError(t, f.shell.Navigate(ctx, "/meals"))

	var buf bytes.Buffer
	require.NoError(t, f.shell.Render(ctx, &buf))
	out := buf.String()
	assert.Contains(t, out, "Meals (1)")
	assert.Contains(t, out, "Oats")
	assert.Contains(t, out, "300 kcal")
}

func TestRender_Landing_GreetsUser(t *testing.T) {
	f := newFixture(ann)
	ctx := context.Background()
	require.NoError(t, f.shell.Start(ctx))

	var buf bytes.Buffer
	require.NoError(t, f.shell.Render(ctx, &buf))
	assert.Equal(t, "Hello, Ann\n", buf.String())
}
