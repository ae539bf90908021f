package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/dmitrijs2005/fitlog/internal/client/models"
	"github.com/dmitrijs2005/fitlog/internal/common"
)

var errNotSignedIn = errors.New("not signed in, use login or signup")

// enter shows route and fails if the gate turned it away.
func (a *App) enter(ctx context.Context, route string) error {
	if err := a.Go(ctx, route); err != nil {
		return err
	}
	if a.shell.Route() != route {
		return errNotSignedIn
	}
	return nil
}

func (a *App) requireSession() error {
	if !a.isLoggedIn() {
		return errNotSignedIn
	}
	return nil
}

func (a *App) AddMeal(ctx context.Context) error {
	if err := a.enter(ctx, "/meals/new"); err != nil {
		return err
	}
	m, err := a.readMeal(models.Meal{})
	if err != nil {
		return err
	}
	if _, err := a.shell.AddMeal(ctx, m); err != nil {
		return err
	}
	return a.render(ctx)
}

func (a *App) EditMeal(ctx context.Context, id string) error {
	if err := a.enter(ctx, "/meals/"+id+"/edit"); err != nil {
		return err
	}
	current, ok := findByID(a.shell.Meals(), id)
	if !ok {
		return fmt.Errorf("meal %s: %w", id, common.ErrorNotFound)
	}
	m, err := a.readMeal(current)
	if err != nil {
		return err
	}
	if _, err := a.shell.UpdateMeal(ctx, m); err != nil {
		return err
	}
	return a.render(ctx)
}

func (a *App) DeleteMeal(ctx context.Context, id string) error {
	if _, err := a.shell.DeleteMeal(ctx, id); err != nil {
		return err
	}
	return a.render(ctx)
}

func (a *App) readMeal(m models.Meal) (models.Meal, error) {
	var err error
	if m.Name, err = getWithDefault(a.reader, "Name", m.Name, a.out); err != nil {
		return m, err
	}
	if m.Description, err = getWithDefault(a.reader, "Description", m.Description, a.out); err != nil {
		return m, err
	}
	if m.Calories, err = getInt(a.reader, "Calories", m.Calories, a.out); err != nil {
		return m, err
	}
	if m.Category, err = getWithDefault(a.reader, "Category", m.Category, a.out); err != nil {
		return m, err
	}
	return m, nil
}

func (a *App) AddExercise(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	e, err := a.readExercise(models.Exercise{})
	if err != nil {
		return err
	}
	if _, err := a.shell.AddExercise(ctx, e); err != nil {
		return err
	}
	return a.render(ctx)
}

func (a *App) EditExercise(ctx context.Context, id string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	current, ok := findByID(a.shell.Exercises(), id)
	if !ok {
		return fmt.Errorf("exercise %s: %w", id, common.ErrorNotFound)
	}
	e, err := a.readExercise(current)
	if err != nil {
		return err
	}
	if _, err := a.shell.UpdateExercise(ctx, e); err != nil {
		return err
	}
	return a.render(ctx)
}

func (a *App) DeleteExercise(ctx context.Context, id string) error {
	if _, err := a.shell.DeleteExercise(ctx, id); err != nil {
		return err
	}
	return a.render(ctx)
}

func (a *App) readExercise(e models.Exercise) (models.Exercise, error) {
	var err error
	if e.Title, err = getWithDefault(a.reader, "Title", e.Title, a.out); err != nil {
		return e, err
	}
	if e.Category, err = getWithDefault(a.reader, "Category", e.Category, a.out); err != nil {
		return e, err
	}
	text, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return e, err
	}
	if text != "" {
		e.Text = text
	}
	return e, nil
}

func (a *App) AddBlog(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	b, err := a.readBlog(models.Blog{})
	if err != nil {
		return err
	}
	if _, err := a.shell.AddBlog(ctx, b); err != nil {
		return err
	}
	return a.render(ctx)
}

func (a *App) EditBlog(ctx context.Context, id string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	current, ok := findByID(a.shell.Blogs(), id)
	if !ok {
		return fmt.Errorf("blog %s: %w", id, common.ErrorNotFound)
	}
	b, err := a.readBlog(current)
	if err != nil {
		return err
	}
	if _, err := a.shell.UpdateBlog(ctx, b); err != nil {
		return err
	}
	return a.render(ctx)
}

func (a *App) DeleteBlog(ctx context.Context, id string) error {
	if _, err := a.shell.DeleteBlog(ctx, id); err != nil {
		return err
	}
	return a.render(ctx)
}

func (a *App) readBlog(b models.Blog) (models.Blog, error) {
	var err error
	if b.Title, err = getWithDefault(a.reader, "Title", b.Title, a.out); err != nil {
		return b, err
	}
	if b.Category, err = getWithDefault(a.reader, "Category", b.Category, a.out); err != nil {
		return b, err
	}
	text, err := GetMultiline(a.reader, "Text", a.out)
	if err != nil {
		return b, err
	}
	if text != "" {
		b.Text = text
	}
	return b, nil
}

// Comment adds a comment to a meal, exercise or blog and shows the parent.
func (a *App) Comment(ctx context.Context, kind, id string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	text, err := getSimpleText(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}
	c := models.Comment{Text: text}

	switch kind {
	case "meal":
		_, err = a.shell.AddMealComment(ctx, id, c)
	case "exercise":
		_, err = a.shell.AddExerciseComment(ctx, id, c)
	case "blog":
		_, err = a.shell.AddBlogComment(ctx, id, c)
	default:
		return usage("comment <meal|exercise|blog> <id>")
	}
	if err != nil {
		return err
	}
	return a.Go(ctx, "/"+kind+"s/"+id)
}

// EditProfileComment rewrites a comment left on a profile.
func (a *App) EditProfileComment(ctx context.Context, profileID, commentID string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	text, err := getSimpleText(a.reader, "New text", a.out)
	if err != nil {
		return err
	}
	if _, err := a.shell.UpdateProfileComment(ctx, profileID, commentID, models.Comment{ID: commentID, Text: text}); err != nil {
		return err
	}
	return a.Go(ctx, "/profile/"+profileID)
}

// AddPhoto uploads path as the signed-in user's profile photo.
func (a *App) AddPhoto(ctx context.Context, path string) error {
	u := a.shell.User()
	if u == nil {
		return errNotSignedIn
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("add photo: %w", err)
	}
	defer f.Close()

	photoURL, err := a.resources.Profiles.AddPhoto(ctx, u.Profile, filepath.Base(path), f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "photo stored at %s\n", photoURL)
	return nil
}

func findByID[T models.Record](items []T, id string) (T, bool) {
	i := slices.IndexFunc(items, func(r T) bool { return r.GetID() == id })
	if i < 0 {
		var zero T
		return zero, false
	}
	return items[i], true
}
