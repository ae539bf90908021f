package shell

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/fitlog/internal/client/gate"
	"github.com/dmitrijs2005/fitlog/internal/client/models"
)

func (s *Shell) landingView(_ *scope, _ params) gate.View {
	return gate.ViewFunc(func(_ context.Context, w io.Writer) error {
		name := "friend"
		if u := s.User(); u != nil {
			name = u.Name
		}
		_, err := fmt.Fprintf(w, "Hello, %s\n", name)
		return err
	})
}

func formView(title string, fields ...string) func(*Shell, *scope, params) gate.View {
	return func(_ *Shell, _ *scope, _ params) gate.View {
		return gate.ViewFunc(func(_ context.Context, w io.Writer) error {
			_, err := fmt.Fprintf(w, "%s\nfields: %s\n", title, strings.Join(fields, ", "))
			return err
		})
	}
}

func (s *Shell) mealsView(_ *scope, _ params) gate.View {
	return gate.ViewFunc(func(_ context.Context, w io.Writer) error {
		meals := s.Meals()
		return table(w, "Meals", len(meals), func(tw io.Writer) {
			for _, m := range meals {
				fmt.Fprintf(tw, "%s\t%s\t%d kcal\t%s\n", m.ID, m.Name, m.Calories, m.Category)
			}
		})
	})
}

func (s *Shell) exercisesView(_ *scope, _ params) gate.View {
	return gate.ViewFunc(func(_ context.Context, w io.Writer) error {
		items := s.Exercises()
		return table(w, "Exercises", len(items), func(tw io.Writer) {
			for _, e := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.Title, e.Category)
			}
		})
	})
}

func (s *Shell) blogsView(_ *scope, _ params) gate.View {
	return gate.ViewFunc(func(_ context.Context, w io.Writer) error {
		items := s.Blogs()
		return table(w, "Blogs", len(items), func(tw io.Writer) {
			for _, b := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Category, b.Author.Name)
			}
		})
	})
}

func (s *Shell) profilesView(_ *scope, _ params) gate.View {
	return gate.ViewFunc(func(_ context.Context, w io.Writer) error {
		items := s.Profiles()
		return table(w, "Profiles", len(items), func(tw io.Writer) {
			for _, p := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, p.Photo)
			}
		})
	})
}

func (s *Shell) mealView(sc *scope, p params) gate.View {
	return gate.ViewFunc(func(ctx context.Context, w io.Writer) error {
		m, err := show(ctx, s, sc, s.meals, p["id"])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s (%d kcal)\n", m.Name, m.Calories)
		if m.Category != "" {
			fmt.Fprintf(w, "category: %s\n", m.Category)
		}
		if m.Description != "" {
			fmt.Fprintln(w, m.Description)
		}
		return comments(w, m.Comments)
	})
}

func (s *Shell) editMealView(sc *scope, p params) gate.View {
	return gate.ViewFunc(func(ctx context.Context, w io.Writer) error {
		m, err := show(ctx, s, sc, s.meals, p["id"])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "Edit meal %s\nname: %s\ndescription: %s\ncalories: %d\ncategory: %s\n",
			m.ID, m.Name, m.Description, m.Calories, m.Category)
		return err
	})
}

func (s *Shell) exerciseView(sc *scope, p params) gate.View {
	return gate.ViewFunc(func(ctx context.Context, w io.Writer) error {
		e, err := show(ctx, s, sc, s.exercises, p["id"])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s [%s]\n%s\n", e.Title, e.Category, e.Text)
		return comments(w, e.Comments)
	})
}

func (s *Shell) blogView(sc *scope, p params) gate.View {
	return gate.ViewFunc(func(ctx context.Context, w io.Writer) error {
		b, err := show(ctx, s, sc, s.blogs, p["id"])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s [%s] by %s\n%s\n", b.Title, b.Category, b.Author.Name, b.Text)
		return comments(w, b.Comments)
	})
}

func (s *Shell) profileView(sc *scope, p params) gate.View {
	return gate.ViewFunc(func(ctx context.Context, w io.Writer) error {
		pr, err := show(ctx, s, sc, s.profiles, p["id"])
		if err != nil {
			return err
		}
		fmt.Fprintln(w, pr.Name)
		if pr.Photo != "" {
			fmt.Fprintf(w, "photo: %s\n", pr.Photo)
		}
		return comments(w, pr.Comments)
	})
}

// show fetches one record for the view owning sc. A fresh copy replaces
// the one held in the collection.
func show[T models.Record](ctx context.Context, s *Shell, sc *scope, k *kind[T], id string) (T, error) {
	rctx, done := bind(ctx, sc)
	defer done()

	rec, err := k.client.Show(rctx, id)
	if err != nil {
		return rec, s.fail(sc, "show "+k.name, err)
	}
	err = s.commit(sc, func() {
		if i := slices.IndexFunc(k.items, func(r T) bool { return r.GetID() == id }); i >= 0 {
			k.items[i] = rec
		}
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

func table(w io.Writer, title string, n int, rows func(io.Writer)) error {
	if _, err := fmt.Fprintf(w, "%s (%d)\n", title, n); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows(tw)
	return tw.Flush()
}

func comments(w io.Writer, cs []models.Comment) error {
	if len(cs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "comments (%d):\n", len(cs)); err != nil {
		return err
	}
	for _, c := range cs {
		author := c.Author.Name
		if author == "" {
			author = c.Author.ID
		}
		if _, err := fmt.Fprintf(w, "  - %s: %s\n", author, c.Text); err != nil {
			return err
		}
	}
	return nil
}
