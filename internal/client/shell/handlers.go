package shell

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/fitlog/internal/client/models"
)

// Mutations reconcile the collection with what the server returned, never
// with what was sent, and then move to the kind's list view. They belong
// to the session: if it ends while the call is in flight the result is
// dropped.

func (s *Shell) AddMeal(ctx context.Context, m models.Meal) (models.Meal, error) {
	return add(ctx, s, s.meals, m)
}

func (s *Shell) UpdateMeal(ctx context.Context, m models.Meal) (models.Meal, error) {
	return update(ctx, s, s.meals, m)
}

func (s *Shell) DeleteMeal(ctx context.Context, id string) (models.Meal, error) {
	return remove(ctx, s, s.meals, id)
}

func (s *Shell) AddExercise(ctx context.Context, e models.Exercise) (models.Exercise, error) {
	return add(ctx, s, s.exercises, e)
}

func (s *Shell) UpdateExercise(ctx context.Context, e models.Exercise) (models.Exercise, error) {
	return update(ctx, s, s.exercises, e)
}

func (s *Shell) DeleteExercise(ctx context.Context, id string) (models.Exercise, error) {
	return remove(ctx, s, s.exercises, id)
}

func (s *Shell) AddBlog(ctx context.Context, b models.Blog) (models.Blog, error) {
	return add(ctx, s, s.blogs, b)
}

func (s *Shell) UpdateBlog(ctx context.Context, b models.Blog) (models.Blog, error) {
	return update(ctx, s, s.blogs, b)
}

func (s *Shell) DeleteBlog(ctx context.Context, id string) (models.Blog, error) {
	return remove(ctx, s, s.blogs, id)
}

func (s *Shell) AddMealComment(ctx context.Context, mealID string, c models.Comment) (models.Comment, error) {
	return addComment(ctx, s, s.meals, mealID, c)
}

func (s *Shell) AddExerciseComment(ctx context.Context, exerciseID string, c models.Comment) (models.Comment, error) {
	return addComment(ctx, s, s.exercises, exerciseID, c)
}

func (s *Shell) AddBlogComment(ctx context.Context, blogID string, c models.Comment) (models.Comment, error) {
	return addComment(ctx, s, s.blogs, blogID, c)
}

func (s *Shell) UpdateProfileComment(ctx context.Context, profileID, commentID string, c models.Comment) (models.Comment, error) {
	return updateComment(ctx, s, s.profiles, profileID, commentID, c)
}

// sessionScope returns the scope of the signed-in session.
func (s *Shell) sessionScope() *scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account
}

func add[T models.Record](ctx context.Context, s *Shell, k *kind[T], rec T) (T, error) {
	sc := s.sessionScope()
	rctx, done := bind(ctx, sc)
	defer done()

	created, err := k.client.Create(rctx, rec)
	if err != nil {
		var zero T
		return zero, s.fail(sc, "add "+k.name, err)
	}
	err = s.commit(sc, func() {
		k.items = append([]T{created}, k.items...)
		s.navigateLocked(k.list)
	})
	return created, err
}

func update[T models.Record](ctx context.Context, s *Shell, k *kind[T], rec T) (T, error) {
	sc := s.sessionScope()
	rctx, done := bind(ctx, sc)
	defer done()

	updated, err := k.client.Update(rctx, rec)
	if err != nil {
		var zero T
		return zero, s.fail(sc, "update "+k.name, err)
	}
	id := rec.GetID()
	err = s.commit(sc, func() {
		for i, r := range k.items {
			if r.GetID() == id {
				k.items[i] = updated
			}
		}
		s.navigateLocked(k.list)
	})
	return updated, err
}

func remove[T models.Record](ctx context.Context, s *Shell, k *kind[T], id string) (T, error) {
	sc := s.sessionScope()
	rctx, done := bind(ctx, sc)
	defer done()

	deleted, err := k.client.Delete(rctx, id)
	if err != nil {
		var zero T
		return zero, s.fail(sc, "delete "+k.name, err)
	}
	gone := deleted.GetID()
	if gone == "" {
		gone = id
	}
	err = s.commit(sc, func() {
		k.items = slices.DeleteFunc(k.items, func(r T) bool { return r.GetID() == gone })
		s.navigateLocked(k.list)
	})
	return deleted, err
}

// addComment appends the server's comment to the parent held in the
// collection. The current view is kept.
func addComment[T models.Record](ctx context.Context, s *Shell, k *kind[T], parentID string, c models.Comment) (models.Comment, error) {
	sc := s.sessionScope()
	rctx, done := bind(ctx, sc)
	defer done()

	created, err := k.client.CreateComment(rctx, parentID, c)
	if err != nil {
		return models.Comment{}, s.fail(sc, "comment on "+k.name, err)
	}
	err = s.commit(sc, func() {
		patchParent(k, parentID, func(cs *[]models.Comment) { *cs = append(*cs, created) })
	})
	return created, err
}

func updateComment[T models.Record](ctx context.Context, s *Shell, k *kind[T], parentID, commentID string, c models.Comment) (models.Comment, error) {
	sc := s.sessionScope()
	rctx, done := bind(ctx, sc)
	defer done()

	updated, err := k.client.UpdateComment(rctx, parentID, commentID, c)
	if err != nil {
		return models.Comment{}, s.fail(sc, "update comment on "+k.name, err)
	}
	err = s.commit(sc, func() {
		patchParent(k, parentID, func(cs *[]models.Comment) {
			for i := range *cs {
				if (*cs)[i].ID == commentID {
					(*cs)[i] = updated
				}
			}
		})
	})
	return updated, err
}

func patchParent[T models.Record](k *kind[T], parentID string, patch func(*[]models.Comment)) {
	parent, ok := k.find(parentID)
	if !ok {
		return
	}
	cs := slices.Clone(*k.comments(&parent))
	patch(&cs)
	*k.comments(&parent) = cs
	for i, r := range k.items {
		if r.GetID() == parentID {
			k.items[i] = parent
		}
	}
}
