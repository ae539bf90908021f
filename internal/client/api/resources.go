package api

import "github.com/dmitrijs2005/fitlog/internal/client/models"

// Resources groups one client per resource kind over a shared transport.
type Resources struct {
	Auth      *Auth
	Meals     *Resource[models.Meal]
	Exercises *Resource[models.Exercise]
	Blogs     *Resource[models.Blog]
	Profiles  *Profiles
}

func NewResources(c *Client) *Resources {
	return &Resources{
		Auth:      &Auth{c: c},
		Meals:     NewResource[models.Meal](c, "meals"),
		Exercises: NewResource[models.Exercise](c, "exercises"),
		Blogs:     NewResource[models.Blog](c, "blogs"),
		Profiles:  &Profiles{Resource: NewResource[models.Profile](c, "profiles")},
	}
}
