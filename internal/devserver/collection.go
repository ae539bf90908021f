package devserver

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// document is a schemaless record, shaped like the JSON the API returns.
type document map[string]any

func (d document) id() string {
	s, _ := d["_id"].(string)
	return s
}

func (d document) str(key string) string {
	s, _ := d[key].(string)
	return s
}

func (d document) comments() []document {
	raw, _ := d["comments"].([]any)
	out := make([]document, 0, len(raw))
	for _, c := range raw {
		switch v := c.(type) {
		case document:
			out = append(out, v)
		case map[string]any:
			out = append(out, document(v))
		}
	}
	return out
}

func (d document) setComments(cs []document) {
	raw := make([]any, 0, len(cs))
	for _, c := range cs {
		raw = append(raw, c)
	}
	d["comments"] = raw
}

// clone deep-copies d so handlers never hand out stored maps.
func (d document) clone() document {
	b, _ := json.Marshal(d)
	var out document
	_ = json.Unmarshal(b, &out)
	return out
}

// collection keeps documents newest-first.
type collection struct {
	order []string
	docs  map[string]document
}

func newCollection() *collection {
	return &collection{docs: make(map[string]document)}
}

func (c *collection) insert(d document, now time.Time) document {
	d = d.clone()
	if d == nil {
		d = document{}
	}
	d["_id"] = uuid.NewString()
	d["createdAt"] = now.UTC().Format(time.RFC3339)
	if _, ok := d["comments"]; !ok {
		d["comments"] = []any{}
	}
	c.docs[d.id()] = d
	c.order = append([]string{d.id()}, c.order...)
	return d.clone()
}

func (c *collection) get(id string) (document, bool) {
	d, ok := c.docs[id]
	return d, ok
}

func (c *collection) list() []document {
	out := make([]document, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.docs[id].clone())
	}
	return out
}

func (c *collection) remove(id string) (document, bool) {
	d, ok := c.docs[id]
	if !ok {
		return nil, false
	}
	delete(c.docs, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return d, true
}
