package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Record is anything the server identifies by "_id".
type Record interface {
	GetID() string
}

// Author references the owning profile. The server sends either the bare
// profile id or the populated profile document.
type Author struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

func (a Author) IsZero() bool { return a.ID == "" && a.Name == "" }

func (a *Author) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(b), []byte(`"`)) {
		return json.Unmarshal(b, &a.ID)
	}
	type plain Author
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*a = Author(p)
	return nil
}

type Comment struct {
	ID        string    `json:"_id,omitempty"`
	Text      string    `json:"text"`
	Author    Author    `json:"author,omitzero"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

func (c Comment) GetID() string { return c.ID }

type Meal struct {
	ID          string    `json:"_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Calories    int       `json:"calories,omitempty"`
	Category    string    `json:"category,omitempty"`
	Author      Author    `json:"author,omitzero"`
	Comments    []Comment `json:"comments,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

func (m Meal) GetID() string { return m.ID }

type Exercise struct {
	ID        string    `json:"_id,omitempty"`
	Title     string    `json:"title"`
	Text      string    `json:"text,omitempty"`
	Category  string    `json:"category,omitempty"`
	Author    Author    `json:"author,omitzero"`
	Comments  []Comment `json:"comments,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

func (e Exercise) GetID() string { return e.ID }

type Blog struct {
	ID        string    `json:"_id,omitempty"`
	Title     string    `json:"title"`
	Text      string    `json:"text,omitempty"`
	Category  string    `json:"category,omitempty"`
	Author    Author    `json:"author,omitzero"`
	Comments  []Comment `json:"comments,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

func (b Blog) GetID() string { return b.ID }

type Profile struct {
	ID       string    `json:"_id,omitempty"`
	Name     string    `json:"name"`
	Photo    string    `json:"photo,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
}

func (p Profile) GetID() string { return p.ID }
