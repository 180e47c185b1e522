package model

import "errors"

var ErrNotFound = errors.New("not found")

type Todo struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Order     int    `json:"order"`
	Completed bool   `json:"completed"`
}

// TodoPatch is a partial representation of a Todo. A nil field means
// "leave unchanged" on update and "use the default" on create.
type TodoPatch struct {
	Title     *string `json:"title,omitempty"`
	Order     *int    `json:"order,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Apply merges the fields present in p onto t.
func (p TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Order != nil {
		t.Order = *p.Order
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
