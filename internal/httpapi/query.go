package httpapi

import (
	"errors"
	"net/url"
	"strings"

	"todo-backend/internal/model"
)

// listFilters narrows GET on the collection root. With no query the
// whole collection is returned in insertion order.
type listFilters struct {
	hasCompleted bool
	completed    bool
}

func parseListFilters(q url.Values) (listFilters, error) {
	var filters listFilters

	if v := q.Get("completed"); v != "" {
		parsed, err := parseBoolStrict(v)
		if err != nil {
			return listFilters{}, errors.New("completed must be true or false")
		}
		filters.hasCompleted = true
		filters.completed = parsed
	}

	return filters, nil
}

func filterTodos(todos []model.Todo, filters listFilters) []model.Todo {
	if !filters.hasCompleted {
		return todos
	}

	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if t.Completed == filters.completed {
			out = append(out, t)
		}
	}
	return out
}

func parseBoolStrict(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, errors.New("not a bool")
	}
}
