package httpapi

import (
	"net/http"
	"time"
)

type Counter interface {
	Len() int
}

func HealthHandler(todos Counter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
			"todos":  todos.Len(),
		})
	}
}
