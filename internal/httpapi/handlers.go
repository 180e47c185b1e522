package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"todo-backend/internal/model"
)

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	filters, err := parseListFilters(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, filterTodos(s.store.All(), filters))
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeTodoPatch(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.Save("", in)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleClearTodos(w http.ResponseWriter, r *http.Request) {
	removed := s.store.Clear()
	s.logger.Debug("cleared todos", "rid", RequestIDFromContext(r.Context()), "removed", len(removed))

	writeJSON(w, http.StatusOK, []model.Todo{})
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	found, ok := s.store.Find(mux.Vars(r)["id"])
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handlePatchTodo(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeTodoPatch(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.store.Save(mux.Vars(r)["id"], in)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	removed, ok := s.store.Delete(mux.Vars(r)["id"])
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, removed)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "rid", RequestIDFromContext(r.Context()), "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
