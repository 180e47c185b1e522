package httpapi

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"todo-backend/internal/model"
	"todo-backend/internal/observability/logging"
)

type TodoStore interface {
	Find(id string) (model.Todo, bool)
	All() []model.Todo
	Save(id string, in model.TodoPatch) (model.Todo, error)
	Delete(id string) (model.Todo, bool)
	Clear() []model.Todo
	Len() int
}

type Options struct {
	Logger *log.Logger
	// PathPrefix is where the todo collection is mounted, e.g. "/todos".
	// Empty mounts it at "/".
	PathPrefix     string
	Debug          bool
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

type Server struct {
	store        TodoStore
	logger       *log.Logger
	maxBodyBytes int64
	handler      http.Handler
}

func NewServer(store TodoStore, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 3 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = maxBodyBytes
	}

	srv := &Server{
		store:        store,
		logger:       opts.Logger,
		maxBodyBytes: opts.MaxBodyBytes,
	}

	r := mux.NewRouter()
	r.Methods(http.MethodGet).Path("/healthz").HandlerFunc(HealthHandler(store))

	for _, p := range rootPaths(opts.PathPrefix) {
		r.Methods(http.MethodGet).Path(p).HandlerFunc(srv.handleListTodos)
		r.Methods(http.MethodPost).Path(p).HandlerFunc(srv.handleCreateTodo)
		r.Methods(http.MethodDelete).Path(p).HandlerFunc(srv.handleClearTodos)
	}

	item := opts.PathPrefix + "/{id}"
	r.Methods(http.MethodGet).Path(item).HandlerFunc(srv.handleGetTodo)
	r.Methods(http.MethodPatch).Path(item).HandlerFunc(srv.handlePatchTodo)
	r.Methods(http.MethodDelete).Path(item).HandlerFunc(srv.handleDeleteTodo)

	var h http.Handler = Timeout(opts.RequestTimeout)(r)
	if opts.Debug {
		h = DebugDump(opts.Logger)(h)
	}
	h = CORS()(h)
	h = Logging(opts.Logger)(h)
	h = WithRequestID(h)
	srv.handler = h

	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func rootPaths(prefix string) []string {
	if prefix == "" {
		return []string{"/"}
	}
	return []string{prefix, prefix + "/"}
}
