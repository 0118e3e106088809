package v1

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/kimhaegyeong/reading-tracker/http/response"
	"github.com/kimhaegyeong/reading-tracker/middleware"
	"github.com/kimhaegyeong/reading-tracker/store"
)

type Handler struct {
	store *store.Store
}

// NewHandler is a constructor for the v1.Handler
func NewHandler(store *store.Store) *Handler {
	return &Handler{
		store: store,
	}
}

func Server(router *mux.Router, handler *Handler) {
	sr := router.PathPrefix("/api/v1").Subrouter()
	middleware := middleware.NewMiddleware(handler.store)
	sr.Use(middleware.HandleCORS)
	sr.Use(middleware.LoggingRequest)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.addBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/{id:[0-9]+}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id:[0-9]+}", handler.updateBook).Methods(http.MethodPatch)
	sr.HandleFunc("/books/{id:[0-9]+}", handler.deleteBook).Methods(http.MethodDelete)
	sr.HandleFunc("/books/{id:[0-9]+}/quotes", handler.listBookQuotes).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id:[0-9]+}/notes", handler.listBookNotes).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id:[0-9]+}/sessions", handler.listBookSessions).Methods(http.MethodGet)

	sr.HandleFunc("/quotes", handler.addQuote).Methods(http.MethodPost)
	sr.HandleFunc("/quotes/{id:[0-9]+}", handler.updateQuote).Methods(http.MethodPatch)
	sr.HandleFunc("/quotes/{id:[0-9]+}", handler.deleteQuote).Methods(http.MethodDelete)

	sr.HandleFunc("/notes", handler.addNote).Methods(http.MethodPost)
	sr.HandleFunc("/notes/{id:[0-9]+}", handler.updateNote).Methods(http.MethodPatch)
	sr.HandleFunc("/notes/{id:[0-9]+}", handler.deleteNote).Methods(http.MethodDelete)

	sr.HandleFunc("/sessions", handler.addSession).Methods(http.MethodPost)
	sr.HandleFunc("/sessions", handler.listSessions).Methods(http.MethodGet)
	sr.HandleFunc("/sessions/{id:[0-9]+}", handler.deleteSession).Methods(http.MethodDelete)

	sr.HandleFunc("/settings/{key}", handler.getSetting).Methods(http.MethodGet)
	sr.HandleFunc("/settings/{key}", handler.putSetting).Methods(http.MethodPut)

	sr.HandleFunc("/stats/total", handler.totalStats).Methods(http.MethodGet)
	sr.HandleFunc("/stats/monthly", handler.monthlyStats).Methods(http.MethodGet)
	sr.HandleFunc("/stats/genres", handler.genreStats).Methods(http.MethodGet)
	sr.HandleFunc("/stats/streaks", handler.streakStats).Methods(http.MethodGet)
	sr.HandleFunc("/stats/history", handler.dailyHistory).Methods(http.MethodGet)
	sr.HandleFunc("/stats/recent", handler.recentBooks).Methods(http.MethodGet)
	sr.HandleFunc("/stats/goal", handler.goalProgress).Methods(http.MethodGet)
	sr.HandleFunc("/stats/pages", handler.totalBookPages).Methods(http.MethodGet)
}

// storeError maps the store error taxonomy onto HTTP statuses: validation
// and reference failures are the client's fault, everything else is ours.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrInvalid),
		errors.Is(err, store.ErrDuplicateBook),
		errors.Is(err, store.ErrBookNotFound):
		response.BadRequest(w, r, err)
	default:
		response.ServerError(w, r, err)
	}
}
