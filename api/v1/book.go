package v1

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/kimhaegyeong/reading-tracker/http/request"
	"github.com/kimhaegyeong/reading-tracker/http/response"
	"github.com/kimhaegyeong/reading-tracker/log"
	"github.com/kimhaegyeong/reading-tracker/model"
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	find := &model.FindBook{}
	if status := request.QueryStringParam(r, "status", ""); status != "" {
		find.Status = &status
	}
	if genre := request.QueryStringParam(r, "genre", ""); genre != "" {
		find.Genre = &genre
	}

	books, err := h.store.ListBooks(find)
	if err != nil {
		log.Error("Error listing books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) addBook(w http.ResponseWriter, r *http.Request) {
	var book model.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	newBook, err := h.store.AddBook(&book)
	if err != nil {
		log.Error("Failed to add book", zap.Error(err))
		storeError(w, r, err)
		return
	}
	response.Created(w, r, newBook)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")

	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")

	var update model.UpdateBook
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	book, err := h.store.UpdateBook(bookID, &update)
	if err != nil {
		log.Error("Failed to update book", zap.Error(err))
		storeError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")

	log.Debug("Deleting book", zap.Int("bookID", bookID))
	if err := h.store.RemoveBook(bookID); err != nil {
		log.Error("Failed to delete book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

func (h *Handler) listBookQuotes(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")

	quotes, err := h.store.ListQuotes(&model.FindQuote{BookID: &bookID})
	if err != nil {
		log.Error("Error listing quotes", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, quotes)
}

func (h *Handler) listBookNotes(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")

	notes, err := h.store.ListNotes(&model.FindNote{BookID: &bookID})
	if err != nil {
		log.Error("Error listing notes", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, notes)
}

func (h *Handler) listBookSessions(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")

	sessions, err := h.store.ListSessions(&model.FindSession{BookID: &bookID})
	if err != nil {
		log.Error("Error listing sessions", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, sessions)
}
