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

func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	var note model.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	newNote, err := h.store.AddNote(&note)
	if err != nil {
		log.Error("Failed to add note", zap.Error(err))
		storeError(w, r, err)
		return
	}
	response.Created(w, r, newNote)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	noteID := request.RouteIntParam(r, "id")

	var update model.UpdateNote
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	note, err := h.store.UpdateNote(noteID, &update)
	if err != nil {
		log.Error("Failed to update note", zap.Error(err))
		storeError(w, r, err)
		return
	}
	if note == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, note)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	noteID := request.RouteIntParam(r, "id")

	if err := h.store.RemoveNote(noteID); err != nil {
		log.Error("Failed to delete note", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}
