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

func (h *Handler) addQuote(w http.ResponseWriter, r *http.Request) {
	var quote model.Quote
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	newQuote, err := h.store.AddQuote(&quote)
	if err != nil {
		log.Error("Failed to add quote", zap.Error(err))
		storeError(w, r, err)
		return
	}
	response.Created(w, r, newQuote)
}

func (h *Handler) updateQuote(w http.ResponseWriter, r *http.Request) {
	quoteID := request.RouteIntParam(r, "id")

	var update model.UpdateQuote
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	quote, err := h.store.UpdateQuote(quoteID, &update)
	if err != nil {
		log.Error("Failed to update quote", zap.Error(err))
		storeError(w, r, err)
		return
	}
	if quote == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, quote)
}

func (h *Handler) deleteQuote(w http.ResponseWriter, r *http.Request) {
	quoteID := request.RouteIntParam(r, "id")

	if err := h.store.RemoveQuote(quoteID); err != nil {
		log.Error("Failed to delete quote", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}
