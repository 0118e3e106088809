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

func (h *Handler) getSetting(w http.ResponseWriter, r *http.Request) {
	key := request.RouteStringParam(r, "key")

	setting, err := h.store.GetSetting(key)
	if err != nil {
		log.Error("Failed to get setting", zap.String("key", key), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if setting == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, setting)
}

func (h *Handler) putSetting(w http.ResponseWriter, r *http.Request) {
	key := request.RouteStringParam(r, "key")

	var setting model.Setting
	if err := json.NewDecoder(r.Body).Decode(&setting); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	// The route owns the key; the body only carries the value.
	setting.Key = key

	newSetting, err := h.store.UpsertSetting(&setting)
	if err != nil {
		log.Error("Failed to upsert setting", zap.String("key", key), zap.Error(err))
		storeError(w, r, err)
		return
	}
	response.OK(w, r, newSetting)
}
