package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kimhaegyeong/reading-tracker/http/request"
	"github.com/kimhaegyeong/reading-tracker/http/response"
	"github.com/kimhaegyeong/reading-tracker/log"
	"github.com/kimhaegyeong/reading-tracker/model"
)

func (h *Handler) addSession(w http.ResponseWriter, r *http.Request) {
	var session model.ReadingSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	newSession, err := h.store.AddSession(&session)
	if err != nil {
		log.Error("Failed to add session", zap.Error(err))
		storeError(w, r, err)
		return
	}
	response.Created(w, r, newSession)
}

// listSessions serves the per-day drill-down: ?date=YYYY-MM-DD returns that
// day's sessions with book titles, ?date=today resolves against the local
// clock, no date lists everything.
func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	date := request.QueryStringParam(r, "date", "")

	switch date {
	case "":
		sessions, err := h.store.ListSessions(&model.FindSession{})
		if err != nil {
			log.Error("Error listing sessions", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
		response.OK(w, r, sessions)
	case "today":
		sessions, err := h.store.TodaySessions(time.Now())
		if err != nil {
			log.Error("Error listing today's sessions", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
		response.OK(w, r, sessions)
	default:
		sessions, err := h.store.SessionsByDate(date)
		if err != nil {
			log.Error("Error listing sessions by date", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
		response.OK(w, r, sessions)
	}
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := request.RouteIntParam(r, "id")

	if err := h.store.RemoveSession(sessionID); err != nil {
		log.Error("Failed to delete session", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}
