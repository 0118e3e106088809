package v1

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kimhaegyeong/reading-tracker/http/request"
	"github.com/kimhaegyeong/reading-tracker/http/response"
	"github.com/kimhaegyeong/reading-tracker/log"
)

const defaultRecentBooks = 5

func (h *Handler) totalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.TotalStats()
	if err != nil {
		log.Error("Failed to compute total stats", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, stats)
}

func (h *Handler) monthlyStats(w http.ResponseWriter, r *http.Request) {
	year := request.QueryIntParam(r, "year", time.Now().Year())

	stats, err := h.store.MonthlyStats(year)
	if err != nil {
		log.Error("Failed to compute monthly stats", zap.Int("year", year), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, stats)
}

func (h *Handler) genreStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GenreStats()
	if err != nil {
		log.Error("Failed to compute genre stats", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, stats)
}

func (h *Handler) streakStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.StreakStats(time.Now())
	if err != nil {
		log.Error("Failed to compute streaks", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, stats)
}

func (h *Handler) dailyHistory(w http.ResponseWriter, r *http.Request) {
	days, err := h.store.DailyHistory()
	if err != nil {
		log.Error("Failed to load reading history", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, days)
}

func (h *Handler) recentBooks(w http.ResponseWriter, r *http.Request) {
	limit := request.QueryIntParam(r, "limit", defaultRecentBooks)

	books, err := h.store.RecentBooks(limit)
	if err != nil {
		log.Error("Failed to load recent books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) goalProgress(w http.ResponseWriter, r *http.Request) {
	year := request.QueryIntParam(r, "year", time.Now().Year())

	progress, err := h.store.GoalProgress(year)
	if err != nil {
		log.Error("Failed to compute goal progress", zap.Int("year", year), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, progress)
}

func (h *Handler) totalBookPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.store.TotalBookPages()
	if err != nil {
		log.Error("Failed to compute total book pages", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, map[string]int{"totalPages": pages})
}
