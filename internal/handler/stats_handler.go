package handlers

import (
	"net/http"
)

func (h *Handlers) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.StatsService.Leaderboard(r.Context())
	if err != nil {
		WriteError(w, "Не удалось построить таблицу лидеров", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, entries, http.StatusOK)
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.StatsService.Stats(r.Context())
	if err != nil {
		WriteError(w, "Не удалось собрать статистику", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, summary, http.StatusOK)
}
