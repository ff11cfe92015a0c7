package rest

import (
	"encoding/json"
	"net/http"
)

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

type statsResponse struct {
	ActiveGames int `json:"active_games"`
}

type statsHandler struct {
	stats gameStats
}

func NewStatsHandler(stats gameStats) http.Handler {
	return &statsHandler{stats: stats}
}

func (that *statsHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	body, err := json.Marshal(statsResponse{ActiveGames: that.stats.ActiveGames()})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
