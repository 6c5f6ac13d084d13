package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"school-meal/stats-svc/internal/service"

	"github.com/gorilla/mux"
)

const (
	defaultPopularLimit = 10
	maxPopularLimit     = 100
)

type Handler struct {
	Stats service.StatsInterface
}

func NewHandler(stats service.StatsInterface) *Handler {
	return &Handler{Stats: stats}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "stats-svc"})
	}).Methods("GET")
	r.HandleFunc("/api/stats/popular", h.getPopularDates).Methods("GET")
	r.HandleFunc("/api/stats/{date}", h.getDateStats).Methods("GET")
}

func (h *Handler) getPopularDates(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultPopularLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 || parsed > maxPopularLimit {
			http.Error(w, "limit must be between 1 and 100", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	dates, err := h.Stats.PopularDates(r.Context(), limit)
	if err != nil {
		log.Printf("[stats-svc] failed to load popular dates: %v", err)
		http.Error(w, "stats unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dates)
}

func (h *Handler) getDateStats(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if _, err := time.Parse("20060102", date); err != nil || len(date) != 8 {
		http.Error(w, "invalid date, expected YYYYMMDD", http.StatusBadRequest)
		return
	}

	stats, err := h.Stats.DateStats(r.Context(), date)
	if err != nil {
		log.Printf("[stats-svc] failed to load stats for %s: %v", date, err)
		http.Error(w, "stats unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[stats-svc] failed to encode response: %v", err)
	}
}
