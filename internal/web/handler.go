package web

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/chronoguard/chronoguard/internal/database"
	"github.com/chronoguard/chronoguard/internal/reporter"
)

type Handler struct {
	repo     *database.Repository
	reporter *reporter.Reporter
}

func NewHandler(repo *database.Repository, rep *reporter.Reporter) *Handler {
	return &Handler{repo: repo, reporter: rep}
}

func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/status", h.handleStatus)
	mux.HandleFunc("GET /api/report/daily", h.handleDaily)
	mux.HandleFunc("GET /api/report/weekly", h.handleWeekly)
	mux.HandleFunc("GET /api/report/productivity", h.handleProductivity)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := h.repo.Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count samples")
		return
	}

	writeJSON(w, map[string]any{
		"running":      true,
		"sample_count": count,
		"generated_at": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) handleDaily(w http.ResponseWriter, r *http.Request) {
	report, err := h.reporter.Daily(dateParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate daily report")
		return
	}
	writeJSON(w, report)
}

func (h *Handler) handleWeekly(w http.ResponseWriter, r *http.Request) {
	report, err := h.reporter.Weekly(dateParam(r, "start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, report)
}

func (h *Handler) handleProductivity(w http.ResponseWriter, r *http.Request) {
	report, err := h.reporter.Productivity(dateParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate productivity report")
		return
	}
	writeJSON(w, report)
}

// dateParam returns the named query parameter, defaulting to today.
func dateParam(r *http.Request, name string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return time.Now().Format("2006-01-02")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
