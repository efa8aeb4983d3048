package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/JadedPigeon/typechecker/internal/effectiveness"
	"github.com/JadedPigeon/typechecker/internal/history"
	"go.uber.org/zap"
)

type Computer interface {
	Compute(ctx context.Context, name string) (*effectiveness.Report, error)
}

type Recorder interface {
	Record(ctx context.Context, r *effectiveness.Report) (history.Lookup, error)
	Recent(ctx context.Context, limit int) ([]history.Lookup, error)
}

type Config struct {
	Engine  Computer
	History Recorder
	Logger  *zap.Logger
}

func (cfg *Config) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/effectiveness", cfg.EffectivenessHandler)
	mux.HandleFunc("/history", cfg.HistoryHandler)
	mux.HandleFunc("/healthz", cfg.HealthHandler)
	return mux
}

// Compute effectiveness for ?pokemon=<name>
func (cfg *Config) EffectivenessHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Invalid method")
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("pokemon"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "pokemon is required")
		return
	}

	ctx := r.Context()
	report, err := cfg.Engine.Compute(ctx, name)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			cfg.Logger.Warn("lookup failed", zap.String("pokemon", name), zap.Error(err))
		}
		writeError(w, status, err.Error())
		return
	}

	// A lookup that can't be logged is still answered
	if cfg.History != nil {
		if _, err := cfg.History.Record(ctx, report); err != nil {
			cfg.Logger.Warn("error recording lookup", zap.String("pokemon", name), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, report)
}

// List recent lookups, newest first
func (cfg *Config) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Invalid method")
		return
	}

	limit := history.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	if cfg.History == nil {
		writeJSON(w, http.StatusOK, []history.Lookup{})
		return
	}
	lookups, err := cfg.History.Recent(r.Context(), limit)
	if err != nil {
		cfg.Logger.Error("error listing lookups", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, lookups)
}

func (cfg *Config) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
