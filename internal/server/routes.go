package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"habitkeep/internal/habit"
	"habitkeep/internal/store"
)

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	var (
		statuses []habit.HabitStatus
		err      error
	)
	if !s.do(w, func() { statuses, err = s.registry.Status() }) {
		return
	}
	if err != nil {
		s.logger.Error("list habits failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"habits": statuses})
}

func (s *Server) handleAddHabit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	var err error
	if !s.do(w, func() { err = s.registry.Add(name) }) {
		return
	}
	if err != nil {
		s.logger.Error("add habit failed", zap.String("name", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

func (s *Server) handleMarkDone(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	var done bool
	if !s.do(w, func() {
		if err = s.registry.MarkDone(name); err == nil {
			done, err = s.registry.IsDoneToday(name)
		}
	}) {
		return
	}
	if err != nil {
		s.logger.Error("mark done failed", zap.String("name", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "done_today": done})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	var (
		settings store.Settings
		err      error
	)
	if !s.do(w, func() { settings, err = s.registry.Retention() }) {
		return
	}
	if err != nil {
		s.logger.Error("load settings failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleSetRetention(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RetentionDays *int `json:"retention_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	// null means unbounded, same as zero.
	days := 0
	if req.RetentionDays != nil {
		days = *req.RetentionDays
	}

	var err error
	if !s.do(w, func() { err = s.registry.SetRetention(days) }) {
		return
	}
	if errors.Is(err, habit.ErrInvalidRetention) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("set retention failed", zap.Int("retention_days", days), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, store.Settings{RetentionDays: days})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var err error
	if !s.do(w, func() { err = s.registry.ResetAll() }) {
		return
	}
	if err != nil {
		s.logger.Error("reset failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
