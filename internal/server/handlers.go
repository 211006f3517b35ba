package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/echodeck/echodeck/internal/model"
	"github.com/echodeck/echodeck/internal/session"
	"github.com/echodeck/echodeck/internal/stream"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Snapshot())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.sess.Refresh(r.Context()); err != nil {
		if errors.Is(err, session.ErrRefreshInFlight) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.sess.Snapshot())
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.sess.CompleteTask(id) {
		writeError(w, http.StatusNotFound, "no such task: "+id)
		return
	}
	writeJSON(w, http.StatusOK, s.sess.Snapshot())
}

type reorderRequest struct {
	TaskID       string `json:"taskId"`
	TargetTaskID string `json:"targetTaskId"`
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.sess.Reorder(req.TaskID, req.TargetTaskID) {
		writeError(w, http.StatusNotFound, "no such task in queue")
		return
	}
	writeJSON(w, http.StatusOK, s.sess.Snapshot())
}

type setTierRequest struct {
	Tier string `json:"tier"`
}

func (s *Server) handleSetTier(w http.ResponseWriter, r *http.Request) {
	var req setTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tier, ok := model.ParseCategory(req.Tier)
	if !ok || !tier.IsWorkTier() {
		writeError(w, http.StatusBadRequest, "invalid tier: "+req.Tier)
		return
	}
	s.sess.SetTier(tier)
	writeJSON(w, http.StatusOK, s.sess.Snapshot())
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	var f stream.Filter
	if raw := r.URL.Query().Get("category"); raw != "" {
		category, ok := model.ParseCategory(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid category: "+raw)
			return
		}
		f.Category = category
	}
	if raw := r.URL.Query().Get("source"); raw != "" {
		source, ok := model.ParseSource(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid source: "+raw)
			return
		}
		f.Source = source
	}
	writeJSON(w, http.StatusOK, s.sess.Stream(f))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit: "+raw)
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, s.sess.History(limit))
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.sess.Plan(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

type chatRequest struct {
	Message string `json:"message"`
	Reset   bool   `json:"reset"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.chat == nil {
		writeError(w, http.StatusServiceUnavailable, "chat is not configured")
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.chatMu.Lock()
	if req.Reset || s.chatSession == nil {
		s.chatSession = s.chat.NewChatSession(s.sess.Stream(stream.Filter{}))
	}
	chat := s.chatSession
	s.chatMu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Chat-Session", chat.ID())
	flusher, _ := w.(http.Flusher)

	_, err := chat.Send(r.Context(), req.Message, func(chunk string) {
		_, _ = w.Write([]byte(chunk))
		if flusher != nil {
			flusher.Flush()
		}
	})
	if err != nil {
		// Headers are already out; the truncated body is the best signal.
		return
	}
}
