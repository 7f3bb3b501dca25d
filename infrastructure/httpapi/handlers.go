package httpapi

import (
	"batepapo/domain"
	"batepapo/errors"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// identityHeader carries the acting participant's name. Earlier revisions of
// the API read it with inconsistent casing; lowercase is canonical and Go's
// header access is case-insensitive anyway.
const identityHeader = "user"

func (s *Server) registerParticipant(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	switch err := s.registry.Register(req); err {
	case nil:
		w.WriteHeader(http.StatusCreated)
	case errors.ErrInvalidName:
		w.WriteHeader(http.StatusUnprocessableEntity)
	case errors.ErrNameTaken:
		w.WriteHeader(http.StatusConflict)
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) listParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := s.registry.List()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if participants == nil {
		participants = []domain.Participant{}
	}
	s.respondJSON(w, participants)
}

func (s *Server) heartbeat(w http.ResponseWriter, r *http.Request) {
	name := r.Header.Get(identityHeader)
	switch err := s.registry.Heartbeat(name); err {
	case nil:
		w.WriteHeader(http.StatusOK)
	case errors.ErrUnknownParticipant:
		w.WriteHeader(http.StatusNotFound)
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req domain.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	from := r.Header.Get(identityHeader)
	switch _, err := s.messages.Send(from, req); err {
	case nil:
		w.WriteHeader(http.StatusCreated)
	case errors.ErrInvalidMessage, errors.ErrUnknownSender:
		w.WriteHeader(http.StatusUnprocessableEntity)
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get(identityHeader)
	limit := parseLimit(r.URL.Query().Get("limit"))

	visible, err := s.messages.ListVisibleTo(caller, limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if visible == nil {
		visible = []domain.Message{}
	}
	s.respondJSON(w, visible)
}

func (s *Server) editMessage(w http.ResponseWriter, r *http.Request) {
	var req domain.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	id := chi.URLParam(r, "messageID")
	caller := r.Header.Get(identityHeader)
	switch err := s.messages.Edit(id, caller, req); err {
	case nil:
		w.WriteHeader(http.StatusOK)
	case errors.ErrInvalidMessage:
		w.WriteHeader(http.StatusUnprocessableEntity)
	case errors.ErrInvalidID, errors.ErrMessageNotFound:
		w.WriteHeader(http.StatusNotFound)
	case errors.ErrNotOwner:
		w.WriteHeader(http.StatusUnauthorized)
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "messageID")
	caller := r.Header.Get(identityHeader)
	switch err := s.messages.Remove(id, caller); err {
	case nil:
		w.WriteHeader(http.StatusOK)
	case errors.ErrInvalidID, errors.ErrMessageNotFound:
		w.WriteHeader(http.StatusNotFound)
	case errors.ErrNotOwner:
		w.WriteHeader(http.StatusUnauthorized)
	default:
		s.internalError(w, r, err)
	}
}

// parseLimit reads the optional limit query parameter. Listing messages has
// no failure mode, so anything unparseable means "no limit".
func parseLimit(raw string) *int {
	if raw == "" {
		return nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &limit
}

func (s *Server) respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	w.WriteHeader(http.StatusInternalServerError)
}
