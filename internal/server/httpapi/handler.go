package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/credgate/credgate/internal/common"
	"github.com/credgate/credgate/internal/server/metrics"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// statusResponse is the outward result shape shared by all endpoints.
// Login additionally carries the issued token.
type statusResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {

	req, ok := s.decodeCredentials(w, r)
	if !ok {
		return
	}

	if _, err := s.users.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, common.ErrorValidation) {
			s.writeJSON(r, w, http.StatusBadRequest, statusResponse{})
			return
		}
		// conflicts and store faults alike: generic failure, no detail
		s.writeJSON(r, w, http.StatusInternalServerError, statusResponse{})
		return
	}

	s.writeJSON(r, w, http.StatusOK, statusResponse{Success: true})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {

	req, ok := s.decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			s.writeJSON(r, w, http.StatusBadRequest, statusResponse{})
		case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorInvalidCredentials):
			// collapsed so responses cannot confirm which usernames exist
			s.writeJSON(r, w, http.StatusUnauthorized, statusResponse{})
		default:
			s.writeJSON(r, w, http.StatusInternalServerError, statusResponse{})
		}
		return
	}

	s.writeJSON(r, w, http.StatusOK, statusResponse{Success: true, Token: token})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {

	token := r.Header.Get(s.tokenHeader)
	if token == "" {
		metrics.TokenValidations.WithLabelValues("missing").Inc()
		s.writeJSON(r, w, http.StatusUnauthorized, statusResponse{})
		return
	}

	if _, err := s.users.Validate(r.Context(), token); err != nil {
		s.writeJSON(r, w, http.StatusUnauthorized, statusResponse{})
		return
	}

	s.writeJSON(r, w, http.StatusOK, statusResponse{Success: true})
}

func (s *Server) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(r, w, http.StatusBadRequest, statusResponse{})
		return credentialsRequest{}, false
	}
	return req, true
}

func (s *Server) writeJSON(r *http.Request, w http.ResponseWriter, status int, body statusResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error(r.Context(), "error writing response", "error", err.Error())
	}
}
