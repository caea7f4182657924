package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatherly/identity/internal/identity/service"
	"github.com/gatherly/identity/pkg/httpx"
	"github.com/gatherly/identity/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP verifies a credential and returns a session. All authentication
// failures write the one unauthorizedResponse body; the handler never
// distinguishes an unknown email from a wrong password.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	session, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:      "validation_failed",
				Violations: verr.Violations,
			})
		case errors.Is(err, service.ErrUnauthorized):
			httpx.WriteJSON(w, http.StatusUnauthorized, unauthorizedResponse)
		default:
			log.Error("failed to log in", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to log in",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SessionResponse{
		Username:    session.Username,
		DisplayName: session.DisplayName,
		Token:       session.Token,
	})
}
