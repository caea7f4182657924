package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatherly/identity/internal/identity/service"
	"github.com/gatherly/identity/pkg/httpx"
	"github.com/gatherly/identity/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP creates a new account and returns a session for it.
// Validation failures enumerate every violation; a uniqueness collision is
// reported generically without naming the colliding field.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	session, err := h.AuthService.Register(ctx, service.RegisterParams{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:      "validation_failed",
				Violations: verr.Violations,
			})
		case errors.Is(err, service.ErrConflict):
			httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
				Error:            "registration_conflict",
				ErrorDescription: "Registration could not be completed",
			})
		default:
			log.Error("failed to register account", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to register",
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
