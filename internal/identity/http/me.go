package http

import (
	"errors"
	"net/http"

	"github.com/gatherly/identity/internal/identity/domain"
	"github.com/gatherly/identity/internal/identity/service"
	"github.com/gatherly/identity/pkg/httpx"
	"github.com/gatherly/identity/pkg/jwtx"
	"github.com/gatherly/identity/pkg/slogx"
)

type MeHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP returns the authenticated caller's public profile with a fresh
// token. AuthnMiddleware has already verified the bearer token, so the
// claim set handed to the service is trusted.
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, unauthorizedResponse)
		return
	}

	profile, err := h.AuthService.CurrentUser(ctx, claimSet(claims))
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			httpx.WriteJSON(w, http.StatusUnauthorized, unauthorizedResponse)
			return
		}
		log.Error("failed to load current user", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to load profile",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ProfileResponse{
		Username:    profile.Username,
		DisplayName: profile.DisplayName,
		Bio:         profile.Bio,
		Image:       profile.Image,
		Token:       profile.Token,
	})
}

// claimSet converts verified token claims into the typed claim mapping the
// resolver consumes. The username claim is the canonical name identifier.
func claimSet(c jwtx.Claims) domain.ClaimSet {
	cs := domain.ClaimSet{}
	if c.Username != "" {
		cs[domain.ClaimNameIdentifier] = c.Username
	}
	if c.Subject != "" {
		cs[domain.ClaimSubject] = c.Subject
	}
	if c.DisplayName != "" {
		cs[domain.ClaimDisplayName] = c.DisplayName
	}
	return cs
}
