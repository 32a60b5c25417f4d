package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/example/techmarket/internal/core/principal"
	"github.com/example/techmarket/internal/ports/primary"
	"github.com/example/techmarket/internal/ports/secondary"
)

// guestTokenHeader carries a guest's minted token on requests made without
// an account credential.
const guestTokenHeader = "X-Guest-Token"

type callerKey struct{}

// callerResolver builds middleware that resolves the request's principal.
// An Authorization bearer wins over a guest token; requests carrying
// neither pass through as anonymous and each handler decides whether that
// is acceptable.
func callerResolver(identity secondary.IdentityProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bearer := bearerToken(r); bearer != "" {
				p, err := identity.Resolve(r.Context(), bearer)
				if err != nil {
					sendFault(w, err)
					return
				}
				next.ServeHTTP(w, r.WithContext(withCaller(r.Context(), p)))
				return
			}

			if token := strings.TrimSpace(r.Header.Get(guestTokenHeader)); token != "" {
				next.ServeHTTP(w, r.WithContext(withCaller(r.Context(), principal.Guest(token, "", ""))))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func withCaller(ctx context.Context, p principal.Principal) context.Context {
	return context.WithValue(ctx, callerKey{}, p)
}

// callerFrom returns the resolved principal, if any.
func callerFrom(ctx context.Context) (principal.Principal, bool) {
	p, ok := ctx.Value(callerKey{}).(principal.Principal)
	return p, ok
}

// AuthHandler issues bearer tokens for profiles.
type AuthHandler struct {
	identity secondary.IdentityProvider
	profiles primary.ProfileService
}

type tokenRequest struct {
	ProfileID string `json:"profile_id"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken mints a bearer token for an existing profile. There is no
// credential check here: token issuance is delegated to the deployment's
// identity layer and this endpoint serves local development.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if _, err := h.profiles.Get(r.Context(), req.ProfileID); err != nil {
		sendFault(w, err)
		return
	}

	token, err := h.identity.Issue(r.Context(), req.ProfileID)
	if err != nil {
		sendFault(w, err)
		return
	}
	sendJSON(w, http.StatusOK, tokenResponse{Token: token})
}
