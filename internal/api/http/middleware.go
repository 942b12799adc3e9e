package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/logger"
	"youthorg-backend-trusted/internal/security"
)

type principalKey struct{}

// PrincipalFromContext returns the principal attached by AuthMiddleware.
func PrincipalFromContext(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*domain.Principal)
	return p, ok && p != nil
}

func withPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// AuthMiddleware validates the bearer token and attaches the session principal.
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authorization token is not provided")
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token: "+err.Error())
			return
		}

		p, err := claims.Principal()
		if err != nil {
			// a unit leader without a unit ends the session instead of guessing its scope
			if errors.Is(err, domain.ErrConfiguration) {
				logger.Warn("Rejected misconfigured principal", "member", claims.MemberID, "role", claims.Role, "error", err)
			}
			writeDomainError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}

func extractToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	if len(header) > 7 && strings.ToUpper(header[0:7]) == "BEARER " {
		header = header[7:]
	}
	header = strings.TrimSpace(header)
	return header, header != ""
}
