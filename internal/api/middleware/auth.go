package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/genops-api/internal/api/shared"
	"github.com/phrazzld/genops-api/internal/domain"
	"github.com/phrazzld/genops-api/internal/platform/logger"
)

// TokenVerifier turns a bearer token into a verified identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Identity, error)
}

// AuthFailureRecorder is notified of every rejected request.
type AuthFailureRecorder interface {
	RecordAuthFailure(reason string)
}

// AuthMiddleware rejects requests without a valid bearer token.
type AuthMiddleware struct {
	verifier TokenVerifier
	recorder AuthFailureRecorder
}

// NewAuthMiddleware creates a new AuthMiddleware. recorder may be nil.
func NewAuthMiddleware(verifier TokenVerifier, recorder AuthFailureRecorder) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		recorder: recorder,
	}
}

// Authenticate validates the bearer token in the Authorization header and
// stores the resulting identity in the request context. The handler never
// runs for unauthenticated requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, reason := bearerToken(r.Header.Get("Authorization"))
		if reason != "" {
			m.reject(w, r, reason, nil)
			return
		}

		identity, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			m.reject(w, r, "invalid_token", err)
			return
		}

		ctx := shared.WithIdentity(r.Context(), identity)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With(slog.Int64("user_id", identity.UserID)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, reason string, err error) {
	if m.recorder != nil {
		m.recorder.RecordAuthFailure(reason)
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Unauthorized", err)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
// A non-empty reason is returned when the header is missing or malformed.
func bearerToken(header string) (string, string) {
	if header == "" {
		return "", "missing_header"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", "invalid_format"
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", "invalid_format"
	}
	return token, ""
}
