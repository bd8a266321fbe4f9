package httpapi

import (
	"net/http"
	"strings"

	"github.com/drivenpass/drivenpass/internal/common"
	"github.com/drivenpass/drivenpass/internal/server/auth"
)

// extractBearerToken pulls the token out of an Authorization header.
func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", common.ErrUnauthenticated
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", common.ErrUnauthenticated
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", common.ErrUnauthenticated
	}
	return token, nil
}

// requireAuth wraps a handler with bearer-token authentication: the token
// signature must verify and a session row for the exact token must exist.
// The authenticated user id is injected into the request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			s.writeError(w, r, common.ErrUnauthenticated)
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			s.writeError(w, r, common.ErrUnauthenticated)
			return
		}

		// a signed token is not enough; the session must still be on record
		session, err := s.sessions.FindByToken(r.Context(), token)
		if err != nil || session.UserID != userID {
			s.writeError(w, r, common.ErrUnauthenticated)
			return
		}

		next(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
	}
}
