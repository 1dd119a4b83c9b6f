package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/Tushar822/bugtracker/internal/common"
	"github.com/Tushar822/bugtracker/internal/server/models"
)

type contextKey string

const userKey contextKey = "user"

// accessTokenCookie is the cookie carrying the signed access token.
const accessTokenCookie = "access_token"

// currentUser returns the authenticated user stored by authenticate,
// or nil outside an authenticated request.
func currentUser(r *http.Request) *models.User {
	if u, ok := r.Context().Value(userKey).(*models.User); ok {
		return u
	}
	return nil
}

// authenticate is the credential verifier middleware. It reads the
// access_token cookie, resolves it to a user through the user service
// and stores the user in the request context. Any failure, including a
// missing cookie, short-circuits the request with the same 401.
func (s *Server) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(accessTokenCookie)
		if err != nil {
			writeError(w, common.ErrorUnauthorized)
			return
		}

		user, err := s.users.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next(w, r.WithContext(ctx))
	}
}

// requireRole is the role gate: it rejects authenticated callers whose
// role differs from the required one. Must be wrapped by authenticate.
func (s *Server) requireRole(role models.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)
		if user == nil {
			writeError(w, common.ErrorUnauthorized)
			return
		}
		if _, err := s.users.RequireRole(user, role); err != nil {
			writeError(w, err)
			return
		}
		next(w, r)
	}
}

// cors handles the allowed-origins policy with credentialed requests
// (the access token travels as a cookie).
func (s *Server) cors(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(s.allowedOrigins))
	for _, o := range s.allowedOrigins {
		allowed[o] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug(r.Context(), "request handled",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
	})
}
