package app

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/birrflow/birrflow/internal/config"
	"github.com/birrflow/birrflow/pkg/user"
)

// publicPaths are reachable without a bearer token: signup and login,
// the gateway webhook, and the read-only rate and education feeds.
var publicPaths = []string{
	"/api/auth/",
	"/api/payment/webhook",
	"/api/rates",
	"/api/education/tips",
}

func isPublic(r *http.Request) bool {
	for _, p := range publicPaths {
		if strings.HasPrefix(r.URL.Path, p) {
			// education content is public to read, admin-only to write
			if p == "/api/education/tips" && r.Method != http.MethodGet {
				return false
			}
			return true
		}
	}
	return false
}

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Resolve the bearer token into a user id on the request context
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if isPublic(req) {
				next.ServeHTTP(w, req)
				return
			}

			header := req.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Missing authorization token", http.StatusUnauthorized)
				return
			}

			userId, err := deps.TokenIssuer.Validate(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Debugf("token rejected: %v", err)
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := user.WithId(req.Context(), userId)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}

// RequireAdmin guards a handler so only users flagged as admins get through.
func RequireAdmin(users user.Repo, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId, err := user.CurrentId(r.Context())
		if err != nil {
			http.Error(w, "Missing authorization token", http.StatusUnauthorized)
			return
		}

		u, err := users.FindByID(r.Context(), userId)
		if err != nil {
			log.Errorf("failed to load user %d for admin check: %v", userId, err)
			http.Error(w, "Failed to verify permissions", http.StatusInternalServerError)
			return
		}
		if !u.IsAdmin {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}

		next(w, r)
	}
}
