package transport

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// InternalMiddleware guards service-to-service endpoints with a
// static API key. When a bcrypt hash of the key is configured the
// presented key is verified against it, so the plaintext never has to
// live in the API's environment.
func InternalMiddleware(keyHash, key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			presented := strings.TrimPrefix(auth, "Bearer ")

			if keyHash != "" {
				if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(presented)); err != nil {
					http.Error(w, "Forbidden", http.StatusForbidden)
					return
				}
			} else if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
