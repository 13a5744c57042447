package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"filecrate/internal/httputil"
)

// Auth verifies the Bearer token and stores its subject as the owner id.
// The storage core trusts the id completely; everything downstream is
// scoped by it.
func Auth(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token subject")
				return
			}

			next.ServeHTTP(w, httputil.WithOwnerID(r, subject))
		})
	}
}
