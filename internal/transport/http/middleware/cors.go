package middleware

import (
	"net/http"
	"strings"
)

// CORS handles cross-origin requests. The legacy clients call the API from
// arbitrary origins, so the default allows all; production deployments pass
// an explicit origin list.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	allowedMethods := []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	allowedHeaders := []string{"Accept", "Content-Type", "X-Request-Id"}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if allowed, value := originAllowed(origin, allowedOrigins); allowed {
				w.Header().Set("Access-Control-Allow-Origin", value)
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(allowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(allowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", "3600")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed reports whether origin may be served and the header value to
// send back. A "*" entry allows everything without echoing the origin.
func originAllowed(origin string, allowedOrigins []string) (bool, string) {
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			return true, "*"
		}
		if origin != "" && allowed == origin {
			return true, origin
		}
	}
	return false, ""
}
