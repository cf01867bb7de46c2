package middleware

import "net/http"

// SetCORSHeaders marks a response readable from any origin. The static
// frontend is served from a different origin than this backend.
func SetCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
}

// SetPreflightHeaders adds the headers a browser needs to complete a CORS
// preflight for a JSON POST.
func SetPreflightHeaders(h http.Header) {
	SetCORSHeaders(h)
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

// CORS adds the permissive origin header to every response.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetCORSHeaders(w.Header())
		next.ServeHTTP(w, r)
	})
}
