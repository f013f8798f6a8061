package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS wraps h so that browsers served from one of origins may call the API
// with credentials. An origin of "*" allows any origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.ExposedHeaders([]string{"WWW-Authenticate"}),
		handlers.AllowCredentials(),
		handlers.MaxAge(600),
	)
}
