// Package auth verifies bearer credentials against the identity service.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sidhant-sriv/home-maintenance-api/config"
)

// ErrInvalidCredential is returned for any credential the identity service
// does not accept, including when the service cannot be reached.
var ErrInvalidCredential = errors.New("invalid or expired token")

// Identity is the verified caller. Only ID is relied upon; the rest is
// passed through from the identity service.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Verifier checks a bearer token and returns the identity it belongs to.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// NewVerifier builds the verifier selected by cfg.AuthMode.
func NewVerifier(cfg config.Config, logger *slog.Logger) Verifier {
	if cfg.AuthMode == config.AuthJWT {
		return NewJWTVerifier(cfg.JWTSecret, cfg.JWTAudience)
	}
	return NewSupabaseVerifier(cfg.SupabaseURL, cfg.SupabaseAnonKey, &http.Client{Timeout: cfg.HTTPTimeout}, logger)
}
