package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// SupabaseVerifier asks the hosted auth service who owns a token
// (GET /auth/v1/user). Nothing is cached, every call goes to the service.
type SupabaseVerifier struct {
	userURL string
	anonKey string
	client  *http.Client
	logger  *slog.Logger
}

func NewSupabaseVerifier(supabaseURL, anonKey string, client *http.Client, logger *slog.Logger) *SupabaseVerifier {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SupabaseVerifier{
		userURL: strings.TrimRight(supabaseURL, "/") + "/auth/v1/user",
		anonKey: anonKey,
		client:  client,
		logger:  logger,
	}
}

func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if v.anonKey != "" {
		req.Header.Set("apikey", v.anonKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.ErrorContext(ctx, "Token verification request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	if resp.StatusCode != http.StatusOK {
		v.logger.WarnContext(ctx, "Token rejected by identity service", "status", resp.StatusCode)
		return nil, ErrInvalidCredential
	}

	var identity Identity
	if err := json.Unmarshal(body, &identity); err != nil {
		return nil, fmt.Errorf("%w: decode user: %v", ErrInvalidCredential, err)
	}
	if identity.ID == "" {
		return nil, fmt.Errorf("%w: user has no id", ErrInvalidCredential)
	}
	return &identity, nil
}
