package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/dto"
)

var (
	ErrAuthNotConfigured  = errors.New("authentication service is not configured")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAuthUnavailable    = errors.New("authentication service unavailable")
)

const MinPasswordLength = 6

// AuthClient signs admins in against the hosted authentication service.
// Sessions and token issuance stay with the provider.
type AuthClient struct {
	baseURL    string
	anonKey    string
	configured bool
	httpClient *http.Client
}

func NewAuthClient(cfg *config.Config) *AuthClient {
	return &AuthClient{
		baseURL:    cfg.AuthURL,
		anonKey:    cfg.AuthAnonKey,
		configured: cfg.AuthConfigured(),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type providerError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

// SignInWithPassword exchanges email and password for provider tokens.
func (a *AuthClient) SignInWithPassword(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if !a.configured {
		return nil, ErrAuthNotConfigured
	}

	body, err := json.Marshal(map[string]string{
		"email":    req.Email,
		"password": req.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign-in request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/auth/v1/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build sign-in request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("apikey", a.anonKey)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrAuthUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnauthorized:
		var pe providerError
		_ = json.Unmarshal(raw, &pe)
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, pe.ErrorDescription+pe.Msg)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrAuthUnavailable, resp.StatusCode)
	}

	var out dto.LoginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrAuthUnavailable, err)
	}
	return &out, nil
}

// ValidateLogin applies the same checks as the sign-in form.
func ValidateLogin(req *dto.LoginRequest) *ValidationError {
	switch {
	case req.Email == "":
		return &ValidationError{Field: "email", Missing: true, Message: "Email is required"}
	case !ValidEmail(req.Email):
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	case req.Password == "":
		return &ValidationError{Field: "password", Missing: true, Message: "Password is required"}
	case len(req.Password) < MinPasswordLength:
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}
	return nil
}
