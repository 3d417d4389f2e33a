package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"content_hub/internal/config"
	"content_hub/internal/domain"
)

// Client talks to the hosted auth service. Password checks and session
// issuance happen entirely on the service side; this client only exchanges
// credentials for tokens and derives the caller identity from the response.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger

	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

func NewClient(cfg config.AuthConfig, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		logger:         logger.With("component", "auth"),
		maxAttempts:    cfg.Retry.MaxAttempts,
		initialBackoff: cfg.Retry.InitialBackoff,
		maxBackoff:     cfg.Retry.MaxBackoff,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type serviceError struct {
	Message     string `json:"msg"`
	Description string `json:"error_description"`
}

// SignIn exchanges email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var resp tokenResponse
	if err := c.call(ctx, http.MethodPost, "/token?grant_type=password", "", body, &resp); err != nil {
		return nil, err
	}

	userID := resp.User.ID
	if userID == "" {
		userID = subjectClaim(resp.AccessToken)
	}
	if userID == "" {
		return nil, fmt.Errorf("sign in: token response carries no user id")
	}

	c.logger.Info("signed in", "user_id", userID)

	return &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		UserID:       userID,
		Email:        resp.User.Email,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

// SignOut revokes the session on the service side.
func (c *Client) SignOut(ctx context.Context, sess *Session) error {
	if !sess.Valid() {
		return domain.ErrNotAuthenticated
	}
	return c.call(ctx, http.MethodPost, "/logout", sess.AccessToken, nil, nil)
}

// RecoverPassword asks the service to send a password recovery mail. No
// session is required.
func (c *Client) RecoverPassword(ctx context.Context, email string) error {
	return c.call(ctx, http.MethodPost, "/recover", "", map[string]string{"email": email}, nil)
}

// UpdatePassword sets a new password for the signed-in user.
func (c *Client) UpdatePassword(ctx context.Context, sess *Session, newPassword string) error {
	if !sess.Valid() {
		return domain.ErrNotAuthenticated
	}
	return c.call(ctx, http.MethodPut, "/user", sess.AccessToken, map[string]string{"password": newPassword}, nil)
}

func (c *Client) call(ctx context.Context, method, path, token string, body, out any) error {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		retryable, err := c.doRequest(ctx, method, path, token, body, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable || attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("auth request failed, retrying",
			"path", path,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return lastErr
}

func (c *Client) doRequest(ctx context.Context, method, path, token string, body, out any) (bool, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return true, fmt.Errorf("auth service unavailable: status %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return false, fmt.Errorf("auth service: %s", readServiceError(resp.Body, resp.StatusCode))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("decode response: %w", err)
		}
	}
	return false, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func readServiceError(body io.Reader, status int) string {
	var svcErr serviceError
	if err := json.NewDecoder(body).Decode(&svcErr); err == nil {
		if svcErr.Description != "" {
			return svcErr.Description
		}
		if svcErr.Message != "" {
			return svcErr.Message
		}
	}
	return fmt.Sprintf("status %d", status)
}

// subjectClaim pulls the user id out of the access token without verifying
// the signature. Verification is the data store's job; the claim is only
// used to stamp user_id on created records.
func subjectClaim(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
