package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
)

// ErrIdentityNotFound signals that no user record exists for the supplied
// identifier. Rendering cannot proceed without a resolved identity, so
// callers treat this as fatal to the session.
var ErrIdentityNotFound = errors.New("client: identity not found")

// User is the resolved identity seeding the registration form's contact
// fields. It is read-only input to the intake core.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ResolveUser looks up the user record for userID. A 404 maps to
// ErrIdentityNotFound.
func (s *Service) ResolveUser(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("client: user id is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userURL(userID), nil)
	if err != nil {
		return nil, fmt.Errorf("client: resolve user: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-Api-Key", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: resolve user: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrIdentityNotFound, userID)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("client: resolve user: status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: read response: %w", err)
	}
	var user User
	if err := sonic.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("client: decode user: %w", err)
	}
	if user.ID == "" {
		user.ID = userID
	}
	return &user, nil
}
