package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AdminClient provides access to the Supabase Admin API for user management.
// It backs account deletion and emailed action links, and seeding the demo user.
type AdminClient struct {
	supabaseURL string
	serviceKey  string
	httpClient  *http.Client
}

var _ IdentityAdmin = (*AdminClient)(nil)

// NewAdminClient creates a new Supabase Admin API client.
// Requires the service role key (SUPABASE_KEY) for elevated permissions.
func NewAdminClient(supabaseURL, serviceKey string) *AdminClient {
	return &AdminClient{
		supabaseURL: supabaseURL,
		serviceKey:  serviceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateUserRequest is the payload for creating a new user
type CreateUserRequest struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// CreateUserResponse is the response from creating a user
type CreateUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ListUsersResponse is the response from listing users
type ListUsersResponse struct {
	Users []CreateUserResponse `json:"users"`
}

// generateLinkRequest is the payload for /admin/generate_link
type generateLinkRequest struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// generateLinkResponse covers both response shapes: older GoTrue versions
// nest the link under properties.
type generateLinkResponse struct {
	ActionLink string `json:"action_link"`
	Properties struct {
		ActionLink string `json:"action_link"`
	} `json:"properties"`
}

func (c *AdminClient) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.supabaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do sends req and decodes a 2xx JSON body into out (if non-nil)
func (c *AdminClient) do(req *http.Request, out interface{}) (int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// DeleteUser deletes the user by id. A missing user is not an error.
func (c *AdminClient) DeleteUser(ctx context.Context, userID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/auth/v1/admin/users/"+userID, nil)
	if err != nil {
		return err
	}

	status, err := c.do(req, nil)
	if status == http.StatusNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// DeleteUserByEmail finds a user by email and deletes them.
// This is idempotent - returns nil if the user doesn't exist.
func (c *AdminClient) DeleteUserByEmail(ctx context.Context, email string) error {
	userID, err := c.findUserIDByEmail(ctx, email)
	if err != nil {
		return err
	}
	if userID == "" {
		return nil
	}
	return c.DeleteUser(ctx, userID)
}

// findUserIDByEmail searches for a user by email and returns their ID.
// Returns empty string if not found.
func (c *AdminClient) findUserIDByEmail(ctx context.Context, email string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/v1/admin/users", nil)
	if err != nil {
		return "", err
	}

	var listResp ListUsersResponse
	if _, err := c.do(req, &listResp); err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}

	for _, user := range listResp.Users {
		if user.Email == email {
			return user.ID, nil
		}
	}
	return "", nil
}

// CreateUser creates a new user with the specified email and password.
// The user is automatically confirmed (no email verification needed).
// Returns the user's UUID.
func (c *AdminClient) CreateUser(ctx context.Context, email, password string, metadata map[string]interface{}) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/admin/users", CreateUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
		UserMetadata: metadata,
	})
	if err != nil {
		return "", err
	}

	var createResp CreateUserResponse
	if _, err := c.do(req, &createResp); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return createResp.ID, nil
}

func (c *AdminClient) PasswordResetLink(ctx context.Context, email string) (string, error) {
	return c.generateLink(ctx, "recovery", email)
}

// EmailVerificationLink uses a magic link; following it confirms the address.
func (c *AdminClient) EmailVerificationLink(ctx context.Context, email string) (string, error) {
	return c.generateLink(ctx, "magiclink", email)
}

func (c *AdminClient) generateLink(ctx context.Context, linkType, email string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/admin/generate_link", generateLinkRequest{
		Type:  linkType,
		Email: email,
	})
	if err != nil {
		return "", err
	}

	var linkResp generateLinkResponse
	if _, err := c.do(req, &linkResp); err != nil {
		return "", fmt.Errorf("generate %s link: %w", linkType, err)
	}

	if linkResp.ActionLink != "" {
		return linkResp.ActionLink, nil
	}
	if linkResp.Properties.ActionLink != "" {
		return linkResp.Properties.ActionLink, nil
	}
	return "", fmt.Errorf("generate %s link: response has no action_link", linkType)
}
