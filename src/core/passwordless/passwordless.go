package passwordless

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrProvider means the passwordless provider rejected the call or
// answered with something unusable.
var ErrProvider = errors.New("passwordless: provider request failed")

// VerifiedUser is the identity the provider vouches for after a
// successful sign-in verification.
type VerifiedUser struct {
	UserID  string `json:"userId"`
	Success bool   `json:"success"`
	Origin  string `json:"origin"`
	Device  string `json:"device"`
}

// Client talks to the passwordless provider's private API.
type Client struct {
	baseURL    string
	apiSecret  string
	httpClient *http.Client
}

func NewClient(baseURL, apiSecret string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SignIn verifies a sign-in token produced by the provider's client SDK
// and returns the verified identity.
func (c *Client) SignIn(ctx context.Context, token string) (*VerifiedUser, error) {
	body := map[string]string{"token": token}

	var user VerifiedUser
	if err := c.post(ctx, "/signin/verify", body, &user); err != nil {
		return nil, err
	}
	if !user.Success {
		return nil, fmt.Errorf("%w: sign-in token not accepted", ErrProvider)
	}
	return &user, nil
}

// RegisterToken registers a new user with the provider and returns the
// registration token the client needs to finish credential setup.
func (c *Client) RegisterToken(ctx context.Context, userID, alias string) (string, error) {
	body := map[string]string{
		"userId":      userID,
		"username":    alias,
		"displayName": alias,
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/register/token", body, &payload); err != nil {
		return "", err
	}
	if payload.Token == "" {
		return "", fmt.Errorf("%w: register response missing token", ErrProvider)
	}
	return payload.Token, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("ApiSecret", c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %d: %s", ErrProvider, resp.StatusCode, string(detail))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
