package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// expiryMargin is subtracted from the reported TTL so a token is never
// handed out close enough to expiry to die mid-request.
const expiryMargin = 600 * time.Second

const tokenRequestBody = "scope=technology.catalog.read&grant_type=client_credentials"

// TokenSource caches the single bearer token for the catalog service and
// refreshes it before expiry. All refreshes go through the mutex, so
// concurrent callers hitting an expired token wait for one exchange
// instead of each issuing their own.
type TokenSource struct {
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu     sync.Mutex
	token  string
	expiry time.Time

	now func() time.Time
}

func NewTokenSource(tokenURL, clientID, clientSecret string) *TokenSource {
	return &TokenSource{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		now:          time.Now,
	}
}

// Token returns the cached bearer token, refreshing it first if the
// margin-adjusted expiry has passed.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && ts.now().Before(ts.expiry) {
		return ts.token, nil
	}
	if err := ts.refresh(ctx); err != nil {
		return "", err
	}
	return ts.token, nil
}

func (ts *TokenSource) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL, strings.NewReader(tokenRequestBody))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}
	req.SetBasicAuth(ts.clientID, ts.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// The catalog API rejects requests without a browser-ish user agent.
	req.Header.Set("User-Agent", userAgent)

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: token endpoint returned %d: %s", ErrAuth, resp.StatusCode, string(body))
	}

	var payload struct {
		IDToken   string `json:"id_token"`
		ExpiresIn int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("%w: decoding token response: %v", ErrAuth, err)
	}
	if payload.IDToken == "" || payload.ExpiresIn == 0 {
		return fmt.Errorf("%w: token response missing id_token or expires_in", ErrAuth)
	}

	ts.token = payload.IDToken
	ts.expiry = ts.now().Add(time.Duration(payload.ExpiresIn)*time.Second - expiryMargin)
	return nil
}
