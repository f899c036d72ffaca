package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/DaniPVargas/Wearvana/src/core/models"
)

const userAgent = "PostmanRuntime/7.43.0"

// retryBackoff is how long to wait before the single retry of a failed
// network call. Overridden in tests.
var retryBackoff = 500 * time.Millisecond

// Client performs text and image searches against the catalog service,
// fetching its bearer token through the TokenSource.
type Client struct {
	tokens         *TokenSource
	textSearchURL  string
	imageSearchURL string
	httpClient     *http.Client
}

func NewClient(tokens *TokenSource, textSearchURL, imageSearchURL string) *Client {
	return &Client{
		tokens:         tokens,
		textSearchURL:  textSearchURL,
		imageSearchURL: imageSearchURL,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchByText looks up catalog items matching the query, optionally
// restricted to one brand. No matches is an empty slice, not an error.
func (c *Client) SearchByText(ctx context.Context, query, brand string) ([]models.Reference, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("brand", brand)
	return c.search(ctx, c.textSearchURL, params)
}

// SearchByImage looks up catalog items similar to the image at the given
// publicly reachable URL.
func (c *Client) SearchByImage(ctx context.Context, imageURL string) ([]models.Reference, error) {
	params := url.Values{}
	params.Set("image", imageURL)
	return c.search(ctx, c.imageSearchURL, params)
}

func (c *Client) search(ctx context.Context, endpoint string, params url.Values) ([]models.Reference, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	// One retry for transport failures only. HTTP-status errors are
	// returned as-is: a 4xx will not get better on a second attempt.
	refs, err := c.doSearch(ctx, endpoint, params, token)
	if err != nil && (errors.Is(err, ErrUnavailable) || errors.Is(err, ErrTimeout)) {
		time.Sleep(retryBackoff)
		refs, err = c.doSearch(ctx, endpoint, params, token)
	}
	return refs, err
}

// catalogItem mirrors the upstream search response schema.
type catalogItem struct {
	Name  string `json:"name"`
	Link  string `json:"link"`
	Brand string `json:"brand"`
	Price struct {
		Value struct {
			Current  float64  `json:"current"`
			Original *float64 `json:"original"`
		} `json:"value"`
	} `json:"price"`
}

func (c *Client) doSearch(ctx context.Context, endpoint string, params url.Values, token string) ([]models.Reference, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	var items []catalogItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, &StatusError{Status: resp.StatusCode, Body: "undecodable response body"}
	}

	references := make([]models.Reference, 0, len(items))
	for _, item := range items {
		references = append(references, models.Reference{
			ClothingName:  item.Name,
			Link:          item.Link,
			CurrentPrice:  item.Price.Value.Current,
			OriginalPrice: item.Price.Value.Original,
			Brand:         item.Brand,
		})
	}
	return references, nil
}
