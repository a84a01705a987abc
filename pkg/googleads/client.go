package googleads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultBaseURL is the REST endpoint of the Google Ads API.
	DefaultBaseURL = "https://googleads.googleapis.com"
	// DefaultAPIVersion is the API version queried when none is configured.
	DefaultAPIVersion = "v18"
	// Scope is the OAuth2 scope required by the Google Ads API.
	Scope = "https://www.googleapis.com/auth/adwords"

	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
)

// Credentials are the values a client needs to authenticate against the Google Ads API.
type Credentials struct {
	DeveloperToken  string
	ClientID        string
	ClientSecret    string
	RefreshToken    string
	LoginCustomerID string // manager account, sent as login-customer-id when set
}

// Client is an authenticated Google Ads REST client. It is safe to share between calls
// and is never mutated after NewClient returns.
type Client struct {
	creds       Credentials
	baseURL     string
	apiVersion  string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
	maxRetries  int
	retryDelay  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, e.g. for a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithAPIVersion overrides the API version segment of every request path.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithTokenSource replaces the refresh-token based token source.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokenSource = ts
	}
}

// WithHTTPClient sets the client used underneath the OAuth2 transport.
// Its Transport is wrapped so every request carries a bearer token.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMaxRetries sets how many times a request is attempted before giving up.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n < 1 {
			n = 1
		}
		c.maxRetries = n
	}
}

// WithRetryDelay sets the base delay between attempts; attempt N waits N times this delay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// NewClient creates a Google Ads API client for the given credentials.
// Access tokens are obtained and refreshed from the refresh token on demand; the context
// is used for those token requests.
func NewClient(ctx context.Context, creds Credentials, opts ...Option) *Client {
	c := &Client{
		creds:      creds,
		baseURL:    DefaultBaseURL,
		apiVersion: DefaultAPIVersion,
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		transport := &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		}
		c.httpClient = &http.Client{
			Timeout:   10 * time.Minute, // large accounts stream for a long time
			Transport: transport,
		}
	}

	if c.tokenSource == nil {
		conf := &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{Scope},
		}
		tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
		c.tokenSource = conf.TokenSource(tokenCtx, &oauth2.Token{RefreshToken: creds.RefreshToken})
	}
	c.tokenSource = oauth2.ReuseTokenSource(nil, c.tokenSource)

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.httpClient = &http.Client{
		Timeout:       c.httpClient.Timeout,
		CheckRedirect: c.httpClient.CheckRedirect,
		Jar:           c.httpClient.Jar,
		Transport:     &oauth2.Transport{Source: c.tokenSource, Base: base},
	}

	return c
}

// Authenticate fetches an access token, so that bad credentials surface before any query runs.
func (c *Client) Authenticate() error {
	if _, err := c.tokenSource.Token(); err != nil {
		return fmt.Errorf("obtain access token: %w", err)
	}
	return nil
}

// SearchStream runs a GAQL query against the customer and returns the streamed batches.
// The caller must Close the stream.
func (c *Client) SearchStream(ctx context.Context, customerID, query string) (ResultStream, error) {
	url := fmt.Sprintf("%s/%s/customers/%s/googleAds:searchStream", c.baseURL, c.apiVersion, customerID)

	body, err := json.Marshal(searchStreamRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	return newStream(resp.Body), nil
}

// ListAccessibleCustomers returns the ids of every customer the credentials can access.
func (c *Client) ListAccessibleCustomers(ctx context.Context) ([]string, error) {
	url := fmt.Sprintf("%s/%s/customers:listAccessibleCustomers", c.baseURL, c.apiVersion)

	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var customers AccessibleCustomersResponse
	if err := json.Unmarshal(body, &customers); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	ids := make([]string, 0, len(customers.ResourceNames))
	for _, name := range customers.ResourceNames {
		ids = append(ids, strings.TrimPrefix(name, "customers/"))
	}
	return ids, nil
}

// do executes the request, retrying transport failures, 429 and 5xx responses.
// On success the caller owns the response body.
func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("developer-token", c.creds.DeveloperToken)
		if c.creds.LoginCustomerID != "" {
			req.Header.Set("login-customer-id", c.creds.LoginCustomerID)
		}
		req.Header.Set("User-Agent", UserAgent)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d failed to execute request: %w", attempt, err)
			if attempt < c.maxRetries && ctx.Err() == nil {
				c.wait(ctx, attempt)
				continue
			}
			return nil, lastErr
		}

		if resp.StatusCode != http.StatusOK {
			data, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			apiErr := parseAPIError(resp.StatusCode, data)
			lastErr = apiErr
			if attempt < c.maxRetries && apiErr.Temporary() {
				c.wait(ctx, attempt)
				continue
			}
			return nil, lastErr
		}

		return resp, nil
	}

	return nil, lastErr
}

func (c *Client) wait(ctx context.Context, attempt int) {
	if c.retryDelay <= 0 {
		return
	}
	t := time.NewTimer(time.Duration(attempt) * c.retryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
