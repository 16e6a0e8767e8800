package attendance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is where the attendance API listens in a local deployment.
	DefaultBaseURL = "http://localhost:4000"
	// CollectionPath is the fixed path of the attendance collection endpoint.
	CollectionPath = "/api/attendance"

	requestIDHeader = "X-Request-ID"
)

// Client talks to the attendance collection endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type clientOptions struct {
	httpClient *http.Client
	token      string
	timeout    time.Duration
}

// Option customizes a Client.
type Option func(*clientOptions)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithToken attaches a static bearer token to every request.
func WithToken(token string) Option {
	return func(o *clientOptions) {
		o.token = strings.TrimSpace(token)
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// NewClient builds a client for the API rooted at baseURL (scheme and host,
// e.g. http://localhost:4000).
func NewClient(ctx context.Context, baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("parse base URL: %q needs a scheme and host", baseURL)
	}

	options := clientOptions{httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if options.token != "" {
		base := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(base, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: options.token,
			TokenType:   "Bearer",
		}))
	}
	if options.timeout > 0 {
		withTimeout := *httpClient
		withTimeout.Timeout = options.timeout
		httpClient = &withTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(parsed.String(), "/"),
		httpClient: httpClient,
	}, nil
}

// CollectionURL returns the absolute URL of the collection endpoint.
func (c *Client) CollectionURL() string {
	return c.baseURL + CollectionPath
}

// List fetches the entire attendance collection in server order.
func (c *Client) List(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := c.do(ctx, "list", http.MethodGet, c.CollectionURL(), nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Create posts a draft and returns the stored record with its server-assigned id.
func (c *Client) Create(ctx context.Context, draft Draft) (Record, error) {
	if !draft.Complete() {
		return Record{}, ErrIncompleteDraft
	}
	var created Record
	if err := c.do(ctx, "create", http.MethodPost, c.CollectionURL(), draft, &created); err != nil {
		return Record{}, err
	}
	return created, nil
}

// Delete removes the record identified by id. The response body is ignored.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	endpoint := c.CollectionURL() + "/" + url.PathEscape(id)
	return c.do(ctx, "delete", http.MethodDelete, endpoint, nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, payload, out any) error {
	requestID := uuid.NewString()
	fail := func(status int, err error) error {
		return &RequestError{
			Op:         op,
			Method:     method,
			URL:        endpoint,
			StatusCode: status,
			RequestID:  requestID,
			Err:        err,
		}
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fail(0, fmt.Errorf("encoding request: %w", err))
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fail(0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(0, err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("reading response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(data))))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fail(0, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}
