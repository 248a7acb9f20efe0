package mediastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("mediastore")

// ErrUpstream indicates an object storage failure.
var ErrUpstream = errors.New("[MediaStore] error when trying to get response from object storage")

// ErrObjectNotFound is returned when a requested object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// HTTPClient is implemented by http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ObjectRef points at one stored object.
type ObjectRef struct {
	Name string
	URL  string
}

// Client reads the store's object namespace: category documents, item media,
// the news feed and the logo.
type Client struct {
	httpClient HTTPClient
	baseURL    string
}

// Option applies Client options.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates an object storage client for the given bucket base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type listedObject struct {
	Name string `json:"name"`
}

type listResponse struct {
	Items []listedObject `json:"items"`
}

// List returns the objects stored under a path prefix, in listing order.
func (c *Client) List(ctx context.Context, prefix string) ([]ObjectRef, error) {
	params := url.Values{}
	params.Set("prefix", prefix)
	rawURL := c.baseURL + "/o?" + params.Encode()

	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	var payload listResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &UpstreamRequestError{URL: rawURL, Cause: fmt.Errorf("decode listing: %w", err)}
	}
	refs := make([]ObjectRef, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.Name == "" {
			continue
		}
		refs = append(refs, ObjectRef{Name: item.Name, URL: c.ObjectURL(item.Name)})
	}
	log.Debugf("listed %d objects under %q", len(refs), prefix)
	return refs, nil
}

// Stat resolves an object reference, reporting ErrObjectNotFound for paths
// that do not exist.
func (c *Client) Stat(ctx context.Context, path string) (ObjectRef, error) {
	rawURL := c.baseURL + "/o/" + url.PathEscape(path)
	if _, err := c.get(ctx, rawURL); err != nil {
		return ObjectRef{}, err
	}
	return ObjectRef{Name: path, URL: c.ObjectURL(path)}, nil
}

// FetchJSON downloads an object body and decodes it into the target.
func (c *Client) FetchJSON(ctx context.Context, path string, into any) error {
	rawURL := c.ObjectURL(path)
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, into); err != nil {
		return &UpstreamRequestError{URL: rawURL, Cause: fmt.Errorf("decode object body: %w", err)}
	}
	return nil
}

// ObjectURL returns the download location for an object path.
func (c *Client) ObjectURL(path string) string {
	return c.baseURL + "/o/" + url.PathEscape(path) + "?alt=media"
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	startedAt := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamRequestError{Method: http.MethodGet, URL: rawURL, Cause: err}
	}
	defer func() {
		_ = res.Body.Close()
	}()

	rawResponse, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &UpstreamRequestError{
			Method:     http.MethodGet,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Cause:      fmt.Errorf("read response body: %w", err),
		}
	}
	log.Debugf("GET %s status=%d duration=%s bytes=%d", rawURL, res.StatusCode, time.Since(startedAt).Round(time.Millisecond), len(rawResponse))

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrObjectNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &UpstreamRequestError{
			Method:     http.MethodGet,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Body:       string(rawResponse),
		}
	}
	return rawResponse, nil
}
