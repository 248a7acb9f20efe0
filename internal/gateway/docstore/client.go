package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("docstore")

// ErrUpstream indicates a document store failure.
var ErrUpstream = errors.New("[DocStore] error when trying to get response from document store")

// ErrEmptyCollection is returned when a queried collection has no documents.
var ErrEmptyCollection = errors.New("collection has no documents")

// HTTPClient is implemented by http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// API describes the document store operations used by the client.
type API interface {
	First(ctx context.Context, collection string, into any) error
	Insert(ctx context.Context, collection string, document any) (string, error)
}

// Client reads startup collections and writes order documents.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	newID      func() string
}

// Option applies Client options.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithIDGenerator replaces the document id generator.
func WithIDGenerator(newID func() string) Option {
	return func(c *Client) {
		c.newID = newID
	}
}

// NewClient creates a document store client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    baseURL,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type documentsResponse struct {
	Documents []json.RawMessage `json:"documents"`
}

// First fetches a collection and decodes its first document into the target.
func (c *Client) First(ctx context.Context, collection string, into any) error {
	rawURL := c.collectionURL(collection)
	body, err := c.do(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	var payload documentsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("%w: decode collection %s: %v", ErrUpstream, collection, err)
	}
	if len(payload.Documents) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyCollection, collection)
	}
	if err := json.Unmarshal(payload.Documents[0], into); err != nil {
		return fmt.Errorf("%w: decode document in %s: %v", ErrUpstream, collection, err)
	}
	return nil
}

// Insert writes one document under a generated id and returns that id.
func (c *Client) Insert(ctx context.Context, collection string, document any) (string, error) {
	payload, err := json.Marshal(document)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	id := c.newID()
	rawURL := c.collectionURL(collection) + "/" + url.PathEscape(id)
	if _, err := c.do(ctx, http.MethodPut, rawURL, payload); err != nil {
		return "", err
	}
	log.Infof("inserted document %s into %s", id, collection)
	return id, nil
}

func (c *Client) collectionURL(collection string) string {
	return c.baseURL + "/collections/" + url.PathEscape(collection) + "/documents"
}

func (c *Client) do(ctx context.Context, method, rawURL string, body []byte) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	startedAt := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUpstream, method, rawURL, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	rawResponse, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrUpstream, err)
	}
	log.Debugf("%s %s status=%d duration=%s", method, rawURL, res.StatusCode, time.Since(startedAt).Round(time.Millisecond))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status=%d %s %s", ErrUpstream, res.StatusCode, method, rawURL)
	}
	return rawResponse, nil
}
