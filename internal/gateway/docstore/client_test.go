package docstore

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type fakeHTTPClient struct {
	requests     []*http.Request
	requestBody  string
	statusCode   int
	responseBody string
}

func (c *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.requests = append(c.requests, req)
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		c.requestBody = string(body)
	}
	statusCode := c.statusCode
	if statusCode == 0 {
		statusCode = 200
	}
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(c.responseBody)),
		Header:     make(http.Header),
	}, nil
}

func TestFirstDecodesLeadingDocument(t *testing.T) {
	httpClient := &fakeHTTPClient{
		responseBody: `{"documents":[{"Name":"Pizzeria"},{"Name":"Other"}]}`,
	}
	client := NewClient("https://docs.test", WithHTTPClient(httpClient))

	var info struct {
		Name string `json:"Name"`
	}
	if err := client.First(context.Background(), "StoreInformations", &info); err != nil {
		t.Fatalf("first returned error: %v", err)
	}
	if info.Name != "Pizzeria" {
		t.Fatalf("expected first document, got %q", info.Name)
	}

	requested := httpClient.requests[0].URL.String()
	if requested != "https://docs.test/collections/StoreInformations/documents" {
		t.Fatalf("unexpected collection request %q", requested)
	}
}

func TestFirstReportsEmptyCollections(t *testing.T) {
	httpClient := &fakeHTTPClient{responseBody: `{"documents":[]}`}
	client := NewClient("https://docs.test", WithHTTPClient(httpClient))

	var into map[string]any
	err := client.First(context.Background(), "Status", &into)
	if !errors.Is(err, ErrEmptyCollection) {
		t.Fatalf("expected empty-collection sentinel, got %v", err)
	}
	if !strings.Contains(err.Error(), "Status") {
		t.Fatalf("expected collection name in message, got %q", err.Error())
	}
}

func TestInsertWritesDocumentUnderGeneratedID(t *testing.T) {
	httpClient := &fakeHTTPClient{responseBody: `{}`}
	client := NewClient(
		"https://docs.test",
		WithHTTPClient(httpClient),
		WithIDGenerator(func() string { return "fixed-id" }),
	)

	id, err := client.Insert(context.Background(), "Abholungen", map[string]string{"name": "Max"})
	if err != nil {
		t.Fatalf("insert returned error: %v", err)
	}
	if id != "fixed-id" {
		t.Fatalf("expected generated id to be returned, got %q", id)
	}

	req := httpClient.requests[0]
	if req.Method != http.MethodPut {
		t.Fatalf("expected PUT, got %s", req.Method)
	}
	if req.URL.String() != "https://docs.test/collections/Abholungen/documents/fixed-id" {
		t.Fatalf("unexpected insert URL %q", req.URL.String())
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected json content type, got %q", got)
	}
	if !strings.Contains(httpClient.requestBody, `"name":"Max"`) {
		t.Fatalf("expected document payload, got %q", httpClient.requestBody)
	}
}

func TestUpstreamStatusErrors(t *testing.T) {
	httpClient := &fakeHTTPClient{statusCode: 500, responseBody: "boom"}
	client := NewClient("https://docs.test", WithHTTPClient(httpClient))

	var into map[string]any
	if err := client.First(context.Background(), "Status", &into); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected upstream sentinel, got %v", err)
	}
}
