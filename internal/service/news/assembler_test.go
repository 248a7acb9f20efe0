package news

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dwelter/storefront-cli/internal/gateway/mediastore"
)

type fakeMedia struct {
	objects map[string]string
	listErr error
}

func (m *fakeMedia) List(_ context.Context, prefix string) ([]mediastore.ObjectRef, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	refs := make([]mediastore.ObjectRef, 0)
	for name := range m.objects {
		if strings.HasPrefix(name, prefix) && name != prefix {
			refs = append(refs, mediastore.ObjectRef{Name: name, URL: m.ObjectURL(name)})
		}
	}
	return refs, nil
}

func (m *fakeMedia) Stat(_ context.Context, path string) (mediastore.ObjectRef, error) {
	if _, ok := m.objects[path]; !ok {
		return mediastore.ObjectRef{}, mediastore.ErrObjectNotFound
	}
	return mediastore.ObjectRef{Name: path, URL: m.ObjectURL(path)}, nil
}

func (m *fakeMedia) FetchJSON(_ context.Context, path string, into any) error {
	payload, ok := m.objects[path]
	if !ok {
		return mediastore.ErrObjectNotFound
	}
	return json.Unmarshal([]byte(payload), into)
}

func (m *fakeMedia) ObjectURL(path string) string {
	return "https://store.test/o/" + path + "?alt=media"
}

func TestAssembleJoinsFeedWithImages(t *testing.T) {
	media := &fakeMedia{objects: map[string]string{
		"News/news.json":                    `[{"title":"Neue Pizza Ofen","Description":"Jetzt probieren"},{"title":"Sommerpause","Description":"Bis August"}]`,
		"News/newsImages/NeuePizzaOfen.png": "",
		"News/newsImages/WinterAktion.png":  "",
	}}

	entries, err := NewAssembler(media).Assemble(context.Background())
	if err != nil {
		t.Fatalf("assemble returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ImageURL != media.ObjectURL("News/newsImages/NeuePizzaOfen.png") {
		t.Fatalf("expected whitespace-stripped title join, got %q", entries[0].ImageURL)
	}
	if entries[1].ImageURL != "" {
		t.Fatalf("expected no image for unmatched title, got %q", entries[1].ImageURL)
	}
}

func TestAssembleAcceptsSingleRecordFeeds(t *testing.T) {
	media := &fakeMedia{objects: map[string]string{
		"News/news.json": `{"title":"Eröffnung","Description":"Wir sind da"}`,
	}}

	entries, err := NewAssembler(media).Assemble(context.Background())
	if err != nil {
		t.Fatalf("assemble returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Eröffnung" {
		t.Fatalf("unexpected entries %v", entries)
	}
}

func TestAssembleToleratesImageListingFailures(t *testing.T) {
	media := &fakeMedia{
		objects: map[string]string{
			"News/news.json": `[{"title":"Sommerpause","Description":"Bis August"}]`,
		},
		listErr: errors.New("listing unavailable"),
	}

	entries, err := NewAssembler(media).Assemble(context.Background())
	if err != nil {
		t.Fatalf("assemble returned error: %v", err)
	}
	if entries[0].ImageURL != "" {
		t.Fatalf("expected entry without image, got %q", entries[0].ImageURL)
	}
}

func TestAssembleFailsWithoutFeed(t *testing.T) {
	media := &fakeMedia{objects: map[string]string{}}

	if _, err := NewAssembler(media).Assemble(context.Background()); err == nil {
		t.Fatal("expected error when the feed document is unreachable")
	}
}
