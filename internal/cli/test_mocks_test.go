package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dwelter/storefront-cli/internal/config"
	"github.com/dwelter/storefront-cli/internal/gateway/docstore"
	"github.com/dwelter/storefront-cli/internal/gateway/mediastore"
)

// testMedia serves a fixed object namespace, mirroring the bucket layout the
// client consumes: Menu/ documents, Media/ images, the news feed.
type testMedia struct {
	objects map[string]string
}

func newTestMedia() *testMedia {
	return &testMedia{objects: map[string]string{
		"Menu/Pizza.json":   `[{"id":1,"name":"Margherita","price":"8,00€","ingredients":["Tomato","Cheese"]}]`,
		"Menu/Salads.json":  `[{"id":1,"name":"Caesar","price":"4,50€"}]`,
		"Media/Pizza/1.jpg": "",
	}}
}

func (m *testMedia) List(_ context.Context, prefix string) ([]mediastore.ObjectRef, error) {
	refs := make([]mediastore.ObjectRef, 0)
	for name := range m.objects {
		if strings.HasPrefix(name, prefix) {
			refs = append(refs, mediastore.ObjectRef{Name: name, URL: m.ObjectURL(name)})
		}
	}
	return refs, nil
}

func (m *testMedia) Stat(_ context.Context, path string) (mediastore.ObjectRef, error) {
	if _, ok := m.objects[path]; !ok {
		return mediastore.ObjectRef{}, mediastore.ErrObjectNotFound
	}
	return mediastore.ObjectRef{Name: path, URL: m.ObjectURL(path)}, nil
}

func (m *testMedia) FetchJSON(_ context.Context, path string, into any) error {
	payload, ok := m.objects[path]
	if !ok {
		return mediastore.ErrObjectNotFound
	}
	return json.Unmarshal([]byte(payload), into)
}

func (m *testMedia) ObjectURL(path string) string {
	return "https://store.test/o/" + path + "?alt=media"
}

// testDocs records inserts and serves one document per collection.
type testDocs struct {
	documents map[string]string
	inserted  []insertedDocument
}

type insertedDocument struct {
	collection string
	document   any
}

func (d *testDocs) First(_ context.Context, collection string, into any) error {
	payload, ok := d.documents[collection]
	if !ok {
		return fmt.Errorf("%w: %s", docstore.ErrEmptyCollection, collection)
	}
	return json.Unmarshal([]byte(payload), into)
}

func (d *testDocs) Insert(_ context.Context, collection string, document any) (string, error) {
	d.inserted = append(d.inserted, insertedDocument{collection: collection, document: document})
	return fmt.Sprintf("order-%d", len(d.inserted)), nil
}

// testProfiles keeps profiles in memory.
type testProfiles struct {
	profiles config.Profiles
	loadErr  error
}

func (p *testProfiles) Path() string {
	return "/tmp/profiles.json"
}

func (p *testProfiles) Load(context.Context) (config.Profiles, error) {
	if p.loadErr != nil {
		return config.Profiles{}, p.loadErr
	}
	if len(p.profiles.Entries) == 0 {
		return config.Profiles{}, config.ErrProfilesNotFound
	}
	return p.profiles, nil
}

func (p *testProfiles) Save(_ context.Context, profiles config.Profiles) error {
	p.profiles = profiles
	return nil
}

func testDependencies() (Dependencies, *testDocs) {
	docs := &testDocs{documents: map[string]string{}}
	return Dependencies{
		Media:    newTestMedia(),
		Docs:     docs,
		Profiles: &testProfiles{},
		Version:  "test",
	}, docs
}
