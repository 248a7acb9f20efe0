package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/op/go-logging"

	"github.com/dwelter/storefront-cli/internal/domain"
	"github.com/dwelter/storefront-cli/internal/gateway/mediastore"
)

var log = logging.MustGetLogger("catalog")

const menuPrefix = "Menu/"

// Assembler turns the remote category documents and their media into a typed
// catalog. Assembly is all-or-nothing: a failing category document aborts the
// run and no partial catalog is published. Only item images degrade silently.
type Assembler struct {
	media  mediastore.API
	images *ImageResolver
}

// NewAssembler creates a catalog assembler backed by object storage.
func NewAssembler(media mediastore.API) *Assembler {
	return &Assembler{
		media:  media,
		images: NewImageResolver(media),
	}
}

type itemDocument struct {
	ID          any      `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Ingredients []string `json:"ingredients"`
}

// Assemble discovers the category documents, fetches them concurrently and
// resolves every item image before returning the merged catalog.
func (a *Assembler) Assemble(ctx context.Context) (domain.Catalog, error) {
	refs, err := a.media.List(ctx, menuPrefix)
	if err != nil {
		return nil, fmt.Errorf("list category documents: %w", err)
	}
	log.Debugf("discovered %d category documents", len(refs))

	type categoryResult struct {
		name  string
		items []domain.MenuItem
		err   error
	}
	results := make([]categoryResult, len(refs))

	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref mediastore.ObjectRef) {
			defer wg.Done()
			name := categoryName(ref.Name)
			items, err := a.assembleCategory(ctx, name, ref.Name)
			results[i] = categoryResult{name: name, items: items, err: err}
		}(i, ref)
	}
	wg.Wait()

	catalog := make(domain.Catalog, len(results))
	for _, result := range results {
		if result.err != nil {
			return nil, result.err
		}
		catalog[result.name] = result.items
	}
	return catalog, nil
}

func (a *Assembler) assembleCategory(ctx context.Context, category, objectPath string) ([]domain.MenuItem, error) {
	var docs []itemDocument
	if err := a.media.FetchJSON(ctx, objectPath, &docs); err != nil {
		return nil, fmt.Errorf("fetch category %q: %w", category, err)
	}

	// A category document holding an empty array is a valid empty category.
	items := make([]domain.MenuItem, len(docs))
	var wg sync.WaitGroup
	for i, doc := range docs {
		item := domain.MenuItem{
			ID:          domain.NormalizeID(doc.ID),
			Name:        doc.Name,
			Price:       doc.Price,
			Ingredients: domain.FilterEmpty(doc.Ingredients),
			Category:    category,
		}
		wg.Add(1)
		go func(i int, item domain.MenuItem) {
			defer wg.Done()
			item.ImageURL = a.images.Resolve(ctx, category, item.ID)
			items[i] = item
		}(i, item)
	}
	wg.Wait()
	return items, nil
}

// categoryName derives the category identifier from the document name minus
// its extension.
func categoryName(objectPath string) string {
	base := path.Base(objectPath)
	return strings.TrimSuffix(base, path.Ext(base))
}
