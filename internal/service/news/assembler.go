package news

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/op/go-logging"

	"github.com/dwelter/storefront-cli/internal/domain"
	"github.com/dwelter/storefront-cli/internal/gateway/mediastore"
)

var log = logging.MustGetLogger("news")

const (
	feedObject   = "News/news.json"
	imagesPrefix = "News/newsImages/"
	imageExt     = ".png"
)

// Assembler joins the news feed document with its image folder. The image
// association is by derived filename (title minus whitespace plus ".png"),
// a convention existing feed documents rely on; keep it in this package so a
// future explicit-key scheme only touches the assembler.
type Assembler struct {
	media mediastore.API
}

// NewAssembler creates a news assembler backed by object storage.
func NewAssembler(media mediastore.API) *Assembler {
	return &Assembler{media: media}
}

// Assemble fetches the feed and attaches image locations. It fails only when
// the feed document itself is unreachable; missing images leave entries
// without one.
func (a *Assembler) Assemble(ctx context.Context) ([]domain.NewsItem, error) {
	var raw json.RawMessage
	if err := a.media.FetchJSON(ctx, feedObject, &raw); err != nil {
		return nil, fmt.Errorf("fetch news feed: %w", err)
	}
	entries, err := normalizeFeed(raw)
	if err != nil {
		return nil, fmt.Errorf("parse news feed: %w", err)
	}

	images := a.imageIndex(ctx)
	for i := range entries {
		if url, ok := images[imageKey(entries[i].Title)]; ok {
			entries[i].ImageURL = url
		}
	}
	return entries, nil
}

// normalizeFeed accepts both feed shapes: a single record or an array.
func normalizeFeed(raw json.RawMessage) ([]domain.NewsItem, error) {
	var entries []domain.NewsItem
	if err := json.Unmarshal(raw, &entries); err == nil {
		return entries, nil
	}
	var single domain.NewsItem
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	return []domain.NewsItem{single}, nil
}

func (a *Assembler) imageIndex(ctx context.Context) map[string]string {
	refs, err := a.media.List(ctx, imagesPrefix)
	if err != nil {
		log.Warningf("list news images: %v", err)
		return nil
	}
	index := make(map[string]string, len(refs))
	for _, ref := range refs {
		index[path.Base(ref.Name)] = ref.URL
	}
	return index
}

// imageKey derives the image filename for a feed entry title by removing all
// whitespace.
func imageKey(title string) string {
	return strings.Join(strings.Fields(title), "") + imageExt
}
