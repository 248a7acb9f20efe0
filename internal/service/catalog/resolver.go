package catalog

import (
	"context"
	"errors"

	"github.com/dwelter/storefront-cli/internal/gateway/mediastore"
)

// imageExtensions is the fallback search order. First match wins; the order
// is part of the catalog contract and must not change.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

const mediaPrefix = "Media/"

// ImageResolver finds the media asset for a catalog item by trying a fixed
// ordered set of file extensions.
type ImageResolver struct {
	media mediastore.API
}

// NewImageResolver creates an image resolver backed by object storage.
func NewImageResolver(media mediastore.API) *ImageResolver {
	return &ImageResolver{media: media}
}

// Resolve returns the first resolvable image location for an item, or the
// empty string when no candidate exists. Lookup failures count as missing
// candidates; callers render a placeholder instead of failing.
func (r *ImageResolver) Resolve(ctx context.Context, category, itemID string) string {
	for _, ext := range imageExtensions {
		path := mediaPrefix + category + "/" + itemID + ext
		ref, err := r.media.Stat(ctx, path)
		if err != nil {
			if !errors.Is(err, mediastore.ErrObjectNotFound) {
				log.Warningf("image candidate %s: %v", path, err)
			}
			continue
		}
		return ref.URL
	}
	return ""
}
