package mediastore

import "context"

// API describes the object storage operations used by the client.
type API interface {
	List(ctx context.Context, prefix string) ([]ObjectRef, error)
	Stat(ctx context.Context, path string) (ObjectRef, error)
	FetchJSON(ctx context.Context, path string, into any) error
	ObjectURL(path string) string
}
