package ports

import "context"

// CatalogSource produces a raw, already-decoded catalog document for the
// normalizer.
type CatalogSource interface {
	Load(ctx context.Context) (any, error)
	Describe() string
}
