// Package blob abstracts object storage for uploaded assets (company logos).
package blob

import "context"

// Store uploads objects and returns their public URL.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
