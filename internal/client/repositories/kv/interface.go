// Package kv is the local key-value persistence used by the client stores.
// Each store keeps its whole state as one JSON document under a fixed key.
package kv

import "context"

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key and Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
