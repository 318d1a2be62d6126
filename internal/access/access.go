package access

import (
	"context"
	"encoding/json"
)

// Transport is the slice of the API client the facades need. The
// concrete implementation is api.Client.
type Transport interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
	Patch(ctx context.Context, path string, body any) (json.RawMessage, error)
}

func decode[T any](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}
