package fakeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type bodyKey struct{}

func withBody(ctx context.Context, body []byte) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

// decodeBody decodes the body captured by the recording middleware.
func decodeBody(r *http.Request, v any) error {
	body, _ := r.Context().Value(bodyKey{}).([]byte)
	if len(body) == 0 {
		return errors.New("empty body")
	}
	return json.Unmarshal(body, v)
}

func trimAPIPrefix(tmpl string) string {
	return strings.TrimPrefix(tmpl, "/api")
}
