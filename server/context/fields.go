// Package context carries request-scoped log fields on a context.Context.
// The logging package installs ExtractFields as a context extractor so that
// any log call made with a decorated context picks these fields up.
package context

import (
	"context"
)

type fieldsKey struct{}

// WithFields returns a context carrying the given fields merged over any
// fields already present. Later values win on key collision.
func WithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	merged := make(map[string]interface{})
	for k, v := range ExtractFields(ctx) {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// ExtractFields returns the fields stored on the context, or nil if none.
func ExtractFields(ctx context.Context) map[string]interface{} {
	fields, ok := ctx.Value(fieldsKey{}).(map[string]interface{})
	if !ok {
		return nil
	}
	return fields
}
