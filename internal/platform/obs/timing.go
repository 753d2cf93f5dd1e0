// Package obs provides request-scoped operation timing for the planning
// pipeline. Every external call (LLM parse, venue search, forecast fetch)
// logs one line carrying the request id, so a slow plan can be broken down
// from the logs alone.
package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey struct{}

// WithRequestID tags a context with the request id assigned at the edge.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the request id from the context, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Time logs the duration of one named operation when the returned func runs.
// Pass a pointer to the caller's named error return so failures share the
// timing line:
//
//	defer obs.Time(ctx, "places.Search")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
