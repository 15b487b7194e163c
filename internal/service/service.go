// Package service holds the tenant-scoped business operations. Reads
// are memoized through the request cache under the
// "<endpoint>-<tenantID>" key convention; every successful write ends
// by invalidating the affected resource kinds for that tenant.
package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/pitchline/pitchline-api/internal/service"

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name)
}
