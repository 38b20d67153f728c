package generator

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerMinute matches the Gemini free tier.
const DefaultRequestsPerMinute = 15

// RateLimit returns a Middleware allowing at most rpm calls per minute.
// Non-positive rpm disables limiting.
func RateLimit(rpm int) Middleware {
	return func(next Client) Client {
		return RateLimited(next, rpm)
	}
}

// RateLimited wraps client so that calls are spaced to rpm per minute with a
// burst of one. Waiting honours context cancellation.
func RateLimited(client Client, rpm int) Client {
	if rpm <= 0 {
		return client
	}
	return &rateLimited{
		next:    client,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
	}
}

type rateLimited struct {
	next    Client
	limiter *rate.Limiter
}

func (c *rateLimited) Generate(ctx context.Context, req Request) (Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Response{}, errors.Wrap(err, "wait for rate limiter")
	}
	return c.next.Generate(ctx, req)
}
