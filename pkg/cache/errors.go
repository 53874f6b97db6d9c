package cache

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/httputil"
)

// ErrUnavailable wraps transport failures of a remote backend. Callers
// such as the pipeline runner log it and carry on without the cache.
var ErrUnavailable = errors.New(errors.ErrCodeUnavailable, "cache unavailable")

// classify marks Redis transport failures as retryable. Misses, server
// replies and cancellation pass through unchanged.
func classify(ctx context.Context, err error) error {
	if err == nil || stderrors.Is(err, redis.Nil) || ctx.Err() != nil {
		return err
	}
	var reply redis.Error
	if stderrors.As(err, &reply) {
		return err
	}
	return &httputil.RetryableError{Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
}
