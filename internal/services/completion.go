package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"visapath/visa-advisor/internal/models"
)

type CompletionClient interface {
	Complete(ctx context.Context, req models.CompletionRequest) (string, error)
}

// RetryPolicy is a fixed count, fixed delay policy. There is no backoff
// and no jitter.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	// AttemptTimeout bounds a single attempt; zero leaves it unbounded.
	AttemptTimeout time.Duration
}

type completionClient struct {
	generator TextGenerator
	policy    RetryPolicy
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewCompletionClient wraps generator with the retry policy. ratePerSecond
// throttles outbound calls; zero or less means unlimited.
func NewCompletionClient(generator TextGenerator, policy RetryPolicy, ratePerSecond float64, logger *zap.Logger) CompletionClient {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}

	return &completionClient{
		generator: generator,
		policy:    policy,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    logger.Named("completion"),
	}
}

// Complete implements CompletionClient.
func (c *completionClient) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		result, err := c.attempt(ctx, req)
		if err == nil {
			if attempt > 1 {
				c.logger.Info("completion succeeded after retry", zap.Int("attempt", attempt))
			}
			return result, nil
		}

		lastErr = err

		if ctx.Err() != nil {
			return "", &ExhaustedError{Attempts: attempt, Last: ctx.Err()}
		}

		if attempt == c.policy.MaxAttempts {
			break
		}

		c.logger.Warn("completion attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.policy.MaxAttempts),
			zap.Duration("delay", c.policy.Delay),
			zap.Error(err),
		)

		if err := waitFor(ctx, c.policy.Delay); err != nil {
			return "", &ExhaustedError{Attempts: attempt, Last: err}
		}
	}

	c.logger.Error("completion attempts exhausted",
		zap.Int("attempts", c.policy.MaxAttempts),
		zap.Error(lastErr),
	)
	return "", &ExhaustedError{Attempts: c.policy.MaxAttempts, Last: lastErr}
}

func (c *completionClient) attempt(ctx context.Context, req models.CompletionRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	if c.policy.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.policy.AttemptTimeout)
		defer cancel()
	}

	text, err := c.generator.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("attempt timed out after %s: %w", c.policy.AttemptTimeout, err)
		}
		return "", err
	}
	return text, nil
}

// waitFor pauses for d without holding the goroutine past ctx cancellation.
func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
