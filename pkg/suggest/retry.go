package suggest

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lucas-albers-lz4/jsonimg/pkg/log"
)

const (
	// DefaultMaxRetries is the number of retries after a quota error.
	DefaultMaxRetries = 1
	// DefaultRetryDelay is used when a quota error carries no retry delay.
	DefaultRetryDelay = 30 * time.Second
)

var retryDelayPattern = regexp.MustCompile(`"?retryDelay"?\s*:\s*"?(\d+)s`)

// IsQuotaError reports whether err looks like a rate limit or quota failure.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "exceeded")
}

// RetryDelay extracts the server's requested delay from a quota error.
func RetryDelay(err error) (time.Duration, bool) {
	if err == nil {
		return 0, false
	}
	m := retryDelayPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, false
	}
	secs, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// Resilient retries quota errors and otherwise turns failures into an
// empty suggestion list. Its Suggest only returns an error when ctx ends.
type Resilient struct {
	Next         Suggester
	MaxRetries   int
	DefaultDelay time.Duration
	// Sleep waits for d or until ctx is done. Nil means a timer-based wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewResilient wraps next with the default retry policy.
func NewResilient(next Suggester) *Resilient {
	return &Resilient{
		Next:         next,
		MaxRetries:   DefaultMaxRetries,
		DefaultDelay: DefaultRetryDelay,
	}
}

// Suggest implements Suggester.
func (r *Resilient) Suggest(ctx context.Context, keys []string) ([]string, error) {
	for attempt := 0; ; attempt++ {
		fields, err := r.Next.Suggest(ctx, keys)
		if err == nil {
			return fields, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		if !IsQuotaError(err) {
			log.Warn("Field suggestion failed, continuing without suggestions", "error", err)
			return []string{}, nil
		}
		if attempt >= r.MaxRetries {
			log.Warn("Field suggestion quota exhausted, continuing without suggestions",
				"attempts", attempt+1, "error", err)
			return []string{}, nil
		}

		delay, ok := RetryDelay(err)
		if !ok {
			delay = r.DefaultDelay
		}
		log.Info("Field suggestion rate limited, retrying",
			"attempt", attempt+1, "max_attempts", r.MaxRetries+1, "delay", delay.String())
		if err := r.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func (r *Resilient) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep != nil {
		return r.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
