// Package waiting provides bounded polling of host statuses under an
// infra-env. It uses a fixed polling interval for predictable behavior and
// respects caller context cancellation.
package waiting

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/go-logr/logr"

	"github.com/omer-vishlitzky/assisted-test-infra/internal/consts"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/service"
)

// HostLister is the narrow client surface needed for status polling.
type HostLister interface {
	ListHosts(ctx context.Context, infraEnvID string) ([]*service.Host, error)
}

// TimeoutError reports that the expected host count was not reached within
// the wait bound. It carries the last observed state for diagnostics.
type TimeoutError struct {
	InfraEnvID string
	Expected   int
	Matched    int
	Statuses   []string
	Timeout    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for %d hosts of infra-env %s in statuses %v, last seen %d",
		e.Timeout, e.Expected, e.InfraEnvID, e.Statuses, e.Matched)
}

// Options tune the polling loop.
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
	Log      logr.Logger
}

// Option is a functional option for Options.
type Option func(*Options)

// WithTimeout overrides the overall wait bound.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithInterval overrides the poll interval.
func WithInterval(d time.Duration) Option {
	return func(o *Options) { o.Interval = d }
}

// WithLogger sets the logger used for per-poll progress.
func WithLogger(log logr.Logger) Option {
	return func(o *Options) { o.Log = log }
}

// UntilAllHostsInStatuses blocks until at least nodesCount hosts of the
// infra-env report one of the accepted statuses, the timeout elapses, or the
// context is cancelled. List errors are propagated immediately; the poll
// does not paper over a broken client.
func UntilAllHostsInStatuses(ctx context.Context, lister HostLister, infraEnvID string, nodesCount int, statuses []string, opts ...Option) error {
	options := &Options{
		Timeout:  consts.NodesRegisteredTimeout,
		Interval: consts.DefaultStatusPollInterval,
		Log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(options)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, options.Timeout)
	defer cancel()

	ticker := time.NewTicker(options.Interval)
	defer ticker.Stop()

	var lastMatched int
	for {
		matched, err := countMatching(timeoutCtx, lister, infraEnvID, statuses)
		if err != nil {
			// A list aborted by the deadline is still a timeout from the
			// caller's point of view.
			if timeoutCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
				return &TimeoutError{
					InfraEnvID: infraEnvID,
					Expected:   nodesCount,
					Matched:    lastMatched,
					Statuses:   statuses,
					Timeout:    options.Timeout,
				}
			}
			return err
		}
		lastMatched = matched
		options.Log.V(1).Info("polled host statuses",
			"infra_env_id", infraEnvID, "matched", matched, "expected", nodesCount)
		if matched >= nodesCount {
			return nil
		}

		select {
		case <-timeoutCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &TimeoutError{
				InfraEnvID: infraEnvID,
				Expected:   nodesCount,
				Matched:    lastMatched,
				Statuses:   statuses,
				Timeout:    options.Timeout,
			}
		case <-ticker.C:
		}
	}
}

func countMatching(ctx context.Context, lister HostLister, infraEnvID string, statuses []string) (int, error) {
	hosts, err := lister.ListHosts(ctx, infraEnvID)
	if err != nil {
		return 0, fmt.Errorf("failed to list hosts of infra-env %s: %w", infraEnvID, err)
	}
	matched := 0
	for _, host := range hosts {
		if slices.Contains(statuses, host.Status) {
			matched++
		}
	}
	return matched, nil
}
