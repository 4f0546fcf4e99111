package job

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"price-ticker/pkg/logger"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Reporter produces one rendered price report per call.
type Reporter interface {
	CurrentReport(ctx context.Context) (string, error)
}

// Scheduler prints a fresh report every interval until its context is
// cancelled.
type Scheduler struct {
	reporter  Reporter
	interval  time.Duration
	out       io.Writer
	separator string
	tracer    trace.Tracer
	now       func() time.Time

	lastCheckedAt time.Time
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSeparator prints sep on its own line after every report.
func WithSeparator(sep string) SchedulerOption {
	return func(s *Scheduler) { s.separator = sep }
}

// WithSchedulerTracer sets the tracer used for per-check spans.
func WithSchedulerTracer(tracer trace.Tracer) SchedulerOption {
	return func(s *Scheduler) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

func NewScheduler(reporter Reporter, interval time.Duration, out io.Writer, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		reporter: reporter,
		interval: interval,
		out:      out,
		tracer:   noop.NewTracerProvider().Tracer("scheduler"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LastCheckedAt returns when the last report finished, zero before the first.
func (s *Scheduler) LastCheckedAt() time.Time { return s.lastCheckedAt }

// ShouldAdvance reports whether a new check is due.
func ShouldAdvance(lastCheckedAt, now time.Time, interval time.Duration) bool {
	if lastCheckedAt.IsZero() {
		return true
	}
	return now.Sub(lastCheckedAt) >= interval
}

// Run checks immediately, then once per interval. Cancellation of ctx ends the
// loop cleanly; a report error ends it with that error.
func (s *Scheduler) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "Starting continuous check every %s press Ctrl+C to exit.\n", FormatInterval(s.interval))
	logger.Log.Info("scheduler starting", zap.Duration("interval", s.interval))

	for {
		if err := ctx.Err(); err != nil {
			return s.exit()
		}

		now := s.now()
		if !ShouldAdvance(s.lastCheckedAt, now, s.interval) {
			wait := s.interval - now.Sub(s.lastCheckedAt)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return s.exit()
			case <-timer.C:
			}
			continue
		}

		if err := s.check(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, context.Canceled) {
				return s.exit()
			}
			logger.Log.Error("price check failed", zap.Error(err))
			return err
		}
		s.lastCheckedAt = s.now()
	}
}

func (s *Scheduler) check(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "scheduler.check")
	defer span.End()

	report, err := s.reporter.CurrentReport(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, report)
	if s.separator != "" {
		fmt.Fprintln(s.out, s.separator)
	}
	return nil
}

func (s *Scheduler) exit() error {
	fmt.Fprintln(s.out, "Exiting...")
	logger.Log.Info("scheduler stopped")
	return nil
}

// FormatInterval renders d as "N seconds" up to a minute, and as
// "M minutes" or "M minutes and S seconds" beyond that.
func FormatInterval(d time.Duration) string {
	total := int(d / time.Second)
	if total <= 60 {
		return fmt.Sprintf("%d seconds", total)
	}
	minutes, seconds := total/60, total%60
	if seconds > 0 {
		return fmt.Sprintf("%d minutes and %d seconds", minutes, seconds)
	}
	return fmt.Sprintf("%d minutes", minutes)
}
