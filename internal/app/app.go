// Package app selects between the multi-currency and single-currency tickers
// and runs the chosen one on a polling schedule.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"price-ticker/internal/domain"
	"price-ticker/internal/job"
	"price-ticker/internal/ticker"
	"price-ticker/pkg/logger"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Mode string

const (
	ModeMulti   Mode = "multi"
	ModeFactory Mode = "factory"
)

// SeparatorWidth is the number of dashes printed after each multi report.
const SeparatorWidth = 50

var (
	ErrInvalidMode     = errors.New("invalid mode")
	ErrMissingCurrency = errors.New("factory mode requires a currency")
)

// ParseMode accepts "multi" or "factory" in any case. Empty selects multi.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeMulti, nil
	case ModeMulti, ModeFactory:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q (valid modes: %s, %s)", ErrInvalidMode, s, ModeMulti, ModeFactory)
	}
}

type Options struct {
	Mode string
	// Currency is the free-text currency for factory mode.
	Currency string
	// Currencies limits multi mode; empty tracks every supported currency.
	Currencies []string
	// Params overrides the default request parameters when non-nil.
	Params ticker.Params

	Interval time.Duration
	Factory  *ticker.Factory
	Out      io.Writer
	Tracer   trace.Tracer
}

type App struct {
	mode      Mode
	reporter  job.Reporter
	scheduler *job.Scheduler
}

// New validates opts and builds the reporter. Currency text is resolved before
// anything else so a typo fails without touching the network.
func New(opts Options) (*App, error) {
	mode, err := ParseMode(opts.Mode)
	if err != nil {
		return nil, err
	}
	if opts.Factory == nil {
		return nil, errors.New("app: factory is required")
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	a := &App{mode: mode}
	var schedOpts []job.SchedulerOption
	if opts.Tracer != nil {
		schedOpts = append(schedOpts, job.WithSchedulerTracer(opts.Tracer))
	}

	switch mode {
	case ModeFactory:
		if strings.TrimSpace(opts.Currency) == "" {
			return nil, ErrMissingCurrency
		}
		currency, err := domain.ResolveCurrency(opts.Currency)
		if err != nil {
			return nil, err
		}
		t, err := opts.Factory.Create(currency, opts.Params, false)
		if err != nil {
			return nil, err
		}
		a.reporter = t
	case ModeMulti:
		currencies := make([]domain.Currency, 0, len(opts.Currencies))
		for _, text := range opts.Currencies {
			currency, err := domain.ResolveCurrency(text)
			if err != nil {
				return nil, err
			}
			currencies = append(currencies, currency)
		}
		m, err := ticker.NewMulti(opts.Factory, currencies, opts.Params)
		if err != nil {
			return nil, err
		}
		a.reporter = m
		schedOpts = append(schedOpts, job.WithSeparator(strings.Repeat("-", SeparatorWidth)))
	}

	a.scheduler = job.NewScheduler(a.reporter, opts.Interval, opts.Out, schedOpts...)
	logger.Log.Info("ticker configured",
		zap.String("mode", string(mode)),
		zap.Duration("interval", opts.Interval),
	)
	return a, nil
}

func (a *App) Mode() Mode { return a.mode }

// Reporter returns the ticker or multi-ticker the app drives.
func (a *App) Reporter() job.Reporter { return a.reporter }

// Run polls until ctx is cancelled or a report fails.
func (a *App) Run(ctx context.Context) error {
	return a.scheduler.Run(ctx)
}
