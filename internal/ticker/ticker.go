package ticker

import (
	"context"
	"fmt"
	"strings"

	"price-ticker/internal/domain"
	"price-ticker/internal/provider"
	"price-ticker/pkg/logger"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Fetcher retrieves one raw latest-tick payload.
type Fetcher interface {
	Fetch(ctx context.Context, params map[string]string) (provider.Payload, error)
}

// QuotePublisher receives every quote a ticker parses.
type QuotePublisher interface {
	PublishQuote(ctx context.Context, quote *domain.Quote) error
}

// Ticker reports the price of one currency and remembers the previous reading
// so the next report can show the change.
type Ticker struct {
	currency  domain.Currency
	params    Params
	fetcher   Fetcher
	colorize  bool
	colorizer Colorizer
	publisher QuotePublisher
	tracer    trace.Tracer

	previous       *decimal.Decimal
	previousString string
}

// Option configures a Ticker.
type Option func(*Ticker)

// WithColorizer enables colorized output through c. A nil c disables it.
func WithColorizer(c Colorizer) Option {
	return func(t *Ticker) {
		t.colorizer = c
		t.colorize = c != nil
	}
}

// WithPublisher hands every parsed quote to p.
func WithPublisher(p QuotePublisher) Option {
	return func(t *Ticker) { t.publisher = p }
}

// WithTracer sets the tracer used for report spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(t *Ticker) {
		if tracer != nil {
			t.tracer = tracer
		}
	}
}

// New creates a ticker for currency with the default request parameters.
func New(currency domain.Currency, fetcher Fetcher, opts ...Option) *Ticker {
	t := &Ticker{
		currency:  currency,
		params:    DefaultParams(currency.InstrumentKey()),
		fetcher:   fetcher,
		colorizer: PassthroughColorizer{},
		tracer:    noop.NewTracerProvider().Tracer("ticker"),
	}
	for _, opt := range opts {
		opt(t)
	}
	logger.Log.Info("initializing ticker",
		zap.String("currency", currency.Name()),
		zap.String("instruments", t.params[ParamInstruments]),
	)
	return t
}

// Currency returns the bound currency.
func (t *Ticker) Currency() domain.Currency { return t.currency }

// Params returns a copy of the request parameters in effect.
func (t *Ticker) Params() Params { return t.params.Clone() }

// SetParams validates and stores a copy of params.
func (t *Ticker) SetParams(params Params) error {
	if params == nil {
		return &InvalidParameterError{Kind: InvalidParameterType, Detail: "params must be a string-keyed mapping, got nil"}
	}
	if err := params.Validate(); err != nil {
		return err
	}
	t.params = params.Clone()
	return nil
}

// ColorizationEnabled reports whether output is colorized.
func (t *Ticker) ColorizationEnabled() bool { return t.colorize }

// PreviousAmount returns the last reported amount string, empty before the
// first successful report.
func (t *Ticker) PreviousAmount() string { return t.previousString }

// CurrentReport fetches the latest price and renders it with a timestamp
// header. Each successful call advances the previous amount, so the delta of
// the next call is relative to this one.
func (t *Ticker) CurrentReport(ctx context.Context) (string, error) {
	ctx, span := t.tracer.Start(ctx, "ticker.current-report",
		trace.WithAttributes(attribute.String("currency", t.currency.Code())))
	defer span.End()

	payload, err := t.fetcher.Fetch(ctx, t.params.Clone())
	if err != nil {
		return "", err
	}
	quote, err := t.parse(ctx, payload)
	if err != nil {
		return "", err
	}
	report := t.render(quote, true)
	t.advance(quote)
	return t.paint(report), nil
}

// parse extracts this ticker's quote from a shared payload without touching
// ticker state.
func (t *Ticker) parse(ctx context.Context, payload provider.Payload) (*domain.Quote, error) {
	quote, err := provider.ParseQuote(payload, t.currency.InstrumentKey())
	if err != nil {
		return nil, err
	}
	if t.publisher != nil {
		if err := t.publisher.PublishQuote(ctx, quote); err != nil {
			logger.Log.Warn("publish quote failed",
				zap.String("instrument", quote.InstrumentKey),
				zap.Error(err),
			)
		}
	}
	return quote, nil
}

func (t *Ticker) render(quote *domain.Quote, withHeader bool) string {
	line := fmt.Sprintf("\t1 %s = %s", t.currency.Code(), quote.AmountString)
	if delta := t.delta(quote); delta != "" {
		line += " " + delta
	}
	if withHeader {
		return fmt.Sprintf("As of %s EST:\n%s", quote.ObservedAtDisplay, line)
	}
	return line
}

func (t *Ticker) delta(quote *domain.Quote) string {
	if t.previous == nil {
		return ""
	}
	return FormatDelta(quote.Amount.Round(2).Sub(*t.previous))
}

func (t *Ticker) advance(quote *domain.Quote) {
	amount := quote.Amount.Round(2)
	t.previous = &amount
	t.previousString = quote.AmountString
}

func (t *Ticker) paint(text string) string {
	if !t.colorize || t.colorizer == nil {
		return text
	}
	return t.colorizer.Colorize(text, t.currency.Color())
}

// FormatDelta renders a price change as "(+5.5)", "(-3.25)" or "(0.0)".
func FormatDelta(d decimal.Decimal) string {
	d = d.Round(2)
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	if d.IsPositive() {
		s = "+" + s
	}
	return "(" + s + ")"
}
