package ticker

import (
	"context"
	"strings"

	"price-ticker/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MultiTicker reports several currencies from a single upstream request per
// cycle. Each child keeps its own previous amount.
type MultiTicker struct {
	children []*Ticker
	params   Params
	fetcher  Fetcher
	tracer   trace.Tracer
}

// NewMulti builds a multi-ticker. An empty currency list tracks every
// supported currency; nil params request all tracked instruments.
func NewMulti(f *Factory, currencies []domain.Currency, params Params) (*MultiTicker, error) {
	if len(currencies) == 0 {
		currencies = f.Supported()
	}

	seen := make(map[domain.Currency]bool, len(currencies))
	children := make([]*Ticker, 0, len(currencies))
	for _, c := range currencies {
		if seen[c] {
			continue
		}
		seen[c] = true
		child, err := f.Create(c, nil, true)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	m := &MultiTicker{
		children: children,
		fetcher:  f.fetcher,
		tracer:   children[0].tracer,
	}
	if params == nil {
		params = DefaultParams(domain.InstrumentKeys(m.Currencies())...)
	}
	if err := m.SetParams(params); err != nil {
		return nil, err
	}
	return m, nil
}

// Currencies returns the tracked currencies in report order.
func (m *MultiTicker) Currencies() []domain.Currency {
	out := make([]domain.Currency, 0, len(m.children))
	for _, child := range m.children {
		out = append(out, child.currency)
	}
	return out
}

// Children returns the per-currency tickers in report order.
func (m *MultiTicker) Children() []*Ticker {
	return append([]*Ticker(nil), m.children...)
}

// Params returns a copy of the shared request parameters.
func (m *MultiTicker) Params() Params { return m.params.Clone() }

// SetParams validates and stores a copy of the shared request parameters.
func (m *MultiTicker) SetParams(params Params) error {
	if params == nil {
		return &InvalidParameterError{Kind: InvalidParameterType, Detail: "params must be a string-keyed mapping, got nil"}
	}
	if err := params.Validate(); err != nil {
		return err
	}
	m.params = params.Clone()
	return nil
}

// CurrentReport fetches once and renders one line per child; only the first
// line carries the timestamp header. Nothing is advanced unless every child
// parses.
func (m *MultiTicker) CurrentReport(ctx context.Context) (string, error) {
	ctx, span := m.tracer.Start(ctx, "multi-ticker.current-report",
		trace.WithAttributes(attribute.Int("currencies", len(m.children))))
	defer span.End()

	payload, err := m.fetcher.Fetch(ctx, m.params.Clone())
	if err != nil {
		return "", err
	}

	quotes := make([]*domain.Quote, len(m.children))
	for i, child := range m.children {
		if quotes[i], err = child.parse(ctx, payload); err != nil {
			return "", err
		}
	}

	lines := make([]string, len(m.children))
	for i, child := range m.children {
		lines[i] = child.paint(child.render(quotes[i], i == 0))
		child.advance(quotes[i])
	}
	return strings.Join(lines, "\n"), nil
}
