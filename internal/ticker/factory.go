package ticker

import (
	"price-ticker/internal/domain"
)

// Factory builds tickers and caches one per currency.
type Factory struct {
	fetcher Fetcher
	opts    []Option
	tickers map[domain.Currency]*Ticker
}

// NewFactory creates a factory whose tickers share fetcher and opts.
func NewFactory(fetcher Fetcher, opts ...Option) *Factory {
	return &Factory{
		fetcher: fetcher,
		opts:    opts,
		tickers: make(map[domain.Currency]*Ticker),
	}
}

// Supported returns every currency the factory can build a ticker for.
func (f *Factory) Supported() []domain.Currency {
	return domain.SupportedCurrencies()
}

// Create returns the cached ticker for currency, building it on first use.
// With forceNew a fresh, uncached ticker is returned. Nil params select the
// defaults; params are ignored when a cached ticker is returned.
func (f *Factory) Create(currency domain.Currency, params Params, forceNew bool) (*Ticker, error) {
	if !currency.IsValid() {
		return nil, &domain.UnsupportedCurrencyError{Input: currency.String(), ValidOptions: domain.ValidSpellings()}
	}
	if !forceNew {
		if t, ok := f.tickers[currency]; ok {
			return t, nil
		}
	}

	t := New(currency, f.fetcher, f.opts...)
	if params != nil {
		if err := t.SetParams(params); err != nil {
			return nil, err
		}
	}
	if !forceNew {
		f.tickers[currency] = t
	}
	return t, nil
}

// CreateFromText resolves text to a currency and returns its ticker.
func (f *Factory) CreateFromText(text string) (*Ticker, error) {
	currency, err := domain.ResolveCurrency(text)
	if err != nil {
		return nil, err
	}
	return f.Create(currency, nil, false)
}
