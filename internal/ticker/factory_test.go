package ticker

import (
	"errors"
	"testing"

	"price-ticker/internal/domain"
)

func TestFactoryCachesPerCurrency(t *testing.T) {
	f := NewFactory(&stubFetcher{})

	a, err := f.Create(domain.Ethereum, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := f.Create(domain.Ethereum, Params{ParamMarket: "ccix", ParamInstruments: "ETH-USD"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatal("expected the cached ticker to be returned")
	}
	if b.Params()[ParamMarket] != DefaultMarket {
		t.Fatal("params must be ignored for a cached ticker")
	}

	fresh, err := f.Create(domain.Ethereum, nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh == a {
		t.Fatal("forceNew must build a new ticker")
	}
	again, _ := f.Create(domain.Ethereum, nil, false)
	if again != a {
		t.Fatal("forceNew must not replace the cached ticker")
	}
}

func TestFactoryCreateWithParams(t *testing.T) {
	f := NewFactory(&stubFetcher{})

	tk, err := f.Create(domain.XRP, Params{ParamMarket: "ccix", ParamInstruments: "XRP-USD"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tk.Params()[ParamMarket] != "ccix" {
		t.Fatalf("unexpected params: %v", tk.Params())
	}

	var paramErr *InvalidParameterError
	if _, err := f.Create(domain.Litecoin, Params{ParamMarket: "cadli"}, false); !errors.As(err, &paramErr) {
		t.Fatalf("expected parameter error, got %v", err)
	}
	if _, err := f.Create(domain.Litecoin, nil, false); err != nil {
		t.Fatalf("failed creation must not poison the cache: %v", err)
	}
}

func TestFactoryRejectsUnknownCurrency(t *testing.T) {
	f := NewFactory(&stubFetcher{})

	_, err := f.Create(domain.Currency(42), nil, false)
	var unsupported *domain.UnsupportedCurrencyError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected unsupported currency error, got %v", err)
	}
}

func TestFactoryCreateFromText(t *testing.T) {
	f := NewFactory(&stubFetcher{})

	tk, err := f.CreateFromText(" btc ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tk.Currency() != domain.Bitcoin {
		t.Fatalf("expected Bitcoin, got %s", tk.Currency())
	}
	byName, _ := f.CreateFromText("bitcoin")
	if byName != tk {
		t.Fatal("name and code should resolve to the same cached ticker")
	}

	_, err = f.CreateFromText("DOGEX")
	var unsupported *domain.UnsupportedCurrencyError
	if !errors.As(err, &unsupported) || unsupported.Input != "DOGEX" {
		t.Fatalf("expected unsupported currency error, got %v", err)
	}
}

func TestFactorySupported(t *testing.T) {
	f := NewFactory(&stubFetcher{})
	got := f.Supported()
	if len(got) != 5 || got[0] != domain.Bitcoin {
		t.Fatalf("unexpected supported list: %v", got)
	}
}
