package ticker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"price-ticker/internal/domain"
	"price-ticker/internal/provider"
)

func TestMultiTickerSingleFetchPerCycle(t *testing.T) {
	fetcher := &stubFetcher{payloads: []provider.Payload{
		payloadFor(map[string]float64{"BTC-USD": 100, "ETH-USD": 50}),
		payloadFor(map[string]float64{"BTC-USD": 105.5, "ETH-USD": 49}),
	}}
	f := NewFactory(fetcher)

	m, err := NewMulti(f, []domain.Currency{domain.Bitcoin, domain.Ethereum}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Params()[ParamInstruments]; got != "BTC-USD,ETH-USD" {
		t.Fatalf("unexpected instruments: %s", got)
	}

	first, err := m.CurrentReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "As of Tue Nov 14 18:13:20 2023 EST:\n\t1 BTC = $100.00\n\t1 ETH = $50.00"
	if first != want {
		t.Fatalf("first report:\n%q\nwant\n%q", first, want)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected exactly one fetch, got %d", fetcher.calls)
	}

	second, err := m.CurrentReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(second, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two lines, got %q", second)
	}
	if lines[1] != "\t1 BTC = $105.50 (+5.5)" || lines[2] != "\t1 ETH = $49.00 (-1.0)" {
		t.Fatalf("unexpected lines: %q", lines[1:])
	}
	if fetcher.calls != 2 {
		t.Fatalf("expected one fetch per cycle, got %d", fetcher.calls)
	}
}

func TestMultiTickerDefaultsToAllCurrencies(t *testing.T) {
	f := NewFactory(&stubFetcher{})

	m, err := NewMulti(f, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Currencies()) != len(domain.SupportedCurrencies()) {
		t.Fatalf("expected every currency, got %v", m.Currencies())
	}
	if got := m.Params()[ParamInstruments]; got != "BTC-USD,ETH-USD,LTC-USD,XRP-USD,DOGE-USD" {
		t.Fatalf("unexpected instruments: %s", got)
	}
}

func TestMultiTickerDedupesAndUsesFreshChildren(t *testing.T) {
	f := NewFactory(&stubFetcher{})
	cached, err := f.Create(domain.Bitcoin, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := NewMulti(f, []domain.Currency{domain.Bitcoin, domain.Bitcoin, domain.XRP}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	children := m.Children()
	if len(children) != 2 {
		t.Fatalf("expected duplicates to collapse, got %d children", len(children))
	}
	if children[0] == cached {
		t.Fatal("multi-ticker must not share the factory's cached ticker")
	}
}

func TestMultiTickerNoPartialAdvance(t *testing.T) {
	fetcher := &stubFetcher{payloads: []provider.Payload{
		payloadFor(map[string]float64{"BTC-USD": 100}),
	}}
	m, err := NewMulti(NewFactory(fetcher), []domain.Currency{domain.Bitcoin, domain.Ethereum}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = m.CurrentReport(context.Background())
	var apiErr *provider.UpstreamAPIError
	if !errors.As(err, &apiErr) || apiErr.MissingField != "ETH-USD" {
		t.Fatalf("expected missing ETH-USD, got %v", err)
	}
	for _, child := range m.Children() {
		if child.PreviousAmount() != "" {
			t.Fatalf("%s advanced despite failed cycle", child.Currency())
		}
	}
}

func TestMultiTickerColorizesEachLine(t *testing.T) {
	fetcher := &stubFetcher{payloads: []provider.Payload{
		payloadFor(map[string]float64{"BTC-USD": 1, "DOGE-USD": 0.1}),
	}}
	colorizer := &recordingColorizer{}
	f := NewFactory(fetcher, WithColorizer(colorizer))

	m, err := NewMulti(f, []domain.Currency{domain.Bitcoin, domain.Dogecoin}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	report, err := m.CurrentReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(colorizer.colors) != 2 || colorizer.colors[0] != domain.ColorGold || colorizer.colors[1] != domain.ColorWhite {
		t.Fatalf("unexpected colors: %v", colorizer.colors)
	}
	if !strings.Contains(report, "\n[WHITE]\t1 DOGE = $0.10") {
		t.Fatalf("unexpected report: %q", report)
	}
}

func TestMultiTickerRejectsIncompleteParams(t *testing.T) {
	fetcher := &stubFetcher{}
	_, err := NewMulti(NewFactory(fetcher), nil, Params{ParamInstruments: "BTC-USD"})

	var paramErr *InvalidParameterError
	if !errors.As(err, &paramErr) || paramErr.Kind != InvalidParameterMissingKey {
		t.Fatalf("expected missing-key error, got %v", err)
	}
	if fetcher.calls != 0 {
		t.Fatal("construction must not fetch")
	}
}
