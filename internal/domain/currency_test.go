package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveCurrencyRoundTrip(t *testing.T) {
	for _, c := range SupportedCurrencies() {
		for _, text := range []string{c.Name(), c.Code(), c.String(), strings.ToLower(c.Name()), strings.ToLower(c.Code())} {
			got, err := ResolveCurrency(text)
			if err != nil {
				t.Fatalf("ResolveCurrency(%q) unexpected error: %v", text, err)
			}
			if got != c {
				t.Fatalf("ResolveCurrency(%q) = %v, want %v", text, got, c)
			}
		}
	}
}

func TestResolveCurrencyAliases(t *testing.T) {
	tests := map[string]Currency{
		" Bitcoin ": Bitcoin,
		"xbt":       Bitcoin,
		"ripple":    XRP,
		"doge":      Dogecoin,
		"DogeCoin":  Dogecoin,
	}
	for in, want := range tests {
		got, err := ResolveCurrency(in)
		if err != nil || got != want {
			t.Fatalf("ResolveCurrency(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

func TestResolveCurrencyUnsupported(t *testing.T) {
	_, err := ResolveCurrency("unobtainium")
	var unsupported *UnsupportedCurrencyError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedCurrencyError, got %v", err)
	}
	if unsupported.Input != "unobtainium" {
		t.Fatalf("unexpected input: %q", unsupported.Input)
	}

	options := map[string]bool{}
	for _, o := range unsupported.ValidOptions {
		options[o] = true
	}
	for _, c := range SupportedCurrencies() {
		if !options[c.Name()] {
			t.Fatalf("valid options %v missing %s", unsupported.ValidOptions, c.Name())
		}
	}
	if !strings.Contains(err.Error(), "unobtainium") || !strings.Contains(err.Error(), "BITCOIN") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestInstrumentKey(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range SupportedCurrencies() {
		key := c.InstrumentKey()
		if key != c.Code()+"-USD" {
			t.Fatalf("unexpected instrument key %q for %s", key, c.Name())
		}
		if seen[c.Code()] {
			t.Fatalf("duplicate code %s", c.Code())
		}
		seen[c.Code()] = true
	}
	if got := strings.Join(InstrumentKeys([]Currency{Bitcoin, Ethereum}), ","); got != "BTC-USD,ETH-USD" {
		t.Fatalf("unexpected keys: %s", got)
	}
}

func TestCurrencyColor(t *testing.T) {
	tests := map[Currency]Color{
		Bitcoin:  ColorGold,
		Ethereum: ColorPurple,
		Litecoin: ColorGray,
		XRP:      ColorRed,
		Dogecoin: ColorWhite,
		0:        ColorWhite,
	}
	for c, want := range tests {
		if got := c.Color(); got != want {
			t.Fatalf("%v color = %s, want %s", c, got, want)
		}
	}
}

func TestSupportedCurrenciesIsCopy(t *testing.T) {
	cs := SupportedCurrencies()
	cs[0] = Dogecoin
	if SupportedCurrencies()[0] != Bitcoin {
		t.Fatal("SupportedCurrencies must return a fresh slice")
	}
	if Currency(42).IsValid() {
		t.Fatal("unknown currency reported valid")
	}
	if Currency(42).String() != "Currency(42)" {
		t.Fatalf("unexpected string: %s", Currency(42).String())
	}
}
