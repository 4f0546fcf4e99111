package domain

import (
	"fmt"
	"strings"
)

// Currency identifies one of the supported cryptocurrencies.
type Currency int

const (
	Bitcoin Currency = iota + 1
	Ethereum
	Litecoin
	XRP
	Dogecoin
)

// Color names a display color from the fixed palette.
type Color string

const (
	ColorGold   Color = "GOLD"
	ColorPurple Color = "PURPLE"
	ColorGray   Color = "GRAY"
	ColorRed    Color = "RED"
	ColorWhite  Color = "WHITE"
)

// QuoteCurrency is the fiat side of every instrument key.
const QuoteCurrency = "USD"

type currencyInfo struct {
	name    string
	code    string
	aliases []string
}

// currencies is declared in display order; SupportedCurrencies follows it.
var currencies = []Currency{Bitcoin, Ethereum, Litecoin, XRP, Dogecoin}

var currencyTable = map[Currency]currencyInfo{
	Bitcoin:  {name: "BITCOIN", code: "BTC", aliases: []string{"XBT"}},
	Ethereum: {name: "ETHEREUM", code: "ETH"},
	Litecoin: {name: "LITECOIN", code: "LTC"},
	XRP:      {name: "XRP", code: "XRP", aliases: []string{"RIPPLE"}},
	Dogecoin: {name: "DOGECOIN", code: "DOGE"},
}

// currencyColor has no entry for currencies that render in the default color.
var currencyColor = map[Currency]Color{
	Bitcoin:  ColorGold,
	Ethereum: ColorPurple,
	Litecoin: ColorGray,
	XRP:      ColorRed,
}

var currencyBySpelling map[string]Currency

func init() {
	currencyBySpelling = make(map[string]Currency, len(currencyTable)*3)
	for c, info := range currencyTable {
		currencyBySpelling[info.name] = c
		currencyBySpelling[info.code] = c
		for _, alias := range info.aliases {
			currencyBySpelling[alias] = c
		}
	}
}

// SupportedCurrencies returns every known currency in display order.
func SupportedCurrencies() []Currency {
	return append([]Currency(nil), currencies...)
}

// Name returns the canonical upper-case name, e.g. "BITCOIN".
func (c Currency) Name() string {
	return currencyTable[c].name
}

// Code returns the ticker symbol, e.g. "BTC".
func (c Currency) Code() string {
	return currencyTable[c].code
}

func (c Currency) String() string {
	if info, ok := currencyTable[c]; ok {
		return info.code
	}
	return fmt.Sprintf("Currency(%d)", int(c))
}

// InstrumentKey returns the upstream pair identifier, e.g. "BTC-USD".
func (c Currency) InstrumentKey() string {
	return c.Code() + "-" + QuoteCurrency
}

// Color returns the display color, WHITE when none is assigned.
func (c Currency) Color() Color {
	if color, ok := currencyColor[c]; ok {
		return color
	}
	return ColorWhite
}

// IsValid reports whether c is one of the supported currencies.
func (c Currency) IsValid() bool {
	_, ok := currencyTable[c]
	return ok
}

// ResolveCurrency maps free text to a currency. Canonical names, ticker symbols
// and a few common aliases are accepted, case-insensitively.
func ResolveCurrency(text string) (Currency, error) {
	if c, ok := currencyBySpelling[strings.ToUpper(strings.TrimSpace(text))]; ok {
		return c, nil
	}
	return 0, &UnsupportedCurrencyError{Input: text, ValidOptions: ValidSpellings()}
}

// ValidSpellings lists the canonical name and code of every supported currency.
func ValidSpellings() []string {
	out := make([]string, 0, len(currencies)*2)
	for _, c := range currencies {
		out = append(out, c.Name())
		if c.Code() != c.Name() {
			out = append(out, c.Code())
		}
	}
	return out
}

// InstrumentKeys returns the instrument key of each currency, in order.
func InstrumentKeys(cs []Currency) []string {
	keys := make([]string, 0, len(cs))
	for _, c := range cs {
		keys = append(keys, c.InstrumentKey())
	}
	return keys
}

// UnsupportedCurrencyError is returned when text does not name a known currency.
type UnsupportedCurrencyError struct {
	Input        string
	ValidOptions []string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("unsupported cryptocurrency: %s. Supported types: %s",
		e.Input, strings.Join(e.ValidOptions, ", "))
}
