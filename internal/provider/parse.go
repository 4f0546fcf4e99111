package provider

import (
	"encoding/json"
	"fmt"
	"time"

	"price-ticker/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Response keys of the latest-tick endpoint.
const (
	KeyData      = "Data"
	KeyValue     = "VALUE"
	KeyTimestamp = "VALUE_LAST_UPDATE_TS"
)

// ESTLocation is a fixed UTC-4 zone with no daylight saving.
var ESTLocation = time.FixedZone("EST", -4*60*60)

var amountPrinter = message.NewPrinter(language.English)

// ParseQuote extracts the quote for instrumentKey from a latest-tick payload.
// The payload is only read.
func ParseQuote(payload Payload, instrumentKey string) (*domain.Quote, error) {
	data, err := object(payload, KeyData)
	if err != nil {
		return nil, err
	}
	instrument, err := object(data, instrumentKey)
	if err != nil {
		return nil, err
	}

	rawValue, ok := instrument[KeyValue]
	if !ok {
		return nil, &UpstreamAPIError{MissingField: KeyValue}
	}
	amount, err := toDecimal(rawValue)
	if err != nil {
		return nil, &UpstreamAPIError{MissingField: KeyValue, Reason: err.Error()}
	}

	rawTS, ok := instrument[KeyTimestamp]
	if !ok {
		return nil, &UpstreamAPIError{MissingField: KeyTimestamp}
	}
	unix, err := toUnix(rawTS)
	if err != nil {
		return nil, &UpstreamAPIError{MissingField: KeyTimestamp, Reason: err.Error()}
	}

	observed := time.Unix(unix, 0)
	return &domain.Quote{
		InstrumentKey:     instrumentKey,
		Amount:            amount,
		AmountString:      FormatAmount(amount),
		ObservedAt:        observed.UTC(),
		ObservedAtLocal:   observed.Local(),
		ObservedAtDisplay: FormatEST(observed),
	}, nil
}

// FormatAmount renders a dollar amount as "$65,432.10".
func FormatAmount(amount decimal.Decimal) string {
	return amountPrinter.Sprintf("$%.2f", amount.Round(2).InexactFloat64())
}

// FormatEST renders t in the fixed EST zone, e.g. "Tue Nov 14 18:13:20 2023".
func FormatEST(t time.Time) string {
	return t.In(ESTLocation).Format(time.ANSIC)
}

func object(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, &UpstreamAPIError{MissingField: key}
	}
	switch obj := v.(type) {
	case map[string]any:
		return obj, nil
	case Payload:
		return obj, nil
	default:
		return nil, &UpstreamAPIError{MissingField: key, Reason: fmt.Sprintf("unexpected type %T", v)}
	}
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	default:
		return decimal.Zero, fmt.Errorf("unexpected value type %T", v)
	}
}

func toUnix(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, err
		}
		return int64(f), nil
	case float64:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected timestamp type %T", v)
	}
}
