package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is one parsed price observation for one instrument.
type Quote struct {
	InstrumentKey string          `json:"instrument_key"`
	Amount        decimal.Decimal `json:"amount"`
	AmountString  string          `json:"amount_string"`
	// ObservedAt is when the index last updated the value, not the request time.
	ObservedAt        time.Time `json:"observed_at"`
	ObservedAtLocal   time.Time `json:"-"`
	ObservedAtDisplay string    `json:"observed_at_display"`
}
