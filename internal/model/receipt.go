package model

import "github.com/shopspring/decimal"

// IdentifierUnknown is the sentinel identifier used when no payer
// identifier could be extracted from recognized text.
const IdentifierUnknown = "Unknown"

// Receipt holds the fields extracted from one receipt's recognized text.
// Produced fresh per extraction call and never mutated.
type Receipt struct {
	Identifier      string // canonical payer id, possibly labeled
	Amount          decimal.Decimal
	AmountFound     bool
	IdentifierFound bool
}
