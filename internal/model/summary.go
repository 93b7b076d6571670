package model

import "github.com/shopspring/decimal"

// Group is one payer's subtotal within a topic summary.
type Group struct {
	Identifier string
	Total      decimal.Decimal
}

// Summary is a topic's ledger grouped by payer identifier.
// Groups appear in first-occurrence order of each identifier.
type Summary struct {
	Groups     []Group
	GrandTotal decimal.Decimal
}
