package model

import "github.com/shopspring/decimal"

// Entry is a single recorded transaction in a topic's ledger.
// Immutable once created, except for late correlation-id binding
// and removal by undo.
type Entry struct {
	// ID is a store-minted handle, stable across undos of other
	// entries. Never reused within a topic's lifetime.
	ID            uint64
	Identifier    string
	Amount        decimal.Decimal // always > 0
	DedupKey      string          // empty for manual entries
	CorrelationID string          // empty until bound; lookup key for targeted undo
}
