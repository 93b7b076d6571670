// Package ledger keeps the per-topic running tally of recorded receipts.
package ledger

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/resibo-dev/resibo/internal/model"
)

// Rejection reasons returned inside a Rejected outcome.
const (
	ReasonNoAmount      = "no amount"
	ReasonNoIdentifier  = "no identifier"
	ReasonInvalidAmount = "invalid amount"
)

// RecordStatus classifies the outcome of a record attempt.
type RecordStatus int

const (
	Recorded RecordStatus = iota
	Duplicate
	Rejected
)

// RecordOutcome is the result of Record or ManualAdd. On Recorded,
// Entry.ID is the stable handle for AttachCorrelation.
type RecordOutcome struct {
	Status RecordStatus
	Entry  model.Entry // set when Status == Recorded
	Reason string      // set when Status == Rejected
	// Amount carries the parsed amount on a "no identifier"
	// rejection so the caller can prompt for a manual correction.
	// Nothing is stored.
	Amount decimal.Decimal
}

// UndoStatus classifies the outcome of an undo attempt.
type UndoStatus int

const (
	UndoRemoved UndoStatus = iota
	UndoEmpty
	UndoNotFound
)

// IdentifierResolver canonicalizes free-text payer identifiers for
// manual entries. Satisfied by directory.Resolver. Exact equality
// only: a substring match must not rewrite a hand-typed identifier.
type IdentifierResolver interface {
	ResolveExact(text string) (string, bool)
}

// topicLedger is the Active state of one topic: an append-only entry
// sequence plus the dedup keys already seen. Insertion order decides
// what "last" means for undo; entry ids are minted monotonically and
// never reused, so they stay valid handles across removals.
type topicLedger struct {
	entries  []model.Entry
	seenKeys map[string]bool
	nextID   uint64
}

// append mints a stable id for e and adds it to the sequence.
func (tl *topicLedger) append(e model.Entry) model.Entry {
	tl.nextID++
	e.ID = tl.nextID
	tl.entries = append(tl.entries, e)
	return e
}

// Store owns the topic registry. All mutation goes through one mutex;
// operations are short and never block on I/O, so a single lock is
// enough (contention is per-chat, not per-request).
type Store struct {
	mu       sync.Mutex
	topics   map[string]*topicLedger
	resolver IdentifierResolver
}

// NewStore creates an empty Store. The resolver canonicalizes manual
// identifiers and may be nil in tests that don't exercise ManualAdd.
func NewStore(resolver IdentifierResolver) *Store {
	return &Store{
		topics:   make(map[string]*topicLedger),
		resolver: resolver,
	}
}

// topic returns the ledger for id, creating it on first write.
func (s *Store) topic(id string) *topicLedger {
	tl, ok := s.topics[id]
	if !ok {
		tl = &topicLedger{seenKeys: make(map[string]bool)}
		s.topics[id] = tl
	}
	return tl
}

// Record appends an extracted receipt to a topic's ledger.
// Order matters: the duplicate check runs before any field
// validation so a resubmitted photo is reported as a duplicate even
// when its extraction partially failed.
func (s *Store) Record(topicID, dedupKey string, r model.Receipt) RecordOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	tl := s.topic(topicID)

	if dedupKey != "" && tl.seenKeys[dedupKey] {
		return RecordOutcome{Status: Duplicate}
	}
	if !r.AmountFound || !r.Amount.IsPositive() {
		return RecordOutcome{Status: Rejected, Reason: ReasonNoAmount}
	}
	if !r.IdentifierFound {
		return RecordOutcome{Status: Rejected, Reason: ReasonNoIdentifier, Amount: r.Amount}
	}

	entry := tl.append(model.Entry{
		Identifier: r.Identifier,
		Amount:     r.Amount,
		DedupKey:   dedupKey,
	})
	if dedupKey != "" {
		tl.seenKeys[dedupKey] = true
	}
	return RecordOutcome{Status: Recorded, Entry: entry}
}

// ManualAdd records a hand-typed entry. The identifier is resolved
// against the directory when it matches a known alias, otherwise used
// verbatim. Manual entries carry no dedup key.
func (s *Store) ManualAdd(topicID, identifierText, amountText string) RecordOutcome {
	amount, err := decimal.NewFromString(strings.TrimSpace(amountText))
	if err != nil || !amount.IsPositive() {
		return RecordOutcome{Status: Rejected, Reason: ReasonInvalidAmount}
	}

	identifier := strings.TrimSpace(identifierText)
	if identifier == "" {
		return RecordOutcome{Status: Rejected, Reason: ReasonNoIdentifier}
	}
	if s.resolver != nil {
		if canonical, ok := s.resolver.ResolveExact(identifier); ok {
			identifier = canonical
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tl := s.topic(topicID)
	entry := tl.append(model.Entry{Identifier: identifier, Amount: amount})
	return RecordOutcome{Status: Recorded, Entry: entry}
}

// AttachCorrelation binds a correlation id to a previously recorded
// entry, addressed by its stable id. The correlation id does not
// exist until the caller has sent its confirmation message, hence the
// second phase. Returns false when the entry has since been removed;
// ids are never reused, so a stale handle cannot land on another
// entry even if undos ran in between.
func (s *Store) AttachCorrelation(topicID string, entryID uint64, correlationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tl, ok := s.topics[topicID]
	if !ok {
		return false
	}
	for i := range tl.entries {
		if tl.entries[i].ID == entryID {
			tl.entries[i].CorrelationID = correlationID
			return true
		}
	}
	return false
}

// UndoLast removes the most recently appended entry regardless of
// correlation id, releasing its dedup key so the same photo can be
// recorded again. The topic stays Active even when emptied; only
// Clear drops it.
func (s *Store) UndoLast(topicID string) (model.Entry, UndoStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tl, ok := s.topics[topicID]
	if !ok || len(tl.entries) == 0 {
		return model.Entry{}, UndoEmpty
	}
	return tl.remove(len(tl.entries) - 1), UndoRemoved
}

// UndoByCorrelation removes the entry bound to correlationID, earliest
// match first. It never falls back to removing the last entry.
func (s *Store) UndoByCorrelation(topicID, correlationID string) (model.Entry, UndoStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tl, ok := s.topics[topicID]
	if !ok || correlationID == "" {
		return model.Entry{}, UndoNotFound
	}
	for i, e := range tl.entries {
		if e.CorrelationID == correlationID {
			return tl.remove(i), UndoRemoved
		}
	}
	return model.Entry{}, UndoNotFound
}

// remove deletes the entry at i preserving the order of the rest,
// and releases its dedup key. Caller holds the lock.
func (tl *topicLedger) remove(i int) model.Entry {
	e := tl.entries[i]
	tl.entries = append(tl.entries[:i], tl.entries[i+1:]...)
	if e.DedupKey != "" {
		delete(tl.seenKeys, e.DedupKey)
	}
	return e
}

// Clear drops the whole topic ledger. Returns false when there was
// nothing to clear.
func (s *Store) Clear(topicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.topics[topicID]; !ok {
		return false
	}
	delete(s.topics, topicID)
	return true
}

// Snapshot returns a copy of a topic's entries in insertion order.
func (s *Store) Snapshot(topicID string) []model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	tl, ok := s.topics[topicID]
	if !ok {
		return nil
	}
	out := make([]model.Entry, len(tl.entries))
	copy(out, tl.entries)
	return out
}
