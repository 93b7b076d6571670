// Package engine wires extraction and the ledger behind the inbound
// surface the chat transport calls.
package engine

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/resibo-dev/resibo/internal/directory"
	"github.com/resibo-dev/resibo/internal/extract"
	"github.com/resibo-dev/resibo/internal/ledger"
	"github.com/resibo-dev/resibo/internal/model"
	"github.com/resibo-dev/resibo/internal/recognize"
)

// OutcomeKind classifies every result the transport has to render.
// All of these are expected states, not errors; nothing here
// terminates the process.
type OutcomeKind int

const (
	OutcomeRecorded OutcomeKind = iota
	OutcomeDuplicate
	OutcomeNoAmount
	OutcomeNoIdentifier
	OutcomeInvalidAmount
	OutcomeRecognitionFailed
	OutcomeRemoved
	OutcomeUndoEmpty
	OutcomeUndoNotFound
	OutcomeCleared
	OutcomeNothingToClear
)

// Outcome is the renderable result of one inbound event. On Recorded,
// Entry.ID is the stable handle to pass to AttachCorrelation.
type Outcome struct {
	Kind  OutcomeKind
	Entry model.Entry // set on Recorded and Removed
	// Amount is the parsed amount on a NoIdentifier outcome, so the
	// reply can suggest a /manual correction.
	Amount decimal.Decimal
}

// Params holds the engine's collaborators, all constructor-injected
// so tests can run independent engines in parallel.
type Params struct {
	Extractor  *extract.Extractor
	Store      *ledger.Store
	Directory  *directory.Resolver
	Recognizer recognize.Recognizer // optional; only IngestPhoto needs it
	Logger     zerolog.Logger

	CurrencySymbol     string
	MinAliasDisplayLen int
}

// Engine is the receipt ledger core. Safe for concurrent use: the
// extractor and directory are read-only and the store serializes its
// own mutation.
type Engine struct {
	extractor   *extract.Extractor
	store       *ledger.Store
	dir         *directory.Resolver
	recognizer  recognize.Recognizer
	log         zerolog.Logger
	currency    string
	minAliasLen int
}

// New creates an Engine from its collaborators.
func New(p Params) *Engine {
	return &Engine{
		extractor:   p.Extractor,
		store:       p.Store,
		dir:         p.Directory,
		recognizer:  p.Recognizer,
		log:         p.Logger,
		currency:    p.CurrencySymbol,
		minAliasLen: p.MinAliasDisplayLen,
	}
}

// OnPhotoReceived extracts fields from already-recognized text and
// records them in the topic's ledger.
func (e *Engine) OnPhotoReceived(topicID, dedupKey, rawText string) Outcome {
	receipt := e.extractor.Extract(rawText)
	out := e.store.Record(topicID, dedupKey, receipt)

	switch out.Status {
	case ledger.Recorded:
		return Outcome{Kind: OutcomeRecorded, Entry: out.Entry}
	case ledger.Duplicate:
		return Outcome{Kind: OutcomeDuplicate}
	default:
		if out.Reason == ledger.ReasonNoIdentifier {
			return Outcome{Kind: OutcomeNoIdentifier, Amount: out.Amount}
		}
		return Outcome{Kind: OutcomeNoAmount}
	}
}

// IngestPhoto runs the recognition collaborator over raw image bytes
// and feeds the result through OnPhotoReceived. A recognition failure
// is the one condition worth operational visibility; it is logged and
// surfaced as its own outcome, never as a crash.
func (e *Engine) IngestPhoto(topicID, dedupKey string, image []byte) Outcome {
	text, err := e.recognizer.RecognizeText(image)
	if err != nil {
		e.log.Warn().Err(err).Str("topic", topicID).Msg("text recognition failed")
		return Outcome{Kind: OutcomeRecognitionFailed}
	}
	return e.OnPhotoReceived(topicID, dedupKey, text)
}

// OnManualCommand records a hand-typed identifier/amount pair.
func (e *Engine) OnManualCommand(topicID, identifierText, amountText string) Outcome {
	out := e.store.ManualAdd(topicID, identifierText, amountText)

	switch out.Status {
	case ledger.Recorded:
		return Outcome{Kind: OutcomeRecorded, Entry: out.Entry}
	default:
		if out.Reason == ledger.ReasonNoIdentifier {
			return Outcome{Kind: OutcomeNoIdentifier}
		}
		return Outcome{Kind: OutcomeInvalidAmount}
	}
}

// OnUndoCommand removes an entry. With a correlation id it targets
// the matching entry and never falls back; without one it removes the
// most recent entry.
func (e *Engine) OnUndoCommand(topicID, correlationID string) Outcome {
	if correlationID != "" {
		entry, status := e.store.UndoByCorrelation(topicID, correlationID)
		if status == ledger.UndoRemoved {
			return Outcome{Kind: OutcomeRemoved, Entry: entry}
		}
		return Outcome{Kind: OutcomeUndoNotFound}
	}

	entry, status := e.store.UndoLast(topicID)
	if status == ledger.UndoRemoved {
		return Outcome{Kind: OutcomeRemoved, Entry: entry}
	}
	return Outcome{Kind: OutcomeUndoEmpty}
}

// OnTotalCommand summarizes the topic. ok=false is the reportable
// empty state, not an error.
func (e *Engine) OnTotalCommand(topicID string) (model.Summary, bool) {
	return e.store.Summarize(topicID)
}

// OnClearCommand drops the topic's ledger.
func (e *Engine) OnClearCommand(topicID string) Outcome {
	if e.store.Clear(topicID) {
		return Outcome{Kind: OutcomeCleared}
	}
	return Outcome{Kind: OutcomeNothingToClear}
}

// OnDirectoryCommand returns the human-readable directory listing.
func (e *Engine) OnDirectoryCommand() []directory.Listing {
	return e.dir.List(e.minAliasLen)
}

// AttachCorrelation binds the transport's confirmation-message id to
// a recorded entry (second phase of record-then-bind), so a later
// targeted undo can find it.
func (e *Engine) AttachCorrelation(topicID string, entryID uint64, correlationID string) bool {
	return e.store.AttachCorrelation(topicID, entryID, correlationID)
}

// Extract runs the field extractor without touching any ledger.
func (e *Engine) Extract(rawText string) model.Receipt {
	return e.extractor.Extract(rawText)
}

// Snapshot exposes a topic's entries for external rendering.
func (e *Engine) Snapshot(topicID string) []model.Entry {
	return e.store.Snapshot(topicID)
}
