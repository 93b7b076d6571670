package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/resibo-dev/resibo/internal/directory"
	"github.com/resibo-dev/resibo/internal/model"
)

// WelcomeText is the reply to a first contact.
const WelcomeText = "Hello! I am ready to scan receipts. I will also ignore duplicate photos!"

// HelpText explains the commands.
const HelpText = "Instructions:\n" +
	"1. Send a receipt photo here.\n" +
	"2. I will read the Number and Amount.\n" +
	"3. I will ignore duplicate images.\n" +
	"4. Type /total to see the summary.\n" +
	"5. Type /manual <name-or-number> <amount> to add an entry by hand.\n" +
	"6. Type /undo to remove the last entry, /clear to start over."

// Render turns an outcome into the user-facing reply text.
func (e *Engine) Render(o Outcome) string {
	switch o.Kind {
	case OutcomeRecorded:
		return fmt.Sprintf("✅ Recorded: %s - %s", o.Entry.Identifier, e.money(o.Entry.Amount))
	case OutcomeDuplicate:
		return "⚠️ Duplicate receipt detected! Ignoring."
	case OutcomeNoAmount:
		return "⚠️ Couldn't read the amount clearly. Please type it manually if needed."
	case OutcomeNoIdentifier:
		return fmt.Sprintf("⚠️ Read %s but not the sender. Use /manual <name-or-number> %s to record it.",
			e.money(o.Amount), o.Amount.StringFixed(2))
	case OutcomeInvalidAmount:
		return "⚠️ That amount doesn't look right. Use /manual <name-or-number> <amount>."
	case OutcomeRecognitionFailed:
		return "⚠️ Couldn't read that photo. Please try a clearer shot."
	case OutcomeRemoved:
		return fmt.Sprintf("↩️ Removed: %s - %s", o.Entry.Identifier, e.money(o.Entry.Amount))
	case OutcomeUndoEmpty:
		return "Nothing to undo."
	case OutcomeUndoNotFound:
		return "Couldn't find that entry to undo."
	case OutcomeCleared:
		return "🗑️ Data for this topic has been cleared."
	case OutcomeNothingToClear:
		return "Nothing to clear."
	}
	return ""
}

// RenderSummary formats the /total report.
func (e *Engine) RenderSummary(s model.Summary, ok bool) string {
	if !ok {
		return "No receipts found for this topic yet."
	}

	var b strings.Builder
	b.WriteString("📊 Summary\n\n")
	for _, g := range s.Groups {
		fmt.Fprintf(&b, "👤 %s: %s\n", g.Identifier, e.money(g.Total))
	}
	fmt.Fprintf(&b, "\nTotal Collected: %s", e.money(s.GrandTotal))
	return b.String()
}

// RenderDirectory formats the payer directory listing.
func (e *Engine) RenderDirectory(rows []directory.Listing) string {
	if len(rows) == 0 {
		return "The directory is empty."
	}

	var b strings.Builder
	b.WriteString("📒 Directory\n\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%s — %s\n", row.DisplayName, row.Canonical)
	}
	return strings.TrimRight(b.String(), "\n")
}

// money renders an amount with the configured symbol and thousands
// separators, e.g. "₱1,234.56".
func (e *Engine) money(d decimal.Decimal) string {
	return e.currency + groupThousands(d.StringFixed(2))
}

// groupThousands inserts commas into the integer part of a fixed
// two-decimal string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
