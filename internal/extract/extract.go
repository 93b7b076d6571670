// Package extract turns raw recognized receipt text into a candidate
// (payer identifier, amount) pair.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/resibo-dev/resibo/internal/directory"
	"github.com/resibo-dev/resibo/internal/model"
)

// Config holds the extraction patterns, loaded once at startup.
type Config struct {
	// AmountKeywords anchor the amount search ("Amount", "Sent", ...).
	// Matched case-insensitively.
	AmountKeywords []string
	// PhonePatterns are regular expressions for recognized national
	// phone formats, tried in order.
	PhonePatterns []string
}

// DefaultConfig returns the patterns for PH mobile-wallet receipts.
func DefaultConfig() Config {
	return Config{
		AmountKeywords: []string{"Amount", "Sent"},
		PhonePatterns: []string{
			`\+63\s?9\d{2}[\s-]?\d{3}[\s-]?\d{4}`,
			`09\d{2}[\s-]?\d{3}[\s-]?\d{4}`,
		},
	}
}

// strategy is one named way of finding a payer identifier in text.
// Strategies are tried in order; the first hit wins.
type strategy struct {
	name string
	find func(text string) (string, bool)
}

// Extractor applies the amount pattern and the ordered identifier
// strategies to recognized text. Stateless after construction; safe
// for concurrent use.
type Extractor struct {
	amountRe   *regexp.Regexp
	strategies []strategy
}

// New compiles the configured patterns and wires the identifier
// strategy order: phone number first, directory lookup second.
func New(cfg Config, dir *directory.Resolver) (*Extractor, error) {
	if len(cfg.AmountKeywords) == 0 {
		return nil, fmt.Errorf("no amount keywords configured")
	}

	quoted := make([]string, len(cfg.AmountKeywords))
	for i, kw := range cfg.AmountKeywords {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	amountRe, err := regexp.Compile(`(?i)(?:` + strings.Join(quoted, "|") + `)\D*(\d+\.\d{2})`)
	if err != nil {
		return nil, fmt.Errorf("compiling amount pattern: %w", err)
	}

	phoneRes := make([]*regexp.Regexp, 0, len(cfg.PhonePatterns))
	for _, p := range cfg.PhonePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling phone pattern %q: %w", p, err)
		}
		phoneRes = append(phoneRes, re)
	}

	e := &Extractor{amountRe: amountRe}
	e.strategies = []strategy{
		{name: "phone", find: func(text string) (string, bool) {
			for _, re := range phoneRes {
				if m := re.FindString(text); m != "" {
					return normalizePhone(m), true
				}
			}
			return "", false
		}},
		{name: "directory", find: dir.Resolve},
	}
	return e, nil
}

// Extract produces a Receipt from raw recognized text. Amount and
// identifier are searched independently; a missing field is reported
// through the found flags, never as an error.
func (e *Extractor) Extract(rawText string) model.Receipt {
	// Thousands separators defeat the two-decimal anchor.
	clean := strings.ReplaceAll(rawText, ",", "")

	receipt := model.Receipt{
		Identifier: model.IdentifierUnknown,
		Amount:     decimal.Zero,
	}

	if m := e.amountRe.FindStringSubmatch(clean); m != nil {
		amount, err := decimal.NewFromString(m[1])
		if err == nil {
			receipt.Amount = amount
			receipt.AmountFound = true
		}
	}

	for _, s := range e.strategies {
		if id, ok := s.find(clean); ok {
			receipt.Identifier = id
			receipt.IdentifierFound = true
			break
		}
	}

	return receipt
}

// normalizePhone strips the internal spacing and hyphens OCR tends to
// preserve from the on-screen formatting.
func normalizePhone(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}
