package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resibo-dev/resibo/internal/directory"
	"github.com/resibo-dev/resibo/internal/model"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	dir := directory.NewResolver([]directory.Entry{
		{Alias: "IRAH", Canonical: "09170001111"},
		{Alias: "IRAH GABALES AREVALO", Canonical: "09170002222"},
		{Alias: "ROWELYN", Canonical: "09474275406"},
	})
	e, err := New(DefaultConfig(), dir)
	require.NoError(t, err)
	return e
}

func TestExtractAmountAndPhone(t *testing.T) {
	e := newTestExtractor(t)

	r := e.Extract("Total Amount Sent P500.00 to 09474275406")
	assert.True(t, r.AmountFound)
	assert.True(t, r.IdentifierFound)
	assert.Equal(t, "09474275406", r.Identifier)
	assert.True(t, r.Amount.Equal(dec("500.00")), "got %s", r.Amount)
}

func TestExtractThousandsSeparator(t *testing.T) {
	e := newTestExtractor(t)

	r := e.Extract("Amount Sent: P1,234.56")
	assert.True(t, r.AmountFound)
	assert.True(t, r.Amount.Equal(dec("1234.56")), "got %s", r.Amount)
}

func TestExtractInternationalPrefix(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		text string
		want string
	}{
		{"Sent P100.00 to +63 917 123 4567", "+639171234567"},
		{"Sent P100.00 to 0917-123-4567", "09171234567"},
		{"Sent P100.00 to 0917 123 4567", "09171234567"},
	}
	for _, tt := range tests {
		r := e.Extract(tt.text)
		require.True(t, r.IdentifierFound, "text %q", tt.text)
		assert.Equal(t, tt.want, r.Identifier, "text %q", tt.text)
	}
}

func TestExtractPhoneBeatsDirectory(t *testing.T) {
	e := newTestExtractor(t)

	// Both a phone number and a directory alias are present; the
	// phone strategy runs first and must win.
	r := e.Extract("Amount P250.00 sent to ROWELYN 09991234567")
	require.True(t, r.IdentifierFound)
	assert.Equal(t, "09991234567", r.Identifier)
}

func TestExtractDirectoryFallback(t *testing.T) {
	e := newTestExtractor(t)

	r := e.Extract("Amount P250.00 received from ROWELYN")
	require.True(t, r.IdentifierFound)
	assert.Equal(t, "09474275406", r.Identifier)
}

func TestExtractLongestAliasPriority(t *testing.T) {
	e := newTestExtractor(t)

	r := e.Extract("Amount P80.00 from IRAH GABALES AREVALO")
	require.True(t, r.IdentifierFound)
	assert.Equal(t, "09170002222", r.Identifier)
}

func TestExtractNoAmount(t *testing.T) {
	e := newTestExtractor(t)

	r := e.Extract("Sent to 09474275406 yesterday")
	assert.False(t, r.AmountFound)
	assert.True(t, r.Amount.IsZero())
	assert.True(t, r.IdentifierFound)
}

func TestExtractAmountNeedsTwoDecimals(t *testing.T) {
	e := newTestExtractor(t)

	// Whole-peso numerals without centavos do not match the anchor.
	r := e.Extract("Amount Sent P500 to 09474275406")
	assert.False(t, r.AmountFound)
}

func TestExtractNothingFound(t *testing.T) {
	e := newTestExtractor(t)

	r := e.Extract("illegible smudge")
	assert.False(t, r.AmountFound)
	assert.False(t, r.IdentifierFound)
	assert.Equal(t, model.IdentifierUnknown, r.Identifier)
	assert.True(t, r.Amount.IsZero())
}

func TestExtractKeywordCaseInsensitive(t *testing.T) {
	e := newTestExtractor(t)

	r := e.Extract("AMOUNT sent p75.50")
	assert.True(t, r.AmountFound)
	assert.True(t, r.Amount.Equal(dec("75.50")))
}

func TestNewRejectsBadConfig(t *testing.T) {
	dir := directory.NewResolver(nil)

	_, err := New(Config{}, dir)
	require.Error(t, err)

	_, err = New(Config{
		AmountKeywords: []string{"Amount"},
		PhonePatterns:  []string{`([`},
	}, dir)
	require.Error(t, err)
}
