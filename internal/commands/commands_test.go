package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resibo-dev/resibo/internal/config"
)

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeTestConfig saves a config with a small directory table and
// returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	cfg := config.Default()
	cfg.Directory = []config.DirectoryEntry{
		{Alias: "ROWELYN", Canonical: "09474275406"},
		{Alias: "IRAH GABALES AREVALO", Canonical: "09170002222"},
	}
	path := filepath.Join(t.TempDir(), "resibo.yaml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	cfg, err := config.Load(filepath.Join(dir, "resibo.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "₱", cfg.Currency.Symbol)

	// A second init without --force refuses to overwrite.
	_, err = run(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "init", "--force", dir)
	require.NoError(t, err)
}

func TestExtractFromFile(t *testing.T) {
	cfgPath := writeTestConfig(t)
	textPath := filepath.Join(t.TempDir(), "receipt.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("Total Amount Sent P500.00 to 09474275406"), 0o644))

	out, err := run(t, "extract", "--config", cfgPath, textPath)
	require.NoError(t, err)
	assert.Contains(t, out, "identifier: 09474275406")
	assert.Contains(t, out, "amount: 500.00")
}

func TestExtractNothingFound(t *testing.T) {
	cfgPath := writeTestConfig(t)
	textPath := filepath.Join(t.TempDir(), "receipt.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("illegible"), 0o644))

	out, err := run(t, "extract", "--config", cfgPath, textPath)
	require.NoError(t, err)
	assert.Contains(t, out, "identifier: (not found)")
	assert.Contains(t, out, "amount: (not found)")
}

func TestExtractMissingConfigUsesDefaults(t *testing.T) {
	textPath := filepath.Join(t.TempDir(), "receipt.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("Amount Sent P42.00 to 09171234567"), 0o644))

	out, err := run(t, "extract", "--config", filepath.Join(t.TempDir(), "missing.yaml"), textPath)
	require.NoError(t, err)
	assert.Contains(t, out, "identifier: 09171234567")
}

func TestDirectoryListing(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := run(t, "directory", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ROWELYN — 09474275406")
	assert.Contains(t, out, "IRAH GABALES AREVALO — 09170002222")
}

func TestSessionReplay(t *testing.T) {
	cfgPath := writeTestConfig(t)

	script := strings.Join([]string{
		"topic: testers",
		"events:",
		"  - label: first",
		"    photo:",
		"      text: Amount Sent P100.00 to 09170001111",
		"  - photo:",
		"      text: Amount Sent P50.00 to ROWELYN",
		"  - manual:",
		"      identifier: ROWELYN",
		"      amount: \"25\"",
		"  - total: true",
		"  - undo:",
		"      target: first",
		"  - total: true",
		"  - clear: true",
		"  - total: true",
	}, "\n")
	scriptPath := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o644))

	out, err := run(t, "session", "--config", cfgPath, scriptPath)
	require.NoError(t, err)

	assert.Contains(t, out, "✅ Recorded: 09170001111 - ₱100.00")
	assert.Contains(t, out, "✅ Recorded: 09474275406 - ₱50.00")
	assert.Contains(t, out, "✅ Recorded: 09474275406 - ₱25.00")
	assert.Contains(t, out, "Total Collected: ₱175.00")
	assert.Contains(t, out, "↩️ Removed: 09170001111 - ₱100.00")
	assert.Contains(t, out, "Total Collected: ₱75.00")
	assert.Contains(t, out, "🗑️ Data for this topic has been cleared.")
	assert.Contains(t, out, "No receipts found for this topic yet.")
}

func TestSessionUnknownUndoTarget(t *testing.T) {
	cfgPath := writeTestConfig(t)

	script := "topic: t\nevents:\n  - undo:\n      target: nowhere\n"
	scriptPath := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o644))

	_, err := run(t, "session", "--config", cfgPath, scriptPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nowhere")
}
