package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/resibo-dev/resibo/internal/engine"
)

// A session script replays transport events against a fresh engine.
// The session driver plays the transport collaborator's part: it
// mints a dedup key for each photo that lacks one, and after every
// recorded entry it mints the confirmation-message id and binds it
// via AttachCorrelation, so scripted undos can target entries by
// label.
type sessionScript struct {
	Topic  string         `yaml:"topic"`
	Events []sessionEvent `yaml:"events"`
}

type sessionEvent struct {
	// Label names this event so a later undo can target its entry.
	Label     string       `yaml:"label,omitempty"`
	Photo     *photoEvent  `yaml:"photo,omitempty"`
	Manual    *manualEvent `yaml:"manual,omitempty"`
	Undo      *undoEvent   `yaml:"undo,omitempty"`
	Total     bool         `yaml:"total,omitempty"`
	Clear     bool         `yaml:"clear,omitempty"`
	Directory bool         `yaml:"directory,omitempty"`
}

type photoEvent struct {
	Text     string `yaml:"text"`
	DedupKey string `yaml:"dedup_key,omitempty"`
}

type manualEvent struct {
	Identifier string `yaml:"identifier"`
	Amount     string `yaml:"amount"`
}

type undoEvent struct {
	// Target is the label of an earlier event whose entry should be
	// removed. Empty means undo the last entry.
	Target string `yaml:"target,omitempty"`
}

func newSessionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "session <script.yaml>",
		Short: "Replay a scripted session against a fresh engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading script: %w", err)
			}
			var script sessionScript
			if err := yaml.Unmarshal(data, &script); err != nil {
				return fmt.Errorf("parsing script: %w", err)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			eng, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			return runSession(cmd, eng, script)
		},
	}
}

func runSession(cmd *cobra.Command, eng *engine.Engine, script sessionScript) error {
	out := cmd.OutOrStdout()
	topic := script.Topic
	if topic == "" {
		topic = "session"
	}

	// label -> correlation id minted for that event's entry.
	correlations := make(map[string]string)

	for i, ev := range script.Events {
		switch {
		case ev.Photo != nil:
			dedupKey := ev.Photo.DedupKey
			if dedupKey == "" {
				dedupKey = uuid.NewString()
			}
			o := eng.OnPhotoReceived(topic, dedupKey, ev.Photo.Text)
			fmt.Fprintln(out, eng.Render(o))
			bindCorrelation(eng, topic, o, ev.Label, correlations)

		case ev.Manual != nil:
			o := eng.OnManualCommand(topic, ev.Manual.Identifier, ev.Manual.Amount)
			fmt.Fprintln(out, eng.Render(o))
			bindCorrelation(eng, topic, o, ev.Label, correlations)

		case ev.Undo != nil:
			correlationID := ""
			if ev.Undo.Target != "" {
				id, ok := correlations[ev.Undo.Target]
				if !ok {
					return fmt.Errorf("event %d: undo target %q names no recorded event", i+1, ev.Undo.Target)
				}
				correlationID = id
			}
			fmt.Fprintln(out, eng.Render(eng.OnUndoCommand(topic, correlationID)))

		case ev.Total:
			summary, ok := eng.OnTotalCommand(topic)
			fmt.Fprintln(out, eng.RenderSummary(summary, ok))

		case ev.Clear:
			fmt.Fprintln(out, eng.Render(eng.OnClearCommand(topic)))

		case ev.Directory:
			fmt.Fprintln(out, eng.RenderDirectory(eng.OnDirectoryCommand()))

		default:
			return fmt.Errorf("event %d: no action given", i+1)
		}
	}
	return nil
}

// bindCorrelation performs the second phase of record-then-bind: the
// confirmation message has now "been sent" (printed), so its id
// exists and can be attached to the entry.
func bindCorrelation(eng *engine.Engine, topic string, o engine.Outcome, label string, correlations map[string]string) {
	if o.Kind != engine.OutcomeRecorded {
		return
	}
	id := uuid.NewString()
	eng.AttachCorrelation(topic, o.Entry.ID, id)
	if label != "" {
		correlations[label] = id
	}
}
