package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/resibo-dev/resibo/internal/model"
)

// Summarize groups a topic's ledger by payer identifier. Groups keep
// the first-occurrence order of each identifier so repeated runs over
// the same entry sequence produce the same report. Returns ok=false
// when the topic has no entries.
func (s *Store) Summarize(topicID string) (model.Summary, bool) {
	entries := s.Snapshot(topicID)
	if len(entries) == 0 {
		return model.Summary{}, false
	}

	index := make(map[string]int, len(entries))
	summary := model.Summary{GrandTotal: decimal.Zero}
	for _, e := range entries {
		i, ok := index[e.Identifier]
		if !ok {
			i = len(summary.Groups)
			index[e.Identifier] = i
			summary.Groups = append(summary.Groups, model.Group{
				Identifier: e.Identifier,
				Total:      decimal.Zero,
			})
		}
		summary.Groups[i].Total = summary.Groups[i].Total.Add(e.Amount)
		summary.GrandTotal = summary.GrandTotal.Add(e.Amount)
	}
	return summary, true
}
