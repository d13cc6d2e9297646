package aggregator

import (
	"strconv"

	"github.com/jarinudom/blitzgremlin/internal/yahoo"
)

// sums accumulates numeric stat values per stat id, preserving the order
// in which ids were first seen so output follows the upstream category
// declaration order.
type sums struct {
	order  []string
	names  map[string]string
	totals map[string]float64
}

func newSums() *sums {
	return &sums{
		names:  make(map[string]string),
		totals: make(map[string]float64),
	}
}

// add folds one stat entry into the accumulator. Values that do not parse
// as numbers (the upstream's "-" placeholder among them) are skipped, not
// zero-filled.
func (s *sums) add(stat yahoo.StatEntry) {
	value, err := strconv.ParseFloat(stat.Value, 64)
	if err != nil {
		return
	}
	if _, seen := s.totals[stat.StatID]; !seen {
		s.order = append(s.order, stat.StatID)
	}
	s.totals[stat.StatID] += value
	if stat.StatName != "" {
		s.names[stat.StatID] = stat.StatName
	}
}

// entries renders the accumulated sums as stat entries in first-seen order.
func (s *sums) entries() []yahoo.StatEntry {
	out := make([]yahoo.StatEntry, 0, len(s.order))
	for _, id := range s.order {
		name := s.names[id]
		if name == "" {
			name = "stat_" + id
		}
		out = append(out, yahoo.StatEntry{
			StatID:   id,
			StatName: name,
			Value:    strconv.FormatFloat(s.totals[id], 'f', -1, 64),
		})
	}
	return out
}
