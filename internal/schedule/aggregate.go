// Package schedule computes ranked availability tallies for an event from
// its full set of responses. Aggregation is a pure function of its inputs:
// no state, no I/O, no timezone awareness. Results are never persisted; every
// read recomputes from whatever the store currently holds.
package schedule

import (
	"sort"

	"github.com/MCMartinLee/FindTime/internal/model"
)

// Aggregate tallies responses against the event's slots and returns one
// SlotTally per slot, sorted by vote count descending. The sort is stable:
// slots tied on count keep the event's original slot order, which keeps the
// ranked view deterministic across reloads.
//
// Selected slot ids with no matching slot are skipped, never an error; a
// stale client voting against an old snapshot simply contributes nothing.
// EveryoneAvailable is explicitly false when there are no responses at all,
// guarding against the vacuous 0 == 0 match.
func Aggregate(event *model.Event, responses []model.Response) []model.SlotTally {
	if event == nil || len(event.Slots) == 0 {
		return []model.SlotTally{}
	}

	counts := make(map[string]int, len(event.Slots))
	voters := make(map[string][]string, len(event.Slots))
	for _, slot := range event.Slots {
		counts[slot.ID] = 0
		voters[slot.ID] = nil
	}

	for _, response := range responses {
		name := response.Name
		if name == "" {
			name = model.AnonymousVoter
		}
		for _, slotID := range response.SelectedSlotIDs {
			if _, known := counts[slotID]; !known {
				continue
			}
			counts[slotID]++
			voters[slotID] = append(voters[slotID], name)
		}
	}

	total := len(responses)
	tallies := make([]model.SlotTally, 0, len(event.Slots))
	for _, slot := range event.Slots {
		tallies = append(tallies, model.SlotTally{
			Slot:              slot,
			Count:             counts[slot.ID],
			Voters:            append([]string{}, voters[slot.ID]...),
			EveryoneAvailable: total > 0 && counts[slot.ID] == total,
		})
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].Count > tallies[j].Count
	})
	return tallies
}
