package booking

import (
	"context"
	"time"

	"github.com/wlong0711/sporthall/internal/model"
	"github.com/wlong0711/sporthall/internal/schedule"
)

// resolveOverride picks the override that governs (sport, courtID) out
// of the rows in play for a slot.  Most specific scope wins: a row
// naming a concrete court beats an all-courts row, and within the same
// court scope a concrete sport beats "all".  Absence means open.
func resolveOverride(overrides []model.AvailabilityOverride, sport string, courtID uint64) *model.AvailabilityOverride {
	var best *model.AvailabilityOverride
	bestScore := -1
	for i := range overrides {
		o := &overrides[i]
		if o.Sport != model.SportAll && o.Sport != sport {
			continue
		}
		if o.CourtID != nil && *o.CourtID != courtID {
			continue
		}
		score := 0
		if o.CourtID != nil {
			score += 2
		}
		if o.Sport != model.SportAll {
			score++
		}
		if score > bestScore {
			best = o
			bestScore = score
		}
	}
	return best
}

// AvailableCourts returns the active courts of the sport that are
// neither booked nor administratively closed at (date, slot).  The
// override resolution is the same most-specific-wins rule the booking
// chain applies, so a court-level re-opening punches through an
// all-courts closure here exactly as it does there.  A slot whose
// window has fully elapsed has no available courts.
func (e *Engine) AvailableCourts(ctx context.Context, sport string, date time.Time, slot string) ([]model.Court, error) {
	date = schedule.DateOnly(date)
	if schedule.IsSlotExpired(date, slot, e.Now()) {
		return []model.Court{}, nil
	}

	courts, err := e.Courts.ListActiveBySport(ctx, sport)
	if err != nil {
		return nil, err
	}
	bookedIDs, err := e.Bookings.BookedCourtIDs(ctx, sport, date, slot)
	if err != nil {
		return nil, err
	}
	booked := make(map[uint64]bool, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = true
	}
	overrides, err := e.Overrides.FindForSlot(ctx, date, slot, sport)
	if err != nil {
		return nil, err
	}

	available := make([]model.Court, 0, len(courts))
	for _, c := range courts {
		if booked[c.ID] {
			continue
		}
		if ov := resolveOverride(overrides, sport, c.ID); ov != nil && !ov.IsAvailable {
			continue
		}
		available = append(available, c)
	}
	return available, nil
}
