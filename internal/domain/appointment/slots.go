package appointment

import (
	"time"

	"github.com/clinic/clinic/internal/domain/doctor"
)

// SlotDuration is the fixed length of every bookable slot.
const SlotDuration = 30 * time.Minute

// GenerateSlots expands a working window on the given date into slot
// start times. A slot is included only if it fits entirely inside the
// window. When the date is today and the window has already started,
// generation begins at the next full hour after now, so callers never
// see slots that are about to be in the past.
func GenerateSlots(w *doctor.Window, date time.Time, now time.Time) []time.Time {
	start := w.Start.At(date)
	end := w.End.At(date)

	if sameDay(date, now) && start.Before(now) {
		start = now.Truncate(time.Hour).Add(time.Hour)
	}

	var slots []time.Time
	for cur := start; !cur.Add(SlotDuration).After(end); cur = cur.Add(SlotDuration) {
		slots = append(slots, cur)
	}
	return slots
}

// FilterBooked removes slots whose start matches a booked time exactly.
func FilterBooked(slots []time.Time, booked []time.Time) []time.Time {
	if len(booked) == 0 {
		return slots
	}
	taken := make(map[time.Time]bool, len(booked))
	for _, b := range booked {
		taken[b.UTC()] = true
	}
	var free []time.Time
	for _, s := range slots {
		if !taken[s.UTC()] {
			free = append(free, s)
		}
	}
	return free
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
