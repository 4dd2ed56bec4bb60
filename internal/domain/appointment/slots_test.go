package appointment

import (
	"testing"
	"time"

	"github.com/clinic/clinic/internal/domain/doctor"
)

func window(start, end doctor.TimeOfDay) *doctor.Window {
	return &doctor.Window{Start: start, End: end}
}

func TestGenerateSlots_FullDay(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	slots := GenerateSlots(window(9*60, 17*60), date, now)

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots for 09:00-17:00, got %d", len(slots))
	}
	if got := slots[0].Format("15:04"); got != "09:00" {
		t.Errorf("first slot = %s, want 09:00", got)
	}
	if got := slots[len(slots)-1].Format("15:04"); got != "16:30" {
		t.Errorf("last slot = %s, want 16:30", got)
	}
}

func TestGenerateSlots_WindowTooShort(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	slots := GenerateSlots(window(9*60, 9*60+20), date, now)
	if len(slots) != 0 {
		t.Errorf("expected no slots in a 20 minute window, got %d", len(slots))
	}
}

func TestGenerateSlots_SameDayStartsNextFullHour(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	// Mid-morning on the same day: 10:20.
	now := time.Date(2026, 3, 2, 10, 20, 0, 0, time.UTC)

	slots := GenerateSlots(window(9*60, 17*60), date, now)

	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	if got := slots[0].Format("15:04"); got != "11:00" {
		t.Errorf("first slot = %s, want 11:00 (next full hour after 10:20)", got)
	}
}

func TestGenerateSlots_SameDayBeforeWindowOpens(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 2, 7, 45, 0, 0, time.UTC)

	slots := GenerateSlots(window(9*60, 17*60), date, now)

	if len(slots) != 16 {
		t.Fatalf("expected full 16 slots before the window opens, got %d", len(slots))
	}
	if got := slots[0].Format("15:04"); got != "09:00" {
		t.Errorf("first slot = %s, want 09:00", got)
	}
}

func TestGenerateSlots_SameDayWindowExhausted(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 2, 16, 50, 0, 0, time.UTC)

	slots := GenerateSlots(window(9*60, 17*60), date, now)
	if len(slots) != 0 {
		t.Errorf("expected no slots at 16:50 for a 17:00 close, got %d", len(slots))
	}
}

func TestFilterBooked_RemovesExactMatches(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	slots := GenerateSlots(window(9*60, 11*60), date, now) // 09:00 09:30 10:00 10:30
	booked := []time.Time{
		time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
	}

	free := FilterBooked(slots, booked)
	if len(free) != 2 {
		t.Fatalf("expected 2 free slots, got %d", len(free))
	}
	if free[0].Format("15:04") != "09:00" || free[1].Format("15:04") != "10:00" {
		t.Errorf("free = %s %s, want 09:00 10:00", free[0].Format("15:04"), free[1].Format("15:04"))
	}
}

func TestFilterBooked_NoBookings(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	slots := GenerateSlots(window(9*60, 11*60), date, now)
	free := FilterBooked(slots, nil)
	if len(free) != len(slots) {
		t.Errorf("expected all %d slots free, got %d", len(slots), len(free))
	}
}
