package schedule

import (
	"reflect"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTimeSlots(t *testing.T) {
	want := []string{"10:00", "12:00", "14:00", "16:00", "18:00", "20:00"}
	if got := TimeSlots(); !reflect.DeepEqual(got, want) {
		t.Errorf("TimeSlots() = %v, want %v", got, want)
	}
}

func TestValidSlot(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"10:00", true},
		{"12:00", true},
		{"20:00", true},
		{"11:00", false}, // odd hour, not in catalog
		{"08:00", false}, // before opening
		{"22:00", false}, // after last slot
		{"10:30", false},
		{"10", false},
		{"", false},
		{"ten:00", false},
		{"014:00", false}, // leading zero is a different string from the catalog key
		{"+14:00", false},
		{" 14:00", false},
		{"14:0", false},
	}
	for _, tt := range tests {
		if got := ValidSlot(tt.key); got != tt.want {
			t.Errorf("ValidSlot(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestParseSlotHour(t *testing.T) {
	tests := []struct {
		key     string
		want    int
		wantErr bool
	}{
		{"10:00", 10, false},
		{"20:00", 20, false},
		{"23:00", 23, false},
		{"24:00", 0, true},
		{"014:00", 0, true},
		{"+14:00", 0, true},
		{"-4:00", 0, true},
		{"14:30", 0, true},
		{"1400", 0, true},
	}
	for _, tt := range tests {
		h, err := ParseSlotHour(tt.key)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSlotHour(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && h != tt.want {
			t.Errorf("ParseSlotHour(%q) = %d, want %d", tt.key, h, tt.want)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{"Saturday", date(2026, time.March, 7), true},
		{"Sunday", date(2026, time.March, 8), true},
		{"Monday", date(2026, time.March, 9), false},
		{"Friday", date(2026, time.March, 6), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWeekend(tt.d); got != tt.want {
				t.Errorf("IsWeekend(%s) = %v, want %v", tt.d.Weekday(), got, tt.want)
			}
		})
	}
}

func TestIsPastDate(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{"yesterday", date(2026, time.March, 9), true},
		{"today is not past", date(2026, time.March, 10), false},
		{"tomorrow", date(2026, time.March, 11), false},
		{"previous month", date(2026, time.February, 28), true},
		{"previous year", date(2025, time.December, 31), true},
		{"next year", date(2027, time.January, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPastDate(tt.d, now); got != tt.want {
				t.Errorf("IsPastDate(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestIsCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{"same month", date(2026, time.March, 25), true},
		{"first of month", date(2026, time.March, 1), true},
		{"next month", date(2026, time.April, 1), false},
		{"same month last year", date(2025, time.March, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCurrentMonth(tt.d, now); got != tt.want {
				t.Errorf("IsCurrentMonth(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestIsSlotExpired(t *testing.T) {
	day := date(2026, time.March, 10)
	tests := []struct {
		name string
		slot string
		now  time.Time
		want bool
	}{
		{"before window opens", "14:00", time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC), false},
		{"window in progress stays bookable", "14:00", time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC), false},
		{"exactly at window end", "14:00", time.Date(2026, time.March, 10, 16, 0, 0, 0, time.UTC), false},
		{"just past window end", "14:00", time.Date(2026, time.March, 10, 16, 0, 1, 0, time.UTC), true},
		{"next day", "20:00", time.Date(2026, time.March, 11, 8, 0, 0, 0, time.UTC), true},
		{"previous day never expired", "10:00", time.Date(2026, time.March, 9, 23, 0, 0, 0, time.UTC), false},
		{"unparseable slot never expired", "bogus", time.Date(2026, time.March, 11, 8, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSlotExpired(day, tt.slot, tt.now); got != tt.want {
				t.Errorf("IsSlotExpired(%s, %v) = %v, want %v", tt.slot, tt.now, got, tt.want)
			}
		})
	}
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2026-03-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := FormatDate(d); got != "2026-03-10" {
		t.Errorf("FormatDate = %q, want %q", got, "2026-03-10")
	}
	if _, err := ParseDate("10/03/2026"); err == nil {
		t.Error("ParseDate accepted a non ISO date")
	}
}
