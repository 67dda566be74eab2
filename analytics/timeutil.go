package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// ClockMinutes parses an "HH:MM" or "HH:MM:SS" time of day into minutes
// since midnight. Seconds are truncated.
func ClockMinutes(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day: %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", clock)
	}
	return h*60 + m, nil
}

// DeliveryMinutes is the elapsed time between order placement and delivery,
// both given as times of day. A delivery time earlier than the order time
// means the clock wrapped past midnight, so a full day is added.
func DeliveryMinutes(orderTime, deliveryTime string) (int, error) {
	start, err := ClockMinutes(orderTime)
	if err != nil {
		return 0, err
	}
	end, err := ClockMinutes(deliveryTime)
	if err != nil {
		return 0, err
	}
	d := end - start
	if d < 0 {
		d += minutesPerDay
	}
	return d, nil
}

// TimeSlot returns the index (0..11) of the fixed 2-hour window a time of
// day falls into. The 12 windows partition the full day.
func TimeSlot(minutes int) int {
	return (minutes % minutesPerDay) / 120
}

// SlotLabel formats a slot index as "HH:00 - HH:00".
func SlotLabel(slot int) string {
	return fmt.Sprintf("%02d:00 - %02d:00", slot*2, (slot*2+2)%24)
}

// Season buckets a month: Apr-Jun is Spring, Jul-Aug Summer, the rest Winter.
func Season(m time.Month) string {
	switch {
	case m >= time.April && m <= time.June:
		return "Spring"
	case m == time.July || m == time.August:
		return "Summer"
	default:
		return "Winter"
	}
}

// withinTrailingYear reports whether date lies in (asOf - 1 year, asOf].
func withinTrailingYear(date, asOf time.Time) bool {
	start := asOf.AddDate(-1, 0, 0)
	return date.After(start) && !date.After(asOf)
}

// monthKey orders (year, month) pairs chronologically.
func monthKey(y int, m time.Month) int {
	return y*12 + int(m) - 1
}
