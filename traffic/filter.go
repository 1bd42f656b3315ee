package traffic

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MinutesPerDay is the number of minute-of-day buckets
	MinutesPerDay = 24 * 60
	// WindowMinutes is the reach of a filter on each side of its minute
	WindowMinutes = 60
)

// TimeFilter is either NoFilter or a minute of the day in [0, 1439]
type TimeFilter struct {
	minute int
	active bool
}

// NoFilter selects every trip regardless of time
var NoFilter = TimeFilter{}

// AtMinute returns a filter centred on minute m of the day
func AtMinute(m int) (TimeFilter, error) {
	if m < 0 || m >= MinutesPerDay {
		return NoFilter, fmt.Errorf("minute %d out of range [0, %d]", m, MinutesPerDay-1)
	}
	return TimeFilter{minute: m, active: true}, nil
}

// MustAtMinute is AtMinute for constant minutes; it panics on a bad value
func MustAtMinute(m int) TimeFilter {
	f, err := AtMinute(m)
	if err != nil {
		panic(err)
	}
	return f
}

// ParseTimeFilter accepts "", "-1", "all" and "any" for NoFilter, a minute
// of the day such as "510", or a 24-hour clock time such as "08:30".
func ParseTimeFilter(s string) (TimeFilter, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "-1", "all", "any":
		return NoFilter, nil
	}
	if h, m, ok := strings.Cut(s, ":"); ok {
		hour, err1 := strconv.Atoi(h)
		minute, err2 := strconv.Atoi(m)
		if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			return NoFilter, fmt.Errorf("invalid clock time %q", s)
		}
		return AtMinute(hour*60 + minute)
	}
	m, err := strconv.Atoi(s)
	if err != nil {
		return NoFilter, fmt.Errorf("invalid time filter %q", s)
	}
	return AtMinute(m)
}

// IsActive reports whether the filter restricts trips to a window
func (f TimeFilter) IsActive() bool { return f.active }

// Minute returns the centre minute and whether the filter is active
func (f TimeFilter) Minute() (int, bool) { return f.minute, f.active }

// Window returns the bucket bounds [minMinute, maxMinute) of an active filter.
// When minMinute > maxMinute the window wraps past midnight.
func (f TimeFilter) Window() (minMinute, maxMinute int) {
	if !f.active {
		return 0, MinutesPerDay
	}
	minMinute = (f.minute - WindowMinutes + MinutesPerDay) % MinutesPerDay
	maxMinute = (f.minute + WindowMinutes) % MinutesPerDay
	return minMinute, maxMinute
}

// Contains reports whether bucket minute falls inside the filter window
func (f TimeFilter) Contains(minute int) bool {
	if !f.active {
		return true
	}
	lo, hi := f.Window()
	if lo <= hi {
		return minute >= lo && minute < hi
	}
	return minute >= lo || minute < hi
}

// Key is a stable cache key: "all" or the minute
func (f TimeFilter) Key() string {
	if !f.active {
		return "all"
	}
	return strconv.Itoa(f.minute)
}

// String renders the filter as a 12-hour clock label, e.g. "8:30 AM"
func (f TimeFilter) String() string {
	if !f.active {
		return "any time"
	}
	return FormatMinute(f.minute)
}

// FormatMinute renders a minute of the day as a 12-hour clock label
func FormatMinute(m int) string {
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	t := time.Date(2000, 1, 1, m/60, m%60, 0, 0, time.UTC)
	return t.Format("3:04 PM")
}
