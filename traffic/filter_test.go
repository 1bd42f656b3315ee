package traffic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeFilter_Window(t *testing.T) {
	tests := []struct {
		name    string
		minute  int
		wantMin int
		wantMax int
	}{
		{"morning", 600, 540, 660},
		{"just after midnight wraps", 30, 1410, 90},
		{"midnight", 0, 1380, 60},
		{"last minute wraps", 1439, 1379, 59},
		{"exactly one hour in", 60, 0, 120},
		{"one hour before midnight", 1380, 1320, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := MustAtMinute(tt.minute).Window()
			assert.Equal(t, tt.wantMin, lo)
			assert.Equal(t, tt.wantMax, hi)
		})
	}
}

func TestTimeFilter_Contains(t *testing.T) {
	noon := MustAtMinute(600)
	assert.True(t, noon.Contains(540), "left edge is inclusive")
	assert.True(t, noon.Contains(659))
	assert.False(t, noon.Contains(660), "right edge is exclusive")
	assert.False(t, noon.Contains(539))

	late := MustAtMinute(30)
	assert.True(t, late.Contains(1420))
	assert.True(t, late.Contains(1410))
	assert.True(t, late.Contains(0))
	assert.True(t, late.Contains(89))
	assert.False(t, late.Contains(90))
	assert.False(t, late.Contains(1400))

	for m := 0; m < MinutesPerDay; m++ {
		require.True(t, NoFilter.Contains(m))
	}
}

func TestTimeFilter_WindowIs120Minutes(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		f := MustAtMinute(m)
		n := 0
		for b := 0; b < MinutesPerDay; b++ {
			if f.Contains(b) {
				n++
			}
		}
		require.Equal(t, 2*WindowMinutes, n, "minute %d", m)
	}
}

func TestAtMinute_OutOfRange(t *testing.T) {
	_, err := AtMinute(-1)
	assert.Error(t, err)
	_, err = AtMinute(MinutesPerDay)
	assert.Error(t, err)
	assert.Panics(t, func() { MustAtMinute(2000) })
}

func TestParseTimeFilter(t *testing.T) {
	tests := []struct {
		in         string
		wantActive bool
		wantMinute int
		wantErr    bool
	}{
		{"", false, 0, false},
		{"-1", false, 0, false},
		{"all", false, 0, false},
		{" ANY ", false, 0, false},
		{"0", true, 0, false},
		{"510", true, 510, false},
		{"1439", true, 1439, false},
		{"08:30", true, 510, false},
		{"23:59", true, 1439, false},
		{"1440", false, 0, true},
		{"-5", false, 0, true},
		{"24:00", false, 0, true},
		{"12:60", false, 0, true},
		{"noon", false, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseTimeFilter(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			m, active := f.Minute()
			assert.Equal(t, tt.wantActive, active)
			if tt.wantActive {
				assert.Equal(t, tt.wantMinute, m)
			}
		})
	}
}

func TestTimeFilter_Labels(t *testing.T) {
	assert.Equal(t, "any time", NoFilter.String())
	assert.Equal(t, "all", NoFilter.Key())
	assert.Equal(t, "12:00 AM", MustAtMinute(0).String())
	assert.Equal(t, "8:30 AM", MustAtMinute(510).String())
	assert.Equal(t, "12:00 PM", MustAtMinute(720).String())
	assert.Equal(t, "11:59 PM", MustAtMinute(1439).String())
	assert.Equal(t, "510", MustAtMinute(510).Key())
}
