package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthStart(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "MidMonth",
			now:  time.Date(2026, time.March, 17, 14, 32, 9, 0, time.UTC),
			want: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "FirstInstantOfMonth",
			now:  time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "LastInstantOfMonth",
			now:  time.Date(2026, time.February, 28, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC),
			want: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "NonUTCInputNormalized",
			now:  time.Date(2026, time.June, 1, 1, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
			want: time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthStart(tt.now))
		})
	}
}

// A row created at exactly 00:00:00.000 on the 1st belongs to the new
// month's window: the counter uses created_at >= MonthStart(now).
func TestMonthBoundaryIsInclusive(t *testing.T) {
	boundary := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)

	// Counting later in May includes the boundary row.
	mayStart := MonthStart(boundary.Add(3 * time.Hour))
	assert.False(t, boundary.Before(mayStart), "boundary row must be inside May's window")

	// A count run at the last instant of April uses April's window start,
	// and the boundary row did not exist inside [Apr 1, May 1).
	aprilStart := MonthStart(boundary.Add(-time.Nanosecond))
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), aprilStart)
	assert.True(t, boundary.After(boundary.Add(-time.Nanosecond)),
		"boundary row postdates every instant of April")
}

func TestMonthlyWindow(t *testing.T) {
	assert.True(t, monthlyWindow(CreateBrief))
	assert.True(t, monthlyWindow(ReceiveInquiry))
	assert.False(t, monthlyWindow(CreateClient))
	assert.False(t, monthlyWindow(CreateItem))
}
