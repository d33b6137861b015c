package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

var today = types.MustParseDate("2025-03-05")

func TestResource_Availability(t *testing.T) {
	perUnit := &Resource{ID: 1, TotalCapacity: 2, ExclusivityMode: ModePerUnit}
	whole := &Resource{ID: 2, TotalCapacity: 10, ExclusivityMode: ModeWholeResource}
	tomorrow := today.AddDays(1)

	tests := []struct {
		name     string
		resource *Resource
		date     types.Date
		reserved int
		want     Availability
	}{
		{"today is blacked out", perUnit, today, 0, Availability{false, 0}},
		{"past is blacked out", perUnit, today.AddDays(-3), 0, Availability{false, 0}},
		{"tomorrow per unit free", perUnit, tomorrow, 0, Availability{true, 2}},
		{"per unit partially taken", perUnit, tomorrow, 1, Availability{true, 1}},
		{"per unit full", perUnit, tomorrow, 2, Availability{false, 0}},
		{"per unit overbooked clamps to zero", perUnit, tomorrow, 5, Availability{false, 0}},
		{"whole resource free", whole, tomorrow, 0, Availability{true, 1}},
		{"whole resource taken", whole, tomorrow, 1, Availability{false, 0}},
		{"whole resource today", whole, today, 0, Availability{false, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.resource.Availability(tt.date, today, tt.reserved))
		})
	}
}

func TestResource_AvailableDates(t *testing.T) {
	r := &Resource{TotalCapacity: 1, ExclusivityMode: ModePerUnit}
	window, err := MonthWindow(2025, time.March)
	require.NoError(t, err)

	reserved := map[types.Date]int{
		types.MustParseDate("2025-03-10"): 1,
	}

	dates := r.AvailableDates(window, today, reserved)

	// с 6 по 31 марта, кроме 10-го
	require.Len(t, dates, 25)
	assert.Equal(t, types.MustParseDate("2025-03-06"), dates[0])
	assert.Equal(t, types.MustParseDate("2025-03-31"), dates[len(dates)-1])
	assert.NotContains(t, dates, types.MustParseDate("2025-03-10"))

	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i-1].Before(dates[i]))
	}
}

func TestResource_AvailableDatesMatchesPerDateCheck(t *testing.T) {
	r := &Resource{TotalCapacity: 3, ExclusivityMode: ModeWholeResource}
	window, err := MonthWindow(2025, time.March)
	require.NoError(t, err)

	reserved := map[types.Date]int{
		types.MustParseDate("2025-03-01"): 1,
		types.MustParseDate("2025-03-20"): 1,
		types.MustParseDate("2025-03-21"): 2,
	}

	got := r.AvailableDates(window, today, reserved)

	var want []types.Date
	for _, d := range window.Days() {
		if r.Availability(d, today, reserved[d]).Available {
			want = append(want, d)
		}
	}
	assert.Equal(t, want, got)
}

func TestResource_Validate(t *testing.T) {
	assert.NoError(t, (&Resource{TotalCapacity: 1, ExclusivityMode: ModePerUnit}).Validate())
	assert.Error(t, (&Resource{TotalCapacity: 0, ExclusivityMode: ModePerUnit}).Validate())
	assert.ErrorIs(t, (&Resource{TotalCapacity: 1, ExclusivityMode: "shared"}).Validate(), ErrInvalidExclusivityMode)
}

func TestParseExclusivityMode(t *testing.T) {
	m, err := ParseExclusivityMode("PER_UNIT")
	require.NoError(t, err)
	assert.Equal(t, ModePerUnit, m)

	m, err = ParseExclusivityMode("whole_resource")
	require.NoError(t, err)
	assert.Equal(t, ModeWholeResource, m)

	_, err = ParseExclusivityMode("by_the_hour")
	assert.ErrorIs(t, err, ErrInvalidExclusivityMode)
}

func TestModeForTypology(t *testing.T) {
	assert.Equal(t, ModeWholeResource, ModeForTypology("MEETING_ROOMS"))
	assert.Equal(t, ModeWholeResource, ModeForTypology("meeting_rooms"))
	assert.Equal(t, ModePerUnit, ModeForTypology("OPEN_SPACE"))
	assert.Equal(t, ModePerUnit, ModeForTypology(""))
}
