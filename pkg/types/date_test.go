package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "valid", input: "2025-03-10", want: NewDate(2025, time.March, 10)},
		{name: "leap day", input: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{name: "not a leap year", input: "2025-02-29", wantErr: true},
		{name: "timestamp is rejected", input: "2025-03-10T10:00:00Z", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDateFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestDateOf_UsesLocationOfTime(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 22:30 UTC is already the next day at UTC+3
	instant := time.Date(2025, time.March, 9, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, NewDate(2025, time.March, 9), DateOf(instant))
	assert.Equal(t, NewDate(2025, time.March, 10), DateOf(instant.In(loc)))
}

func TestDate_AddDaysAcrossMonthAndYear(t *testing.T) {
	assert.Equal(t, MustParseDate("2025-03-01"), MustParseDate("2025-02-28").AddDays(1))
	assert.Equal(t, MustParseDate("2026-01-01"), MustParseDate("2025-12-31").AddDays(1))
	assert.Equal(t, MustParseDate("2024-12-31"), MustParseDate("2025-01-01").AddDays(-1))
}

func TestDate_Compare(t *testing.T) {
	a := MustParseDate("2025-03-10")
	b := MustParseDate("2025-03-11")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(MustParseDate("2025-03-10")))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
}

func TestDate_In(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	midnight := MustParseDate("2025-03-10").In(loc)

	assert.Equal(t, 0, midnight.Hour())
	assert.Equal(t, loc, midnight.Location())
	assert.Equal(t, MustParseDate("2025-03-10"), DateOf(midnight))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, MustParseDate("2025-04-01"), d)

	require.NoError(t, d.Scan([]byte("2025-04-02")))
	assert.Equal(t, MustParseDate("2025-04-02"), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.ErrorIs(t, d.Scan(42), ErrUnsupportedScanType)
}

func TestDate_JSON(t *testing.T) {
	payload := struct {
		Dates []Date `json:"dates"`
	}{}

	require.NoError(t, json.Unmarshal([]byte(`{"dates":["2025-03-10","2025-03-11"]}`), &payload))
	require.Len(t, payload.Dates, 2)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dates":["2025-03-10","2025-03-11"]}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"dates":["10/03/2025"]}`), &payload))
}
