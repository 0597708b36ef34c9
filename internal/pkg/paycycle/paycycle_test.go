package paycycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDDMMYYYY_Valid(t *testing.T) {
	got, ok := ParseDDMMYYYY("20.11.2024")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDDMMYYYY_Malformed(t *testing.T) {
	cases := []string{"", "20-11-2024", "20.11", "20.11.2024.5", "aa.bb.cccc", "2024-11-20"}
	for _, c := range cases {
		_, ok := ParseDDMMYYYY(c)
		assert.False(t, ok, "input %q should not parse", c)
	}
}

// time.Date normalizes out-of-range days, matching the rollover behavior the
// invoice pipeline has always relied on: 31.02.2024 lands on 02.03.2024.
func TestParseDDMMYYYY_NormalizesOverflow(t *testing.T) {
	got, ok := ParseDDMMYYYY("31.02.2024")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestCalculatePaymentDate_YearRollover(t *testing.T) {
	got, err := CalculatePaymentDate("20.11.2024", 45)
	require.NoError(t, err)
	assert.Equal(t, "04.01.2025", got)
}

func TestCalculatePaymentDate_GenericFallback(t *testing.T) {
	got, err := CalculatePaymentDate("2024-11-20", 45)
	require.NoError(t, err)
	assert.Equal(t, "04.01.2025", got)
}

func TestCalculatePaymentDate_Unparseable(t *testing.T) {
	_, err := CalculatePaymentDate("not a date", 45)
	assert.Error(t, err)
}

func TestCalculatePaymentDate_ZeroCycle(t *testing.T) {
	got, err := CalculatePaymentDate("29.02.2024", 0)
	require.NoError(t, err)
	assert.Equal(t, "29.02.2024", got)
}

// Round-trip property: output parsed back equals input + cycle days, across
// month, year and leap-year boundaries.
func TestCalculatePaymentDate_RoundTrip(t *testing.T) {
	cases := []struct {
		workDate  string
		cycleDays int
	}{
		{"01.01.2024", 30},
		{"31.01.2024", 30},
		{"15.02.2024", 14}, // leap February
		{"28.02.2023", 1},
		{"31.12.2024", 1},
		{"30.06.2025", 45},
		{"01.12.2025", 90},
	}

	for _, c := range cases {
		in, ok := ParseDDMMYYYY(c.workDate)
		require.True(t, ok, c.workDate)

		out, err := CalculatePaymentDate(c.workDate, c.cycleDays)
		require.NoError(t, err)

		parsed, ok := ParseDDMMYYYY(out)
		require.True(t, ok, out)
		assert.Equal(t, in.AddDate(0, 0, c.cycleDays), parsed,
			"%s + %d days", c.workDate, c.cycleDays)
	}
}

func TestCalculatePaymentDateAsDate(t *testing.T) {
	got, err := CalculatePaymentDateAsDate("20.11.2024", 45)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestDueDateFrom(t *testing.T) {
	ref := time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), DueDateFrom(ref, 45))
}
