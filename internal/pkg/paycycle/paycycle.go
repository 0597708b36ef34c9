package paycycle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultCycleDays is the payment cycle applied when an employee has no
// configured cycle length.
const DefaultCycleDays = 45

const layoutDDMMYYYY = "02.01.2006"

// genericLayouts are tried, in order, when the input is not a DD.MM.YYYY literal.
var genericLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseDDMMYYYY parses a "DD.MM.YYYY" literal. The boolean is false when the
// input does not split into exactly three numeric components.
//
// Out-of-range calendar components are normalized by time.Date, so
// "31.02.2024" yields 2024-03-02. Callers that need strict calendar dates must
// round-trip the result through Format.
func ParseDDMMYYYY(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	return time.Date(nums[2], time.Month(nums[1]), nums[0], 0, 0, 0, 0, time.UTC), true
}

// parseWorkDate resolves a work date from either the DD.MM.YYYY literal or one
// of the generic layouts.
func parseWorkDate(workDate string) (time.Time, error) {
	if t, ok := ParseDDMMYYYY(workDate); ok {
		return t, nil
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, workDate); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable work date %q", workDate)
}

// CalculatePaymentDateAsDate returns the payment due date for a work date:
// the work date plus cycleDays calendar days. Month and year rollover follow
// the calendar, e.g. 20.11.2024 + 45 days = 04.01.2025.
func CalculatePaymentDateAsDate(workDate string, cycleDays int) (time.Time, error) {
	t, err := parseWorkDate(workDate)
	if err != nil {
		return time.Time{}, err
	}
	return t.AddDate(0, 0, cycleDays), nil
}

// CalculatePaymentDate is CalculatePaymentDateAsDate formatted as DD.MM.YYYY.
func CalculatePaymentDate(workDate string, cycleDays int) (string, error) {
	t, err := CalculatePaymentDateAsDate(workDate, cycleDays)
	if err != nil {
		return "", err
	}
	return t.Format(layoutDDMMYYYY), nil
}

// DueDateFrom adds cycleDays calendar days to a known-good date value.
func DueDateFrom(ref time.Time, cycleDays int) time.Time {
	return ref.AddDate(0, 0, cycleDays)
}

// FormatDDMMYYYY renders a date as the DD.MM.YYYY literal used on invoices.
func FormatDDMMYYYY(t time.Time) string {
	return t.Format(layoutDDMMYYYY)
}
