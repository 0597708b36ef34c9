package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ops@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.domain.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("123456"))
	assert.False(t, IsNumeric("12a"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("-5"))
}

func TestIsValidDate(t *testing.T) {
	d, ok := IsValidDate("2024-11-20")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC), d)

	_, ok = IsValidDate("20.11.2024")
	assert.False(t, ok)

	_, ok = IsValidDate("2024-02-31")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2024-01-15T10:30:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2024-01-15T10:30:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2024-01-15")
	assert.False(t, ok)
}

func TestIsValidPeriod(t *testing.T) {
	assert.True(t, IsValidPeriod(2024, 1))
	assert.True(t, IsValidPeriod(2024, 12))
	assert.False(t, IsValidPeriod(2024, 0))
	assert.False(t, IsValidPeriod(2024, 13))
	assert.False(t, IsValidPeriod(1999, 6))
}

func TestIsValidEmployeeCode(t *testing.T) {
	assert.True(t, IsValidEmployeeCode("2024-0001"))
	assert.False(t, IsValidEmployeeCode("20240001"))
	assert.False(t, IsValidEmployeeCode("2024-001"))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "year", Message: "is required"},
		{Field: "month", Message: "must be between 1 and 12"},
	}

	assert.Equal(t, "year: is required; month: must be between 1 and 12", errs.Error())
	assert.Equal(t, map[string]string{
		"year":  "is required",
		"month": "must be between 1 and 12",
	}, errs.ToMap())
}
