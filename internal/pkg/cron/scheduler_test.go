package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddDailyJob_OnlyRunsDuringItsHour(t *testing.T) {
	s := NewScheduler()

	runs := 0
	s.AddDailyJob("nightly", 1, func(ctx context.Context) error {
		runs++
		return nil
	})

	s.now = func() time.Time { return time.Date(2024, 11, 20, 14, 15, 0, 0, time.UTC) }
	s.RunOnce(context.Background())
	assert.Zero(t, runs, "must not run outside the scheduled hour")

	s.now = func() time.Time { return time.Date(2024, 11, 20, 1, 30, 0, 0, time.UTC) }
	s.RunOnce(context.Background())
	assert.Equal(t, 1, runs)
}

func TestRunOnce_RunsEveryIntervalJob(t *testing.T) {
	s := NewScheduler()

	var ran []string
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "first")
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "second")
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"first", "second"}, ran)
}
