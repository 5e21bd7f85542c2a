package habit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitkeep/internal/store"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(store.DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestPruneUnboundedIsNoop(t *testing.T) {
	habits := store.Habits{"Gym": {"1999-01-01", "2023-01-02"}}

	changed := Prune(habits, store.DefaultSettings(), day(t, "2023-01-03"))

	assert.False(t, changed)
	assert.Equal(t, []string{"1999-01-01", "2023-01-02"}, habits["Gym"])
}

func TestPruneRetentionOneKeepsOnlyToday(t *testing.T) {
	habits := store.Habits{"Gym": {"2023-01-01", "2023-01-02"}}

	changed := Prune(habits, store.Settings{RetentionDays: 1}, day(t, "2023-01-03"))

	assert.True(t, changed)
	assert.Empty(t, habits["Gym"], "cutoff equals today, both dates excluded")
}

func TestPruneWindowIsInclusive(t *testing.T) {
	habits := store.Habits{
		"Read": {"2023-01-01", "2023-01-02", "2023-01-03"},
	}

	// 2-day window ending 2023-01-03 keeps 01-02 and 01-03.
	changed := Prune(habits, store.Settings{RetentionDays: 2}, day(t, "2023-01-03"))

	assert.True(t, changed)
	assert.Equal(t, []string{"2023-01-02", "2023-01-03"}, habits["Read"])
}

func TestPruneDropsUnparsableDates(t *testing.T) {
	habits := store.Habits{"Read": {"not-a-date", "2023-01-03", "2023-02-30"}}

	changed := Prune(habits, store.Settings{RetentionDays: 7}, day(t, "2023-01-03"))

	assert.True(t, changed)
	assert.Equal(t, []string{"2023-01-03"}, habits["Read"])
}

func TestPruneIdempotent(t *testing.T) {
	habits := store.Habits{
		"Gym":  {"2022-12-01", "2023-01-02", "2023-01-03"},
		"Read": {"bogus", "2023-01-03"},
	}
	settings := store.Settings{RetentionDays: 5}
	today := day(t, "2023-01-03")

	assert.True(t, Prune(habits, settings, today))
	assert.False(t, Prune(habits, settings, today), "second pass must change nothing")
}

func TestPruneSpansMonthBoundary(t *testing.T) {
	habits := store.Habits{"Gym": {"2023-02-26", "2023-02-27", "2023-03-01"}}

	// 3-day window ending 2023-03-01: cutoff is 2023-02-27.
	changed := Prune(habits, store.Settings{RetentionDays: 3}, day(t, "2023-03-01"))

	assert.True(t, changed)
	assert.Equal(t, []string{"2023-02-27", "2023-03-01"}, habits["Gym"])
}
