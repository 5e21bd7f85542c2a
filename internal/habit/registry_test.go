package habit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitkeep/internal/config"
	"habitkeep/internal/store"
)

// newTestRegistry returns a registry over a temp-dir store with the clock
// pinned to 2023-01-03.
func newTestRegistry(t *testing.T) (*Registry, *store.Store) {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	st, err := store.New(cfg)
	require.NoError(t, err)

	reg := New(st, nil)
	reg.now = func() time.Time {
		return time.Date(2023, 1, 3, 15, 4, 5, 0, time.UTC)
	}
	return reg, st
}

func TestAddAndList(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.NoError(t, reg.Add("Read"))
	require.NoError(t, reg.Add("Exercise"))

	names, err := reg.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Exercise", "Read"}, names, "sorted ascending")
}

func TestAddIdempotent(t *testing.T) {
	reg, st := newTestRegistry(t)

	require.NoError(t, reg.Add("Read"))
	require.NoError(t, reg.MarkDone("Read"))
	require.NoError(t, reg.Add("Read"), "re-add must not error")

	habits, err := st.LoadHabits()
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-01-03"}, habits["Read"], "re-add must not clear history")
}

func TestAddTrimsWhitespace(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.NoError(t, reg.Add("  Read  "))

	names, err := reg.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Read"}, names)
}

func TestAddEmptyNameIsNoop(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.NoError(t, reg.Add(""))
	require.NoError(t, reg.Add("   "))

	names, err := reg.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMarkDoneTwiceSameDay(t *testing.T) {
	reg, st := newTestRegistry(t)

	require.NoError(t, reg.Add("Gym"))
	require.NoError(t, reg.MarkDone("Gym"))
	require.NoError(t, reg.MarkDone("Gym"))

	habits, err := st.LoadHabits()
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-01-03"}, habits["Gym"], "exactly one occurrence of today")
}

func TestMarkDoneUnknownHabitIsNoop(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.NoError(t, reg.MarkDone("Ghost"), "habits are never auto-created")

	names, err := reg.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestIsDoneTodayUnknownHabit(t *testing.T) {
	reg, _ := newTestRegistry(t)

	done, err := reg.IsDoneToday("Ghost")
	require.NoError(t, err)
	assert.False(t, done, "unknown habit is not an error")
}

func TestDailyFlow(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.NoError(t, reg.Add("Read"))

	names, err := reg.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Read"}, names)

	done, err := reg.IsDoneToday("Read")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, reg.MarkDone("Read"))

	done, err = reg.IsDoneToday("Read")
	require.NoError(t, err)
	assert.True(t, done)

	names, err = reg.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Read"}, names)
}

func TestStatusFlags(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.NoError(t, reg.Add("Read"))
	require.NoError(t, reg.Add("Gym"))
	require.NoError(t, reg.MarkDone("Gym"))

	statuses, err := reg.Status()
	require.NoError(t, err)
	assert.Equal(t, []HabitStatus{
		{Name: "Gym", DoneToday: true},
		{Name: "Read", DoneToday: false},
	}, statuses)
}

func TestApplyRetentionReportsChange(t *testing.T) {
	reg, st := newTestRegistry(t)

	require.NoError(t, st.SaveHabits(store.Habits{"Gym": {"2022-06-01", "2023-01-03"}}))
	require.NoError(t, st.SaveSettings(store.Settings{RetentionDays: 7}))

	changed, err := reg.ApplyRetention()
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = reg.ApplyRetention()
	require.NoError(t, err)
	assert.False(t, changed, "nothing left to prune")

	habits, err := st.LoadHabits()
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-01-03"}, habits["Gym"])
}

func TestSetRetentionRejectsNegative(t *testing.T) {
	reg, _ := newTestRegistry(t)

	err := reg.SetRetention(-1)
	assert.ErrorIs(t, err, ErrInvalidRetention)
}

func TestSetRetentionZeroMeansUnbounded(t *testing.T) {
	reg, st := newTestRegistry(t)

	require.NoError(t, st.SaveHabits(store.Habits{"Gym": {"1999-01-01"}}))
	require.NoError(t, reg.SetRetention(0))

	settings, err := reg.Retention()
	require.NoError(t, err)
	assert.True(t, settings.Unlimited())

	habits, err := st.LoadHabits()
	require.NoError(t, err)
	assert.Equal(t, []string{"1999-01-01"}, habits["Gym"], "unbounded retention never removes")
}

func TestSetRetentionPrunesImmediately(t *testing.T) {
	reg, st := newTestRegistry(t)

	require.NoError(t, st.SaveHabits(store.Habits{"Gym": {"2023-01-01", "2023-01-02", "2023-01-03"}}))
	require.NoError(t, reg.SetRetention(1))

	habits, err := st.LoadHabits()
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-01-03"}, habits["Gym"])
}

func TestResetAll(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.NoError(t, reg.Add("Read"))
	require.NoError(t, reg.Add("Gym"))
	require.NoError(t, reg.MarkDone("Read"))

	require.NoError(t, reg.ResetAll())

	names, err := reg.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMutationsPruneBeforePersisting(t *testing.T) {
	reg, st := newTestRegistry(t)

	require.NoError(t, st.SaveHabits(store.Habits{"Gym": {"2022-01-01"}}))
	require.NoError(t, st.SaveSettings(store.Settings{RetentionDays: 1}))

	require.NoError(t, reg.MarkDone("Gym"))

	habits, err := st.LoadHabits()
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-01-03"}, habits["Gym"], "stale dates must not survive a mutation")
}
