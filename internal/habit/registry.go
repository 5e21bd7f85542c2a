// Package habit implements the domain operations over the persisted habit
// store: registration, daily completion marking, retention pruning, and
// resets. Every operation loads fresh from disk, mutates in memory, and
// persists before returning — the files are the only observable effect.
//
// The registry provides no mutual exclusion. Callers that can run
// concurrently (the HTTP shell) must serialize their calls into it; see
// internal/serial.
package habit

import (
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"habitkeep/internal/store"
)

// ErrInvalidRetention is returned when a retention value is negative.
// Zero is valid and means unbounded.
var ErrInvalidRetention = errors.New("retention must be zero or a positive number of days")

// Registry is the single entry point for all habit operations.
type Registry struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Registry over the given store. A nil logger disables logging.
func New(st *store.Store, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// HabitStatus pairs a habit name with whether it was completed today.
type HabitStatus struct {
	Name      string `json:"name"`
	DoneToday bool   `json:"done_today"`
}

func (r *Registry) today() string {
	return r.now().Format(store.DateLayout)
}

// List returns all known habit names sorted lexicographically ascending.
func (r *Registry) List() ([]string, error) {
	habits, err := r.store.LoadHabits()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(habits))
	for name := range habits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Status returns every habit with its done-today flag, sorted by name. This
// is the single call a shell needs to render its menu.
func (r *Registry) Status() ([]HabitStatus, error) {
	habits, err := r.store.LoadHabits()
	if err != nil {
		return nil, err
	}
	today := r.today()
	statuses := make([]HabitStatus, 0, len(habits))
	for name, dates := range habits {
		statuses = append(statuses, HabitStatus{
			Name:      name,
			DoneToday: containsDate(dates, today),
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses, nil
}

// IsDoneToday reports whether the habit was completed today. An unknown
// habit is simply not done — not an error.
func (r *Registry) IsDoneToday(name string) (bool, error) {
	habits, err := r.store.LoadHabits()
	if err != nil {
		return false, err
	}
	return containsDate(habits[name], r.today()), nil
}

// Add registers a new habit with an empty history. The name is trimmed of
// surrounding whitespace; an empty result is a no-op, and re-adding an
// existing habit is a no-op that keeps its history.
func (r *Registry) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	habits, err := r.store.LoadHabits()
	if err != nil {
		return err
	}
	if _, exists := habits[name]; exists {
		r.logger.Debug("habit already exists", zap.String("name", name))
		return nil
	}
	habits[name] = []string{}

	if err := r.pruneAndSave(habits); err != nil {
		return err
	}
	r.logger.Info("habit added", zap.String("name", name))
	return nil
}

// MarkDone records today's date for an existing habit. Marking twice on the
// same day is a no-op; marking an unknown habit is a no-op — habits are only
// ever created by Add.
func (r *Registry) MarkDone(name string) error {
	habits, err := r.store.LoadHabits()
	if err != nil {
		return err
	}
	dates, exists := habits[name]
	if !exists {
		r.logger.Debug("mark done for unknown habit", zap.String("name", name))
		return nil
	}

	today := r.today()
	if !containsDate(dates, today) {
		dates = append(dates, today)
		sort.Strings(dates)
		habits[name] = dates
	}

	if err := r.pruneAndSave(habits); err != nil {
		return err
	}
	r.logger.Info("habit marked done", zap.String("name", name), zap.String("date", today))
	return nil
}

// ApplyRetention prunes every habit against the current retention setting
// and persists only if something changed. Run once at process start to catch
// dates that aged out since the last run.
func (r *Registry) ApplyRetention() (bool, error) {
	habits, err := r.store.LoadHabits()
	if err != nil {
		return false, err
	}
	settings, err := r.store.LoadSettings()
	if err != nil {
		return false, err
	}

	if !Prune(habits, settings, r.now()) {
		return false, nil
	}
	if err := r.store.SaveHabits(habits); err != nil {
		return false, err
	}
	r.logger.Info("retention applied", zap.Int("retention_days", settings.RetentionDays))
	return true, nil
}

// ResetAll irreversibly replaces the entire store with an empty mapping.
// Confirmation is the caller's job.
func (r *Registry) ResetAll() error {
	if err := r.store.SaveHabits(store.Habits{}); err != nil {
		return err
	}
	r.logger.Warn("all habit data reset")
	return nil
}

// Retention returns the current retention setting.
func (r *Registry) Retention() (store.Settings, error) {
	return r.store.LoadSettings()
}

// SetRetention updates the retention window. Zero means unbounded; negative
// values are rejected. The new window is applied to existing history
// immediately.
func (r *Registry) SetRetention(days int) error {
	if days < 0 {
		return ErrInvalidRetention
	}
	if err := r.store.SaveSettings(store.Settings{RetentionDays: days}); err != nil {
		return err
	}
	r.logger.Info("retention updated", zap.Int("retention_days", days))
	_, err := r.ApplyRetention()
	return err
}

// pruneAndSave applies the current retention window and persists the
// mapping. Used after every mutation so stale dates never survive a write.
func (r *Registry) pruneAndSave(habits store.Habits) error {
	settings, err := r.store.LoadSettings()
	if err != nil {
		return err
	}
	Prune(habits, settings, r.now())
	return r.store.SaveHabits(habits)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}
