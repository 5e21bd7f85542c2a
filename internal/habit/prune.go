package habit

import (
	"time"

	"habitkeep/internal/store"
)

// Prune removes completion dates that fall outside the retention window: an
// inclusive window of exactly retentionDays calendar days ending today. Date
// strings that fail to parse are corrupt data and are dropped too. Returns
// whether anything was removed, so callers can skip a redundant write.
//
// Pruning is idempotent: a second pass with the same inputs changes nothing.
func Prune(habits store.Habits, settings store.Settings, today time.Time) bool {
	if settings.Unlimited() {
		return false
	}

	cutoff := today.AddDate(0, 0, -(settings.RetentionDays - 1)).Format(store.DateLayout)

	changed := false
	for name, dates := range habits {
		kept := make([]string, 0, len(dates))
		for _, d := range dates {
			if _, err := time.Parse(store.DateLayout, d); err != nil {
				changed = true
				continue
			}
			if d < cutoff {
				changed = true
				continue
			}
			kept = append(kept, d)
		}
		habits[name] = kept
	}
	return changed
}
