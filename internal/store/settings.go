package store

import "encoding/json"

// Unbounded means keep completion history forever.
const Unbounded = 0

// Settings holds the one recognized setting: the retention window in days.
// RetentionDays is either a positive integer or Unbounded.
type Settings struct {
	RetentionDays int
}

// DefaultSettings keeps history forever.
func DefaultSettings() Settings {
	return Settings{RetentionDays: Unbounded}
}

// Unlimited reports whether history is kept forever.
func (s Settings) Unlimited() bool {
	return s.RetentionDays < 1
}

type settingsDoc struct {
	RetentionDays *int `json:"retention_days"`
}

// MarshalJSON writes unbounded retention as null, matching the on-disk
// contract ({"retention_days": 30} or {"retention_days": null}).
func (s Settings) MarshalJSON() ([]byte, error) {
	doc := settingsDoc{}
	if s.RetentionDays >= 1 {
		days := s.RetentionDays
		doc.RetentionDays = &days
	}
	return json.Marshal(doc)
}

// decodeSettings parses a settings document, coercing anything that is not a
// positive integer — null, absent, wrong type, zero, negative, or a document
// that does not parse at all — to unbounded.
func decodeSettings(data []byte) Settings {
	var doc settingsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return DefaultSettings()
	}
	if doc.RetentionDays == nil || *doc.RetentionDays < 1 {
		return DefaultSettings()
	}
	return Settings{RetentionDays: *doc.RetentionDays}
}
