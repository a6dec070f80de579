package models

import (
	"encoding/json"
	"time"
)

// Status is the publish state of a page.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Settings is a free-form key/value bag for structural page settings.
type Settings map[string]any

// Encode serializes the settings for storage. Nil encodes as empty object.
func (s Settings) Encode() ([]byte, error) {
	if s == nil {
		s = Settings{}
	}
	return json.Marshal(s)
}

// Merge returns a copy of s with overrides applied on top. Overrides win
// on conflicting keys.
func (s Settings) Merge(overrides Settings) Settings {
	merged := make(Settings, len(s)+len(overrides))
	for k, v := range s {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// Page represents a single content page within a tenant.
type Page struct {
	ID             int        `json:"id"`
	TenantID       int        `json:"tenant_id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Status         Status     `json:"status"`
	CurrentVersion int        `json:"current_version"`
	Settings       Settings   `json:"settings"`
	TemplateID     *int       `json:"template_id,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	UnpublishedAt  *time.Time `json:"unpublished_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
