package models

import "time"

// Tenant represents a top-level content area. Page slugs are unique per
// tenant.
type Tenant struct {
	ID         int        `json:"id"`
	Slug       string     `json:"slug"`
	Name       string     `json:"name"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}
