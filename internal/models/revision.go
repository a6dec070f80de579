package models

import (
	"encoding/json"
	"time"
)

// Action tags one audited mutation in the revision log.
type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionPublish   Action = "publish"
	ActionUnpublish Action = "unpublish"
	ActionReorder   Action = "reorder"
)

// Revision is one append-only audit record. SectionID is nil when the
// action targets the whole page.
type Revision struct {
	ID        int             `json:"id"`
	PageID    int             `json:"page_id"`
	SectionID *int            `json:"section_id,omitempty"`
	Action    Action          `json:"action"`
	Payload   json.RawMessage `json:"payload"`
	ActorID   int             `json:"actor_id"`
	CreatedAt time.Time       `json:"created_at"`
}
