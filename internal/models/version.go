package models

import (
	"encoding/json"
	"time"
)

// Version summaries written by the page service.
const (
	SummaryInitial    = "Versão inicial"
	SummaryUpdate     = "Atualização"
	SummaryPublish    = "Publicação"
	SummaryUnpublish  = "Despublicação"
	SummaryRestoreFmt = "Restauração da versão %d"
)

// Version is an immutable full-content snapshot of a page.
type Version struct {
	ID             int          `json:"id"`
	PageID         int          `json:"page_id"`
	Number         int          `json:"number"`
	Snapshot       PageSnapshot `json:"snapshot"`
	Summary        string       `json:"summary"`
	IsRestorePoint bool         `json:"is_restore_point"`
	CreatedAt      time.Time    `json:"created_at"`
}

// PageSnapshot is the content a Version freezes: the page row plus its
// sections at that instant.
type PageSnapshot struct {
	Page     Page      `json:"page"`
	Sections []Section `json:"sections"`
}

// Encode serializes the snapshot for storage.
func (s PageSnapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot parses a stored snapshot payload.
func DecodeSnapshot(raw []byte) (PageSnapshot, error) {
	var s PageSnapshot
	err := json.Unmarshal(raw, &s)
	return s, err
}
