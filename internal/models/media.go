package models

import "time"

// Media represents an uploaded file referenced by image blocks.
type Media struct {
	ID             int       `json:"id"`
	Filename       string    `json:"filename"`
	UniqueFilename string    `json:"unique_filename"`
	MimeType       string    `json:"mime_type"`
	Size           int64     `json:"size"`
	CreatedAt      time.Time `json:"created_at"`
}
