package models

import "time"

// SectionType tags the role of a section within a page.
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionText         SectionType = "text"
	SectionServices     SectionType = "services"
	SectionGallery      SectionType = "gallery"
	SectionTestimonials SectionType = "testimonials"
	SectionContact      SectionType = "contact"
)

// KnownSectionType reports whether t is one of the enumerated section types.
func KnownSectionType(t SectionType) bool {
	switch t {
	case SectionHero, SectionText, SectionServices, SectionGallery, SectionTestimonials, SectionContact:
		return true
	}
	return false
}

// Section represents one ordered content block of a page. Positions of a
// page's sections form a contiguous 0-based sequence after any reorder.
type Section struct {
	ID        int         `json:"id"`
	PageID    int         `json:"page_id"`
	Type      SectionType `json:"type"`
	Position  int         `json:"position"`
	Content   Blocks      `json:"content"`
	Settings  Settings    `json:"settings"`
	Active    bool        `json:"active"`
	Version   int         `json:"version"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
