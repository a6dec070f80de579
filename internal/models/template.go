package models

// Template is a page blueprint: default structural settings plus an ordered
// list of default-section blueprints. Read-only from the engine's side.
type Template struct {
	ID       int               `json:"id"`
	Slug     string            `json:"slug"`
	Name     string            `json:"name"`
	Settings Settings          `json:"settings"`
	Sections []TemplateSection `json:"sections"`
}

// TemplateSection is one default-section blueprint of a template.
type TemplateSection struct {
	ID         int         `json:"id"`
	TemplateID int         `json:"template_id"`
	Type       SectionType `json:"type"`
	Content    Blocks      `json:"content"`
	Settings   Settings    `json:"settings"`
	Position   int         `json:"position"`
}
