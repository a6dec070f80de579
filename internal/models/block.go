package models

import (
	"encoding/json"
	"fmt"
)

// BlockType tags one entry of a section's content list.
type BlockType string

const (
	BlockHeading BlockType = "heading"
	BlockText    BlockType = "text"
	BlockImage   BlockType = "image"
	BlockCode    BlockType = "code"
	BlockQuote   BlockType = "quote"
)

// Block is one entry of a section's content list. The Type tag decides
// which fields are meaningful; Validate enforces it at the boundary so
// malformed content never reaches rendering.
type Block struct {
	Type        BlockType `json:"type"`
	Level       int       `json:"level,omitempty"`
	Text        string    `json:"text,omitempty"`
	Markup      string    `json:"markup,omitempty"`
	URL         string    `json:"url,omitempty"`
	Alt         string    `json:"alt,omitempty"`
	Language    string    `json:"language,omitempty"`
	Source      string    `json:"source,omitempty"`
	Attribution string    `json:"attribution,omitempty"`
}

// Validate checks the fields required by the block's type.
func (b Block) Validate() error {
	switch b.Type {
	case BlockHeading:
		if b.Level < 1 || b.Level > 6 {
			return fmt.Errorf("%w: heading level %d out of range", ErrValidation, b.Level)
		}
		if b.Text == "" {
			return fmt.Errorf("%w: heading without text", ErrValidation)
		}
	case BlockText:
		if b.Markup == "" {
			return fmt.Errorf("%w: text block without markup", ErrValidation)
		}
	case BlockImage:
		if b.URL == "" {
			return fmt.Errorf("%w: image block without url", ErrValidation)
		}
	case BlockCode:
		if b.Source == "" {
			return fmt.Errorf("%w: code block without source", ErrValidation)
		}
	case BlockQuote:
		if b.Text == "" {
			return fmt.Errorf("%w: quote block without text", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown block type %q", ErrValidation, b.Type)
	}
	return nil
}

// Blocks is the ordered content of a section.
type Blocks []Block

// ParseBlocks decodes and validates a raw content payload against the
// owning section's type.
func ParseBlocks(raw []byte, sectionType SectionType) (Blocks, error) {
	if len(raw) == 0 {
		return Blocks{}, nil
	}

	var blocks Blocks
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, fmt.Errorf("%w: decoding blocks: %v", ErrValidation, err)
	}

	allowed := allowedBlocks[sectionType]
	for i, b := range blocks {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		if allowed != nil && !allowed[b.Type] {
			return nil, fmt.Errorf("%w: block %d: type %q not allowed in %q section", ErrValidation, i, b.Type, sectionType)
		}
	}
	return blocks, nil
}

// Encode serializes the block list for storage.
func (bs Blocks) Encode() ([]byte, error) {
	if bs == nil {
		bs = Blocks{}
	}
	return json.Marshal(bs)
}

// allowedBlocks restricts which block types each section type accepts.
// A missing entry means no restriction.
var allowedBlocks = map[SectionType]map[BlockType]bool{
	SectionHero: {
		BlockHeading: true,
		BlockText:    true,
		BlockImage:   true,
	},
	SectionGallery: {
		BlockImage: true,
	},
	SectionTestimonials: {
		BlockQuote: true,
		BlockImage: true,
	},
}
