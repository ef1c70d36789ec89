package domain

import (
	"fmt"
	"sort"
)

// BlockKind is the type of a content block in the template builder
type BlockKind string

const (
	BlockKindText    BlockKind = "text"
	BlockKindHeading BlockKind = "heading"
	BlockKindImage   BlockKind = "image"
	BlockKindButton  BlockKind = "button"
	BlockKindDivider BlockKind = "divider"
	BlockKindSpacer  BlockKind = "spacer"
)

func (k BlockKind) Validate() error {
	switch k {
	case BlockKindText, BlockKindHeading, BlockKindImage, BlockKindButton, BlockKindDivider, BlockKindSpacer:
		return nil
	}
	return fmt.Errorf("invalid block kind: %s", k)
}

// BlockProperties holds the string properties of a block, keyed by name
type BlockProperties map[string]string

// Clone returns an independent copy of the properties
func (p BlockProperties) Clone() BlockProperties {
	out := make(BlockProperties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Keys returns the property names in sorted order
func (p BlockProperties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Block is one typed, ordered unit of email content
type Block struct {
	ID         int64           `json:"id"`
	Kind       BlockKind       `json:"kind"`
	Properties BlockProperties `json:"properties"`
}

// Validate checks the kind and that the property keys are exactly the kind's default key set
func (b Block) Validate() error {
	if b.ID <= 0 {
		return fmt.Errorf("invalid block: id must be positive")
	}
	if err := b.Kind.Validate(); err != nil {
		return fmt.Errorf("invalid block %d: %w", b.ID, err)
	}
	defaults, _ := DefaultProperties(b.Kind)
	if len(defaults) != len(b.Properties) {
		return fmt.Errorf("invalid block %d: expected properties %v, got %v", b.ID, defaults.Keys(), b.Properties.Keys())
	}
	for key := range defaults {
		if _, ok := b.Properties[key]; !ok {
			return fmt.Errorf("invalid block %d: missing property %s", b.ID, key)
		}
	}
	return nil
}

// PaletteEntry is a draggable block type offered by the builder palette
type PaletteEntry struct {
	Kind     BlockKind       `json:"kind"`
	Label    string          `json:"label"`
	Icon     string          `json:"icon"`
	Defaults BlockProperties `json:"defaults"`
}

var palette = []PaletteEntry{
	{
		Kind:  BlockKindText,
		Label: "Text Block",
		Icon:  "📝",
		Defaults: BlockProperties{
			"content":    "Click to edit text",
			"fontSize":   "16px",
			"color":      "#333333",
			"textAlign":  "left",
			"fontWeight": "normal",
			"fontFamily": "Arial, sans-serif",
		},
	},
	{
		Kind:  BlockKindHeading,
		Label: "Heading",
		Icon:  "H",
		Defaults: BlockProperties{
			"content":    "Your Heading Here",
			"fontSize":   "24px",
			"color":      "#333333",
			"textAlign":  "center",
			"fontWeight": "bold",
			"fontFamily": "Arial, sans-serif",
		},
	},
	{
		Kind:  BlockKindImage,
		Label: "Image",
		Icon:  "🖼️",
		Defaults: BlockProperties{
			"src":       "https://via.placeholder.com/300x200",
			"alt":       "Image",
			"width":     "300px",
			"height":    "200px",
			"textAlign": "center",
		},
	},
	{
		Kind:  BlockKindButton,
		Label: "Button",
		Icon:  "🔘",
		Defaults: BlockProperties{
			"text":            "Click Here",
			"backgroundColor": "#007bff",
			"color":           "#ffffff",
			"padding":         "12px 24px",
			"borderRadius":    "4px",
			"textAlign":       "center",
			"href":            "#",
		},
	},
	{
		Kind:  BlockKindDivider,
		Label: "Divider",
		Icon:  "—",
		Defaults: BlockProperties{
			"height":          "1px",
			"backgroundColor": "#cccccc",
			"margin":          "20px 0",
		},
	},
	{
		Kind:  BlockKindSpacer,
		Label: "Spacer",
		Icon:  "⬜",
		Defaults: BlockProperties{
			"height": "30px",
		},
	},
}

// Palette returns the available block types in display order.
// Each entry carries its own copy of the defaults.
func Palette() []PaletteEntry {
	out := make([]PaletteEntry, len(palette))
	for i, entry := range palette {
		entry.Defaults = entry.Defaults.Clone()
		out[i] = entry
	}
	return out
}

// PaletteEntryFor returns the palette entry for a kind
func PaletteEntryFor(kind BlockKind) (PaletteEntry, error) {
	for _, entry := range palette {
		if entry.Kind == kind {
			entry.Defaults = entry.Defaults.Clone()
			return entry, nil
		}
	}
	return PaletteEntry{}, NewValidationError(fmt.Sprintf("unknown block kind: %s", kind))
}

// DefaultProperties returns a fresh copy of the default properties of a kind
func DefaultProperties(kind BlockKind) (BlockProperties, error) {
	entry, err := PaletteEntryFor(kind)
	if err != nil {
		return nil, err
	}
	return entry.Defaults, nil
}
