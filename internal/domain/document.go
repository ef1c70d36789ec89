package domain

import (
	"fmt"
)

// MoveDirection is the direction of an adjacent swap in the block sequence
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

func (d MoveDirection) Validate() error {
	switch d {
	case MoveUp, MoveDown:
		return nil
	}
	return NewValidationError(fmt.Sprintf("invalid move direction: %s", d))
}

// Document is the ordered block sequence of one email template with its name and subject.
//
// Every mutation replaces the Blocks slice (and the target block's property map)
// instead of writing into it, so a slice or Clone taken earlier keeps its contents.
type Document struct {
	Name        string  `json:"name"`
	Subject     string  `json:"subject"`
	Blocks      []Block `json:"blocks"`
	NextBlockID int64   `json:"next_block_id"`
}

// NewDocument returns an empty document
func NewDocument() *Document {
	return &Document{
		Blocks:      []Block{},
		NextBlockID: 1,
	}
}

// Len returns the number of blocks
func (d *Document) Len() int {
	return len(d.Blocks)
}

// IndexOf returns the position of the block with the given id, or -1
func (d *Document) IndexOf(id int64) int {
	for i, b := range d.Blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Block returns the block with the given id
func (d *Document) Block(id int64) (Block, bool) {
	i := d.IndexOf(id)
	if i < 0 {
		return Block{}, false
	}
	return d.Blocks[i], true
}

// InsertBlock creates a block of the given kind seeded with fresh default
// properties and inserts it at index. The index is clamped to [0, Len()].
func (d *Document) InsertBlock(index int, kind BlockKind) (Block, error) {
	props, err := DefaultProperties(kind)
	if err != nil {
		return Block{}, err
	}

	if d.NextBlockID <= 0 {
		d.NextBlockID = 1
	}

	if index < 0 {
		index = 0
	}
	if index > len(d.Blocks) {
		index = len(d.Blocks)
	}

	block := Block{
		ID:         d.NextBlockID,
		Kind:       kind,
		Properties: props,
	}
	d.NextBlockID++

	blocks := make([]Block, 0, len(d.Blocks)+1)
	blocks = append(blocks, d.Blocks[:index]...)
	blocks = append(blocks, block)
	blocks = append(blocks, d.Blocks[index:]...)
	d.Blocks = blocks

	return block, nil
}

// UpdateProperty replaces a single property of the block with the given id.
// It returns false when no block has that id. Property names outside the
// kind's key set are rejected.
func (d *Document) UpdateProperty(id int64, name string, value string) (bool, error) {
	i := d.IndexOf(id)
	if i < 0 {
		return false, nil
	}

	target := d.Blocks[i]
	if _, ok := target.Properties[name]; !ok {
		return false, NewValidationError(fmt.Sprintf("property %s is not defined for %s blocks", name, target.Kind))
	}

	props := target.Properties.Clone()
	props[name] = value
	target.Properties = props

	blocks := make([]Block, len(d.Blocks))
	copy(blocks, d.Blocks)
	blocks[i] = target
	d.Blocks = blocks

	return true, nil
}

// MoveBlock swaps the block with its neighbour in the given direction.
// It returns false when the id is unknown or the block is already at that boundary.
func (d *Document) MoveBlock(id int64, direction MoveDirection) (bool, error) {
	if err := direction.Validate(); err != nil {
		return false, err
	}

	i := d.IndexOf(id)
	if i < 0 {
		return false, nil
	}

	j := i + 1
	if direction == MoveUp {
		j = i - 1
	}
	if j < 0 || j >= len(d.Blocks) {
		return false, nil
	}

	blocks := make([]Block, len(d.Blocks))
	copy(blocks, d.Blocks)
	blocks[i], blocks[j] = blocks[j], blocks[i]
	d.Blocks = blocks

	return true, nil
}

// DeleteBlock removes the block with the given id. It returns false when the id is unknown.
func (d *Document) DeleteBlock(id int64) bool {
	i := d.IndexOf(id)
	if i < 0 {
		return false
	}

	blocks := make([]Block, 0, len(d.Blocks)-1)
	blocks = append(blocks, d.Blocks[:i]...)
	blocks = append(blocks, d.Blocks[i+1:]...)
	d.Blocks = blocks

	return true
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	blocks := make([]Block, len(d.Blocks))
	for i, b := range d.Blocks {
		b.Properties = b.Properties.Clone()
		blocks[i] = b
	}
	return &Document{
		Name:        d.Name,
		Subject:     d.Subject,
		Blocks:      blocks,
		NextBlockID: d.NextBlockID,
	}
}

// Validate checks id uniqueness, the id counter and every block
func (d *Document) Validate() error {
	seen := make(map[int64]struct{}, len(d.Blocks))
	for _, b := range d.Blocks {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("invalid document: %w", err)
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("invalid document: duplicate block id %d", b.ID)
		}
		if b.ID >= d.NextBlockID {
			return fmt.Errorf("invalid document: block id %d is not below next_block_id %d", b.ID, d.NextBlockID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}
