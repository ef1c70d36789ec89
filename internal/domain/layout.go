package domain

// BlockBounds is the rendered vertical extent of a block, relative to the canvas origin
type BlockBounds struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Midpoint returns the vertical centre of the block
func (b BlockBounds) Midpoint() float64 {
	return b.Top + b.Height/2
}

// InsertionIndex returns where a block dropped at cursorY should be inserted
// into a sequence of blockCount blocks.
//
// bounds[i] describes the rendered block at position i. The result is the
// position of the first block whose midpoint lies below cursorY, or blockCount
// when there is none. Positions without bounds are skipped.
func InsertionIndex(cursorY float64, bounds []BlockBounds, blockCount int) int {
	n := blockCount
	if len(bounds) < n {
		n = len(bounds)
	}
	for i := 0; i < n; i++ {
		if cursorY < bounds[i].Midpoint() {
			return i
		}
	}
	return blockCount
}
