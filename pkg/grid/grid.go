// Package grid maps a flat linear index into row/column coordinates for a
// fixed-width grid layout. It is deliberately generic: the teacher uses it
// to lay out VRAM text cells, cmd/bfview reuses it unchanged to lay out
// tape cells on a scrolling strip.
package grid

// GetGridCoords returns the (x, y) column/row of the cell at index, given a
// grid that wraps after cols columns.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}
