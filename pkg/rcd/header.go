package rcd

// HeaderView exposes random-access, read-only traversal of block
// leaders, as NUL-stripped byte slices, without copying. It mirrors the
// original's random-access HeaderIterator, expressed as a value type
// with indexed access rather than an iterator protocol, since Go has no
// operator overloading to give pointer-like arithmetic to a custom type.
type HeaderView struct {
	d *Dict
}

// Headers returns a view over the dictionary's B block leaders.
func (d *Dict) Headers() HeaderView { return HeaderView{d} }

// Len returns the number of leaders (equal to Blocks()).
func (h HeaderView) Len() int { return h.d.Blocks() }

// At returns the NUL-stripped leader of block b. It panics if b is out
// of range, matching the original's unchecked random access.
func (h HeaderView) At(b int) []byte {
	buf := h.d.header[h.d.blocks[b].HeaderOffset:]
	return buf[:cstrlen(buf)]
}

// HeaderIter is a cursor over a HeaderView supporting increment,
// decrement, indexed access relative to the cursor, and the difference
// between two cursors, the operations the original's HeaderIterator
// provides. HeaderIter is a small value type; all positioning methods
// return a new cursor rather than mutating the receiver.
type HeaderIter struct {
	view HeaderView
	pos  int
}

// HeaderIterator returns a cursor positioned at block 0.
func (d *Dict) HeaderIterator() HeaderIter {
	return HeaderIter{view: d.Headers(), pos: 0}
}

// Valid reports whether the cursor is within [0, Len()).
func (it HeaderIter) Valid() bool {
	return it.pos >= 0 && it.pos < it.view.Len()
}

// Header returns the leader at the cursor's current position.
func (it HeaderIter) Header() []byte { return it.view.At(it.pos) }

// At returns the leader offset blocks from the cursor's position.
func (it HeaderIter) At(offset int) []byte { return it.view.At(it.pos + offset) }

// Next returns a cursor advanced by one block.
func (it HeaderIter) Next() HeaderIter { return HeaderIter{it.view, it.pos + 1} }

// Prev returns a cursor moved back by one block.
func (it HeaderIter) Prev() HeaderIter { return HeaderIter{it.view, it.pos - 1} }

// Add returns a cursor offset by n blocks (n may be negative).
func (it HeaderIter) Add(n int) HeaderIter { return HeaderIter{it.view, it.pos + n} }

// Sub returns the number of blocks between it and other (it.pos - other.pos).
func (it HeaderIter) Sub(other HeaderIter) int { return it.pos - other.pos }
