package rcd

// OffsetWidth selects the integer width used to validate the size of the
// built regions against a capacity ceiling. The dictionary's own internal
// arrays are always native-width (64-bit) slices; OffsetWidth32 only adds
// a stricter construction-time check so a dictionary meant to be
// re-encoded into a 32-bit-offset wire format is rejected early rather
// than silently built past what that format could address.
type OffsetWidth int

const (
	// OffsetWidth64 is the default: header and tail regions may each grow
	// up to the full address space rcd can represent.
	OffsetWidth64 OffsetWidth = 64
	// OffsetWidth32 rejects construction once a region would exceed
	// 2^32-1 bytes, or the input holds more than 2^32-1 strings.
	OffsetWidth32 OffsetWidth = 32
)

const maxUint32 = 1<<32 - 1

// blockInfo is the block index entry of spec §3: for block b, Count is
// the cumulative number of strings held by blocks before b, and
// TailOffset/HeaderOffset locate b's tail records and leader within the
// tail and header regions respectively. A sentinel entry at index B
// carries Count = N and the end offsets of both regions.
type blockInfo struct {
	Count        uint64
	TailOffset   uint64
	HeaderOffset uint64
}
