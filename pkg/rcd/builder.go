package rcd

import (
	"bytes"
	"iter"

	"github.com/vinciguerra/rcdict/pkg/common/log"
)

// BuildOptions configures a Builder. BlockBytes is the tail size at which
// the next string starts a new block instead of extending the current one
// (spec §4.3); the record that reaches it can carry a block's tail past
// BlockBytes. OffsetWidth selects the capacity ceiling checked at Finish.
// RejectNUL rejects any input string containing an embedded NUL byte,
// per the recommendation in spec §9's "NUL in values" open question.
type BuildOptions struct {
	BlockBytes  int
	OffsetWidth OffsetWidth
	RejectNUL   bool
	Logger      log.Logger // optional; defaults to a no-op logger
}

// DefaultBuildOptions returns the recommended defaults: 64-bit offsets
// and NUL rejection, with the given block size.
func DefaultBuildOptions(blockBytes int) BuildOptions {
	return BuildOptions{
		BlockBytes:  blockBytes,
		OffsetWidth: OffsetWidth64,
		RejectNUL:   true,
	}
}

// Stats carries the aggregate construction statistics the original C++
// rear-coded array reports via std::cout. rcd computes the same figures
// in the same single pass but returns them to the caller instead of
// writing to stdout, and also emits them through the configured logger
// at debug level.
type Stats struct {
	InputBytes         int
	N                  int
	Blocks             int
	AvgStringLength    float64
	AvgLCP             float64
	MaxLCP             int
	AvgHeaderLCP       float64
	MaxHeaderLCP       int
	AvgStringsPerBlock float64
	Bytes              int
}

// Builder incrementally constructs a Dict from a strictly ascending
// sequence of distinct byte strings, one Add call per string.
type Builder struct {
	opts BuildOptions

	header []byte
	tail   []byte
	blocks []blockInfo

	prev          []byte
	n             uint64
	blockTailBase uint64 // tail length when the current block was opened

	maxLen int

	inputBytes   uint64
	sumLen       uint64
	sumLCP       uint64
	maxLCP       int
	lastLeader   []byte
	sumHeaderLCP uint64
	maxHeaderLCP int
}

// NewBuilder creates a Builder. It returns ErrEmptyBlockBytes if
// opts.BlockBytes is not positive.
func NewBuilder(opts BuildOptions) (*Builder, error) {
	if opts.BlockBytes < 1 {
		return nil, ErrEmptyBlockBytes
	}
	if opts.Logger == nil {
		opts.Logger = log.NewStandardLogger(log.WithLevel(log.LevelError))
	}
	return &Builder{opts: opts}, nil
}

// Add appends the next string of the sorted, distinct input sequence.
// It returns ErrNULByte if opts.RejectNUL is set and s contains an
// embedded NUL, or ErrUnsorted if s is not strictly greater than the
// previously added string (the very first call is exempt, so a single
// leading empty string is permitted).
func (b *Builder) Add(s []byte) error {
	if b.opts.RejectNUL && bytes.IndexByte(s, 0) >= 0 {
		return ErrNULByte
	}
	if b.n > 0 && bytes.Compare(s, b.prev) <= 0 {
		return ErrUnsorted
	}

	lcp := lcpBytes(b.prev, s)
	if lcp > b.maxLCP {
		b.maxLCP = lcp
	}
	if len(s) > b.maxLen {
		b.maxLen = len(s)
	}
	b.sumLCP += uint64(lcp)
	b.sumLen += uint64(len(s))
	b.inputBytes += uint64(len(s)) + 1

	curBlockTail := uint64(len(b.tail)) - b.blockTailBase
	if b.n == 0 || curBlockTail >= uint64(b.opts.BlockBytes) {
		if b.lastLeader != nil {
			hlcp := lcpBytes(b.lastLeader, s)
			if hlcp > b.maxHeaderLCP {
				b.maxHeaderLCP = hlcp
			}
			b.sumHeaderLCP += uint64(hlcp)
		}
		b.blocks = append(b.blocks, blockInfo{
			Count:        b.n,
			TailOffset:   uint64(len(b.tail)),
			HeaderOffset: uint64(len(b.header)),
		})
		b.header = append(b.header, s...)
		b.header = append(b.header, 0)
		b.blockTailBase = uint64(len(b.tail))
		b.lastLeader = append(b.lastLeader[:0], s...)
	} else {
		rearLength := len(b.prev) - lcp
		b.tail = appendVarint(b.tail, uint64(rearLength))
		b.tail = append(b.tail, s[lcp:]...)
		b.tail = append(b.tail, 0)
	}

	b.prev = append(b.prev[:0], s...)
	b.n++
	return nil
}

// Finish closes out construction, returning the built Dict and its
// statistics. Finish may be called only once per Builder.
func (b *Builder) Finish() (*Dict, Stats, error) {
	b.blocks = append(b.blocks, blockInfo{
		Count:        b.n,
		TailOffset:   uint64(len(b.tail)),
		HeaderOffset: uint64(len(b.header)),
	})

	if b.opts.OffsetWidth == OffsetWidth32 {
		if len(b.header) > maxUint32 || len(b.tail) > maxUint32 || b.n > maxUint32 {
			return nil, Stats{}, ErrOffsetOverflow
		}
	}

	d := &Dict{
		header: b.header,
		tail:   b.tail,
		blocks: b.blocks,
		n:      int(b.n),
		maxLen: b.maxLen,
	}

	numBlocks := len(b.blocks) - 1
	stats := Stats{
		InputBytes: int(b.inputBytes),
		N:          int(b.n),
		Blocks:     numBlocks,
		MaxLCP:     b.maxLCP,
		Bytes:      d.Bytes(),
	}
	if b.n > 0 {
		stats.AvgStringLength = float64(b.sumLen) / float64(b.n)
		stats.AvgLCP = float64(b.sumLCP) / float64(b.n)
	}
	if numBlocks > 0 {
		stats.MaxHeaderLCP = b.maxHeaderLCP
		stats.AvgHeaderLCP = float64(b.sumHeaderLCP) / float64(numBlocks)
		stats.AvgStringsPerBlock = float64(b.n) / float64(numBlocks)
	}

	b.opts.Logger.Debug(
		"input bytes %d, strings %d, blocks %d, avg len %.2f, avg lcp %.2f (max %d), "+
			"avg header lcp %.2f (max %d), avg strings/block %.2f, dict bytes %d",
		stats.InputBytes, stats.N, stats.Blocks, stats.AvgStringLength, stats.AvgLCP, stats.MaxLCP,
		stats.AvgHeaderLCP, stats.MaxHeaderLCP, stats.AvgStringsPerBlock, stats.Bytes,
	)

	return d, stats, nil
}

// BuildFromSeq builds a Dict from a lazy sequence of sorted, distinct
// byte strings, such as one produced by iterating a sorted file or an
// already-sorted slice. It is a thin convenience wrapper over
// NewBuilder/Add/Finish.
func BuildFromSeq(seq iter.Seq[[]byte], opts BuildOptions) (*Dict, Stats, error) {
	b, err := NewBuilder(opts)
	if err != nil {
		return nil, Stats{}, err
	}
	for s := range seq {
		if err := b.Add(s); err != nil {
			return nil, Stats{}, err
		}
	}
	return b.Finish()
}

// BuildFromSlice builds a Dict from an in-memory sorted, distinct slice.
func BuildFromSlice(ss [][]byte, opts BuildOptions) (*Dict, Stats, error) {
	return BuildFromSeq(func(yield func([]byte) bool) {
		for _, s := range ss {
			if !yield(s) {
				return
			}
		}
	}, opts)
}
