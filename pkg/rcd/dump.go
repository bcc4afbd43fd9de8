package rcd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

// dumpMagic identifies a Dump stream. The format is not a stable
// persistence guarantee (spec §6): it is an external serializer built
// purely from the public Size/Access operations, free to change
// between versions.
var dumpMagic = [4]byte{'R', 'C', 'D', '1'}

// ErrDumpChecksum is returned by Load when the decompressed payload does
// not match its recorded checksum.
var ErrDumpChecksum = fmt.Errorf("rcd: dump checksum mismatch")

// Dump serializes d by iterating its strings in order and writes a
// zstd-compressed, xxhash-checksummed stream to w. This is the
// "callers serialize by iterating strings" escape hatch spec §6
// describes; it carries no guarantee the wire format is stable across
// versions of this package.
func Dump(d *Dict, w io.Writer) error {
	var body bytes.Buffer
	body.Write(dumpMagic[:])
	body.Write(appendVarint(nil, uint64(d.Size())))

	out := make([]byte, d.MaxStringLength()+1)
	for i := 0; i < d.Size(); i++ {
		n, err := d.Access(i, out)
		if err != nil {
			return fmt.Errorf("rcd: dump: %w", err)
		}
		body.Write(appendVarint(nil, uint64(n)))
		body.Write(out[:n])
	}

	checksum := xxhash.Sum64(body.Bytes())

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("rcd: dump: %w", err)
	}
	if _, err := zw.Write(body.Bytes()); err != nil {
		zw.Close()
		return fmt.Errorf("rcd: dump: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("rcd: dump: %w", err)
	}

	var trailer [8]byte
	binary.LittleEndian.PutUint64(trailer[:], checksum)
	if _, err := w.Write(trailer[:]); err != nil {
		return fmt.Errorf("rcd: dump: %w", err)
	}
	return nil
}

// Load reads a stream written by Dump and rebuilds a Dict from it,
// re-running the full Builder pass (including order validation) over
// the recovered strings with opts.
func Load(r io.Reader, opts BuildOptions) (*Dict, Stats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("rcd: load: %w", err)
	}
	if len(data) < 8 {
		return nil, Stats{}, fmt.Errorf("rcd: load: stream too short")
	}

	checksum := binary.LittleEndian.Uint64(data[len(data)-8:])
	compressed := data[:len(data)-8]

	zr, err := zstd.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, Stats{}, fmt.Errorf("rcd: load: %w", err)
	}
	defer zr.Close()

	body, err := io.ReadAll(zr)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("rcd: load: %w", err)
	}
	if xxhash.Sum64(body) != checksum {
		return nil, Stats{}, ErrDumpChecksum
	}
	if len(body) < 4 || [4]byte{body[0], body[1], body[2], body[3]} != dumpMagic {
		return nil, Stats{}, fmt.Errorf("rcd: load: bad magic")
	}
	body = body[4:]

	count, c := decodeVarint(body)
	body = body[c:]

	b, err := NewBuilder(opts)
	if err != nil {
		return nil, Stats{}, err
	}
	for i := uint64(0); i < count; i++ {
		l, c := decodeVarint(body)
		body = body[c:]
		s := body[:l]
		body = body[l:]
		if err := b.Add(s); err != nil {
			return nil, Stats{}, fmt.Errorf("rcd: load: %w", err)
		}
	}
	return b.Finish()
}
