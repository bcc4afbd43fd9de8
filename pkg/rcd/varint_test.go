package rcd

import (
	"math/rand"
	"testing"
)

func TestVarintRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	values := []uint64{0, 1, 2, 126, 127, 128, 129, 255, 256, 1 << 20, 1<<63 - 1}
	for i := 0; i < 1000; i++ {
		values = append(values, r.Uint64()&(1<<63-1))
	}

	for _, x := range values {
		buf := appendVarint(nil, x)
		if len(buf) != varintLen(x) {
			t.Fatalf("varintLen(%d) = %d, appendVarint wrote %d bytes", x, varintLen(x), len(buf))
		}
		got, n := decodeVarint(buf)
		if got != x {
			t.Fatalf("decodeVarint(appendVarint(%d)) = %d", x, got)
		}
		if n != len(buf) {
			t.Fatalf("decodeVarint consumed %d bytes, want %d", n, len(buf))
		}
	}
}

func TestVarintZeroIsOneByte(t *testing.T) {
	buf := appendVarint(nil, 0)
	if len(buf) != 1 || buf[0] != 0x80 {
		t.Fatalf("encoding of 0 = %v, want [0x80]", buf)
	}
}

func TestVarintConsecutiveDecode(t *testing.T) {
	var buf []byte
	values := []uint64{5, 300, 70000, 1, 0}
	for _, x := range values {
		buf = appendVarint(buf, x)
	}

	cursor := buf
	for _, want := range values {
		got, n := decodeVarint(cursor)
		if got != want {
			t.Fatalf("decoded %d, want %d", got, want)
		}
		cursor = cursor[n:]
	}
	if len(cursor) != 0 {
		t.Fatalf("%d trailing bytes left over", len(cursor))
	}
}
