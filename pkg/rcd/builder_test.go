package rcd

import "testing"

func mustBuild(t *testing.T, ss []string, blockBytes int) *Dict {
	t.Helper()
	b := make([][]byte, len(ss))
	for i, s := range ss {
		b[i] = []byte(s)
	}
	d, _, err := BuildFromSlice(b, DefaultBuildOptions(blockBytes))
	if err != nil {
		t.Fatalf("BuildFromSlice(%v) failed: %v", ss, err)
	}
	return d
}

func TestBuilderRejectsDisorder(t *testing.T) {
	cases := [][]string{
		{"b", "a"},
		{"a", "a"},
		{"apple", "apple"},
		{"banana", "apple"},
	}
	for _, ss := range cases {
		b := make([][]byte, len(ss))
		for i, s := range ss {
			b[i] = []byte(s)
		}
		_, _, err := BuildFromSlice(b, DefaultBuildOptions(8))
		if err != ErrUnsorted {
			t.Errorf("BuildFromSlice(%v) = %v, want ErrUnsorted", ss, err)
		}
	}
}

func TestBuilderAllowsLeadingEmptyStringOnce(t *testing.T) {
	d := mustBuild(t, []string{"", "a", "b"}, 8)
	if d.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", d.Size())
	}
	s, err := d.String(0)
	if err != nil || s != "" {
		t.Fatalf("String(0) = %q, %v, want \"\", nil", s, err)
	}
}

func TestBuilderRejectsEmptyStringNotFirst(t *testing.T) {
	b := [][]byte{[]byte("a"), []byte(""), []byte("b")}
	_, _, err := BuildFromSlice(b, DefaultBuildOptions(8))
	if err != ErrUnsorted {
		t.Fatalf("expected ErrUnsorted for non-leading empty string, got %v", err)
	}
}

func TestBuilderRejectsZeroBlockBytes(t *testing.T) {
	_, err := NewBuilder(BuildOptions{BlockBytes: 0})
	if err != ErrEmptyBlockBytes {
		t.Fatalf("NewBuilder with BlockBytes=0 = %v, want ErrEmptyBlockBytes", err)
	}
}

func TestBuilderRejectsNUL(t *testing.T) {
	opts := DefaultBuildOptions(8)
	opts.RejectNUL = true
	b, err := NewBuilder(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Add([]byte("a")); err != nil {
		t.Fatal(err)
	}
	err = b.Add([]byte("a\x00b"))
	if err != ErrNULByte {
		t.Fatalf("Add with embedded NUL = %v, want ErrNULByte", err)
	}
}

func TestBuilderAllowsNULWhenPermitted(t *testing.T) {
	opts := DefaultBuildOptions(8)
	opts.RejectNUL = false
	b, err := NewBuilder(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Add([]byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := b.Add([]byte("a\x00b")); err != nil {
		t.Fatalf("Add with embedded NUL = %v, want nil", err)
	}
}

func TestBuilderOffsetWidth32AcceptsSmallDictionary(t *testing.T) {
	opts := BuildOptions{BlockBytes: 8, OffsetWidth: OffsetWidth32, RejectNUL: true}
	b, err := NewBuilder(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Add([]byte("a")); err != nil {
		t.Fatal(err)
	}
	_, _, err = b.Finish()
	if err != nil {
		t.Fatalf("Finish() on a tiny 32-bit dictionary should not overflow: %v", err)
	}
}

func TestDefaultBuildOptions(t *testing.T) {
	opts := DefaultBuildOptions(1024)
	if opts.BlockBytes != 1024 {
		t.Errorf("BlockBytes = %d, want 1024", opts.BlockBytes)
	}
	if opts.OffsetWidth != OffsetWidth64 {
		t.Errorf("OffsetWidth = %v, want OffsetWidth64", opts.OffsetWidth)
	}
	if !opts.RejectNUL {
		t.Errorf("RejectNUL = false, want true")
	}
}
