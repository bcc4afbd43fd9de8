package rcd

import "encoding/binary"

// cmpWithLCP compares a (a query or query suffix, of known length) against
// b (a NUL-terminated buffer slice: a block leader, tail suffix, or the
// remainder of one) and returns the sign of the first differing byte
// (interpreted unsigned) together with the length of their common prefix,
// capped at len(a). Sign is 0 when a is a prefix of b and b[lcp] == 0 (a
// and the NUL-terminated content of b are equal), or negative when a is a
// proper prefix of a longer b.
//
// The word-wide comparison only fires when both slices still have a full
// 8 bytes available, so it never reads past either slice's actual bounds;
// no padding is required of callers.
func cmpWithLCP(a, b []byte) (sign int, lcp int) {
	n := len(a)
	i := 0
	for i+8 <= n && i+8 <= len(b) {
		if binary.NativeEndian.Uint64(a[i:i+8]) == binary.NativeEndian.Uint64(b[i:i+8]) {
			i += 8
			continue
		}
		break
	}

	for {
		if i == n {
			if i < len(b) && b[i] != 0 {
				return -1, i
			}
			return 0, i
		}
		var ub byte
		if i < len(b) {
			ub = b[i]
		}
		ua := a[i]
		if ua != ub {
			if ua < ub {
				return -1, i
			}
			return 1, i
		}
		i++
	}
}

// lcpBytes returns the length of the longest common prefix of two plain
// byte slices of known length, with no NUL-termination semantics. Used
// during construction, where both operands are complete input strings.
func lcpBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
