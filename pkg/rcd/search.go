package rcd

// selectBlock implements the two-sided LCP-carrying binary search of
// spec §4.5.1 over block leaders. It returns the index of the block
// whose leader is the largest leader <= q, or 0 if q is less than the
// leader of block 0.
//
// llcp is a lower bound on the LCP between q and the leader of the
// greatest index known to satisfy leader <= q; rlcp is a lower bound on
// the LCP between q and the leader of the least index known to satisfy
// leader > q. Skipping min(llcp, rlcp) bytes on every comparison is
// correct because any candidate leader still in the window must agree
// with q up to that offset.
func (d *Dict) selectBlock(q []byte) int {
	lo, hi := 0, d.Blocks()
	var llcp, rlcp int

	for count := hi - lo; count > 0; count = hi - lo {
		step := count / 2
		mid := lo + step

		minLCP := llcp
		if rlcp < minLCP {
			minLCP = rlcp
		}

		leader := d.header[d.blocks[mid].HeaderOffset:]
		sign, rel := cmpWithLCP(sliceFrom(q, minLCP), sliceFrom(leader, minLCP))
		lcpAtMid := minLCP + rel

		if sign >= 0 {
			llcp = lcpAtMid
			lo = mid + 1
		} else {
			rlcp = lcpAtMid
			hi = mid
		}
	}

	if lo == 0 {
		return 0
	}
	return lo - 1
}

// blockRank implements the in-block scan of spec §4.5.2: the number of
// strings within block b that are <= q.
func (d *Dict) blockRank(q []byte, b int) int {
	leader := d.header[d.blocks[b].HeaderOffset:]
	sign, patternLCP := cmpWithLCP(q, leader)
	if sign < 0 {
		return 0
	}

	currLen := cstrlen(leader)
	k := int(d.blocks[b+1].Count - d.blocks[b].Count)
	cursor := d.tail[d.blocks[b].TailOffset:]

	for j := 1; j < k; j++ {
		rearLength, c := decodeVarint(cursor)
		cursor = cursor[c:]

		prevLCP := currLen - int(rearLength)
		if prevLCP < patternLCP {
			return j
		}
		if prevLCP == patternLCP {
			extSign, newLCP := cmpWithLCP(sliceFrom(q, prevLCP), cursor)
			patternLCP = prevLCP + newLCP
			if extSign < 0 {
				return j
			}
		}

		suffixLen := cstrlen(cursor)
		cursor = cursor[suffixLen+1:]
		currLen = currLen - int(rearLength) + suffixLen
	}

	return k
}
