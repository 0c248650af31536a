package pfvm

// findMatchingClose scans forward from i, the first position of a loop body, for the closing ']'.
// It returns i and false if the source ends first.
func (v *VM) findMatchingClose(r *Routine, i int32) (int32, bool) {
	depth := 0
	for pos := i; int64(pos) < r.length; pos++ {
		switch v.fetch(r, pos) {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return pos, true
			}
			depth--
		}
	}
	v.logger.Warn("unmatched bracket", "bracket", "[", "from", i)
	return i, false
}

// findMatchingOpen scans backward from i, the position of a ']', for its opening '['.
// It returns i and false if no match is found.
func (v *VM) findMatchingOpen(r *Routine, i int32) (int32, bool) {
	var stop int32
	if v.config.LegacyOriginScan {
		stop = 1
	}
	// the ']' at i brings depth to 0
	depth := -1
	for pos := i; pos >= stop; pos-- {
		switch v.fetch(r, pos) {
		case ']':
			depth++
		case '[':
			if depth == 0 {
				return pos, true
			}
			depth--
		}
	}
	v.logger.Warn("unmatched bracket", "bracket", "]", "from", i)
	return i, false
}
