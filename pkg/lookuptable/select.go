package lookuptable

// maskFromBool returns all ones if b is true and zero otherwise.
//
// The gc compiler lowers the conditional to SETcc/CSET, so no jump
// depends on b.
func maskFromBool(b bool) uint {
	var v uint
	if b {
		v = 1
	}
	return -v
}

// selectUint returns a if mask is all ones and b if mask is zero.
func selectUint(mask, a, b uint) uint {
	return (a & mask) | (b &^ mask)
}
