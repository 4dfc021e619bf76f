// Package hashutil provides the deterministic string hash every simulated
// decision in the scoring pipeline is seeded from. The hash is a 32-bit
// polynomial rolling hash with the sign stripped; it has no cryptographic
// properties and needs none. The load-bearing contract is reproducibility:
// the same input yields the same value on every call, in every process.
package hashutil

// Sum returns a non-negative integer hash of s.
func Sum(s string) int {
	var h int32
	for i := 0; i < len(s); i++ {
		h = h<<5 - h + int32(s[i])
	}
	// Widen before negating: -MinInt32 does not fit in an int32.
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v)
}

// Mod returns Sum(s) reduced modulo m. m must be positive.
func Mod(s string, m int) int {
	return Sum(s) % m
}
