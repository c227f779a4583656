package fortune

import (
	"strconv"
	"unicode/utf16"
)

// HashString is the classic polynomial string hash (h = h*31 + c) over the
// UTF-16 code units of s, computed with 32-bit wraparound and returned as the
// absolute value of the signed result. The output is part of the persisted
// data format and must stay bit-exact.
func HashString(s string) uint32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	if h < 0 {
		// -MinInt32 does not fit in int32 but does fit in uint32.
		return uint32(-int64(h))
	}
	return uint32(h)
}

// SeededRandom maps (seed, index) to a reproducible value in [0, 1).
func SeededRandom(seed string, index int) float64 {
	h := uint64(HashString(seed + strconv.Itoa(index)))
	return float64((h*9301+49297)%233280) / 233280
}

// base36 renders h the way fingerprints and seeds are stored.
func base36(h uint32) string {
	return strconv.FormatUint(uint64(h), 36)
}
