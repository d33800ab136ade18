package mask

import (
	"strconv"
	"strings"
)

// buildOctet renders the canonical dotted-decimal form of a mask with
// the given number of one bits: full 255 groups for each complete
// 8-bit block, one partial group for the remainder, zero-filled to 4
// groups. The output is always contiguous and left-aligned, whatever
// bit pattern the input had.
func buildOctet(ones int) string {
	groups := make([]string, 0, 4)
	for i := 0; i < ones/bitsPerOctet; i++ {
		groups = append(groups, "255")
	}
	if rem := ones % bitsPerOctet; rem > 0 {
		groups = append(groups, strconv.Itoa((maxOctet<<(bitsPerOctet-rem))&maxOctet))
	}
	for len(groups) < 4 {
		groups = append(groups, "0")
	}
	return strings.Join(groups, ".")
}

// buildBinary renders a flat 32-character contiguous bit string.
func buildBinary(ones int) string {
	return strings.Repeat("1", ones) + strings.Repeat("0", maskBits-ones)
}

// dotGroup inserts a dot after every 8th character of a flat 32-bit
// string, yielding 4 groups of 8.
func dotGroup(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 3)
	for i := 0; i < len(s); i += bitsPerOctet {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+bitsPerOctet])
	}
	return b.String()
}
