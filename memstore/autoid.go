package memstore

import (
	"math/bits"
	"strconv"
)

// autoID returns a monotonic document ID for the given commit.
// IDs sort lexicographically in commit order.
//
// Format: length-prefixed hexadecimal. The prefix is a letter,
// 'a' for 1 hex digit through 'p' for 16, so shorter numbers
// never sort after longer ones.
func autoID(commit int64) string {
	if commit < 0 {
		panic("autoID: negative commit")
	}
	length := hexDigits(uint64(commit))
	prefix := byte('a' + length - 1)
	return string(prefix) + strconv.FormatInt(commit, 16)
}

func hexDigits(n uint64) int {
	if n == 0 {
		return 1
	}
	return (bits.Len64(n) + 3) / 4
}
