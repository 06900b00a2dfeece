package sheets

import (
	"fmt"
	"strings"
)

// NormalizeHeaders turns raw header cells into unique, stable keys: each
// header is trimmed and lower-cased, and duplicates of the same base header
// get a numeric suffix (_2 for the second occurrence, _3 for the third, and
// so on). Order and length are preserved, and the function is idempotent.
func NormalizeHeaders(raw []string) []string {
	headers := make([]string, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for _, h := range raw {
		base := strings.ToLower(strings.TrimSpace(h))
		seen[base]++
		if seen[base] > 1 {
			headers = append(headers, fmt.Sprintf("%s_%d", base, seen[base]))
		} else {
			headers = append(headers, base)
		}
	}
	return headers
}

// LocateColumn finds the 0-based position of key among normalized headers.
// The match is exact; a missing key is an unrecoverable failure for the
// calling operation, never a reason to create a column.
func LocateColumn(headers []string, key string) (int, error) {
	for i, h := range headers {
		if h == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, key)
}

// ColIndexToLetter converts a 0-based column index into the base-26 letter
// form used in A1 ranges (0 -> A, 25 -> Z, 26 -> AA, ...). There is no upper
// bound on the index.
func ColIndexToLetter(index int) string {
	letter := ""
	for index >= 0 {
		letter = string(rune('A'+index%26)) + letter
		index = index/26 - 1
	}
	return letter
}
