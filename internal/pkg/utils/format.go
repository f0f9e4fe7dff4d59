package utils

import "fmt"

// TruncateMiddle shortens a long identifier (typically a wallet address) for
// log fields and display, keeping the first and last `keep` characters.
// Example: TruncateMiddle("0x1234567890abcdef", 5) => "0x123...bcdef"
func TruncateMiddle(s string, keep int) string {
	if keep <= 0 || len(s) <= 2*keep {
		return s
	}
	return fmt.Sprintf("%s...%s", s[:keep], s[len(s)-keep:])
}
