package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncateMiddle(t *testing.T) {
	require.Equal(t, "0x123...bcdef", TruncateMiddle("0x1234567890abcdef", 5))
	require.Equal(t, "short", TruncateMiddle("short", 5))
	require.Equal(t, "1234567890", TruncateMiddle("1234567890", 5))
	require.Equal(t, "untouched", TruncateMiddle("untouched", 0))
}
