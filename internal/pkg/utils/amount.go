package utils

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// NativeDecimals is the number of decimal places of the chain's native asset:
// one whole unit equals 10^18 of the smallest unit (wei).
const NativeDecimals = 18

// ParseAmount parses a user-supplied decimal amount string. It rejects
// anything that is not a non-negative decimal number.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("not a decimal number: %q", s)
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative amount: %q", s)
	}
	return amount, nil
}

// ToWei converts a native-asset amount to the smallest native unit. The
// scaling is exact integer shifting, never float math; amounts with more than
// NativeDecimals fractional digits are rejected rather than rounded.
func ToWei(amount decimal.Decimal) (*big.Int, error) {
	shifted := amount.Shift(NativeDecimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", amount.String(), NativeDecimals)
	}
	return shifted.BigInt(), nil
}

// FromWei converts a smallest-unit value back to a native-asset decimal.
// ToWei followed by FromWei round-trips exactly for every valid amount.
func FromWei(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, -NativeDecimals)
}

// FormatWei renders a smallest-unit balance as a precision-preserving decimal
// string, e.g. 1234500000000000000 => "1.2345".
func FormatWei(wei *big.Int) string {
	return FromWei(wei).String()
}
