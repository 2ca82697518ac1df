package sdk

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// LamportsPerSOL is the number of base units in one SOL.
const LamportsPerSOL uint64 = 1_000_000_000

const solDecimals = 9

// FormatSOL renders a lamport amount as SOL with trailing zeros dropped.
// Example payload: sdk.FormatSOL(1_500_000_000) -> "1.5"
func FormatSOL(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -solDecimals).String()
}

// ParseSOL reads a SOL amount ("1.5") into lamports. More than nine
// decimals, negative values and amounts past u64 are rejected.
// Example payload: sdk.ParseSOL("0.25") -> 250000000
func ParseSOL(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("invalid amount %q: negative", s)
	}
	lamports := d.Shift(solDecimals)
	if !lamports.Equal(lamports.Truncate(0)) {
		return 0, fmt.Errorf("invalid amount %q: more than %d decimals", s, solDecimals)
	}
	bi := lamports.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("invalid amount %q: too large", s)
	}
	return bi.Uint64(), nil
}
