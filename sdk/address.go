package sdk

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// ParseAddress reads a base58 identity. The zero key is rejected since no
// caller can sign for it.
// Example payload: sdk.ParseAddress("6gE2epaU3z6ySCsnwY9fvWyCCTnUMZ97c4jkzvPg52St")
func ParseAddress(s string) (solana.PublicKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return solana.PublicKey{}, fmt.Errorf("empty address")
	}
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if !IsValid(pk) {
		return solana.PublicKey{}, fmt.Errorf("invalid address %q: zero key", s)
	}
	return pk, nil
}

// IsValid is a light sanity check used before an identity is stored.
// Example payload: sdk.IsValid(addr)
func IsValid(pk solana.PublicKey) bool {
	return !pk.IsZero()
}

// ShortAddress trims an identity to its first and last four characters for
// log lines and CLI tables.
// Example payload: sdk.ShortAddress(addr) -> "6gE2..52St"
func ShortAddress(pk solana.PublicKey) string {
	s := pk.String()
	if len(s) <= 10 {
		return s
	}
	return s[:4] + ".." + s[len(s)-4:]
}
