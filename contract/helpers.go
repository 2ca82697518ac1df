package contract

import (
	"fmt"
	"math/bits"
)

// checkedAdd returns a+b or ErrArithmeticOverflow.
func checkedAdd(a, b uint64, what string) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%s: %w", what, ErrArithmeticOverflow)
	}
	return sum, nil
}

// validateProposalText enforces the byte limits. Oversized input is an
// error, never truncated.
func validateProposalText(title, description string) error {
	if title == "" {
		return fmt.Errorf("title required: %w", ErrInvalidPayload)
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("title is %d bytes, max %d: %w", len(title), MaxTitleLength, ErrFieldTooLong)
	}
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("description is %d bytes, max %d: %w", len(description), MaxDescriptionLength, ErrFieldTooLong)
	}
	return nil
}
