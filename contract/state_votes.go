package contract

import (
	"errors"
	"fmt"

	"community_fund/space"

	"github.com/gagliardetto/solana-go"
)

// createVoteRecord claims the (voter, proposal) slot. A second vote by the
// same voter hits the existing account and fails with ErrDuplicateAction.
func (cc *callContext) createVoteRecord(owner solana.PublicKey, id uint64, v *VoteRecord) error {
	addr, bump, err := voteAddress(cc.space, v.Voter, owner, id)
	if err != nil {
		return err
	}
	v.Bump = bump
	if err := cc.createRecord(addr, v); err != nil {
		if errors.Is(err, space.ErrAccountExists) {
			return fmt.Errorf("%s already voted on proposal %d: %w: %w", v.Voter, id, ErrDuplicateAction, err)
		}
		return err
	}
	return nil
}
