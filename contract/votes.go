package contract

import (
	"fmt"
)

// voteOnProposal records the caller's token-weighted vote while the window
// is open. The window is half-open: a vote exactly VotingPeriodSeconds after
// creation is refused.
// Example payload: "0|owner|25"
func (c *Contract) voteOnProposal(cc *callContext, payload string) (string, error) {
	args, err := decodeVoteArgs(payload)
	if err != nil {
		return "", err
	}
	prpsl, addr, err := cc.loadProposal(args.Owner, args.ID)
	if err != nil {
		return "", err
	}
	if cc.now >= prpsl.VotingEndsAt() {
		return "", fmt.Errorf("proposal %d closed at %d: %w", prpsl.ID, prpsl.VotingEndsAt(), ErrVotingExpired)
	}
	if err := checkTransition(opVote, prpsl.Status, StatusPending); err != nil {
		return "", err
	}
	total, err := checkedAdd(prpsl.VoteCount, args.Weight, "vote count")
	if err != nil {
		return "", err
	}

	vote := &VoteRecord{
		Voter:       cc.caller,
		Proposal:    addr,
		Timestamp:   cc.now,
		TokenWeight: args.Weight,
	}
	if err := cc.createVoteRecord(args.Owner, args.ID, vote); err != nil {
		return "", err
	}
	prpsl.VoteCount = total
	if err := cc.saveProposal(addr, prpsl); err != nil {
		return "", err
	}
	cc.emitVoteCastEvent(prpsl, args.Weight)
	return fmt.Sprintf("voted on %d with weight %d", prpsl.ID, args.Weight), nil
}
