package contract

import (
	"errors"
	"fmt"

	"community_fund/space"

	"github.com/gagliardetto/solana-go"
)

// -----------------------------------------------------------------------------
// Create Proposal
// -----------------------------------------------------------------------------

// createProposal opens a new Pending proposal under the caller's next id and
// bumps their profile counter.
// Example payload: "new hall roof|replace the leaking roof|2500000000"
func (c *Contract) createProposal(cc *callContext, payload string) (string, error) {
	args, err := decodeCreateProposalArgs(payload)
	if err != nil {
		return "", err
	}
	if err := validateProposalText(args.Title, args.Description); err != nil {
		return "", err
	}
	if args.Amount == 0 {
		return "", fmt.Errorf("amount must be positive: %w", ErrInvalidAmount)
	}
	profile, err := cc.loadUserProfile(cc.caller)
	if err != nil {
		return "", fmt.Errorf("profile for %s: %w", cc.caller, err)
	}
	nextCount, err := checkedAdd(profile.ProposalCount, 1, "proposal count")
	if err != nil {
		return "", err
	}

	id := profile.ProposalCount
	addr, bump, err := proposalAddress(cc.space, cc.caller, id)
	if err != nil {
		return "", err
	}
	prpsl := &Proposal{
		ID:               id,
		Owner:            cc.caller,
		Title:            args.Title,
		Description:      args.Description,
		AmountRequested:  args.Amount,
		Status:           StatusPending,
		CreatedAt:        cc.now,
		VoteCount:        0,
		FundingApprovals: []solana.PublicKey{},
		FinalizedAt:      0,
		Bump:             bump,
	}
	if err := cc.createRecord(addr, prpsl); err != nil {
		if errors.Is(err, space.ErrAccountExists) {
			return "", fmt.Errorf("proposal %d: %w: %w", id, ErrDuplicateAction, err)
		}
		return "", err
	}
	profile.ProposalCount = nextCount
	if err := cc.saveUserProfile(cc.caller, profile); err != nil {
		return "", err
	}
	cc.emitProposalCreatedEvent(prpsl)
	return fmt.Sprintf("proposal created: %d", id), nil
}

// -----------------------------------------------------------------------------
// Update Proposal
// -----------------------------------------------------------------------------

// updateProposal rewrites title and description while the proposal is still
// Pending. The address is derived from the caller, so only the owner can
// ever reach their own proposal.
// Example payload: "0|new title|new description"
func (c *Contract) updateProposal(cc *callContext, payload string) (string, error) {
	args, err := decodeUpdateProposalArgs(payload)
	if err != nil {
		return "", err
	}
	prpsl, addr, err := cc.loadProposal(cc.caller, args.ID)
	if err != nil {
		return "", err
	}
	if err := checkTransition(opUpdate, prpsl.Status, StatusPending); err != nil {
		return "", err
	}
	if err := validateProposalText(args.Title, args.Description); err != nil {
		return "", err
	}
	prpsl.Title = args.Title
	prpsl.Description = args.Description
	if err := cc.saveProposal(addr, prpsl); err != nil {
		return "", err
	}
	cc.emitProposalUpdatedEvent(prpsl)
	return fmt.Sprintf("proposal updated: %d", prpsl.ID), nil
}

// -----------------------------------------------------------------------------
// Reject Proposal
// -----------------------------------------------------------------------------

// rejectProposal lets any admin mark a proposal Rejected. Rejecting an already
// rejected proposal is a no-op success; a Claimed one cannot be rejected.
// Example payload: "0|owner"
func (c *Contract) rejectProposal(cc *callContext, payload string) (string, error) {
	ref, err := decodeProposalRef(payload)
	if err != nil {
		return "", err
	}
	if _, err := cc.requireAdmin(); err != nil {
		return "", err
	}
	prpsl, addr, err := cc.loadProposal(ref.Owner, ref.ID)
	if err != nil {
		return "", err
	}
	if err := checkTransition(opReject, prpsl.Status, StatusRejected); err != nil {
		return "", err
	}
	prpsl.Status = StatusRejected
	if err := cc.saveProposal(addr, prpsl); err != nil {
		return "", err
	}
	cc.emitProposalStatusEvent(prpsl)
	return fmt.Sprintf("proposal rejected: %d", prpsl.ID), nil
}
