package contract

import (
	"fmt"
)

// -----------------------------------------------------------------------------
// Approve Funding
// -----------------------------------------------------------------------------

// approveFunding records an admin sign-off. Below MultisigThreshold one admin
// is enough; at or above it RequiredApprovals distinct admins must approve.
// Example payload: "0|owner"
func (c *Contract) approveFunding(cc *callContext, payload string) (string, error) {
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
	if !canStart(opApprove, prpsl.Status) {
		return "", fmt.Errorf("approve %s: %w", prpsl.Status, ErrInvalidTransition)
	}

	next := StatusApproved
	ret := "approved by single admin"
	if prpsl.AmountRequested >= MultisigThreshold {
		if prpsl.hasApproval(cc.caller) {
			return "", fmt.Errorf("%s on proposal %d: %w", cc.caller, prpsl.ID, ErrAlreadyApproved)
		}
		prpsl.FundingApprovals = append(prpsl.FundingApprovals, cc.caller)
		if len(prpsl.FundingApprovals) >= RequiredApprovals {
			ret = fmt.Sprintf("approved with %d-of-%d multisig", RequiredApprovals, AdminCount)
		} else {
			next = StatusPending
			ret = fmt.Sprintf("%d of %d approvals received", len(prpsl.FundingApprovals), RequiredApprovals)
		}
	}
	if err := checkTransition(opApprove, prpsl.Status, next); err != nil {
		return "", err
	}
	prev := prpsl.Status
	prpsl.Status = next
	if err := cc.saveProposal(addr, prpsl); err != nil {
		return "", err
	}
	if len(prpsl.FundingApprovals) > 0 {
		cc.emitFundingApprovalEvent(prpsl)
	}
	if prev != next {
		cc.emitProposalStatusEvent(prpsl)
	}
	return ret, nil
}

// -----------------------------------------------------------------------------
// Finalize Proposal
// -----------------------------------------------------------------------------

// finalizeProposal closes voting once the window ended. Anyone may call it.
// MinVotes or more finalizes the proposal, anything less rejects it.
// Example payload: "0|owner"
func (c *Contract) finalizeProposal(cc *callContext, payload string) (string, error) {
	ref, err := decodeProposalRef(payload)
	if err != nil {
		return "", err
	}
	prpsl, addr, err := cc.loadProposal(ref.Owner, ref.ID)
	if err != nil {
		return "", err
	}
	if cc.now < prpsl.VotingEndsAt() {
		return "", fmt.Errorf("proposal %d open until %d: %w", prpsl.ID, prpsl.VotingEndsAt(), ErrVotingStillActive)
	}
	if !canStart(opFinalize, prpsl.Status) {
		return "", fmt.Errorf("proposal %d is %s: %w", prpsl.ID, prpsl.Status, ErrAlreadyFinalized)
	}

	next := StatusRejected
	ret := fmt.Sprintf("rejected with insufficient votes (%d/%d)", prpsl.VoteCount, MinVotes)
	if prpsl.VoteCount >= MinVotes {
		next = StatusFinalized
		ret = fmt.Sprintf("finalized with %d votes", prpsl.VoteCount)
	}
	if err := checkTransition(opFinalize, prpsl.Status, next); err != nil {
		return "", err
	}
	prpsl.Status = next
	prpsl.FinalizedAt = cc.now
	if err := cc.saveProposal(addr, prpsl); err != nil {
		return "", err
	}
	cc.emitProposalStatusEvent(prpsl)
	return ret, nil
}

// -----------------------------------------------------------------------------
// Claim Funds
// -----------------------------------------------------------------------------

// claimFunds pays a Finalized proposal out of the vault to its owner. The
// proposal address is derived from the caller, so only the owner can claim.
// Example payload: "0"
func (c *Contract) claimFunds(cc *callContext, payload string) (string, error) {
	id, err := decodeProposalID(payload)
	if err != nil {
		return "", err
	}
	prpsl, addr, err := cc.loadProposal(cc.caller, id)
	if err != nil {
		return "", err
	}
	if !canStart(opClaim, prpsl.Status) {
		return "", fmt.Errorf("proposal %d is %s: %w", prpsl.ID, prpsl.Status, ErrNotApproved)
	}
	if err := checkTransition(opClaim, prpsl.Status, StatusClaimed); err != nil {
		return "", err
	}
	vault, vaultAddr, err := cc.loadVault()
	if err != nil {
		return "", fmt.Errorf("vault: %w", err)
	}
	balance, err := cc.space.Balance(cc.txn, vaultAddr)
	if err != nil {
		return "", err
	}
	if balance < prpsl.AmountRequested {
		return "", fmt.Errorf("vault holds %d, proposal needs %d: %w", balance, prpsl.AmountRequested, ErrInsufficientVaultBalance)
	}
	claimed, err := checkedAdd(vault.TotalClaimed, prpsl.AmountRequested, "total claimed")
	if err != nil {
		return "", err
	}

	if err := cc.space.Transfer(cc.txn, vaultAddr, prpsl.Owner, prpsl.AmountRequested); err != nil {
		return "", err
	}
	prpsl.Status = StatusClaimed
	if err := cc.saveProposal(addr, prpsl); err != nil {
		return "", err
	}
	vault.TotalClaimed = claimed
	if err := cc.saveVault(vaultAddr, vault); err != nil {
		return "", err
	}
	amount := prpsl.AmountRequested
	cc.onCommit(func() { c.metrics.claimed.Add(float64(amount)) })
	cc.emitClaimEvent(prpsl)
	cc.emitProposalStatusEvent(prpsl)
	return fmt.Sprintf("claimed %d lamports from vault", amount), nil
}
