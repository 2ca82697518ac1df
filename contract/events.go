package contract

import (
	"fmt"

	"community_fund/sdk"

	"github.com/gagliardetto/solana-go"
)

// emitAdminInitializedEvent writes an "ai" line listing the full registry.
func (cc *callContext) emitAdminInitializedEvent(cfg *Config) {
	cc.events.Log(fmt.Sprintf(
		"ai|by:%s|a:%s,%s,%s",
		cc.caller,
		cfg.Admins[0],
		cfg.Admins[1],
		cfg.Admins[2],
	))
}

// emitAdminTransferredEvent records which slot changed hands and who did it.
func (cc *callContext) emitAdminTransferredEvent(old, new solana.PublicKey) {
	cc.events.Log(fmt.Sprintf(
		"at|old:%s|new:%s|by:%s",
		old,
		new,
		cc.caller,
	))
}

// emitUserInitializedEvent pings once per profile so watchers can list members.
func (cc *callContext) emitUserInitializedEvent() {
	cc.events.Log(fmt.Sprintf(
		"ui|by:%s",
		cc.caller,
	))
}

// emitProposalCreatedEvent keeps observers updated with a short pc line for every new request.
func (cc *callContext) emitProposalCreatedEvent(p *Proposal) {
	cc.events.Log(fmt.Sprintf(
		"pc|id:%d|by:%s|am:%s",
		p.ID,
		p.Owner,
		sdk.FormatSOL(p.AmountRequested),
	))
}

// emitProposalUpdatedEvent signals a text edit; amount and status never change here.
func (cc *callContext) emitProposalUpdatedEvent(p *Proposal) {
	cc.events.Log(fmt.Sprintf(
		"pu|id:%d|by:%s",
		p.ID,
		p.Owner,
	))
}

// emitVoteCastEvent includes the weight so vote_count can be replayed from logs only.
func (cc *callContext) emitVoteCastEvent(p *Proposal, weight uint64) {
	cc.events.Log(fmt.Sprintf(
		"v|id:%d|o:%s|by:%s|w:%d|t:%d",
		p.ID,
		p.Owner,
		cc.caller,
		weight,
		p.VoteCount,
	))
}

// emitFundingApprovalEvent logs one admin sign-off and the running count.
func (cc *callContext) emitFundingApprovalEvent(p *Proposal) {
	cc.events.Log(fmt.Sprintf(
		"fa|id:%d|o:%s|by:%s|n:%d",
		p.ID,
		p.Owner,
		cc.caller,
		len(p.FundingApprovals),
	))
}

// emitProposalStatusEvent is the catch-all line for any status flip.
func (cc *callContext) emitProposalStatusEvent(p *Proposal) {
	cc.events.Log(fmt.Sprintf(
		"ps|id:%d|o:%s|s:%s",
		p.ID,
		p.Owner,
		p.Status,
	))
}

func (cc *callContext) emitVaultInitializedEvent() {
	cc.events.Log(fmt.Sprintf(
		"vi|by:%s",
		cc.caller,
	))
}

// emitDepositEvent mirrors emitClaimEvent so the vault balance can be rebuilt from logs.
func (cc *callContext) emitDepositEvent(amount uint64) {
	cc.events.Log(fmt.Sprintf(
		"vd|by:%s|am:%s",
		cc.caller,
		sdk.FormatSOL(amount),
	))
}

func (cc *callContext) emitClaimEvent(p *Proposal) {
	cc.events.Log(fmt.Sprintf(
		"vc|id:%d|to:%s|am:%s",
		p.ID,
		p.Owner,
		sdk.FormatSOL(p.AmountRequested),
	))
}
