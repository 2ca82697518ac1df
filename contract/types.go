package contract

import (
	"github.com/gagliardetto/solana-go"
)

// Config is the admin registry. Exactly AdminCount distinct identities;
// membership is the only authorization for admin operations.
type Config struct {
	Admins [AdminCount]solana.PublicKey
	Bump   uint8
}

// IsAdmin reports whether who holds one of the admin slots.
// Example payload: cfg.IsAdmin(caller)
func (c *Config) IsAdmin(who solana.PublicKey) bool {
	return c.adminSlot(who) >= 0
}

// adminSlot returns the first slot holding who, or -1.
func (c *Config) adminSlot(who solana.PublicKey) int {
	for i, a := range c.Admins {
		if a.Equals(who) {
			return i
		}
	}
	return -1
}

// UserProfile counts the proposals an owner has created; that count is the
// id of the owner's next proposal.
type UserProfile struct {
	ProposalCount uint64
	Bump          uint8
}

// Proposal is one funding request. Ids are unique per owner only.
type Proposal struct {
	ID               uint64
	Owner            solana.PublicKey
	Title            string
	Description      string
	AmountRequested  uint64
	Status           ProposalStatus
	CreatedAt        int64
	VoteCount        uint64
	FundingApprovals []solana.PublicKey
	FinalizedAt      int64
	Bump             uint8
}

// VotingEndsAt is the first second at which votes are refused.
func (p *Proposal) VotingEndsAt() int64 {
	return p.CreatedAt + VotingPeriodSeconds
}

func (p *Proposal) hasApproval(who solana.PublicKey) bool {
	for _, a := range p.FundingApprovals {
		if a.Equals(who) {
			return true
		}
	}
	return false
}

// VoteRecord marks that Voter weighed in on Proposal. At most one exists
// per (voter, proposal) since its address is derived from both.
type VoteRecord struct {
	Voter       solana.PublicKey
	Proposal    solana.PublicKey
	Timestamp   int64
	TokenWeight uint64
	Bump        uint8
}

// Vault tracks what went in and out of the shared fund. The spendable
// amount is the vault account's lamports, not these counters.
type Vault struct {
	TotalDeposited uint64
	TotalClaimed   uint64
	Bump           uint8
}

// Clock is the last committed block time. Calls stamped earlier are refused
// so deadlines only ever move forward.
type Clock struct {
	LastTimestamp int64
	Bump          uint8
}

// TxReceipt marks a tx id as executed. Its address is derived from the id,
// so a replayed call collides with it.
type TxReceipt struct {
	Sender    solana.PublicKey
	Timestamp int64
	Bump      uint8
}
