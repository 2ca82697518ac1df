package contract

import (
	"errors"
	"fmt"

	"community_fund/sdk"

	"github.com/CosmWasm/tinyjson"
	"github.com/CosmWasm/tinyjson/jwriter"
	"github.com/gagliardetto/solana-go"
)

// -----------------------------------------------------------------------------
// Read Views
// -----------------------------------------------------------------------------

// view runs fn against a read-only snapshot of the store.
func (c *Contract) view(fn func(cc *callContext) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	txn := c.store.NewTransaction(false)
	defer txn.Rollback()
	return fn(&callContext{txn: txn, space: c.space})
}

type ConfigView struct {
	Address solana.PublicKey
	Admins  [AdminCount]solana.PublicKey
	Bump    uint8
}

// GetConfig returns the admin registry.
func (c *Contract) GetConfig() (*ConfigView, error) {
	var out *ConfigView
	err := c.view(func(cc *callContext) error {
		addr, _, err := configAddress(cc.space)
		if err != nil {
			return err
		}
		cfg, err := cc.loadConfig()
		if err != nil {
			return err
		}
		out = &ConfigView{Address: addr, Admins: cfg.Admins, Bump: cfg.Bump}
		return nil
	})
	return out, err
}

// IsAdmin reports whether who holds an admin slot. An uninitialized
// registry has no admins.
func (c *Contract) IsAdmin(who solana.PublicKey) (bool, error) {
	cfg, err := c.GetConfig()
	if errors.Is(err, ErrUnknownRecord) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, a := range cfg.Admins {
		if a.Equals(who) {
			return true, nil
		}
	}
	return false, nil
}

type UserProfileView struct {
	Address       solana.PublicKey
	Owner         solana.PublicKey
	ProposalCount uint64
	Bump          uint8
}

func (c *Contract) GetUserProfile(owner solana.PublicKey) (*UserProfileView, error) {
	var out *UserProfileView
	err := c.view(func(cc *callContext) error {
		addr, _, err := profileAddress(cc.space, owner)
		if err != nil {
			return err
		}
		p, err := cc.loadUserProfile(owner)
		if err != nil {
			return err
		}
		out = &UserProfileView{Address: addr, Owner: owner, ProposalCount: p.ProposalCount, Bump: p.Bump}
		return nil
	})
	return out, err
}

type ProposalView struct {
	Address solana.PublicKey
	Proposal
}

func (c *Contract) GetProposal(owner solana.PublicKey, id uint64) (*ProposalView, error) {
	var out *ProposalView
	err := c.view(func(cc *callContext) error {
		p, addr, err := cc.loadProposal(owner, id)
		if err != nil {
			return err
		}
		out = &ProposalView{Address: addr, Proposal: *p}
		return nil
	})
	return out, err
}

// ListProposals walks the owner's ids 0..proposal_count-1. The profile
// counter is what makes a user's proposals enumerable.
func (c *Contract) ListProposals(owner solana.PublicKey) ([]ProposalView, error) {
	var out []ProposalView
	err := c.view(func(cc *callContext) error {
		profile, err := cc.loadUserProfile(owner)
		if err != nil {
			return err
		}
		out = make([]ProposalView, 0, profile.ProposalCount)
		for id := uint64(0); id < profile.ProposalCount; id++ {
			p, addr, err := cc.loadProposal(owner, id)
			if err != nil {
				return err
			}
			out = append(out, ProposalView{Address: addr, Proposal: *p})
		}
		return nil
	})
	return out, err
}

type VoteView struct {
	Address solana.PublicKey
	VoteRecord
}

func (c *Contract) GetVote(voter, owner solana.PublicKey, id uint64) (*VoteView, error) {
	var out *VoteView
	err := c.view(func(cc *callContext) error {
		addr, _, err := voteAddress(cc.space, voter, owner, id)
		if err != nil {
			return err
		}
		v := &VoteRecord{}
		if err := cc.loadRecord(addr, v); err != nil {
			return fmt.Errorf("vote on %d: %w", id, err)
		}
		out = &VoteView{Address: addr, VoteRecord: *v}
		return nil
	})
	return out, err
}

type VaultView struct {
	Address solana.PublicKey
	Vault
	// Balance is the vault account's lamports, the amount actually claimable.
	Balance uint64
}

func (c *Contract) GetVault() (*VaultView, error) {
	var out *VaultView
	err := c.view(func(cc *callContext) error {
		v, addr, err := cc.loadVault()
		if err != nil {
			return err
		}
		balance, err := cc.space.Balance(cc.txn, addr)
		if err != nil {
			return err
		}
		out = &VaultView{Address: addr, Vault: *v, Balance: balance}
		return nil
	})
	return out, err
}

// Balance returns the lamports held at any address.
func (c *Contract) Balance(addr solana.PublicKey) (uint64, error) {
	var out uint64
	err := c.view(func(cc *callContext) error {
		b, err := cc.space.Balance(cc.txn, addr)
		out = b
		return err
	})
	return out, err
}

// -----------------------------------------------------------------------------
// JSON
// -----------------------------------------------------------------------------

func writeKey(w *jwriter.Writer, first bool, key string) {
	if !first {
		w.RawByte(',')
	}
	w.String(key)
	w.RawByte(':')
}

func writeAddresses(w *jwriter.Writer, addrs []solana.PublicKey) {
	w.RawByte('[')
	for i, a := range addrs {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(a.String())
	}
	w.RawByte(']')
}

func (v ConfigView) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	writeKey(w, true, "address")
	w.String(v.Address.String())
	writeKey(w, false, "admins")
	writeAddresses(w, v.Admins[:])
	writeKey(w, false, "bump")
	w.Uint8(v.Bump)
	w.RawByte('}')
}

func (v ConfigView) MarshalJSON() ([]byte, error) { return tinyjson.Marshal(v) }

func (v UserProfileView) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	writeKey(w, true, "address")
	w.String(v.Address.String())
	writeKey(w, false, "owner")
	w.String(v.Owner.String())
	writeKey(w, false, "proposal_count")
	w.Uint64(v.ProposalCount)
	writeKey(w, false, "bump")
	w.Uint8(v.Bump)
	w.RawByte('}')
}

func (v UserProfileView) MarshalJSON() ([]byte, error) { return tinyjson.Marshal(v) }

func (v ProposalView) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	writeKey(w, true, "address")
	w.String(v.Address.String())
	writeKey(w, false, "id")
	w.Uint64(v.ID)
	writeKey(w, false, "owner")
	w.String(v.Owner.String())
	writeKey(w, false, "title")
	w.String(v.Title)
	writeKey(w, false, "description")
	w.String(v.Description)
	writeKey(w, false, "amount_requested")
	w.Uint64(v.AmountRequested)
	writeKey(w, false, "amount_sol")
	w.String(sdk.FormatSOL(v.AmountRequested))
	writeKey(w, false, "status")
	w.String(v.Status.String())
	writeKey(w, false, "created_at")
	w.Int64(v.CreatedAt)
	writeKey(w, false, "voting_ends_at")
	w.Int64(v.VotingEndsAt())
	writeKey(w, false, "vote_count")
	w.Uint64(v.VoteCount)
	writeKey(w, false, "funding_approvals")
	writeAddresses(w, v.FundingApprovals)
	writeKey(w, false, "finalized_at")
	w.Int64(v.FinalizedAt)
	writeKey(w, false, "bump")
	w.Uint8(v.Bump)
	w.RawByte('}')
}

func (v ProposalView) MarshalJSON() ([]byte, error) { return tinyjson.Marshal(v) }

func (v VoteView) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	writeKey(w, true, "address")
	w.String(v.Address.String())
	writeKey(w, false, "voter")
	w.String(v.Voter.String())
	writeKey(w, false, "proposal")
	w.String(v.Proposal.String())
	writeKey(w, false, "timestamp")
	w.Int64(v.Timestamp)
	writeKey(w, false, "token_weight")
	w.Uint64(v.TokenWeight)
	writeKey(w, false, "bump")
	w.Uint8(v.Bump)
	w.RawByte('}')
}

func (v VoteView) MarshalJSON() ([]byte, error) { return tinyjson.Marshal(v) }

func (v VaultView) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	writeKey(w, true, "address")
	w.String(v.Address.String())
	writeKey(w, false, "total_deposited")
	w.Uint64(v.TotalDeposited)
	writeKey(w, false, "total_claimed")
	w.Uint64(v.TotalClaimed)
	writeKey(w, false, "balance")
	w.Uint64(v.Balance)
	writeKey(w, false, "balance_sol")
	w.String(sdk.FormatSOL(v.Balance))
	writeKey(w, false, "bump")
	w.Uint8(v.Bump)
	w.RawByte('}')
}

func (v VaultView) MarshalJSON() ([]byte, error) { return tinyjson.Marshal(v) }

// ProposalList marshals a slice of proposals as a JSON array.
type ProposalList []ProposalView

func (l ProposalList) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('[')
	for i, p := range l {
		if i > 0 {
			w.RawByte(',')
		}
		p.MarshalTinyJSON(w)
	}
	w.RawByte(']')
}

func (l ProposalList) MarshalJSON() ([]byte, error) { return tinyjson.Marshal(l) }
