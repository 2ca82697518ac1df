package contract

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// loadProposal resolves (owner, id) to its record. The stored owner is
// checked against the supplied one so a forged address can never stand in.
func (cc *callContext) loadProposal(owner solana.PublicKey, id uint64) (*Proposal, solana.PublicKey, error) {
	addr, _, err := proposalAddress(cc.space, owner, id)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	p := &Proposal{}
	if err := cc.loadRecord(addr, p); err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("proposal %d: %w", id, err)
	}
	if !p.Owner.Equals(owner) || p.ID != id {
		return nil, solana.PublicKey{}, fmt.Errorf("proposal %d owner mismatch: %w", id, ErrUnauthorized)
	}
	return p, addr, nil
}

func (cc *callContext) saveProposal(addr solana.PublicKey, p *Proposal) error {
	return cc.saveRecord(addr, p)
}
