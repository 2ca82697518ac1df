package contract

import (
	"github.com/gagliardetto/solana-go"
)

func (cc *callContext) loadUserProfile(owner solana.PublicKey) (*UserProfile, error) {
	addr, _, err := profileAddress(cc.space, owner)
	if err != nil {
		return nil, err
	}
	p := &UserProfile{}
	if err := cc.loadRecord(addr, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (cc *callContext) saveUserProfile(owner solana.PublicKey, p *UserProfile) error {
	addr, _, err := profileAddress(cc.space, owner)
	if err != nil {
		return err
	}
	return cc.saveRecord(addr, p)
}
