package contract

import (
	"github.com/gagliardetto/solana-go"
)

func (cc *callContext) loadVault() (*Vault, solana.PublicKey, error) {
	addr, _, err := vaultAddress(cc.space)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	v := &Vault{}
	if err := cc.loadRecord(addr, v); err != nil {
		return nil, solana.PublicKey{}, err
	}
	return v, addr, nil
}

func (cc *callContext) saveVault(addr solana.PublicKey, v *Vault) error {
	return cc.saveRecord(addr, v)
}
