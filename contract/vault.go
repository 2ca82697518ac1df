package contract

import (
	"errors"
	"fmt"

	"community_fund/space"
)

// initializeVault creates the shared fund with zeroed counters. Lamports sent
// to the vault address beforehand are kept.
func (c *Contract) initializeVault(cc *callContext, payload string) (string, error) {
	if _, err := splitPayload(payload, 0); err != nil {
		return "", err
	}
	addr, bump, err := vaultAddress(cc.space)
	if err != nil {
		return "", err
	}
	vault := &Vault{TotalDeposited: 0, TotalClaimed: 0, Bump: bump}
	if err := cc.createRecord(addr, vault); err != nil {
		if errors.Is(err, space.ErrAccountExists) {
			return "", fmt.Errorf("vault: %w: %w", ErrAlreadyInitialized, err)
		}
		return "", err
	}
	cc.emitVaultInitializedEvent()
	return "vault initialized", nil
}

// depositToVault moves lamports from the caller's wallet into the vault.
// Example payload: "5000000000"
func (c *Contract) depositToVault(cc *callContext, payload string) (string, error) {
	amount, err := decodeAmount(payload)
	if err != nil {
		return "", err
	}
	if amount == 0 {
		return "", fmt.Errorf("deposit must be positive: %w", ErrInvalidAmount)
	}
	vault, addr, err := cc.loadVault()
	if err != nil {
		return "", fmt.Errorf("vault: %w", err)
	}
	deposited, err := checkedAdd(vault.TotalDeposited, amount, "total deposited")
	if err != nil {
		return "", err
	}
	if err := cc.space.Transfer(cc.txn, cc.caller, addr, amount); err != nil {
		if errors.Is(err, space.ErrInsufficientLamports) {
			return "", fmt.Errorf("%w: %w", ErrInsufficientFunds, err)
		}
		return "", err
	}
	vault.TotalDeposited = deposited
	if err := cc.saveVault(addr, vault); err != nil {
		return "", err
	}
	cc.onCommit(func() { c.metrics.deposited.Add(float64(amount)) })
	cc.emitDepositEvent(amount)
	return fmt.Sprintf("deposited %d lamports to vault", amount), nil
}
