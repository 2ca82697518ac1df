package contract

import (
	"errors"
	"fmt"

	"community_fund/space"

	"github.com/gagliardetto/solana-go"
)

// -----------------------------------------------------------------------------
// Admin Registry
// -----------------------------------------------------------------------------

// initializeAdmin creates the registry with the caller in slot 0.
// Only the deploying authority may run it when one is configured.
// Example payload: "admin2|admin3"
func (c *Contract) initializeAdmin(cc *callContext, payload string) (string, error) {
	args, err := decodeInitializeAdminArgs(payload)
	if err != nil {
		return "", err
	}
	if !c.deployer.IsZero() && !cc.caller.Equals(c.deployer) {
		return "", fmt.Errorf("%s is not the deploying authority: %w", cc.caller, ErrUnauthorized)
	}
	admins := [AdminCount]solana.PublicKey{cc.caller, args.Admin2, args.Admin3}
	for i := 0; i < AdminCount; i++ {
		for j := i + 1; j < AdminCount; j++ {
			if admins[i].Equals(admins[j]) {
				return "", fmt.Errorf("%s listed twice: %w", admins[i], ErrDuplicateAdmin)
			}
		}
	}

	addr, bump, err := configAddress(cc.space)
	if err != nil {
		return "", err
	}
	cfg := &Config{Admins: admins, Bump: bump}
	if err := cc.createRecord(addr, cfg); err != nil {
		if errors.Is(err, space.ErrAccountExists) {
			return "", fmt.Errorf("admin registry: %w: %w", ErrAlreadyInitialized, err)
		}
		return "", err
	}
	cc.emitAdminInitializedEvent(cfg)
	return fmt.Sprintf("admins initialized: %d", AdminCount), nil
}

// transferAdmin swaps old for new in the registry. Both the caller and old
// must be admins; new must not be one yet.
// Example payload: "old|new"
func (c *Contract) transferAdmin(cc *callContext, payload string) (string, error) {
	args, err := decodeTransferAdminArgs(payload)
	if err != nil {
		return "", err
	}
	cfg, err := cc.requireAdmin()
	if err != nil {
		return "", err
	}
	slot := cfg.adminSlot(args.OldAdmin)
	if slot < 0 {
		return "", fmt.Errorf("%s is not an admin: %w", args.OldAdmin, ErrUnauthorized)
	}
	if cfg.IsAdmin(args.NewAdmin) {
		return "", fmt.Errorf("%s is already an admin: %w", args.NewAdmin, ErrDuplicateAdmin)
	}
	cfg.Admins[slot] = args.NewAdmin
	if err := cc.saveConfig(cfg); err != nil {
		return "", err
	}
	cc.emitAdminTransferredEvent(args.OldAdmin, args.NewAdmin)
	return fmt.Sprintf("admin transferred from %s to %s", args.OldAdmin, args.NewAdmin), nil
}
