package contract

import (
	"errors"
	"fmt"

	"community_fund/space"
)

// claimTx records the call's tx id. A tx id that already ran fails with
// ErrDuplicateAction, which is what stops a signed call being replayed.
func (cc *callContext) claimTx() error {
	addr, bump, err := txAddress(cc.space, cc.env.TxId)
	if err != nil {
		return err
	}
	receipt := &TxReceipt{Sender: cc.caller, Timestamp: cc.now, Bump: bump}
	if err := cc.createRecord(addr, receipt); err != nil {
		if errors.Is(err, space.ErrAccountExists) {
			return fmt.Errorf("tx %q already executed: %w: %w", cc.env.TxId, ErrDuplicateAction, err)
		}
		return err
	}
	return nil
}

// advanceClock refuses a call stamped before the last committed block time
// and moves the clock forward otherwise.
func (cc *callContext) advanceClock() error {
	addr, bump, err := clockAddress(cc.space)
	if err != nil {
		return err
	}
	clock := &Clock{}
	err = cc.loadRecord(addr, clock)
	if errors.Is(err, ErrUnknownRecord) {
		return cc.createRecord(addr, &Clock{LastTimestamp: cc.now, Bump: bump})
	}
	if err != nil {
		return err
	}
	if cc.now < clock.LastTimestamp {
		return fmt.Errorf("block time %d is before last block %d: %w", cc.now, clock.LastTimestamp, ErrInvalidEnv)
	}
	if cc.now == clock.LastTimestamp {
		return nil
	}
	clock.LastTimestamp = cc.now
	return cc.saveRecord(addr, clock)
}
