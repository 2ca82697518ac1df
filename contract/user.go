package contract

import (
	"errors"
	"fmt"

	"community_fund/space"
)

// initializeUser creates the caller's profile with a zero proposal count.
func (c *Contract) initializeUser(cc *callContext, payload string) (string, error) {
	if _, err := splitPayload(payload, 0); err != nil {
		return "", err
	}
	addr, bump, err := profileAddress(cc.space, cc.caller)
	if err != nil {
		return "", err
	}
	profile := &UserProfile{ProposalCount: 0, Bump: bump}
	if err := cc.createRecord(addr, profile); err != nil {
		if errors.Is(err, space.ErrAccountExists) {
			return "", fmt.Errorf("profile for %s: %w: %w", cc.caller, ErrAlreadyInitialized, err)
		}
		return "", err
	}
	cc.emitUserInitializedEvent()
	return "user profile initialized", nil
}
