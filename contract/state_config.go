package contract

import (
	"errors"
	"fmt"
)

// loadConfig fetches the admin registry. Before initialize_admin ran this
// returns ErrUnknownRecord.
func (cc *callContext) loadConfig() (*Config, error) {
	addr, _, err := configAddress(cc.space)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := cc.loadRecord(addr, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cc *callContext) saveConfig(cfg *Config) error {
	addr, _, err := configAddress(cc.space)
	if err != nil {
		return err
	}
	return cc.saveRecord(addr, cfg)
}

// requireAdmin loads the registry and fails unless the caller holds a slot.
func (cc *callContext) requireAdmin() (*Config, error) {
	cfg, err := cc.loadConfig()
	if err != nil {
		if errors.Is(err, ErrUnknownRecord) {
			return nil, fmt.Errorf("admins not initialized: %w", ErrUnauthorized)
		}
		return nil, err
	}
	if !cfg.IsAdmin(cc.caller) {
		return nil, fmt.Errorf("%s is not an admin: %w", cc.caller, ErrUnauthorized)
	}
	return cfg, nil
}
