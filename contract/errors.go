package contract

import (
	"errors"

	"community_fund/sdk"
	"community_fund/space"
)

var (
	ErrUnauthorized             = errors.New("unauthorized")
	ErrAlreadyApproved          = errors.New("already approved by this admin")
	ErrVotingExpired            = errors.New("voting period has ended")
	ErrVotingStillActive        = errors.New("voting period is still active")
	ErrAlreadyFinalized         = errors.New("proposal already finalized")
	ErrNotApproved              = errors.New("proposal not approved")
	ErrInsufficientVaultBalance = errors.New("insufficient vault balance")
	ErrDuplicateAction          = errors.New("duplicate action")
	ErrUnknownRecord            = errors.New("unknown record")
	ErrAlreadyInitialized       = errors.New("already initialized")
	ErrInvalidTransition        = errors.New("invalid state transition")
	ErrDuplicateAdmin           = errors.New("duplicate admin")
	ErrFieldTooLong             = errors.New("field too long")
	ErrInvalidAmount            = errors.New("invalid amount")
	ErrInvalidPayload           = errors.New("invalid payload")
	ErrInvalidAddress           = errors.New("invalid address")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrArithmeticOverflow       = errors.New("arithmetic overflow")
	ErrUnknownAction            = errors.New("unknown action")
	ErrInvalidEnv               = errors.New("invalid environment")
	ErrWrongOwner               = errors.New("account not owned by program")
)

// errorCodes is checked in order; the first match wins so more specific
// sentinels go before the ones they may wrap.
var errorCodes = []struct {
	err  error
	code string
}{
	{ErrUnauthorized, "unauthorized"},
	{ErrAlreadyApproved, "already_approved"},
	{ErrVotingExpired, "voting_expired"},
	{ErrVotingStillActive, "voting_still_active"},
	{ErrAlreadyFinalized, "already_finalized"},
	{ErrNotApproved, "not_approved"},
	{ErrInsufficientVaultBalance, "insufficient_vault_balance"},
	{ErrDuplicateAction, "duplicate_action"},
	{ErrUnknownRecord, "unknown_record"},
	{ErrAlreadyInitialized, "already_initialized"},
	{ErrInvalidTransition, "invalid_transition"},
	{ErrDuplicateAdmin, "duplicate_admin"},
	{ErrFieldTooLong, "field_too_long"},
	{ErrInvalidAmount, "invalid_amount"},
	{ErrInvalidPayload, "invalid_payload"},
	{ErrInvalidAddress, "invalid_address"},
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrArithmeticOverflow, "arithmetic_overflow"},
	{ErrUnknownAction, "unknown_action"},
	{ErrInvalidEnv, "invalid_env"},
	{ErrWrongOwner, "wrong_owner"},
	{sdk.ErrBadSignature, "unauthorized"},
	{space.ErrAccountExists, "account_exists"},
	{space.ErrAccountNotFound, "account_not_found"},
	{space.ErrInsufficientLamports, "insufficient_funds"},
	{space.ErrLamportOverflow, "arithmetic_overflow"},
}

// ErrorCode maps err to a short stable code for logs and metric labels.
// nil maps to "" and anything unrecognised to "internal".
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal"
}
