package contract

import (
	"fmt"
	"strconv"
	"strings"

	"community_fund/sdk"

	"github.com/gagliardetto/solana-go"
)

// Payload joins fields into the pipe-delimited form every action takes.
// Example payload: Payload("0", owner.String(), "25") -> "0|<owner>|25"
func Payload(fields ...string) string {
	return strings.Join(fields, "|")
}

// splitPayload splits raw into exactly n fields.
func splitPayload(raw string, n int) ([]string, error) {
	if n == 0 {
		if strings.TrimSpace(raw) != "" {
			return nil, fmt.Errorf("expected empty payload: %w", ErrInvalidPayload)
		}
		return nil, nil
	}
	parts := strings.Split(raw, "|")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d fields, got %d: %w", n, len(parts), ErrInvalidPayload)
	}
	return parts, nil
}

// parseAddressField reads an identity; the zero key is refused.
func parseAddressField(s, name string) (solana.PublicKey, error) {
	pk, err := sdk.ParseAddress(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%s: %v: %w", name, err, ErrInvalidAddress)
	}
	return pk, nil
}

// parseUintField parses a decimal u64 so overflowing values are rejected, not wrapped.
func parseUintField(s, name string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, ErrInvalidPayload)
	}
	return v, nil
}

// -----------------------------------------------------------------------------
// Per Action Args
// -----------------------------------------------------------------------------

type InitializeAdminArgs struct {
	Admin2 solana.PublicKey
	Admin3 solana.PublicKey
}

// decodeInitializeAdminArgs reads "admin2|admin3".
func decodeInitializeAdminArgs(raw string) (*InitializeAdminArgs, error) {
	parts, err := splitPayload(raw, 2)
	if err != nil {
		return nil, err
	}
	a2, err := parseAddressField(parts[0], "admin2")
	if err != nil {
		return nil, err
	}
	a3, err := parseAddressField(parts[1], "admin3")
	if err != nil {
		return nil, err
	}
	return &InitializeAdminArgs{Admin2: a2, Admin3: a3}, nil
}

type TransferAdminArgs struct {
	OldAdmin solana.PublicKey
	NewAdmin solana.PublicKey
}

// decodeTransferAdminArgs reads "old|new".
func decodeTransferAdminArgs(raw string) (*TransferAdminArgs, error) {
	parts, err := splitPayload(raw, 2)
	if err != nil {
		return nil, err
	}
	oldAdmin, err := parseAddressField(parts[0], "old admin")
	if err != nil {
		return nil, err
	}
	newAdmin, err := parseAddressField(parts[1], "new admin")
	if err != nil {
		return nil, err
	}
	return &TransferAdminArgs{OldAdmin: oldAdmin, NewAdmin: newAdmin}, nil
}

type CreateProposalArgs struct {
	Title       string
	Description string
	Amount      uint64
}

// decodeCreateProposalArgs reads "title|description|amount". Text is kept
// verbatim; length rules are applied by the operation.
func decodeCreateProposalArgs(raw string) (*CreateProposalArgs, error) {
	parts, err := splitPayload(raw, 3)
	if err != nil {
		return nil, err
	}
	amount, err := parseUintField(parts[2], "amount")
	if err != nil {
		return nil, err
	}
	return &CreateProposalArgs{
		Title:       parts[0],
		Description: parts[1],
		Amount:      amount,
	}, nil
}

type UpdateProposalArgs struct {
	ID          uint64
	Title       string
	Description string
}

// decodeUpdateProposalArgs reads "id|title|description".
func decodeUpdateProposalArgs(raw string) (*UpdateProposalArgs, error) {
	parts, err := splitPayload(raw, 3)
	if err != nil {
		return nil, err
	}
	id, err := parseUintField(parts[0], "proposal id")
	if err != nil {
		return nil, err
	}
	return &UpdateProposalArgs{ID: id, Title: parts[1], Description: parts[2]}, nil
}

type VoteArgs struct {
	ID     uint64
	Owner  solana.PublicKey
	Weight uint64
}

// decodeVoteArgs reads "id|owner|weight".
func decodeVoteArgs(raw string) (*VoteArgs, error) {
	parts, err := splitPayload(raw, 3)
	if err != nil {
		return nil, err
	}
	id, err := parseUintField(parts[0], "proposal id")
	if err != nil {
		return nil, err
	}
	owner, err := parseAddressField(parts[1], "proposal owner")
	if err != nil {
		return nil, err
	}
	weight, err := parseUintField(parts[2], "token weight")
	if err != nil {
		return nil, err
	}
	return &VoteArgs{ID: id, Owner: owner, Weight: weight}, nil
}

// ProposalRef points at one proposal by its owner and per-owner id.
type ProposalRef struct {
	ID    uint64
	Owner solana.PublicKey
}

// decodeProposalRef reads "id|owner", shared by reject, approve and finalize.
func decodeProposalRef(raw string) (*ProposalRef, error) {
	parts, err := splitPayload(raw, 2)
	if err != nil {
		return nil, err
	}
	id, err := parseUintField(parts[0], "proposal id")
	if err != nil {
		return nil, err
	}
	owner, err := parseAddressField(parts[1], "proposal owner")
	if err != nil {
		return nil, err
	}
	return &ProposalRef{ID: id, Owner: owner}, nil
}

// decodeAmount reads a bare lamport amount for deposit_to_vault.
func decodeAmount(raw string) (uint64, error) {
	parts, err := splitPayload(raw, 1)
	if err != nil {
		return 0, err
	}
	return parseUintField(parts[0], "amount")
}

// decodeProposalID reads a bare id for claim_funds.
func decodeProposalID(raw string) (uint64, error) {
	parts, err := splitPayload(raw, 1)
	if err != nil {
		return 0, err
	}
	return parseUintField(parts[0], "proposal id")
}
