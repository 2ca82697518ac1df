package contract

import (
	"context"
	"errors"
	"fmt"

	"community_fund/sdk"
	"community_fund/space"
	"community_fund/state"

	"github.com/gagliardetto/solana-go"
)

// callContext is scoped to the currently executing call: one env snapshot,
// one store transaction, one event buffer. Nothing in it outlives Execute.
type callContext struct {
	ctx    context.Context
	env    sdk.Env
	caller solana.PublicKey
	now    int64
	txn    state.Txn
	space  *space.Space
	events *sdk.EventLog
	// afterCommit runs only once the txn committed, so metrics never count a
	// rolled back call.
	afterCommit []func()
}

func (c *Contract) newCallContext(ctx context.Context, env sdk.Env, txn state.Txn) (*callContext, error) {
	if !sdk.IsValid(env.Sender.Address) {
		return nil, fmt.Errorf("missing sender: %w", ErrInvalidEnv)
	}
	if env.TxId == "" {
		return nil, fmt.Errorf("missing tx id: %w", ErrInvalidEnv)
	}
	now, err := env.Unix()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidEnv)
	}
	return &callContext{
		ctx:    ctx,
		env:    env,
		caller: env.Sender.Address,
		now:    now,
		txn:    txn,
		space:  c.space,
		events: &sdk.EventLog{},
	}, nil
}

func (cc *callContext) onCommit(fn func()) {
	cc.afterCommit = append(cc.afterCommit, fn)
}

// -----------------------------------------------------------------------------
// Record Access
// -----------------------------------------------------------------------------

// createRecord claims addr and stores r there. An address that is already
// taken surfaces as space.ErrAccountExists for the caller to wrap.
func (cc *callContext) createRecord(addr solana.PublicKey, r record) error {
	data, err := encodeRecord(r)
	if err != nil {
		return err
	}
	_, err = cc.space.Create(cc.txn, addr, data)
	return err
}

// loadRecord decodes the program-owned record at addr. A missing account
// maps to ErrUnknownRecord.
func (cc *callContext) loadRecord(addr solana.PublicKey, r record) error {
	acc, err := cc.space.Open(cc.txn, addr)
	if err != nil {
		if errors.Is(err, space.ErrAccountNotFound) {
			return fmt.Errorf("%s: %w", addr, ErrUnknownRecord)
		}
		return err
	}
	if !acc.Owner.Equals(cc.space.ProgramID()) {
		return fmt.Errorf("%s owned by %s: %w", addr, acc.Owner, ErrWrongOwner)
	}
	if err := decodeRecord(acc.Data, r); err != nil {
		return fmt.Errorf("%s: %w", addr, err)
	}
	return nil
}

// saveRecord rewrites the data of an existing record and leaves its
// lamports alone.
func (cc *callContext) saveRecord(addr solana.PublicKey, r record) error {
	acc, err := cc.space.Open(cc.txn, addr)
	if err != nil {
		return err
	}
	data, err := encodeRecord(r)
	if err != nil {
		return err
	}
	acc.Data = data
	return cc.space.Save(cc.txn, addr, acc)
}
