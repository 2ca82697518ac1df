////////////////////////////////////////////////////////////////////////////////
// Community Fund: proposal voting, admin approvals and a shared vault
////////////////////////////////////////////////////////////////////////////////

// Package contract is the community fund engine. Members open funding
// proposals, token holders vote on them for seven days, admins approve the
// large ones, and finalized proposals are paid out of a shared vault.
//
// All state is kept as program-owned accounts in a space.Space. Every call
// goes through Execute, runs inside one store transaction and either
// commits fully or leaves the store untouched.
package contract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"community_fund/sdk"
	"community_fund/space"
	"community_fund/state"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultProgramID is used when no program id is configured.
var DefaultProgramID = solana.MustPublicKeyFromBase58("6gE2epaU3z6ySCsnwY9fvWyCCTnUMZ97c4jkzvPg52St")

type Contract struct {
	mu                sync.Mutex
	store             state.Store
	space             *space.Space
	logger            *slog.Logger
	promRegistry      prometheus.Registerer
	metrics           contractMetrics
	programID         solana.PublicKey
	deployer          solana.PublicKey
	requireSignatures bool
}

type ContractOptionFunc func(*Contract)

// WithLogger specifies the logger object to use for logging messages
func WithLogger(logger *slog.Logger) ContractOptionFunc {
	return func(c *Contract) {
		c.logger = logger
	}
}

// WithPromRegistry specifies the prometheus registry to use for metrics
func WithPromRegistry(registry prometheus.Registerer) ContractOptionFunc {
	return func(c *Contract) {
		c.promRegistry = registry
	}
}

// WithProgramID sets the program id every record address is derived from
func WithProgramID(programID solana.PublicKey) ContractOptionFunc {
	return func(c *Contract) {
		c.programID = programID
	}
}

// WithDeployer restricts initialize_admin to the given deploying authority
func WithDeployer(deployer solana.PublicKey) ContractOptionFunc {
	return func(c *Contract) {
		c.deployer = deployer
	}
}

// WithRequireSignatures makes every call carry a sender signature over
// sdk.SigningMessage
func WithRequireSignatures(require bool) ContractOptionFunc {
	return func(c *Contract) {
		c.requireSignatures = require
	}
}

func New(store state.Store, opts ...ContractOptionFunc) *Contract {
	c := &Contract{
		store:     store,
		programID: DefaultProgramID,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		// Create logger to throw away logs
		c.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	c.logger = c.logger.With("component", "contract")
	c.space = space.New(c.programID)
	c.metrics.init(c.promRegistry)
	return c
}

func (c *Contract) ProgramID() solana.PublicKey {
	return c.programID
}

// Tx is one call into the contract.
type Tx struct {
	Env     sdk.Env
	Action  string
	Payload string
	// Signature is the base58 sender signature; only checked when
	// signatures are required.
	Signature string
}

// Result reports the outcome of one call. Logs only carries events from a
// successful call.
type Result struct {
	Success bool
	Ret     string
	Err     error
	Logs    []string
}

type handlerFunc func(*Contract, *callContext, string) (string, error)

var handlers = map[string]handlerFunc{
	ActionInitializeAdmin:  (*Contract).initializeAdmin,
	ActionTransferAdmin:    (*Contract).transferAdmin,
	ActionInitializeUser:   (*Contract).initializeUser,
	ActionCreateProposal:   (*Contract).createProposal,
	ActionUpdateProposal:   (*Contract).updateProposal,
	ActionVoteOnProposal:   (*Contract).voteOnProposal,
	ActionRejectProposal:   (*Contract).rejectProposal,
	ActionApproveFunding:   (*Contract).approveFunding,
	ActionFinalizeProposal: (*Contract).finalizeProposal,
	ActionInitializeVault:  (*Contract).initializeVault,
	ActionDepositToVault:   (*Contract).depositToVault,
	ActionClaimFunds:       (*Contract).claimFunds,
}

// Actions lists every action name Execute accepts.
func Actions() []string {
	return []string{
		ActionInitializeAdmin,
		ActionTransferAdmin,
		ActionInitializeUser,
		ActionCreateProposal,
		ActionUpdateProposal,
		ActionVoteOnProposal,
		ActionRejectProposal,
		ActionApproveFunding,
		ActionFinalizeProposal,
		ActionInitializeVault,
		ActionDepositToVault,
		ActionClaimFunds,
	}
}

// Execute runs one call as a single serializable transaction.
func (c *Contract) Execute(ctx context.Context, tx Tx) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	ret, logs, err := c.execute(ctx, tx)
	action := metricAction(tx.Action)
	if err != nil {
		code := ErrorCode(err)
		c.metrics.calls.WithLabelValues(action, "failure").Inc()
		c.metrics.failures.WithLabelValues(action, code).Inc()
		c.logger.Info(
			"call failed",
			"action", tx.Action,
			"tx", tx.Env.TxId,
			"sender", sdk.ShortAddress(tx.Env.Sender.Address),
			"code", code,
			"error", err,
		)
		return Result{Success: false, Ret: err.Error(), Err: err}
	}
	c.metrics.calls.WithLabelValues(action, "success").Inc()
	c.logger.Debug(
		"call succeeded",
		"action", tx.Action,
		"tx", tx.Env.TxId,
		"sender", sdk.ShortAddress(tx.Env.Sender.Address),
		"ret", ret,
	)
	return Result{Success: true, Ret: ret, Logs: logs}
}

func (c *Contract) execute(ctx context.Context, tx Tx) (string, []string, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	handler, ok := handlers[tx.Action]
	if !ok {
		return "", nil, fmt.Errorf("%q: %w", tx.Action, ErrUnknownAction)
	}
	if err := c.authenticate(tx); err != nil {
		return "", nil, err
	}

	txn := c.store.NewTransaction(true)
	cc, err := c.newCallContext(ctx, tx.Env, txn)
	if err != nil {
		_ = txn.Rollback()
		return "", nil, err
	}
	ret, err := c.run(cc, handler, tx.Payload)
	if err != nil {
		if rbErr := txn.Rollback(); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return "", nil, err
	}
	if err := txn.Commit(); err != nil {
		return "", nil, fmt.Errorf("commit: %w", err)
	}
	for _, fn := range cc.afterCommit {
		fn()
	}
	return ret, cc.events.Lines(), nil
}

// run claims the tx id and advances the clock before the handler, all
// inside the call's txn.
func (c *Contract) run(cc *callContext, handler handlerFunc, payload string) (string, error) {
	if err := cc.claimTx(); err != nil {
		return "", err
	}
	if err := cc.advanceClock(); err != nil {
		return "", err
	}
	return handler(c, cc, payload)
}

// authenticate checks the sender is among the env's required auths and,
// when enabled, that the call carries the sender's signature.
func (c *Contract) authenticate(tx Tx) error {
	sender := tx.Env.Sender
	if len(sender.RequiredAuths) > 0 {
		found := false
		for _, a := range sender.RequiredAuths {
			if a.Equals(sender.Address) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s did not authorize the call: %w", sender.Address, ErrUnauthorized)
		}
	}
	if !c.requireSignatures {
		return nil
	}
	if tx.Signature == "" {
		return fmt.Errorf("missing signature: %w", ErrUnauthorized)
	}
	if err := sdk.Verify(tx.Env, tx.Action, tx.Payload, tx.Signature); err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return nil
}

// Airdrop credits lamports to a wallet. It is the faucet used by tooling and
// tests; no action reaches it.
func (c *Contract) Airdrop(ctx context.Context, to solana.PublicKey, lamports uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !sdk.IsValid(to) {
		return ErrInvalidAddress
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	txn := c.store.NewTransaction(true)
	if err := c.space.Credit(txn, to, lamports); err != nil {
		_ = txn.Rollback()
		return err
	}
	return txn.Commit()
}
