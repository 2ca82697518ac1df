package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"community_fund/contract"
	"community_fund/internal/config"
	"community_fund/sdk"
	"community_fund/state"

	"github.com/CosmWasm/tinyjson"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
)

type cli struct {
	flags *globalFlags
}

// session is one opened contract over the configured store. close must run
// after the command so the store is flushed.
type session struct {
	cfg      *config.Config
	contract *contract.Contract
	close    func() error
}

func (c *cli) config(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return nil, errors.New("no config found in context")
	}
	return cfg, nil
}

func (c *cli) open(cmd *cobra.Command) (*session, error) {
	cfg, err := c.config(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), c.flags.debug)
	programID, err := cfg.ProgramID()
	if err != nil {
		return nil, err
	}
	deployer, err := cfg.DeployerKey()
	if err != nil {
		return nil, err
	}

	var store state.Store
	var closeFn func() error
	switch cfg.Storage {
	case config.StorageMemory:
		if err := os.MkdirAll(cfg.DatabasePath, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
		mem := state.NewMemoryStore()
		if err := mem.LoadFromFile(cfg.MemoryStatePath()); err != nil {
			return nil, fmt.Errorf("failed to load state: %w", err)
		}
		store = mem
		closeFn = func() error {
			return mem.SaveToFile(cfg.MemoryStatePath())
		}
	default:
		db, err := state.NewBadgerStore(
			state.WithBadgerDataDir(cfg.DatabasePath),
			state.WithBadgerLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		store = db
		closeFn = db.Close
	}

	opts := []contract.ContractOptionFunc{
		contract.WithLogger(logger),
		contract.WithProgramID(programID),
		contract.WithRequireSignatures(cfg.RequireSignatures),
	}
	if !deployer.IsZero() {
		opts = append(opts, contract.WithDeployer(deployer))
	}
	return &session{
		cfg:      cfg,
		contract: contract.New(store, opts...),
		close:    closeFn,
	}, nil
}

// withSession opens the store, runs fn and always closes the store again.
func (c *cli) withSession(cmd *cobra.Command, fn func(s *session) error) (err error) {
	s, err := c.open(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close store: %w", closeErr))
		}
	}()
	return fn(s)
}

// -----------------------------------------------------------------------------
// Keys
// -----------------------------------------------------------------------------

func loadKey(path string) (solana.PrivateKey, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}
	key, err := solana.PrivateKeyFromBase58(strings.TrimSpace(string(buf)))
	if err != nil {
		return nil, fmt.Errorf("invalid key in %s: %w", path, err)
	}
	return key, nil
}

func (c *cli) keygenCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create a new signing key at the configured key path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config(cmd)
			if err != nil {
				return err
			}
			if _, err := os.Stat(cfg.KeyFile); err == nil && !force {
				return fmt.Errorf("key file %s already exists (use --force to overwrite)", cfg.KeyFile)
			}
			key, err := solana.NewRandomPrivateKey()
			if err != nil {
				return err
			}
			if dir := filepath.Dir(cfg.KeyFile); dir != "." {
				if err := os.MkdirAll(dir, 0o700); err != nil {
					return err
				}
			}
			if err := os.WriteFile(cfg.KeyFile, []byte(key.String()+"\n"), 0o600); err != nil {
				return fmt.Errorf("failed to write key: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), key.PublicKey().String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing key file")
	return cmd
}

// -----------------------------------------------------------------------------
// Wallet
// -----------------------------------------------------------------------------

func (c *cli) airdropCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "airdrop <address> <sol>",
		Short: "Credit SOL to an address from the local faucet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := sdk.ParseAddress(args[0])
			if err != nil {
				return err
			}
			lamports, err := sdk.ParseSOL(args[1])
			if err != nil {
				return err
			}
			return c.withSession(cmd, func(s *session) error {
				if err := s.contract.Airdrop(cmd.Context(), to, lamports); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "airdropped %s SOL to %s\n", sdk.FormatSOL(lamports), to)
				return nil
			})
		},
	}
}

func (c *cli) balanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]",
		Short: "Show the SOL balance of an address (defaults to the signing key)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config(cmd)
			if err != nil {
				return err
			}
			var who solana.PublicKey
			if len(args) == 1 {
				who, err = sdk.ParseAddress(args[0])
			} else {
				var key solana.PrivateKey
				key, err = loadKey(cfg.KeyFile)
				if key != nil {
					who = key.PublicKey()
				}
			}
			if err != nil {
				return err
			}
			return c.withSession(cmd, func(s *session) error {
				lamports, err := s.contract.Balance(who)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s SOL\n", sdk.FormatSOL(lamports))
				return nil
			})
		},
	}
}

// -----------------------------------------------------------------------------
// Actions
// -----------------------------------------------------------------------------

func newTxId() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return base58.Encode(buf[:]), nil
}

// timestamp is the block time for a submitted call. Overriding it with
// --at is a local testing aid, so it needs memory storage or --debug.
func (c *cli) timestamp(cfg *config.Config) (string, error) {
	if c.flags.at == "" {
		return sdk.FormatTimestamp(time.Now().Unix()), nil
	}
	if cfg.Storage != config.StorageMemory && !c.flags.debug {
		return "", errors.New("--at is only allowed with memory storage or --debug")
	}
	return c.flags.at, nil
}

// submit signs and executes one action as the configured key.
func (c *cli) submit(cmd *cobra.Command, action, payload string) error {
	cfg, err := c.config(cmd)
	if err != nil {
		return err
	}
	key, err := loadKey(cfg.KeyFile)
	if err != nil {
		return err
	}
	txId, err := newTxId()
	if err != nil {
		return err
	}
	timestamp, err := c.timestamp(cfg)
	if err != nil {
		return err
	}
	env := sdk.NewEnv(cfg.ContractId, txId, key.PublicKey(), timestamp)
	tx := contract.Tx{Env: env, Action: action, Payload: payload}
	if cfg.RequireSignatures {
		tx.Signature, err = sdk.Sign(key, env, action, payload)
		if err != nil {
			return err
		}
	}
	return c.withSession(cmd, func(s *session) error {
		res := s.contract.Execute(cmd.Context(), tx)
		if !res.Success {
			return fmt.Errorf("%s failed [%s]: %w", action, contract.ErrorCode(res.Err), res.Err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, res.Ret)
		for _, line := range res.Logs {
			fmt.Fprintln(out, line)
		}
		return nil
	})
}

// payloadFunc turns positional args into an action payload.
type payloadFunc func(args []string) (string, error)

func joinArgs(args []string) (string, error) {
	return contract.Payload(args...), nil
}

func noPayload([]string) (string, error) {
	return "", nil
}

// refArgs maps "<owner> <id>" onto the "id|owner" payload.
func refArgs(args []string) (string, error) {
	return contract.Payload(args[1], args[0]), nil
}

func (c *cli) action(use, short, action string, nargs int, build payloadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := build(args)
			if err != nil {
				return err
			}
			return c.submit(cmd, action, payload)
		},
	}
}

func (c *cli) actionCommands() []*cobra.Command {
	return []*cobra.Command{
		c.action("init-admin <admin2> <admin3>", "Create the admin registry with the signer as first admin",
			contract.ActionInitializeAdmin, 2, joinArgs),
		c.action("transfer-admin <old> <new>", "Replace an admin in the registry",
			contract.ActionTransferAdmin, 2, joinArgs),
		c.action("init-user", "Create the signer's user profile",
			contract.ActionInitializeUser, 0, noPayload),
		c.action("create <title> <description> <sol>", "Open a funding proposal",
			contract.ActionCreateProposal, 3, func(args []string) (string, error) {
				lamports, err := sdk.ParseSOL(args[2])
				if err != nil {
					return "", err
				}
				return contract.Payload(args[0], args[1], strconv.FormatUint(lamports, 10)), nil
			}),
		c.action("update <id> <title> <description>", "Edit the text of one of the signer's pending proposals",
			contract.ActionUpdateProposal, 3, joinArgs),
		c.action("vote <owner> <id> <weight>", "Vote on a proposal with a token weight",
			contract.ActionVoteOnProposal, 3, func(args []string) (string, error) {
				return contract.Payload(args[1], args[0], args[2]), nil
			}),
		c.action("reject <owner> <id>", "Reject a proposal (admin)",
			contract.ActionRejectProposal, 2, refArgs),
		c.action("approve <owner> <id>", "Approve funding for a proposal (admin)",
			contract.ActionApproveFunding, 2, refArgs),
		c.action("finalize <owner> <id>", "Close voting on a proposal",
			contract.ActionFinalizeProposal, 2, refArgs),
		c.action("init-vault", "Create the shared vault",
			contract.ActionInitializeVault, 0, noPayload),
		c.action("deposit <sol>", "Deposit SOL from the signer into the vault",
			contract.ActionDepositToVault, 1, func(args []string) (string, error) {
				lamports, err := sdk.ParseSOL(args[0])
				if err != nil {
					return "", err
				}
				return strconv.FormatUint(lamports, 10), nil
			}),
		c.action("claim <id>", "Claim the funds of one of the signer's finalized proposals",
			contract.ActionClaimFunds, 1, joinArgs),
	}
}

// -----------------------------------------------------------------------------
// Views
// -----------------------------------------------------------------------------

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid proposal id %q", s)
	}
	return id, nil
}

// view opens the store read-side and prints whatever fn returns as JSON.
func (c *cli) view(use, short string, nargs int, fn func(ctx context.Context, ct *contract.Contract, args []string) (tinyjson.Marshaler, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *session) error {
				v, err := fn(cmd.Context(), s.contract, args)
				if err != nil {
					return err
				}
				buf, err := tinyjson.Marshal(v)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(buf))
				return nil
			})
		},
	}
}

func (c *cli) showCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print fund records as JSON",
	}
	cmd.AddCommand(
		c.view("config", "Show the admin registry", 0,
			func(_ context.Context, ct *contract.Contract, _ []string) (tinyjson.Marshaler, error) {
				return ct.GetConfig()
			}),
		c.view("vault", "Show the vault totals and balance", 0,
			func(_ context.Context, ct *contract.Contract, _ []string) (tinyjson.Marshaler, error) {
				return ct.GetVault()
			}),
		c.view("profile <owner>", "Show a user profile", 1,
			func(_ context.Context, ct *contract.Contract, args []string) (tinyjson.Marshaler, error) {
				owner, err := sdk.ParseAddress(args[0])
				if err != nil {
					return nil, err
				}
				return ct.GetUserProfile(owner)
			}),
		c.view("proposal <owner> <id>", "Show one proposal", 2,
			func(_ context.Context, ct *contract.Contract, args []string) (tinyjson.Marshaler, error) {
				owner, err := sdk.ParseAddress(args[0])
				if err != nil {
					return nil, err
				}
				id, err := parseID(args[1])
				if err != nil {
					return nil, err
				}
				return ct.GetProposal(owner, id)
			}),
		c.view("proposals <owner>", "List every proposal of an owner", 1,
			func(_ context.Context, ct *contract.Contract, args []string) (tinyjson.Marshaler, error) {
				owner, err := sdk.ParseAddress(args[0])
				if err != nil {
					return nil, err
				}
				list, err := ct.ListProposals(owner)
				if err != nil {
					return nil, err
				}
				return contract.ProposalList(list), nil
			}),
		c.view("vote <voter> <owner> <id>", "Show one vote record", 3,
			func(_ context.Context, ct *contract.Contract, args []string) (tinyjson.Marshaler, error) {
				voter, err := sdk.ParseAddress(args[0])
				if err != nil {
					return nil, err
				}
				owner, err := sdk.ParseAddress(args[1])
				if err != nil {
					return nil, err
				}
				id, err := parseID(args[2])
				if err != nil {
					return nil, err
				}
				return ct.GetVote(voter, owner, id)
			}),
	)
	return cmd
}
