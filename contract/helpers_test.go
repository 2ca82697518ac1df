package contract_test

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"strconv"
	"testing"

	"community_fund/contract"
	"community_fund/sdk"
	"community_fund/state"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ContractID = "community_fund"
const defaultTimestamp = "2025-09-03T00:00:00"

// afterVoting is exactly VotingPeriodSeconds after defaultTimestamp.
const afterVoting = "2025-09-10T00:00:00"

// lastVotingSecond is one second before the window closes.
const lastVotingSecond = "2025-09-09T23:59:59"

// startingBalance is what every test identity is airdropped.
const startingBalance = 10_000 * sdk.LamportsPerSOL

var testUsers = []string{"admin1", "admin2", "admin3", "someone", "someoneelse", "outsider"}

type ContractTest struct {
	Contract *contract.Contract
	Store    *state.MemoryStore
	Registry *prometheus.Registry
	txCount  int
	// clock is the latest timestamp a call committed at; the contract
	// refuses anything earlier.
	clock string
}

// identity derives a stable key per test name so addresses read the same
// across runs.
func identity(name string) solana.PrivateKey {
	seed := sha256.Sum256([]byte(name))
	return solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:]))
}

func addr(name string) solana.PublicKey {
	return identity(name).PublicKey()
}

// Setup an Instance of a test
func SetupContractTest(t *testing.T, opts ...contract.ContractOptionFunc) *ContractTest {
	t.Helper()
	reg := prometheus.NewRegistry()
	store := state.NewMemoryStore()
	opts = append([]contract.ContractOptionFunc{contract.WithPromRegistry(reg)}, opts...)
	ct := &ContractTest{
		Contract: contract.New(store, opts...),
		Store:    store,
		Registry: reg,
	}
	for _, u := range testUsers {
		require.NoError(t, ct.Contract.Airdrop(context.Background(), addr(u), startingBalance))
	}
	return ct
}

// newTx builds an env for authUser with a fresh tx id.
func (ct *ContractTest) newTx(action, payload, authUser, timestamp string) contract.Tx {
	ct.txCount++
	env := sdk.NewEnv(ContractID, fmt.Sprintf("%s-tx-%d", action, ct.txCount), addr(authUser), timestamp)
	return contract.Tx{Env: env, Action: action, Payload: payload}
}

// CallContract executes a contract action and asserts basic success
func CallContract(t *testing.T, ct *ContractTest, action string, payload string, authUser string, expectedResult bool) contract.Result {
	t.Helper()
	return CallContractAt(t, ct, action, payload, authUser, expectedResult, "")
}

// now is the block time plain calls run at: the latest committed one.
func (ct *ContractTest) now() string {
	if ct.clock == "" {
		return defaultTimestamp
	}
	return ct.clock
}

// advance moves the harness clock forward after a committed call.
func (ct *ContractTest) advance(t *testing.T, timestamp string) {
	t.Helper()
	next, err := sdk.ParseTimestamp(timestamp)
	require.NoError(t, err)
	cur, err := sdk.ParseTimestamp(ct.now())
	require.NoError(t, err)
	if next > cur {
		ct.clock = timestamp
	}
}

// CallContractAt executes a call but lets tests override the timestamp for expiry checks.
func CallContractAt(t *testing.T, ct *ContractTest, action string, payload string, authUser string, expectedResult bool, timestamp string) contract.Result {
	t.Helper()
	if timestamp == "" {
		timestamp = ct.now()
	}
	result := ct.Contract.Execute(context.Background(), ct.newTx(action, payload, authUser, timestamp))
	if result.Success {
		ct.advance(t, timestamp)
	}
	if expectedResult {
		assert.True(t, result.Success, "Contract action %s failed with %s", action, result.Ret)
	} else {
		assert.False(t, result.Success, "Contract action %s did not fail (as expected)", action)
	}
	return result
}

// -----------------------------------------------------------------------------
// Flow helpers
// -----------------------------------------------------------------------------

func initAdmins(t *testing.T, ct *ContractTest) {
	t.Helper()
	CallContract(t, ct, contract.ActionInitializeAdmin, contract.Payload(addr("admin2").String(), addr("admin3").String()), "admin1", true)
}

func initUser(t *testing.T, ct *ContractTest, user string) {
	t.Helper()
	CallContract(t, ct, contract.ActionInitializeUser, "", user, true)
}

func createProposal(t *testing.T, ct *ContractTest, owner string, amount uint64) uint64 {
	t.Helper()
	before := proposalCount(t, ct, owner)
	CallContract(t, ct, contract.ActionCreateProposal,
		contract.Payload("community garden", "raised beds and tools", strconv.FormatUint(amount, 10)),
		owner, true)
	return before
}

func proposalCount(t *testing.T, ct *ContractTest, owner string) uint64 {
	t.Helper()
	p, err := ct.Contract.GetUserProfile(addr(owner))
	require.NoError(t, err)
	return p.ProposalCount
}

func getProposal(t *testing.T, ct *ContractTest, owner string, id uint64) *contract.ProposalView {
	t.Helper()
	p, err := ct.Contract.GetProposal(addr(owner), id)
	require.NoError(t, err)
	return p
}

func refPayload(id uint64, owner string) string {
	return contract.Payload(strconv.FormatUint(id, 10), addr(owner).String())
}

func vote(t *testing.T, ct *ContractTest, voter string, owner string, id uint64, weight uint64, expected bool) contract.Result {
	t.Helper()
	return CallContract(t, ct, contract.ActionVoteOnProposal,
		contract.Payload(strconv.FormatUint(id, 10), addr(owner).String(), strconv.FormatUint(weight, 10)),
		voter, expected)
}

func initVault(t *testing.T, ct *ContractTest, deposit uint64) {
	t.Helper()
	CallContract(t, ct, contract.ActionInitializeVault, "", "admin1", true)
	if deposit > 0 {
		CallContract(t, ct, contract.ActionDepositToVault, strconv.FormatUint(deposit, 10), "someoneelse", true)
	}
}

// finalizedProposal walks a fresh proposal by owner through voting and
// finalization so it can be claimed.
func finalizedProposal(t *testing.T, ct *ContractTest, owner string, amount uint64) uint64 {
	t.Helper()
	id := createProposal(t, ct, owner, amount)
	vote(t, ct, "someoneelse", owner, id, contract.MinVotes, true)
	ends := getProposal(t, ct, owner, id).VotingEndsAt()
	CallContractAt(t, ct, contract.ActionFinalizeProposal, refPayload(id, owner), "outsider", true, sdk.FormatTimestamp(ends))
	require.Equal(t, contract.StatusFinalized, getProposal(t, ct, owner, id).Status)
	return id
}

func balance(t *testing.T, ct *ContractTest, who solana.PublicKey) uint64 {
	t.Helper()
	b, err := ct.Contract.Balance(who)
	require.NoError(t, err)
	return b
}

// counterValue reads one labelled series out of the test registry.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			match := true
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					match = false
				}
			}
			if match {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}
