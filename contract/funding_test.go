package contract_test

import (
	"strconv"
	"testing"

	"community_fund/contract"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Approve Funding Tests
// =============================================================================

func TestApproveBelowThresholdSingleAdmin(t *testing.T) {
	ct := SetupContractTest(t)
	initAdmins(t, ct)
	initUser(t, ct, "someone")
	id := createProposal(t, ct, "someone", contract.MultisigThreshold-1)

	res := CallContract(t, ct, contract.ActionApproveFunding, refPayload(id, "someone"), "admin3", true)
	assert.Equal(t, "approved by single admin", res.Ret)
	p := getProposal(t, ct, "someone", id)
	assert.Equal(t, contract.StatusApproved, p.Status)
	assert.Empty(t, p.FundingApprovals)
}

func TestApproveAtThresholdNeedsTwoAdmins(t *testing.T) {
	ct := SetupContractTest(t)
	initAdmins(t, ct)
	initUser(t, ct, "someone")
	id := createProposal(t, ct, "someone", contract.MultisigThreshold)

	res := CallContract(t, ct, contract.ActionApproveFunding, refPayload(id, "someone"), "admin1", true)
	assert.Equal(t, "1 of 2 approvals received", res.Ret)
	p := getProposal(t, ct, "someone", id)
	assert.Equal(t, contract.StatusPending, p.Status)
	assert.Equal(t, []solana.PublicKey{addr("admin1")}, p.FundingApprovals)

	// a repeat by the same admin changes nothing
	before := ct.Store.Snapshot()
	res = CallContract(t, ct, contract.ActionApproveFunding, refPayload(id, "someone"), "admin1", false)
	assert.ErrorIs(t, res.Err, contract.ErrAlreadyApproved)
	assert.Equal(t, before, ct.Store.Snapshot())

	res = CallContract(t, ct, contract.ActionApproveFunding, refPayload(id, "someone"), "admin2", true)
	assert.Equal(t, "approved with 2-of-3 multisig", res.Ret)
	p = getProposal(t, ct, "someone", id)
	assert.Equal(t, contract.StatusApproved, p.Status)
	assert.Equal(t, []solana.PublicKey{addr("admin1"), addr("admin2")}, p.FundingApprovals)

	// once approved there is nothing left to approve
	res = CallContract(t, ct, contract.ActionApproveFunding, refPayload(id, "someone"), "admin3", false)
	assert.ErrorIs(t, res.Err, contract.ErrInvalidTransition)
}

func TestApproveRequiresAdmin(t *testing.T) {
	ct := SetupContractTest(t)
	initAdmins(t, ct)
	initUser(t, ct, "someone")
	id := createProposal(t, ct, "someone", 1)
	res := CallContract(t, ct, contract.ActionApproveFunding, refPayload(id, "someone"), "someone", false)
	assert.ErrorIs(t, res.Err, contract.ErrUnauthorized)
	assert.Equal(t, contract.StatusPending, getProposal(t, ct, "someone", id).Status)
}

// =============================================================================
// Reject Tests
// =============================================================================

func TestRejectProposal(t *testing.T) {
	ct := SetupContractTest(t)
	initAdmins(t, ct)
	initUser(t, ct, "someone")
	id := createProposal(t, ct, "someone", 1)

	res := CallContract(t, ct, contract.ActionRejectProposal, refPayload(id, "someone"), "someoneelse", false)
	assert.ErrorIs(t, res.Err, contract.ErrUnauthorized)

	res = CallContract(t, ct, contract.ActionRejectProposal, refPayload(id, "someone"), "admin1", true)
	assert.Equal(t, []string{"ps|id:0|o:" + addr("someone").String() + "|s:rejected"}, res.Logs)
	assert.Equal(t, contract.StatusRejected, getProposal(t, ct, "someone", id).Status)

	// rejecting twice leaves it rejected
	CallContract(t, ct, contract.ActionRejectProposal, refPayload(id, "someone"), "admin2", true)
	assert.Equal(t, contract.StatusRejected, getProposal(t, ct, "someone", id).Status)
}

func TestRejectWrongOwner(t *testing.T) {
	ct := SetupContractTest(t)
	initAdmins(t, ct)
	initUser(t, ct, "someone")
	id := createProposal(t, ct, "someone", 1)
	res := CallContract(t, ct, contract.ActionRejectProposal, refPayload(id, "someoneelse"), "admin1", false)
	assert.ErrorIs(t, res.Err, contract.ErrUnknownRecord)
}

func TestRejectApprovedAndFinalized(t *testing.T) {
	ct := SetupContractTest(t)
	initAdmins(t, ct)
	initUser(t, ct, "someone")

	approved := createProposal(t, ct, "someone", 1)
	CallContract(t, ct, contract.ActionApproveFunding, refPayload(approved, "someone"), "admin1", true)
	CallContract(t, ct, contract.ActionRejectProposal, refPayload(approved, "someone"), "admin1", true)
	assert.Equal(t, contract.StatusRejected, getProposal(t, ct, "someone", approved).Status)

	finalized := finalizedProposal(t, ct, "someone", 1)
	CallContract(t, ct, contract.ActionRejectProposal, refPayload(finalized, "someone"), "admin1", true)
	assert.Equal(t, contract.StatusRejected, getProposal(t, ct, "someone", finalized).Status)
}

func TestRejectClaimedFails(t *testing.T) {
	ct := SetupContractTest(t)
	initAdmins(t, ct)
	initUser(t, ct, "someone")
	initVault(t, ct, 10)
	id := finalizedProposal(t, ct, "someone", 10)
	CallContractAt(t, ct, contract.ActionClaimFunds, strconv.FormatUint(id, 10), "someone", true, afterVoting)

	res := CallContract(t, ct, contract.ActionRejectProposal, refPayload(id, "someone"), "admin1", false)
	assert.ErrorIs(t, res.Err, contract.ErrInvalidTransition)
	assert.Equal(t, contract.StatusClaimed, getProposal(t, ct, "someone", id).Status)
}

// =============================================================================
// Finalize Tests
// =============================================================================

func TestFinalizeBeforeDeadline(t *testing.T) {
	ct := SetupContractTest(t)
	initUser(t, ct, "someone")
	id := createProposal(t, ct, "someone", 1)
	vote(t, ct, "someoneelse", "someone", id, 500, true)

	res := CallContractAt(t, ct, contract.ActionFinalizeProposal, refPayload(id, "someone"), "outsider", false, lastVotingSecond)
	assert.ErrorIs(t, res.Err, contract.ErrVotingStillActive)
	p := getProposal(t, ct, "someone", id)
	assert.Equal(t, contract.StatusPending, p.Status)
	assert.Zero(t, p.FinalizedAt)
}

func TestFinalizeVoteThreshold(t *testing.T) {
	ct := SetupContractTest(t)
	initUser(t, ct, "someone")
	short := createProposal(t, ct, "someone", 1)
	enough := createProposal(t, ct, "someone", 1)
	vote(t, ct, "someoneelse", "someone", short, contract.MinVotes-1, true)
	vote(t, ct, "someoneelse", "someone", enough, contract.MinVotes, true)

	res := CallContractAt(t, ct, contract.ActionFinalizeProposal, refPayload(short, "someone"), "outsider", true, afterVoting)
	assert.Equal(t, "rejected with insufficient votes (99/100)", res.Ret)
	p := getProposal(t, ct, "someone", short)
	assert.Equal(t, contract.StatusRejected, p.Status)
	assert.Equal(t, int64(1756857600+contract.VotingPeriodSeconds), p.FinalizedAt)

	res = CallContractAt(t, ct, contract.ActionFinalizeProposal, refPayload(enough, "someone"), "outsider", true, afterVoting)
	assert.Equal(t, "finalized with 100 votes", res.Ret)
	assert.Equal(t, contract.StatusFinalized, getProposal(t, ct, "someone", enough).Status)

	res = CallContractAt(t, ct, contract.ActionFinalizeProposal, refPayload(enough, "someone"), "outsider", false, afterVoting)
	assert.ErrorIs(t, res.Err, contract.ErrAlreadyFinalized)
}

func TestFinalizeApprovedFails(t *testing.T) {
	ct := SetupContractTest(t)
	initAdmins(t, ct)
	initUser(t, ct, "someone")
	id := createProposal(t, ct, "someone", 1)
	CallContract(t, ct, contract.ActionApproveFunding, refPayload(id, "someone"), "admin1", true)
	res := CallContractAt(t, ct, contract.ActionFinalizeProposal, refPayload(id, "someone"), "outsider", false, afterVoting)
	assert.ErrorIs(t, res.Err, contract.ErrAlreadyFinalized)
}

// =============================================================================
// Claim Tests
// =============================================================================

func TestClaimFunds(t *testing.T) {
	ct := SetupContractTest(t)
	initUser(t, ct, "someone")
	initVault(t, ct, 5*1_000_000_000)
	id := finalizedProposal(t, ct, "someone", 2*1_000_000_000)
	before := balance(t, ct, addr("someone"))

	res := CallContractAt(t, ct, contract.ActionClaimFunds, strconv.FormatUint(id, 10), "someone", true, afterVoting)
	assert.Equal(t, "claimed 2000000000 lamports from vault", res.Ret)
	assert.Contains(t, res.Logs, "vc|id:0|to:"+addr("someone").String()+"|am:2")

	assert.Equal(t, before+2*1_000_000_000, balance(t, ct, addr("someone")))
	assert.Equal(t, contract.StatusClaimed, getProposal(t, ct, "someone", id).Status)
	v, err := ct.Contract.GetVault()
	require.NoError(t, err)
	assert.Equal(t, uint64(5*1_000_000_000), v.TotalDeposited)
	assert.Equal(t, uint64(2*1_000_000_000), v.TotalClaimed)
	assert.Equal(t, uint64(3*1_000_000_000), v.Balance)

	// claiming twice is refused
	res = CallContractAt(t, ct, contract.ActionClaimFunds, strconv.FormatUint(id, 10), "someone", false, afterVoting)
	assert.ErrorIs(t, res.Err, contract.ErrNotApproved)
}

func TestClaimMultisigApprovedNotClaimable(t *testing.T) {
	ct := SetupContractTest(t)
	initAdmins(t, ct)
	initUser(t, ct, "someone")
	initVault(t, ct, 10)
	id := createProposal(t, ct, "someone", contract.MultisigThreshold)
	CallContract(t, ct, contract.ActionApproveFunding, refPayload(id, "someone"), "admin1", true)
	CallContract(t, ct, contract.ActionApproveFunding, refPayload(id, "someone"), "admin2", true)
	require.Equal(t, contract.StatusApproved, getProposal(t, ct, "someone", id).Status)

	res := CallContractAt(t, ct, contract.ActionClaimFunds, strconv.FormatUint(id, 10), "someone", false, afterVoting)
	assert.ErrorIs(t, res.Err, contract.ErrNotApproved)
}

func TestClaimInsufficientVault(t *testing.T) {
	ct := SetupContractTest(t)
	initUser(t, ct, "someone")
	initVault(t, ct, 99)
	id := finalizedProposal(t, ct, "someone", 100)
	before := ct.Store.Snapshot()

	res := CallContractAt(t, ct, contract.ActionClaimFunds, strconv.FormatUint(id, 10), "someone", false, afterVoting)
	assert.ErrorIs(t, res.Err, contract.ErrInsufficientVaultBalance)
	assert.Equal(t, before, ct.Store.Snapshot())
}

func TestClaimOnlyOwner(t *testing.T) {
	ct := SetupContractTest(t)
	initUser(t, ct, "someone")
	initVault(t, ct, 100)
	id := finalizedProposal(t, ct, "someone", 100)

	res := CallContractAt(t, ct, contract.ActionClaimFunds, strconv.FormatUint(id, 10), "outsider", false, afterVoting)
	assert.ErrorIs(t, res.Err, contract.ErrUnknownRecord)
	assert.Equal(t, contract.StatusFinalized, getProposal(t, ct, "someone", id).Status)
}

func TestClaimWithoutVault(t *testing.T) {
	ct := SetupContractTest(t)
	initUser(t, ct, "someone")
	id := finalizedProposal(t, ct, "someone", 100)
	res := CallContractAt(t, ct, contract.ActionClaimFunds, strconv.FormatUint(id, 10), "someone", false, afterVoting)
	assert.ErrorIs(t, res.Err, contract.ErrUnknownRecord)
}
