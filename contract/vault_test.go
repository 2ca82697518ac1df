package contract_test

import (
	"context"
	"strconv"
	"testing"

	"community_fund/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Vault Tests
// =============================================================================

func TestInitializeVault(t *testing.T) {
	ct := SetupContractTest(t)
	res := CallContract(t, ct, contract.ActionInitializeVault, "", "outsider", true)
	assert.Equal(t, "vault initialized", res.Ret)

	v, err := ct.Contract.GetVault()
	require.NoError(t, err)
	assert.Zero(t, v.TotalDeposited)
	assert.Zero(t, v.TotalClaimed)
	assert.Zero(t, v.Balance)

	res = CallContract(t, ct, contract.ActionInitializeVault, "", "admin1", false)
	assert.ErrorIs(t, res.Err, contract.ErrAlreadyInitialized)
}

func TestDepositToVault(t *testing.T) {
	ct := SetupContractTest(t)
	initVault(t, ct, 0)

	res := CallContract(t, ct, contract.ActionDepositToVault, "1500000000", "someone", true)
	assert.Equal(t, []string{"vd|by:" + addr("someone").String() + "|am:1.5"}, res.Logs)
	CallContract(t, ct, contract.ActionDepositToVault, "500000000", "someoneelse", true)

	v, err := ct.Contract.GetVault()
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000_000_000), v.TotalDeposited)
	assert.Equal(t, uint64(2_000_000_000), v.Balance)
	assert.Equal(t, startingBalance-1_500_000_000, balance(t, ct, addr("someone")))
}

func TestDepositValidation(t *testing.T) {
	ct := SetupContractTest(t)

	res := CallContract(t, ct, contract.ActionDepositToVault, "10", "someone", false)
	assert.ErrorIs(t, res.Err, contract.ErrUnknownRecord)

	initVault(t, ct, 0)
	res = CallContract(t, ct, contract.ActionDepositToVault, "0", "someone", false)
	assert.ErrorIs(t, res.Err, contract.ErrInvalidAmount)

	res = CallContract(t, ct, contract.ActionDepositToVault, "ten", "someone", false)
	assert.ErrorIs(t, res.Err, contract.ErrInvalidPayload)

	before := ct.Store.Snapshot()
	res = CallContract(t, ct, contract.ActionDepositToVault, strconv.FormatUint(startingBalance+1, 10), "someone", false)
	assert.ErrorIs(t, res.Err, contract.ErrInsufficientFunds)
	assert.Equal(t, before, ct.Store.Snapshot())

	// an identity that never received lamports cannot deposit either
	res = CallContract(t, ct, contract.ActionDepositToVault, "1", "nobody", false)
	assert.ErrorIs(t, res.Err, contract.ErrInsufficientFunds)
}

func TestVaultKeepsPreFundedLamports(t *testing.T) {
	ct := SetupContractTest(t)
	// lamports sent to the vault address before it exists are kept
	CallContract(t, ct, contract.ActionInitializeVault, "", "admin1", true)
	v, err := ct.Contract.GetVault()
	require.NoError(t, err)

	ct2 := SetupContractTest(t)
	require.NoError(t, ct2.Contract.Airdrop(context.Background(), v.Address, 42))
	CallContract(t, ct2, contract.ActionInitializeVault, "", "admin1", true)
	v2, err := ct2.Contract.GetVault()
	require.NoError(t, err)
	assert.Equal(t, v.Address, v2.Address)
	assert.Equal(t, uint64(42), v2.Balance)
	assert.Zero(t, v2.TotalDeposited)
}
