package sdk_test

import (
	"testing"

	"community_fund/sdk"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	cases := map[string]int64{
		"1756857600":                1756857600,
		"2025-09-03T00:00:00":       1756857600,
		"2025-09-03T00:00:00.000":   1756857600,
		"2025-09-03T02:00:00+02:00": 1756857600,
	}
	for in, want := range cases {
		got, err := sdk.ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := sdk.ParseTimestamp("yesterday")
	assert.Error(t, err)
	_, err = sdk.ParseTimestamp("")
	assert.Error(t, err)

	assert.Equal(t, "2025-09-03T00:00:00", sdk.FormatTimestamp(1756857600))
}

func TestParseAddress(t *testing.T) {
	w := solana.NewWallet()
	pk, err := sdk.ParseAddress(" " + w.PublicKey().String() + " ")
	require.NoError(t, err)
	assert.Equal(t, w.PublicKey(), pk)

	_, err = sdk.ParseAddress("not-base58!")
	assert.Error(t, err)
	_, err = sdk.ParseAddress(solana.PublicKey{}.String())
	assert.Error(t, err)
	_, err = sdk.ParseAddress("")
	assert.Error(t, err)
}

func TestShortAddress(t *testing.T) {
	pk := solana.MustPublicKeyFromBase58("6gE2epaU3z6ySCsnwY9fvWyCCTnUMZ97c4jkzvPg52St")
	assert.Equal(t, "6gE2..52St", sdk.ShortAddress(pk))
}

func TestSOLAmounts(t *testing.T) {
	assert.Equal(t, "1.5", sdk.FormatSOL(1_500_000_000))
	assert.Equal(t, "0", sdk.FormatSOL(0))
	assert.Equal(t, "0.000000001", sdk.FormatSOL(1))

	got, err := sdk.ParseSOL("0.25")
	require.NoError(t, err)
	assert.Equal(t, uint64(250_000_000), got)

	got, err = sdk.ParseSOL("1000")
	require.NoError(t, err)
	assert.Equal(t, 1000*sdk.LamportsPerSOL, got)

	for _, bad := range []string{"-1", "0.0000000001", "abc", "99999999999999999999"} {
		_, err := sdk.ParseSOL(bad)
		assert.Error(t, err, bad)
	}
}

func TestSignVerify(t *testing.T) {
	key := solana.NewWallet().PrivateKey
	env := sdk.NewEnv("fund", "tx-1", key.PublicKey(), "2025-09-03T00:00:00")

	sig, err := sdk.Sign(key, env, "claim_funds", "0")
	require.NoError(t, err)
	require.NoError(t, sdk.Verify(env, "claim_funds", "0", sig))

	assert.ErrorIs(t, sdk.Verify(env, "claim_funds", "1", sig), sdk.ErrBadSignature)
	assert.ErrorIs(t, sdk.Verify(env, "claim_funds", "0", "garbage"), sdk.ErrBadSignature)

	other := sdk.NewEnv("fund", "tx-1", solana.NewWallet().PublicKey(), env.Timestamp)
	assert.ErrorIs(t, sdk.Verify(other, "claim_funds", "0", sig), sdk.ErrBadSignature)

	// the signature pins the block time
	moved := env
	moved.Timestamp = "2025-09-10T00:00:00"
	assert.ErrorIs(t, sdk.Verify(moved, "claim_funds", "0", sig), sdk.ErrBadSignature)
	assert.Equal(t, "fund|tx-1|2025-09-03T00:00:00|claim_funds|0", string(sdk.SigningMessage(env, "claim_funds", "0")))
}

func TestEventLog(t *testing.T) {
	var l sdk.EventLog
	l.Log("a")
	l.Log("b")
	lines := l.Lines()
	assert.Equal(t, []string{"a", "b"}, lines)
	lines[0] = "x"
	assert.Equal(t, "a", l.Lines()[0])
}
