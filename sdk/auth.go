package sdk

import (
	"errors"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

var ErrBadSignature = errors.New("signature does not match sender")

// SigningMessage is the byte string a sender signs to authorize a call.
// The block timestamp is covered so a signed call can't be moved in time.
// Example payload: sdk.SigningMessage(env, "claim_funds", "0")
func SigningMessage(env Env, action, payload string) []byte {
	return []byte(strings.Join([]string{env.ContractId, env.TxId, env.Timestamp, action, payload}, "|"))
}

// Sign authorizes a call with the sender's key and returns the base58
// signature.
func Sign(key solana.PrivateKey, env Env, action, payload string) (string, error) {
	sig, err := key.Sign(SigningMessage(env, action, payload))
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}

// Verify checks that sig (base58) was produced by env.Sender.Address over
// the call.
func Verify(env Env, action, payload, sig string) error {
	raw, err := base58.Decode(sig)
	if err != nil || len(raw) != solana.SignatureLength {
		return ErrBadSignature
	}
	var s solana.Signature
	copy(s[:], raw)
	if !s.Verify(env.Sender.Address, SigningMessage(env, action, payload)) {
		return ErrBadSignature
	}
	return nil
}
