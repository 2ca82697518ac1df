package space

import (
	"bytes"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Account is the unit of state at an address: a lamport balance, the
// program that owns it, and its opaque data. Wallet accounts have a zero
// owner and no data.
type Account struct {
	Lamports uint64
	Owner    solana.PublicKey
	Data     []byte
}

// IsWallet reports whether the account is a plain lamport holder no
// program has claimed.
func (a *Account) IsWallet() bool {
	return a.Owner.IsZero() && len(a.Data) == 0
}

func (a Account) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	// Serialize `Lamports` param:
	err = encoder.Encode(a.Lamports)
	if err != nil {
		return err
	}
	// Serialize `Owner` param:
	err = encoder.Encode(a.Owner)
	if err != nil {
		return err
	}
	// Serialize `Data` param:
	err = encoder.Encode(a.Data)
	if err != nil {
		return err
	}
	return nil
}

func (a *Account) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	// Deserialize `Lamports`:
	err = decoder.Decode(&a.Lamports)
	if err != nil {
		return err
	}
	// Deserialize `Owner`:
	err = decoder.Decode(&a.Owner)
	if err != nil {
		return err
	}
	// Deserialize `Data`:
	err = decoder.Decode(&a.Data)
	if err != nil {
		return err
	}
	return nil
}

func encodeAccount(a *Account) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := a.MarshalWithEncoder(ag_binary.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeAccount(raw []byte) (*Account, error) {
	a := new(Account)
	if err := a.UnmarshalWithDecoder(ag_binary.NewBorshDecoder(raw)); err != nil {
		return nil, err
	}
	return a, nil
}
