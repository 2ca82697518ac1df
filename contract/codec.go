package contract

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// record is anything stored as account data: a discriminator followed by
// Borsh fields.
type record interface {
	ag_binary.BinaryMarshaler
	ag_binary.BinaryUnmarshaler
}

// accountDiscriminator is the first 8 bytes of sha256("account:<Name>"),
// so an account of one type never decodes as another.
func accountDiscriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var d [8]byte
	copy(d[:], sum[:8])
	return d
}

var (
	ConfigDiscriminator      = accountDiscriminator("Config")
	UserProfileDiscriminator = accountDiscriminator("UserProfile")
	ProposalDiscriminator    = accountDiscriminator("Proposal")
	VoteRecordDiscriminator  = accountDiscriminator("VoteRecord")
	VaultDiscriminator       = accountDiscriminator("Vault")
	ClockDiscriminator       = accountDiscriminator("Clock")
	TxReceiptDiscriminator   = accountDiscriminator("TxReceipt")
)

func encodeRecord(r record) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := r.MarshalWithEncoder(ag_binary.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRecord(data []byte, r record) error {
	return r.UnmarshalWithDecoder(ag_binary.NewBorshDecoder(data))
}

// checkDiscriminator reads the leading type id and fails on mismatch.
func checkDiscriminator(decoder *ag_binary.Decoder, name string, want [8]byte) error {
	got, err := decoder.ReadTypeID()
	if err != nil {
		return err
	}
	if !got.Equal(want[:]) {
		return fmt.Errorf("wrong discriminator for %s: wanted %v, got %v", name, want[:], got[:])
	}
	return nil
}

// -----------------------------------------------------------------------------
// Config
// -----------------------------------------------------------------------------

func (obj Config) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	if err = encoder.WriteBytes(ConfigDiscriminator[:], false); err != nil {
		return err
	}
	for _, admin := range obj.Admins {
		if err = encoder.Encode(admin); err != nil {
			return err
		}
	}
	return encoder.Encode(obj.Bump)
}

func (obj *Config) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if err = checkDiscriminator(decoder, "Config", ConfigDiscriminator); err != nil {
		return err
	}
	for i := range obj.Admins {
		if err = decoder.Decode(&obj.Admins[i]); err != nil {
			return err
		}
	}
	return decoder.Decode(&obj.Bump)
}

// -----------------------------------------------------------------------------
// UserProfile
// -----------------------------------------------------------------------------

func (obj UserProfile) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	if err = encoder.WriteBytes(UserProfileDiscriminator[:], false); err != nil {
		return err
	}
	if err = encoder.Encode(obj.ProposalCount); err != nil {
		return err
	}
	return encoder.Encode(obj.Bump)
}

func (obj *UserProfile) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if err = checkDiscriminator(decoder, "UserProfile", UserProfileDiscriminator); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.ProposalCount); err != nil {
		return err
	}
	return decoder.Decode(&obj.Bump)
}

// -----------------------------------------------------------------------------
// Proposal
// -----------------------------------------------------------------------------

func (obj Proposal) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	if err = encoder.WriteBytes(ProposalDiscriminator[:], false); err != nil {
		return err
	}
	// Serialize `ID` param:
	if err = encoder.Encode(obj.ID); err != nil {
		return err
	}
	// Serialize `Owner` param:
	if err = encoder.Encode(obj.Owner); err != nil {
		return err
	}
	// Serialize `Title` param:
	if err = encoder.Encode(obj.Title); err != nil {
		return err
	}
	// Serialize `Description` param:
	if err = encoder.Encode(obj.Description); err != nil {
		return err
	}
	// Serialize `AmountRequested` param:
	if err = encoder.Encode(obj.AmountRequested); err != nil {
		return err
	}
	// Serialize `Status` param as its u8 tag:
	if err = encoder.WriteUint8(uint8(obj.Status)); err != nil {
		return err
	}
	// Serialize `CreatedAt` param:
	if err = encoder.Encode(obj.CreatedAt); err != nil {
		return err
	}
	// Serialize `VoteCount` param:
	if err = encoder.Encode(obj.VoteCount); err != nil {
		return err
	}
	// Serialize `FundingApprovals` param:
	if obj.FundingApprovals == nil {
		obj.FundingApprovals = []solana.PublicKey{}
	}
	if err = encoder.Encode(obj.FundingApprovals); err != nil {
		return err
	}
	// Serialize `FinalizedAt` param:
	if err = encoder.Encode(obj.FinalizedAt); err != nil {
		return err
	}
	return encoder.Encode(obj.Bump)
}

func (obj *Proposal) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if err = checkDiscriminator(decoder, "Proposal", ProposalDiscriminator); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.ID); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Owner); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Title); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Description); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.AmountRequested); err != nil {
		return err
	}
	status, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	obj.Status = ProposalStatus(status)
	if !obj.Status.valid() {
		return fmt.Errorf("invalid proposal status %d", status)
	}
	if err = decoder.Decode(&obj.CreatedAt); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.VoteCount); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.FundingApprovals); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.FinalizedAt); err != nil {
		return err
	}
	return decoder.Decode(&obj.Bump)
}

// -----------------------------------------------------------------------------
// VoteRecord
// -----------------------------------------------------------------------------

func (obj VoteRecord) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	if err = encoder.WriteBytes(VoteRecordDiscriminator[:], false); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Voter); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Proposal); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Timestamp); err != nil {
		return err
	}
	if err = encoder.Encode(obj.TokenWeight); err != nil {
		return err
	}
	return encoder.Encode(obj.Bump)
}

func (obj *VoteRecord) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if err = checkDiscriminator(decoder, "VoteRecord", VoteRecordDiscriminator); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Voter); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Proposal); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Timestamp); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.TokenWeight); err != nil {
		return err
	}
	return decoder.Decode(&obj.Bump)
}

// -----------------------------------------------------------------------------
// Vault
// -----------------------------------------------------------------------------

func (obj Vault) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	if err = encoder.WriteBytes(VaultDiscriminator[:], false); err != nil {
		return err
	}
	if err = encoder.Encode(obj.TotalDeposited); err != nil {
		return err
	}
	if err = encoder.Encode(obj.TotalClaimed); err != nil {
		return err
	}
	return encoder.Encode(obj.Bump)
}

func (obj *Vault) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if err = checkDiscriminator(decoder, "Vault", VaultDiscriminator); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.TotalDeposited); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.TotalClaimed); err != nil {
		return err
	}
	return decoder.Decode(&obj.Bump)
}

// -----------------------------------------------------------------------------
// Clock
// -----------------------------------------------------------------------------

func (obj Clock) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	if err = encoder.WriteBytes(ClockDiscriminator[:], false); err != nil {
		return err
	}
	if err = encoder.Encode(obj.LastTimestamp); err != nil {
		return err
	}
	return encoder.Encode(obj.Bump)
}

func (obj *Clock) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if err = checkDiscriminator(decoder, "Clock", ClockDiscriminator); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.LastTimestamp); err != nil {
		return err
	}
	return decoder.Decode(&obj.Bump)
}

// -----------------------------------------------------------------------------
// TxReceipt
// -----------------------------------------------------------------------------

func (obj TxReceipt) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	if err = encoder.WriteBytes(TxReceiptDiscriminator[:], false); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Sender); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Timestamp); err != nil {
		return err
	}
	return encoder.Encode(obj.Bump)
}

func (obj *TxReceipt) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if err = checkDiscriminator(decoder, "TxReceipt", TxReceiptDiscriminator); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Sender); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Timestamp); err != nil {
		return err
	}
	return decoder.Decode(&obj.Bump)
}
