// Package space is the account-addressed view over a state.Store. Records
// live at program-derived addresses; an address either holds an account or
// it does not, and creating one where another already lives fails.
package space

import (
	"errors"
	"fmt"
	"math"

	"community_fund/state"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrAccountExists        = errors.New("account already exists")
	ErrAccountNotFound      = errors.New("account not found")
	ErrInsufficientLamports = errors.New("insufficient lamports")
	ErrLamportOverflow      = errors.New("lamport balance overflow")
)

// kAccount prefixes every account key so the keyspace can host other
// tables later without collisions.
const kAccount byte = 0x01

type Space struct {
	programID solana.PublicKey
}

func New(programID solana.PublicKey) *Space {
	return &Space{programID: programID}
}

func (s *Space) ProgramID() solana.PublicKey {
	return s.programID
}

// FindAddress derives the program address for the given seeds along with
// its bump. Same seeds always give the same address.
func (s *Space) FindAddress(seeds ...[]byte) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, s.programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("derive address: %w", err)
	}
	return addr, bump, nil
}

func accountKey(addr solana.PublicKey) []byte {
	key := make([]byte, 0, 1+solana.PublicKeyLength)
	key = append(key, kAccount)
	return append(key, addr.Bytes()...)
}

func (s *Space) load(txn state.Txn, addr solana.PublicKey) (*Account, error) {
	raw, err := txn.Get(accountKey(addr))
	if err != nil {
		if errors.Is(err, state.ErrKeyNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	acc, err := decodeAccount(raw)
	if err != nil {
		return nil, fmt.Errorf("decode account %s: %w", addr, err)
	}
	return acc, nil
}

func (s *Space) store(txn state.Txn, addr solana.PublicKey, acc *Account) error {
	raw, err := encodeAccount(acc)
	if err != nil {
		return fmt.Errorf("encode account %s: %w", addr, err)
	}
	return txn.Set(accountKey(addr), raw)
}

// Open returns the account at addr.
func (s *Space) Open(txn state.Txn, addr solana.PublicKey) (*Account, error) {
	acc, err := s.load(txn, addr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", addr, err)
	}
	return acc, nil
}

// Create claims addr for the program and sets its data. A wallet account
// already sitting there (lamports only) is adopted and keeps its balance;
// anything else fails with ErrAccountExists.
func (s *Space) Create(txn state.Txn, addr solana.PublicKey, data []byte) (*Account, error) {
	acc, err := s.load(txn, addr)
	switch {
	case errors.Is(err, ErrAccountNotFound):
		acc = &Account{}
	case err != nil:
		return nil, err
	case !acc.IsWallet():
		return nil, fmt.Errorf("%s: %w", addr, ErrAccountExists)
	}
	acc.Owner = s.programID
	acc.Data = append([]byte(nil), data...)
	if err := s.store(txn, addr, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// Save overwrites the account at addr, which must already exist.
func (s *Space) Save(txn state.Txn, addr solana.PublicKey, acc *Account) error {
	if _, err := s.Open(txn, addr); err != nil {
		return err
	}
	return s.store(txn, addr, acc)
}

// Balance returns the lamports at addr; an empty address holds nothing.
func (s *Space) Balance(txn state.Txn, addr solana.PublicKey) (uint64, error) {
	acc, err := s.load(txn, addr)
	if errors.Is(err, ErrAccountNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acc.Lamports, nil
}

// Transfer moves lamports between two accounts. The destination is created
// as a wallet account if nothing lives there yet.
func (s *Space) Transfer(txn state.Txn, from, to solana.PublicKey, lamports uint64) error {
	if from.Equals(to) {
		return nil
	}
	src, err := s.load(txn, from)
	if errors.Is(err, ErrAccountNotFound) {
		return fmt.Errorf("%s has 0, needs %d: %w", from, lamports, ErrInsufficientLamports)
	}
	if err != nil {
		return err
	}
	if src.Lamports < lamports {
		return fmt.Errorf("%s has %d, needs %d: %w", from, src.Lamports, lamports, ErrInsufficientLamports)
	}
	dst, err := s.load(txn, to)
	if errors.Is(err, ErrAccountNotFound) {
		dst = &Account{}
	} else if err != nil {
		return err
	}
	if dst.Lamports > math.MaxUint64-lamports {
		return fmt.Errorf("%s: %w", to, ErrLamportOverflow)
	}
	src.Lamports -= lamports
	dst.Lamports += lamports
	if err := s.store(txn, from, src); err != nil {
		return err
	}
	return s.store(txn, to, dst)
}

// Credit mints lamports into addr. Only tooling and tests fund wallets this
// way; the engine itself never calls it.
func (s *Space) Credit(txn state.Txn, addr solana.PublicKey, lamports uint64) error {
	acc, err := s.load(txn, addr)
	if errors.Is(err, ErrAccountNotFound) {
		acc = &Account{}
	} else if err != nil {
		return err
	}
	if acc.Lamports > math.MaxUint64-lamports {
		return fmt.Errorf("%s: %w", addr, ErrLamportOverflow)
	}
	acc.Lamports += lamports
	return s.store(txn, addr, acc)
}
