package contract

import (
	"crypto/sha256"

	"community_fund/space"

	"github.com/gagliardetto/solana-go"
)

// packU64BE encodes a proposal id the way address seeds expect it.
func packU64BE(x uint64) []byte {
	return []byte{
		byte(x >> 56),
		byte(x >> 48),
		byte(x >> 40),
		byte(x >> 32),
		byte(x >> 24),
		byte(x >> 16),
		byte(x >> 8),
		byte(x),
	}
}

// configAddress is the singleton admin registry at ["config"].
func configAddress(sp *space.Space) (solana.PublicKey, uint8, error) {
	return sp.FindAddress(seedConfig)
}

// profileAddress sits at ["user_profile", owner].
func profileAddress(sp *space.Space, owner solana.PublicKey) (solana.PublicKey, uint8, error) {
	return sp.FindAddress(seedUserProfile, owner.Bytes())
}

// proposalAddress mixes owner and id so ids only need to be unique per owner.
func proposalAddress(sp *space.Space, owner solana.PublicKey, id uint64) (solana.PublicKey, uint8, error) {
	return sp.FindAddress(seedProposal, owner.Bytes(), packU64BE(id))
}

// voteAddress keys a vote on (voter, proposal), which is what makes a second
// vote by the same voter collide.
func voteAddress(sp *space.Space, voter, owner solana.PublicKey, id uint64) (solana.PublicKey, uint8, error) {
	return sp.FindAddress(seedVote, voter.Bytes(), owner.Bytes(), packU64BE(id))
}

// vaultAddress is the singleton fund at ["vault"].
func vaultAddress(sp *space.Space) (solana.PublicKey, uint8, error) {
	return sp.FindAddress(seedVault)
}

// clockAddress is the singleton block clock at ["clock"].
func clockAddress(sp *space.Space) (solana.PublicKey, uint8, error) {
	return sp.FindAddress(seedClock)
}

// txAddress sits at ["tx", sha256(txId)]; hashing keeps any tx id within
// the 32 byte seed limit.
func txAddress(sp *space.Space, txId string) (solana.PublicKey, uint8, error) {
	sum := sha256.Sum256([]byte(txId))
	return sp.FindAddress(seedTx, sum[:])
}
