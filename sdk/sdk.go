// Package sdk is the host surface the contract runs against: who is
// calling, when, inside which transaction, and how a call proves it came
// from its sender.
package sdk

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
)

// Sender is the identity a call runs as.
type Sender struct {
	Address       solana.PublicKey   `json:"id"`
	RequiredAuths []solana.PublicKey `json:"required_auths"`
}

// Env is the per-call environment handed to the contract.
type Env struct {
	ContractId  string `json:"contract.id"`
	TxId        string `json:"tx.id"`
	BlockHeight uint64 `json:"block.height"`
	// Timestamp is the block time, either unix seconds or an ISO date.
	Timestamp string `json:"block.timestamp"`
	Sender    Sender `json:"msg.sender"`
}

// NewEnv builds an env for sender with the sender as its only required auth.
// Example payload: sdk.NewEnv("fund", "tx-1", addr, "2025-09-03T00:00:00")
func NewEnv(contractId, txId string, sender solana.PublicKey, timestamp string) Env {
	return Env{
		ContractId: contractId,
		TxId:       txId,
		Timestamp:  timestamp,
		Sender: Sender{
			Address:       sender,
			RequiredAuths: []solana.PublicKey{sender},
		},
	}
}

// Unix returns the env timestamp as unix seconds.
// Example payload: env.Unix()
func (e Env) Unix() (int64, error) {
	return ParseTimestamp(e.Timestamp)
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
}

// ParseTimestamp accepts unix seconds or one of the ISO layouts the host
// emits. Dates without a zone are read as UTC.
// Example payload: sdk.ParseTimestamp("2025-09-03T00:00:00")
func ParseTimestamp(ts string) (int64, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	if secs, err := strconv.ParseInt(ts, 10, 64); err == nil {
		return secs, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, ts, time.UTC); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, fmt.Errorf("invalid timestamp %q", ts)
}

// FormatTimestamp renders unix seconds the way the host does.
func FormatTimestamp(secs int64) string {
	return time.Unix(secs, 0).UTC().Format("2006-01-02T15:04:05")
}
